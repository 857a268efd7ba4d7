package file

import (
	"github.com/spf13/afero"
)

// Exists indicates if the path exists and is not a directory.
func Exists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
