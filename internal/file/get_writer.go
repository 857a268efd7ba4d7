package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/anchore/npmsweep/internal/log"
)

// GetWriter returns the default writer when no output file is given, otherwise a writer for the given path. The
// file is only created (and truncated) on the first write, so a run that never produces a report leaves an existing
// report untouched. The returned func closes whatever was opened.
func GetWriter(fs afero.Fs, defaultWriter io.Writer, outputFile string) (io.Writer, func() error, error) {
	nop := func() error { return nil }
	path := strings.TrimSpace(outputFile)

	switch len(path) {
	case 0:
		return defaultWriter, nop, nil

	default:
		if info, err := fs.Stat(path); err == nil && info.IsDir() {
			return nil, nop, fmt.Errorf("unable to create report file: %q is a directory", path)
		}

		w := &deferredFile{fs: fs, path: path}
		return w, w.Close, nil
	}
}

type deferredFile struct {
	fs   afero.Fs
	path string
	file afero.File
}

func (d *deferredFile) Write(p []byte) (int, error) {
	if d.file == nil {
		if err := d.open(); err != nil {
			return 0, err
		}
	}
	return d.file.Write(p)
}

func (d *deferredFile) open() error {
	if Exists(d.fs, d.path) {
		log.Debugf("overwriting existing report: %s", d.path)
	}

	if dir := filepath.Dir(d.path); dir != "." {
		if err := d.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("unable to create report directory: %w", err)
		}
	}

	f, err := d.fs.OpenFile(d.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("unable to create report file: %w", err)
	}
	d.file = f
	return nil
}

func (d *deferredFile) Close() error {
	if d.file == nil {
		return nil
	}
	return d.file.Close()
}
