package file

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWriter(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/report.json", []byte("previous report contents"), 0644))

	tests := []struct {
		name       string
		outputFile string
		useDefault bool
	}{
		{name: "empty path uses default writer", outputFile: "", useDefault: true},
		{name: "whitespace path uses default writer", outputFile: "  ", useDefault: true},
		{name: "new file in new directory", outputFile: "/reports/today/report.json"},
		{name: "existing file is truncated", outputFile: "/out/report.json"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var def bytes.Buffer
			w, closer, err := GetWriter(fs, &def, test.outputFile)
			require.NoError(t, err)

			_, err = io.WriteString(w, "{}")
			require.NoError(t, err)
			require.NoError(t, closer())

			if test.useDefault {
				assert.Equal(t, "{}", def.String())
				return
			}
			assert.Empty(t, def.String())

			contents, err := afero.ReadFile(fs, test.outputFile)
			require.NoError(t, err)
			assert.Equal(t, "{}", string(contents))
		})
	}
}

func TestGetWriter_readOnly(t *testing.T) {
	w, closer, err := GetWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()), nil, "/report.json")
	require.NoError(t, err)

	_, err = io.WriteString(w, "{}")
	assert.Error(t, err)
	assert.NoError(t, closer())
}

func TestGetWriter_untouchedWithoutWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/report.json", []byte("previous report contents"), 0644))

	_, closer, err := GetWriter(fs, nil, "/out/report.json")
	require.NoError(t, err)
	require.NoError(t, closer())

	contents, err := afero.ReadFile(fs, "/out/report.json")
	require.NoError(t, err)
	assert.Equal(t, "previous report contents", string(contents))

	_, closer, err = GetWriter(fs, nil, "/reports/new/report.json")
	require.NoError(t, err)
	require.NoError(t, closer())

	exists, err := afero.DirExists(fs, "/reports/new")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetWriter_directory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/out", 0755))

	_, _, err := GetWriter(fs, nil, "/out")
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a/file.txt", nil, 0644))

	assert.True(t, Exists(fs, "/a/file.txt"))
	assert.False(t, Exists(fs, "/a"))
	assert.False(t, Exists(fs, "/nope"))
}
