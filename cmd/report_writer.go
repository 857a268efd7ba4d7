package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/anchore/npmsweep/internal/file"
)

func reportWriter() (io.Writer, func() error, error) {
	return file.GetWriter(afero.NewOsFs(), os.Stdout, appConfig.File)
}

// useColor indicates if the report is shown directly on a terminal.
func useColor() bool {
	return strings.TrimSpace(appConfig.File) == "" && term.IsTerminal(int(os.Stdout.Fd()))
}
