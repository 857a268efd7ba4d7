package internal

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/anchore/npmsweep/npmsweep/artifact"
	"github.com/anchore/npmsweep/npmsweep/finding"
)

// ReadContent returns the artifact's contents as text. Invalid UTF-8 is kept as-is, the text matchers only look
// for ASCII substrings.
func ReadContent(fs afero.Fs, a artifact.Artifact) (string, error) {
	b, err := afero.ReadFile(fs, a.Path)
	if err != nil {
		return "", fmt.Errorf("unable to read %s: %w", a.Kind, err)
	}
	return string(b), nil
}

// PackageExtra is the extra field set shared by all package findings.
func PackageExtra(method, name, version string) map[string]string {
	return map[string]string{
		finding.MethodField: method,
		finding.PurlField:   finding.PackageURL(name, version),
	}
}
