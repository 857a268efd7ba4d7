package cachetarball

import (
	"bytes"
	"compress/gzip"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/npmsweep/npmsweep/artifact"
	"github.com/anchore/npmsweep/npmsweep/catalog"
	"github.com/anchore/npmsweep/npmsweep/finding"
)

func gzipped(t *testing.T, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestMatcher_Match(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cache/left-pad-1.0.0.tgz", gzipped(t, "package/package.json"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/cache/@ctrl/tinycolor-4.1.1.tgz", []byte("plain text, not a tarball"), 0644))

	c := catalog.New(catalog.Row{Package: "left-pad", Version: "1.0.0"}, catalog.Row{Package: "@ctrl/tinycolor"})

	tests := []struct {
		name      string
		artifact  artifact.Artifact
		purl      string
		mediaType string
	}{
		{
			name:      "gzip tarball",
			artifact:  artifact.Artifact{Path: "/cache/left-pad-1.0.0.tgz", Kind: artifact.CacheTarball, Origin: artifact.CacheOrigin, Package: "left-pad"},
			purl:      "pkg:npm/left-pad",
			mediaType: "application/gzip",
		},
		{
			name:      "not gzip data",
			artifact:  artifact.Artifact{Path: "/cache/@ctrl/tinycolor-4.1.1.tgz", Kind: artifact.CacheTarball, Origin: artifact.CacheOrigin, Package: "@ctrl/tinycolor"},
			purl:      "pkg:npm/%40ctrl/tinycolor",
			mediaType: "text/plain; charset=utf-8",
		},
		{
			name:     "vanished file",
			artifact: artifact.Artifact{Path: "/cache/ngx-bootstrap-19.0.3.tgz", Kind: artifact.CacheTarball, Origin: artifact.CacheOrigin, Package: "ngx-bootstrap"},
			purl:     "pkg:npm/ngx-bootstrap",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := NewCacheTarballMatcher(fs)
			actual, err := m.Match(context.Background(), c, test.artifact)
			require.NoError(t, err)

			extra := map[string]string{
				finding.MethodField: finding.NoMethod,
				finding.PurlField:   test.purl,
			}
			if test.mediaType != "" {
				extra[finding.MediaTypeField] = test.mediaType
			}
			assert.Equal(t, []finding.Finding{
				finding.New(test.artifact.Path, test.artifact.Package, finding.CachedVersion, finding.CacheTarballKind, extra),
			}, actual)
		})
	}
}
