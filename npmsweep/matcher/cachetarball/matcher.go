package cachetarball

import (
	"context"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/anchore/npmsweep/internal/log"
	"github.com/anchore/npmsweep/npmsweep/artifact"
	"github.com/anchore/npmsweep/npmsweep/catalog"
	"github.com/anchore/npmsweep/npmsweep/finding"
	"github.com/anchore/npmsweep/npmsweep/matcher/internal"
)

type Matcher struct {
	fs afero.Fs
}

func NewCacheTarballMatcher(fs afero.Fs) *Matcher {
	return &Matcher{
		fs: fs,
	}
}

func (m *Matcher) ArtifactKinds() []artifact.Kind {
	return []artifact.Kind{artifact.CacheTarball}
}

func (m *Matcher) Type() finding.MatcherType {
	return finding.CacheTarballMatcher
}

// Match reports a cached tarball whose file name looks like a catalog package. The version is never parsed from
// the name, so the finding is recorded with the "cached" marker. The sniffed media type is attached so tarballs
// that are not actually gzip data stand out.
func (m *Matcher) Match(_ context.Context, _ *catalog.Catalog, a artifact.Artifact) ([]finding.Finding, error) {
	extra := internal.PackageExtra(finding.NoMethod, a.Package, finding.CachedVersion)
	if mediaType := m.mediaType(a.Path); mediaType != "" {
		extra[finding.MediaTypeField] = mediaType
	}

	return []finding.Finding{
		finding.New(a.Path, a.Package, finding.CachedVersion, finding.CacheTarballKind, extra),
	}, nil
}

func (m *Matcher) mediaType(path string) string {
	f, err := m.fs.Open(path)
	if err != nil {
		log.Debugf("unable to open cached tarball %q: %+v", path, err)
		return ""
	}
	defer f.Close()

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		log.Debugf("unable to detect media type of %q: %+v", path, err)
		return ""
	}
	return mime.String()
}
