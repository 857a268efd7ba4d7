package yarnlock

import (
	"context"
	"strings"

	"github.com/spf13/afero"

	"github.com/anchore/npmsweep/npmsweep/artifact"
	"github.com/anchore/npmsweep/npmsweep/catalog"
	"github.com/anchore/npmsweep/npmsweep/finding"
	"github.com/anchore/npmsweep/npmsweep/matcher/internal"
)

type Matcher struct {
	fs afero.Fs
}

func NewYarnLockMatcher(fs afero.Fs) *Matcher {
	return &Matcher{
		fs: fs,
	}
}

func (m *Matcher) ArtifactKinds() []artifact.Kind {
	return []artifact.Kind{artifact.LockfileYarn}
}

func (m *Matcher) Type() finding.MatcherType {
	return finding.YarnLockMatcher
}

func (m *Matcher) Match(_ context.Context, c *catalog.Catalog, a artifact.Artifact) ([]finding.Finding, error) {
	content, err := internal.ReadContent(m.fs, a)
	if err != nil {
		return nil, err
	}

	var findings []finding.Finding
	for _, entry := range c.Entries() {
		for _, v := range entry.Versions {
			if Heuristic(content, entry.Name, v) {
				findings = append(findings, finding.New(a.Path, entry.Name, v, finding.YarnLockKind, internal.PackageExtra(finding.StringSearchMethod, entry.Name, v)))
			}
		}
	}
	return finding.Dedupe(findings), nil
}

// Heuristic reports whether the yarn.lock text pins the package at the version, by looking for `"P@V"` or `P@V`.
// yarn keys entries by the requested range (`left-pad@^1.0.0:`) with the resolved version on a separate line, so
// only exact-version requests are found. Any text ending in P or continuing V also matches: `my-left-pad@1.0.0`
// and `left-pad@1.0.01` are false positives for left-pad 1.0.0. An unknown version matches on `P@`.
func Heuristic(content, name, version string) bool {
	if version == catalog.UnknownVersion {
		return strings.Contains(content, name+"@")
	}
	needle := name + "@" + version
	return strings.Contains(content, `"`+needle+`"`) || strings.Contains(content, needle)
}
