package pnpmlock

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

func NewPnpmLockMatcher(fs afero.Fs) *Matcher {
	return &Matcher{
		fs: fs,
	}
}

func (m *Matcher) ArtifactKinds() []artifact.Kind {
	return []artifact.Kind{artifact.LockfilePnpm}
}

func (m *Matcher) Type() finding.MatcherType {
	return finding.PnpmLockMatcher
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
				findings = append(findings, finding.New(a.Path, entry.Name, v, finding.PnpmLockKind, internal.PackageExtra(finding.StringSearchMethod, entry.Name, v)))
			}
		}
	}
	return finding.Dedupe(findings), nil
}

// Heuristic reports whether the pnpm-lock.yaml text pins the package at the version, by looking for a packages
// section key `/P@V:` (lockfile v5 and v6) or a compact specifier `P:V`. Lockfile v9 keys packages without the
// leading slash and v5 separates name and version with a slash, so both are missed. A package name that ends in P
// (`/my-left-pad@1.0.0:`) is a false positive. An unknown version matches on `/P@`.
func Heuristic(content, name, version string) bool {
	if version == catalog.UnknownVersion {
		return strings.Contains(content, "/"+name+"@")
	}
	return strings.Contains(content, "/"+name+"@"+version+":") || strings.Contains(content, name+":"+version)
}
