package bunscript

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/anchore/npmsweep/npmsweep/artifact"
	"github.com/anchore/npmsweep/npmsweep/catalog"
	"github.com/anchore/npmsweep/npmsweep/finding"
	"github.com/anchore/npmsweep/npmsweep/matcher/internal"
)

type MatcherConfig struct {
	// ScanContent also searches the script for catalog package names.
	ScanContent bool
}

type Matcher struct {
	fs  afero.Fs
	cfg MatcherConfig
}

func NewBunScriptMatcher(fs afero.Fs, cfg MatcherConfig) *Matcher {
	return &Matcher{
		fs:  fs,
		cfg: cfg,
	}
}

func (m *Matcher) ArtifactKinds() []artifact.Kind {
	return []artifact.Kind{artifact.SuspiciousScript}
}

func (m *Matcher) Type() finding.MatcherType {
	return finding.BunScriptMatcher
}

// Match always reports the presence of the script. With content scanning enabled, every catalog package name that
// appears literally in the script is reported as well. Names are matched as plain substrings, so short or common
// names (e.g. "ms") will hit on unrelated text.
func (m *Matcher) Match(_ context.Context, c *catalog.Catalog, a artifact.Artifact) ([]finding.Finding, error) {
	findings := []finding.Finding{
		finding.New(a.Path, finding.BunFilePackage, finding.NotApplicableVersion, finding.BunPresentKind, map[string]string{
			finding.ScriptField: filepath.Base(a.Path),
		}),
	}

	if !m.cfg.ScanContent {
		return findings, nil
	}

	content, err := internal.ReadContent(m.fs, a)
	if err != nil {
		return findings, err
	}

	for _, name := range c.Names() {
		if strings.Contains(content, name) {
			findings = append(findings, finding.New(a.Path, name, finding.UnknownVersion, finding.BunContentHitKind, internal.PackageExtra(finding.StringSearchMethod, name, finding.UnknownVersion)))
		}
	}
	return finding.Dedupe(findings), nil
}
