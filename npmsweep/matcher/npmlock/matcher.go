package npmlock

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/scylladb/go-set/strset"
	"github.com/spf13/afero"

	"github.com/anchore/npmsweep/internal/log"
	"github.com/anchore/npmsweep/npmsweep/artifact"
	"github.com/anchore/npmsweep/npmsweep/catalog"
	"github.com/anchore/npmsweep/npmsweep/finding"
	"github.com/anchore/npmsweep/npmsweep/matcher/internal"
	"github.com/anchore/npmsweep/npmsweep/query"
)

// lockedVersionsFilter projects every locked dependency of a lockfile that is named in $names to
// "<name>\t<version>" lines, at any nesting depth. Lockfile v1 nests them under .dependencies objects, v2 and v3
// key .packages by install path where the name is what follows the last "node_modules/" segment. Range maps
// ("dependencies" of a package entry) hold strings and are skipped.
const lockedVersionsFilter = `
  ((.. | objects | (.dependencies // empty) | objects | to_entries[]
     | select((.value | type) == "object") | select($names[.key] != null)
     | [.key, (.value.version // "")]),
   ((.packages // {}) | to_entries[]
     | select(.key | startswith("node_modules/") or contains("/node_modules/"))
     | [(.key | split("node_modules/") | last), (.value.version // "")]
     | select($names[.[0]] != null)))
  | map(tostring) | join("\t")`

type Matcher struct {
	fs   afero.Fs
	tool query.Tool
}

func NewNpmLockMatcher(fs afero.Fs, tool query.Tool) *Matcher {
	return &Matcher{
		fs:   fs,
		tool: tool,
	}
}

func (m *Matcher) ArtifactKinds() []artifact.Kind {
	return []artifact.Kind{artifact.LockfileNpm}
}

func (m *Matcher) Type() finding.MatcherType {
	return finding.NpmLockMatcher
}

// Match looks up every catalog package in the lockfile with jq. When jq is missing or cannot process the document
// (e.g. a truncated lockfile) the text heuristic in fallbackMatch is used instead, and the findings are tagged
// with the fallback kind so the lower confidence is visible in the report.
func (m *Matcher) Match(ctx context.Context, c *catalog.Catalog, a artifact.Artifact) ([]finding.Finding, error) {
	content, err := internal.ReadContent(m.fs, a)
	if err != nil {
		return nil, err
	}

	locked, err := m.lockedVersions(ctx, []byte(content), c)
	if err != nil {
		log.Debugf("jq query failed for %q, using string search: %+v", a.Path, err)
		return finding.Dedupe(fallbackMatch(a.Path, content, c)), nil
	}

	return finding.Dedupe(primaryMatch(a.Path, locked, c)), nil
}

// lockedVersions returns the versions the lockfile pins for each catalog package it mentions. A dependency entry
// without a version yields an empty set (the package is present but its version is unknown).
func (m *Matcher) lockedVersions(ctx context.Context, content []byte, c *catalog.Catalog) (map[string]*strset.Set, error) {
	names := make(map[string]bool, c.Len())
	for _, name := range c.Names() {
		names[name] = true
	}
	namesJSON, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("unable to encode catalog names: %w", err)
	}

	out, err := m.tool.Query(ctx, lockedVersionsFilter, content, "--argjson", "names", string(namesJSON))
	if err != nil {
		return nil, err
	}

	locked := make(map[string]*strset.Set)
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		name, version, _ := strings.Cut(line, "\t")
		set, ok := locked[name]
		if !ok {
			set = strset.New()
			locked[name] = set
		}
		if version != "" {
			set.Add(version)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read jq output: %w", err)
	}
	return locked, nil
}

func primaryMatch(path string, locked map[string]*strset.Set, c *catalog.Catalog) []finding.Finding {
	var findings []finding.Finding
	for _, name := range c.Names() {
		versions, ok := locked[name]
		if !ok {
			continue
		}
		entry, _ := c.Get(name)
		for _, v := range entry.Versions {
			if v != catalog.UnknownVersion {
				if versions.Has(v) {
					findings = append(findings, newFinding(path, name, v, finding.NpmLockKind, finding.QueryMethod))
				}
				continue
			}
			// presence match: report what is actually locked
			if versions.IsEmpty() {
				findings = append(findings, newFinding(path, name, finding.UnknownVersion, finding.NpmLockKind, finding.QueryMethod))
				continue
			}
			lockedVersions := versions.List()
			sort.Strings(lockedVersions)
			for _, lv := range lockedVersions {
				findings = append(findings, newFinding(path, name, lv, finding.NpmLockKind, finding.QueryMethod))
			}
		}
	}
	return findings
}

// fallbackMatch is a text heuristic over the raw lockfile. A (P, V) pair matches when `"P": {"version": "V"`
// appears verbatim (compact v1 style), or when `"P"` and `"version": "V"` both appear anywhere in the document.
// The second form does not require the two to be related, so any lockfile that mentions P and pins some other
// package at V is a false positive. Pretty printed entries only match through the second form. Catalog entries
// without a version match on the presence of `"P"`. Lockfile v2 and v3 key packages as `"node_modules/P"`, so
// they only match when `"P"` also appears as a key of its own (the v1 compatible "dependencies" section or the
// root package's ranges); a pretty printed v3 lockfile that installs P only as a transitive dependency is missed.
func fallbackMatch(path, content string, c *catalog.Catalog) []finding.Finding {
	var findings []finding.Finding
	for _, name := range c.Names() {
		quoted := `"` + name + `"`
		if !strings.Contains(content, quoted) {
			continue
		}
		entry, _ := c.Get(name)
		for _, v := range entry.Versions {
			if v == catalog.UnknownVersion {
				findings = append(findings, newFinding(path, name, v, finding.NpmLockFallbackKind, finding.StringSearchMethod))
				continue
			}
			loose := `"version": "` + v + `"`
			compact := quoted + `: {` + loose
			if strings.Contains(content, compact) || strings.Contains(content, loose) {
				findings = append(findings, newFinding(path, name, v, finding.NpmLockFallbackKind, finding.StringSearchMethod))
			}
		}
	}
	return findings
}

func newFinding(path, name, version string, kind finding.Kind, method string) finding.Finding {
	return finding.New(path, name, version, kind, internal.PackageExtra(method, name, version))
}
