package pkgtree

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/spf13/afero"

	"github.com/anchore/npmsweep/internal/log"
	"github.com/anchore/npmsweep/internal/stringutil"
	"github.com/anchore/npmsweep/npmsweep/artifact"
	"github.com/anchore/npmsweep/npmsweep/catalog"
	"github.com/anchore/npmsweep/npmsweep/finding"
	"github.com/anchore/npmsweep/npmsweep/matcher/internal"
	"github.com/anchore/npmsweep/npmsweep/query"
)

var versionPattern = regexp.MustCompile(`"version"\s*:\s*"(?P<version>[^"]+)"`)

type Matcher struct {
	fs   afero.Fs
	tool query.Tool
}

func NewPackageTreeMatcher(fs afero.Fs, tool query.Tool) *Matcher {
	return &Matcher{
		fs:   fs,
		tool: tool,
	}
}

func (m *Matcher) ArtifactKinds() []artifact.Kind {
	return []artifact.Kind{artifact.PackageTreeEntry}
}

func (m *Matcher) Type() finding.MatcherType {
	return finding.PackageTreeMatcher
}

// Match always reports an installed catalog package, whether or not the installed version is one of the
// compromised versions: the finding carries the installed version (or "unknown") and a catalog-version-match
// field so the report can be filtered afterwards.
func (m *Matcher) Match(ctx context.Context, c *catalog.Catalog, a artifact.Artifact) ([]finding.Finding, error) {
	entry, ok := c.Get(a.Package)
	if !ok {
		return nil, fmt.Errorf("package %q is not in the catalog", a.Package)
	}

	manifest := filepath.Join(a.Path, filepath.FromSlash(a.Package), artifact.Manifest)
	installed, method, err := m.installedVersion(ctx, manifest)

	extra := internal.PackageExtra(method, a.Package, installed)
	extra[finding.CatalogVersionsField] = strings.Join(entry.Versions, " ")
	extra[finding.CatalogVersionMatchField] = strconv.FormatBool(versionMatches(entry, installed))

	return []finding.Finding{
		finding.New(a.Path, a.Package, installed, kindFor(a.Origin), extra),
	}, err
}

// installedVersion reads the version declared by the installed package's manifest. A missing manifest is not an
// error; the version is simply unknown.
func (m *Matcher) installedVersion(ctx context.Context, manifest string) (string, string, error) {
	content, err := afero.ReadFile(m.fs, manifest)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return finding.UnknownVersion, finding.NoMethod, nil
		}
		return finding.UnknownVersion, finding.NoMethod, fmt.Errorf("unable to read package manifest: %w", err)
	}

	out, err := m.tool.Query(ctx, ".version", content)
	if err == nil {
		if v := strings.TrimSpace(out); v != "" && v != "null" {
			return v, finding.QueryMethod, nil
		}
		return finding.UnknownVersion, finding.QueryMethod, nil
	}
	log.Debugf("jq could not read the version from %q, using regex: %+v", manifest, err)

	if v := ExtractVersion(string(content)); v != "" {
		return v, finding.RegexMethod, nil
	}
	return finding.UnknownVersion, finding.RegexMethod, nil
}

// ExtractVersion returns the first `"version": "X"` value found in the text. This is not JSON aware: a nested
// "version" key that appears before the top level one wins.
func ExtractVersion(content string) string {
	return stringutil.MatchCaptureGroups(versionPattern, content)["version"]
}

func versionMatches(entry catalog.Entry, installed string) bool {
	if entry.AnyVersion() {
		return true
	}
	if installed == finding.UnknownVersion {
		return false
	}
	installedVersion, installedErr := version.NewVersion(installed)
	for _, v := range entry.Versions {
		if v == installed {
			return true
		}
		if installedErr != nil {
			continue
		}
		catalogVersion, err := version.NewVersion(v)
		if err != nil {
			continue
		}
		if installedVersion.Equal(catalogVersion) {
			return true
		}
	}
	return false
}

func kindFor(origin artifact.Origin) finding.Kind {
	switch origin {
	case artifact.GlobalOrigin:
		return finding.GlobalTreeKind
	case artifact.VersionManagerOrigin:
		return finding.NvmTreeKind
	default:
		return finding.PackageTreeKind
	}
}
