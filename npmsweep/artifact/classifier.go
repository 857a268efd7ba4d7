package artifact

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/anchore/npmsweep/internal/log"
	"github.com/anchore/npmsweep/npmsweep/catalog"
	"github.com/anchore/npmsweep/npmsweep/walk"
)

var lockfiles = []struct {
	name string
	kind Kind
}{
	{name: NpmLockfile, kind: LockfileNpm},
	{name: YarnLockfile, kind: LockfileYarn},
	{name: PnpmLockfile, kind: LockfilePnpm},
}

type ClassifierConfig struct {
	// RequireManifest only considers lockfiles that sit next to a package.json.
	RequireManifest bool
}

func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		RequireManifest: true,
	}
}

// Classifier decides which artifacts a visited directory holds. Classification is based on names only; the one
// exception is the package tree, where the existence of an entry for each catalog package is checked.
type Classifier struct {
	fs      afero.Fs
	catalog *catalog.Catalog
	cfg     ClassifierConfig
}

func NewClassifier(fs afero.Fs, c *catalog.Catalog, cfg ClassifierConfig) *Classifier {
	return &Classifier{
		fs:      fs,
		catalog: c,
		cfg:     cfg,
	}
}

// Classify returns every artifact found directly in the given directory: suspicious scripts, then lockfiles, then
// package tree entries.
func (c *Classifier) Classify(dir walk.Directory, origin Origin) []Artifact {
	var artifacts []Artifact
	artifacts = append(artifacts, c.Scripts(dir, origin)...)
	artifacts = append(artifacts, c.Lockfiles(dir, origin)...)
	artifacts = append(artifacts, c.Trees(dir, origin)...)
	return artifacts
}

// Scripts returns the suspicious scripts present in the directory.
func (c *Classifier) Scripts(dir walk.Directory, origin Origin) []Artifact {
	var artifacts []Artifact
	for _, name := range SuspiciousScripts {
		if dir.HasFile(name) {
			artifacts = append(artifacts, Artifact{
				Path:   filepath.Join(dir.Path, name),
				Kind:   SuspiciousScript,
				Origin: origin,
			})
		}
	}
	return artifacts
}

// Lockfiles returns the lockfiles present in the directory, in npm, yarn, pnpm order.
func (c *Classifier) Lockfiles(dir walk.Directory, origin Origin) []Artifact {
	if c.cfg.RequireManifest && !dir.HasFile(Manifest) {
		return nil
	}
	var artifacts []Artifact
	for _, l := range lockfiles {
		if dir.HasFile(l.name) {
			artifacts = append(artifacts, Artifact{
				Path:   filepath.Join(dir.Path, l.name),
				Kind:   l.kind,
				Origin: origin,
			})
		}
	}
	return artifacts
}

// Trees returns the package tree entries of the directory's node_modules, if it has one.
func (c *Classifier) Trees(dir walk.Directory, origin Origin) []Artifact {
	if !dir.HasDir(PackageTreeDir) {
		return nil
	}
	return c.ClassifyTree(filepath.Join(dir.Path, PackageTreeDir), origin)
}

// ClassifyTree treats root as a package tree and returns one artifact per catalog package installed in it.
func (c *Classifier) ClassifyTree(root string, origin Origin) []Artifact {
	var artifacts []Artifact
	for _, name := range c.catalog.Names() {
		exists, err := afero.DirExists(c.fs, filepath.Join(root, filepath.FromSlash(name)))
		if err != nil {
			log.Debugf("unable to check tree entry %q in %q: %+v", name, root, err)
			continue
		}
		if exists {
			artifacts = append(artifacts, Artifact{
				Path:    root,
				Kind:    PackageTreeEntry,
				Origin:  origin,
				Package: name,
			})
		}
	}
	return artifacts
}

// ClassifyCache returns the tarballs in dir that look like a catalog package, given the cache root the walk
// started from. This mirrors a recursive "<name>-*.tgz" glob under the cache root, so scoped packages are matched
// as "@scope/<name>-*.tgz". A catalog package whose name is a prefix of another package name followed by a dash
// (left-pad and left-pad-extra) will also match the longer package's tarballs.
func (c *Classifier) ClassifyCache(root string, dir walk.Directory) []Artifact {
	var artifacts []Artifact
	for _, file := range dir.Files {
		if !strings.HasSuffix(file, TarballSuffix) {
			continue
		}
		full := filepath.Join(dir.Path, file)
		rel, err := filepath.Rel(root, full)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)

		for _, name := range c.catalog.Names() {
			if !strings.HasPrefix(file, baseName(name)+"-") {
				continue
			}
			matched, err := doublestar.Match("**/"+escapeMeta(name)+"-*"+TarballSuffix, rel)
			if err != nil {
				log.Debugf("bad cache pattern for package %q: %+v", name, err)
				continue
			}
			if matched {
				artifacts = append(artifacts, Artifact{
					Path:    full,
					Kind:    CacheTarball,
					Origin:  CacheOrigin,
					Package: name,
				})
			}
		}
	}
	return artifacts
}

func baseName(name string) string {
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

func escapeMeta(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
