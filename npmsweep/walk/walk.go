/*
Package walk is the traversal collaborator of the match engine: it visits every directory below a search root and
reports, for each one, its path, the names of its direct subdirectories and the names of its direct files.
*/
package walk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/anchore/npmsweep/internal/log"
)

// ErrRootNotFound is returned (wrapped) when the search root does not exist.
var ErrRootNotFound = errors.New("search root does not exist")

// SkipDir can be returned from a VisitFn to prevent the walker from descending into the visited directory.
var SkipDir = fs.SkipDir

// Directory is a single visited directory. Dirs and Files hold base names in lexical order.
type Directory struct {
	Path  string
	Dirs  []string
	Files []string
}

// HasFile indicates if the directory directly contains a file with the given name.
func (d Directory) HasFile(name string) bool {
	return contains(d.Files, name)
}

// HasDir indicates if the directory directly contains a subdirectory with the given name.
func (d Directory) HasDir(name string) bool {
	return contains(d.Dirs, name)
}

// VisitFn is called once per visited directory, parents before children.
type VisitFn func(Directory) error

type Config struct {
	// Exclusions are doublestar patterns matched against the absolute (slash separated) directory path. Excluded
	// directories are neither visited nor descended into.
	Exclusions []string
}

type Walker struct {
	fs  afero.Fs
	cfg Config
}

func New(fs afero.Fs, cfg Config) *Walker {
	return &Walker{
		fs:  fs,
		cfg: cfg,
	}
}

// Walk visits root and every directory below it in depth-first, lexical order. Symbolic links are reported (as a
// directory or file, depending on the link target) but never followed. Subdirectories that cannot be read are
// logged and skipped.
func (w *Walker) Walk(ctx context.Context, root string, fn VisitFn) error {
	root = filepath.Clean(root)
	info, err := w.fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return fmt.Errorf("unable to stat search root %q: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("search root %q is not a directory", root)
	}

	if _, err := afero.ReadDir(w.fs, root); err != nil {
		return fmt.Errorf("unable to read search root %q: %w", root, err)
	}

	err = w.walk(ctx, root, fn)
	if errors.Is(err, SkipDir) {
		return nil
	}
	return err
}

func (w *Walker) walk(ctx context.Context, path string, fn VisitFn) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if w.excluded(path) {
		log.Debugf("excluding directory %q", path)
		return nil
	}

	entries, err := afero.ReadDir(w.fs, path)
	if err != nil {
		log.Debugf("unable to read directory %q: %+v", path, err)
		return nil
	}

	dir := Directory{Path: path}
	var descend []string
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case entry.IsDir():
			dir.Dirs = append(dir.Dirs, name)
			descend = append(descend, name)
		case entry.Mode()&os.ModeSymlink != 0:
			if target, err := w.fs.Stat(filepath.Join(path, name)); err == nil && target.IsDir() {
				dir.Dirs = append(dir.Dirs, name)
				continue
			}
			dir.Files = append(dir.Files, name)
		default:
			dir.Files = append(dir.Files, name)
		}
	}

	if err := fn(dir); err != nil {
		if errors.Is(err, SkipDir) {
			return nil
		}
		return err
	}

	for _, name := range descend {
		if err := w.walk(ctx, filepath.Join(path, name), fn); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range w.cfg.Exclusions {
		for _, candidate := range []string{slashed, strings.TrimPrefix(slashed, "/")} {
			matched, err := doublestar.Match(pattern, candidate)
			if err != nil {
				log.Warnf("bad exclusion pattern %q: %+v", pattern, err)
				break
			}
			if matched {
				return true
			}
		}
	}
	return false
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
