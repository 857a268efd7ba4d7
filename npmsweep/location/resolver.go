package location

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/anchore/npmsweep/internal/log"
	"github.com/anchore/npmsweep/npmsweep/artifact"
)

const (
	ProjectsPhase       = "projects"
	GlobalPhase         = "global"
	VersionManagerPhase = "nvm"
	CachePhase          = "cache"
)

// AdditionalRoots are the Homebrew global install roots (Intel and Apple Silicon), searched alongside the home
// directory by default.
var AdditionalRoots = []string{
	"/usr/local/lib/node_modules",
	"/opt/homebrew/lib/node_modules",
}

type Config struct {
	// Roots are searched for projects. Leading "~" is expanded.
	Roots []string
	// Global scans the root reported by `npm root -g`.
	Global bool
	// Nvm scans the node versions installed by nvm.
	Nvm bool
	// NvmDir overrides $NVM_DIR (and ~/.nvm) as the nvm installation directory.
	NvmDir string
	// Cache scans the directory reported by `npm config get cache`.
	Cache bool
	// NpmPath is the npm executable.
	NpmPath string
}

// DefaultRoots returns the home directory followed by AdditionalRoots.
func DefaultRoots() []string {
	var roots []string
	if home, err := homedir.Dir(); err == nil {
		roots = append(roots, home)
	} else {
		log.Warnf("unable to determine the home directory: %+v", err)
	}
	return append(roots, AdditionalRoots...)
}

func DefaultConfig() Config {
	return Config{
		Roots:   DefaultRoots(),
		Global:  true,
		Nvm:     true,
		Cache:   true,
		NpmPath: "npm",
	}
}

// Resolver turns the configuration into concrete scan phases, asking npm for the global and cache roots.
type Resolver struct {
	Fs     afero.Fs
	Runner Runner
	Config Config
}

// Phases returns the phases that could be resolved, in scan order: projects, global, nvm, cache. Phases that
// cannot be resolved are left out; the reasons are returned as a multierror alongside the usable phases.
func (r Resolver) Phases(ctx context.Context) ([]Phase, error) {
	var phases []Phase
	var errs error

	if p, err := r.projects(); err != nil {
		errs = multierror.Append(errs, err)
	} else {
		phases = append(phases, p)
	}

	optional := []struct {
		enabled bool
		resolve func(context.Context) (Phase, error)
	}{
		{enabled: r.Config.Global, resolve: r.global},
		{enabled: r.Config.Nvm, resolve: r.nvm},
		{enabled: r.Config.Cache, resolve: r.cache},
	}
	for _, o := range optional {
		if !o.enabled {
			continue
		}
		p, err := o.resolve(ctx)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		phases = append(phases, p)
	}

	return phases, errs
}

func (r Resolver) projects() (Phase, error) {
	var roots []string
	for _, root := range r.Config.Roots {
		expanded, err := homedir.Expand(root)
		if err != nil {
			log.Warnf("skipping search root %q: %+v", root, err)
			continue
		}
		if !r.isDir(expanded) {
			log.Warnf("skipping non-existent directory: %s", expanded)
			continue
		}
		roots = append(roots, filepath.Clean(expanded))
	}
	if len(roots) == 0 {
		return Phase{}, fmt.Errorf("%s phase: none of the search roots exist", ProjectsPhase)
	}
	return Phase{
		Name:   ProjectsPhase,
		Origin: artifact.ProjectOrigin,
		Roots:  roots,
		Mode:   ProjectMode,
	}, nil
}

func (r Resolver) global(ctx context.Context) (Phase, error) {
	root, err := r.npm(ctx, "root", "-g")
	if err != nil {
		return Phase{}, fmt.Errorf("%s phase: unable to determine the global install root: %w", GlobalPhase, err)
	}
	if !r.isDir(root) {
		return Phase{}, fmt.Errorf("%s phase: global install root %q does not exist", GlobalPhase, root)
	}
	return Phase{
		Name:   GlobalPhase,
		Origin: artifact.GlobalOrigin,
		Roots:  []string{root},
		Mode:   TreeMode,
	}, nil
}

func (r Resolver) nvm(context.Context) (Phase, error) {
	dir := r.Config.NvmDir
	if dir == "" {
		dir = os.Getenv("NVM_DIR")
	}
	if dir == "" {
		dir = filepath.Join("~", ".nvm")
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return Phase{}, fmt.Errorf("%s phase: %w", VersionManagerPhase, err)
	}

	root := filepath.Join(expanded, "versions", "node")
	if !r.isDir(root) {
		return Phase{}, fmt.Errorf("%s phase: %q does not exist", VersionManagerPhase, root)
	}
	return Phase{
		Name:   VersionManagerPhase,
		Origin: artifact.VersionManagerOrigin,
		Roots:  []string{root},
		Mode:   VersionManagerMode,
	}, nil
}

func (r Resolver) cache(ctx context.Context) (Phase, error) {
	root, err := r.npm(ctx, "config", "get", "cache")
	if err != nil {
		return Phase{}, fmt.Errorf("%s phase: unable to determine the npm cache: %w", CachePhase, err)
	}
	if !r.isDir(root) {
		return Phase{}, fmt.Errorf("%s phase: npm cache %q does not exist", CachePhase, root)
	}
	return Phase{
		Name:   CachePhase,
		Origin: artifact.CacheOrigin,
		Roots:  []string{root},
		Mode:   CacheMode,
	}, nil
}

func (r Resolver) npm(ctx context.Context, args ...string) (string, error) {
	if r.Runner == nil {
		return "", fmt.Errorf("no command runner configured")
	}
	npm := r.Config.NpmPath
	if npm == "" {
		npm = "npm"
	}
	out, err := r.Runner.Run(ctx, npm, args...)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("npm %s returned nothing", strings.Join(args, " "))
	}
	return out, nil
}

func (r Resolver) isDir(path string) bool {
	ok, err := afero.DirExists(r.Fs, path)
	if err != nil {
		log.Debugf("unable to stat %q: %+v", path, err)
	}
	return ok
}
