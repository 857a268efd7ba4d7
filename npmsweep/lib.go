package npmsweep

import (
	"context"

	"github.com/spf13/afero"
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/npmsweep/internal/bus"
	"github.com/anchore/npmsweep/internal/log"
	"github.com/anchore/npmsweep/npmsweep/catalog"
	"github.com/anchore/npmsweep/npmsweep/location"
	"github.com/anchore/npmsweep/npmsweep/logger"
	"github.com/anchore/npmsweep/npmsweep/matcher"
	"github.com/anchore/npmsweep/npmsweep/query"
)

// LoadCatalog reads the compromised package catalog. Failing to load it is fatal for a scan.
func LoadCatalog(fs afero.Fs, path string) (*catalog.Catalog, error) {
	c, err := catalog.Load(fs, path)
	if err != nil {
		return nil, err
	}
	log.Infof("read information about %d compromised packages", c.Len())
	return c, nil
}

// ResolvePhases determines the scan phases for the given locations. Phases that cannot be resolved are logged and
// left out.
func ResolvePhases(ctx context.Context, fs afero.Fs, runner location.Runner, cfg location.Config) []location.Phase {
	r := location.Resolver{
		Fs:     fs,
		Runner: runner,
		Config: cfg,
	}
	phases, err := r.Phases(ctx)
	if err != nil {
		log.Warnf("some scan phases will be skipped: %+v", err)
	}
	for _, p := range phases {
		log.Debugf("resolved %s", p)
	}
	return phases
}

// Scan looks for the catalog packages across all phases using the default matchers.
func Scan(ctx context.Context, fs afero.Fs, c *catalog.Catalog, tool query.Tool, phases []location.Phase, cfg matcher.Config) (*matcher.Report, error) {
	e := matcher.NewEngine(fs, c, cfg, matcher.NewDefaultMatchers(fs, tool, cfg)...)
	return e.Scan(ctx, phases)
}

func SetLogger(logger logger.Logger) {
	log.Log = logger
}

func SetBus(b *partybus.Bus) {
	bus.SetPublisher(b)
}
