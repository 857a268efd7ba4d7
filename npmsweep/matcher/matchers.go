package matcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/anchore/npmsweep/internal/log"
	"github.com/anchore/npmsweep/npmsweep/artifact"
	"github.com/anchore/npmsweep/npmsweep/catalog"
	"github.com/anchore/npmsweep/npmsweep/finding"
	"github.com/anchore/npmsweep/npmsweep/location"
	"github.com/anchore/npmsweep/npmsweep/matcher/bunscript"
	"github.com/anchore/npmsweep/npmsweep/matcher/cachetarball"
	"github.com/anchore/npmsweep/npmsweep/matcher/npmlock"
	"github.com/anchore/npmsweep/npmsweep/matcher/pkgtree"
	"github.com/anchore/npmsweep/npmsweep/matcher/pnpmlock"
	"github.com/anchore/npmsweep/npmsweep/matcher/yarnlock"
	"github.com/anchore/npmsweep/npmsweep/query"
	"github.com/anchore/npmsweep/npmsweep/walk"
)

// Config contains values used by the engine and by individual matchers for advanced configuration
type Config struct {
	// Parallelism is the number of roots of a phase that are scanned at the same time.
	Parallelism int
	Walk        walk.Config
	Classifier  artifact.ClassifierConfig
	BunScript   bunscript.MatcherConfig
}

func DefaultConfig() Config {
	return Config{
		Parallelism: 1,
		Classifier:  artifact.DefaultClassifierConfig(),
		BunScript: bunscript.MatcherConfig{
			ScanContent: true,
		},
	}
}

func NewDefaultMatchers(fs afero.Fs, tool query.Tool, mc Config) []finding.Matcher {
	return []finding.Matcher{
		bunscript.NewBunScriptMatcher(fs, mc.BunScript),
		npmlock.NewNpmLockMatcher(fs, tool),
		yarnlock.NewYarnLockMatcher(fs),
		pnpmlock.NewPnpmLockMatcher(fs),
		pkgtree.NewPackageTreeMatcher(fs, tool),
		cachetarball.NewCacheTarballMatcher(fs),
	}
}

// Report is everything a scan produced. Findings are in discovery order: phase order, then root order, then
// traversal order within a root.
type Report struct {
	Findings *finding.Findings
	// Skipped holds the outcomes of artifacts that could not be examined completely.
	Skipped              []finding.Outcome
	DirectoriesProcessed int64
	ArtifactsProcessed   int64
}

func newReport() *Report {
	return &Report{
		Findings: finding.NewFindings(),
	}
}

func (r *Report) merge(other *Report) {
	if other == nil {
		return
	}
	r.Findings.Merge(other.Findings)
	r.Skipped = append(r.Skipped, other.Skipped...)
	r.DirectoriesProcessed += other.DirectoriesProcessed
	r.ArtifactsProcessed += other.ArtifactsProcessed
}

type Engine struct {
	catalog    *catalog.Catalog
	cfg        Config
	classifier *artifact.Classifier
	walker     *walk.Walker
	index      map[artifact.Kind][]finding.Matcher
}

func NewEngine(fs afero.Fs, c *catalog.Catalog, cfg Config, matchers ...finding.Matcher) *Engine {
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	return &Engine{
		catalog:    c,
		cfg:        cfg,
		classifier: artifact.NewClassifier(fs, c, cfg.Classifier),
		walker:     walk.New(fs, cfg.Walk),
		index:      newMatcherIndex(matchers),
	}
}

func newMatcherIndex(matchers []finding.Matcher) map[artifact.Kind][]finding.Matcher {
	matcherIndex := make(map[artifact.Kind][]finding.Matcher)
	for _, m := range matchers {
		for _, k := range m.ArtifactKinds() {
			matcherIndex[k] = append(matcherIndex[k], m)
			log.Debugf("adding matcher %s for %s", m.Type(), k)
		}
	}

	return matcherIndex
}

// Scan runs every phase in order. Within a phase, roots are scanned by up to Parallelism workers; each root
// produces its own partial report and the partials are merged in root order, so the result does not depend on
// scheduling. Failures on a single artifact or root never stop the scan, only cancellation of the context does.
// On cancellation the findings gathered so far are returned along with the context error.
func (e *Engine) Scan(ctx context.Context, phases []location.Phase) (*Report, error) {
	t := trackScan()
	defer t.setCompleted()

	report := newReport()
	for _, phase := range phases {
		log.Infof("scanning %s: %s", phase.Name, phase.Roots)

		partials := make([]*Report, len(phase.Roots))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.cfg.Parallelism)
		for i, root := range phase.Roots {
			i, root, phase := i, root, phase
			g.Go(func() error {
				partial, err := e.scanRoot(gctx, phase, root, t)
				partials[i] = partial
				return err
			})
		}
		err := g.Wait()

		for _, p := range partials {
			report.merge(p)
		}

		if err != nil {
			return report, err
		}
	}

	return report, nil
}

func (e *Engine) scanRoot(ctx context.Context, phase location.Phase, root string, t *tracker) (*Report, error) {
	partial := newReport()

	if phase.Mode == location.TreeMode {
		t.directories.increment()
		partial.DirectoriesProcessed++
		e.matchAll(ctx, e.classifier.ClassifyTree(root, phase.Origin), partial, t)
		return partial, ctx.Err()
	}

	err := e.walker.Walk(ctx, root, func(dir walk.Directory) error {
		t.directories.increment()
		partial.DirectoriesProcessed++
		e.matchAll(ctx, e.classify(phase, root, dir), partial, t)
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return partial, err
	default:
		log.Warnf("unable to scan %s root %q: %+v", phase.Name, root, err)
	}
	return partial, nil
}

func (e *Engine) classify(phase location.Phase, root string, dir walk.Directory) []artifact.Artifact {
	switch phase.Mode {
	case location.ProjectMode:
		return e.classifier.Classify(dir, phase.Origin)
	case location.VersionManagerMode:
		return append(e.classifier.Scripts(dir, phase.Origin), e.classifier.Trees(dir, phase.Origin)...)
	case location.CacheMode:
		return e.classifier.ClassifyCache(root, dir)
	default:
		log.Warnf("unsupported scan mode %s for phase %q", phase.Mode, phase.Name)
		return nil
	}
}

func (e *Engine) matchAll(ctx context.Context, artifacts []artifact.Artifact, partial *Report, t *tracker) {
	for _, a := range artifacts {
		matchers, ok := e.index[a.Kind]
		if !ok {
			log.Debugf("no matcher for artifact=%s", a)
			continue
		}
		for _, m := range matchers {
			outcome := e.match(ctx, m, a)

			t.artifacts.increment()
			partial.ArtifactsProcessed++
			partial.Findings.Add(outcome.Findings...)
			t.findings.add(int64(len(outcome.Findings)))
			logFindings(a, outcome.Findings)

			if outcome.Skipped() {
				log.Warnf("matcher %s failed for artifact=%s: %+v", m.Type(), a, outcome.Err)
				t.skipped.increment()
				partial.Skipped = append(partial.Skipped, outcome)
			}
		}
	}
}

func (e *Engine) match(ctx context.Context, m finding.Matcher, a artifact.Artifact) (outcome finding.Outcome) {
	outcome = finding.Outcome{
		Artifact: a,
		Matcher:  m.Type(),
	}

	defer func() {
		if r := recover(); r != nil {
			outcome.Findings = nil
			outcome.Err = fmt.Errorf("matcher panicked: %v", r)
		}
	}()

	findings, err := m.Match(ctx, e.catalog, a)
	outcome.Findings = finding.Dedupe(findings)
	outcome.Err = err
	return outcome
}

func logFindings(a artifact.Artifact, findings []finding.Finding) {
	if len(findings) > 0 {
		log.Debugf("found %d findings for artifact=%s", len(findings), a)
		for idx, f := range findings {
			var branch = "├──"
			if idx == len(findings)-1 {
				branch = "└──"
			}
			log.Debugf("  %s %s", branch, f)
		}
	}
}
