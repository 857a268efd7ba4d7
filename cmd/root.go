package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/npmsweep/internal"
	"github.com/anchore/npmsweep/internal/bus"
	"github.com/anchore/npmsweep/internal/config"
	"github.com/anchore/npmsweep/internal/log"
	"github.com/anchore/npmsweep/internal/stringutil"
	"github.com/anchore/npmsweep/internal/ui"
	"github.com/anchore/npmsweep/npmsweep"
	"github.com/anchore/npmsweep/npmsweep/event"
	"github.com/anchore/npmsweep/npmsweep/event/monitor"
	"github.com/anchore/npmsweep/npmsweep/location"
	"github.com/anchore/npmsweep/npmsweep/matcher"
	"github.com/anchore/npmsweep/npmsweep/presenter"
	"github.com/anchore/npmsweep/npmsweep/presenter/models"
	"github.com/anchore/npmsweep/npmsweep/query"
	"github.com/anchore/npmsweep/npmsweep/sweeperr"
)

var persistentOpts = config.CliOnlyOptions{}

var rootCmd = &cobra.Command{
	Use:   fmt.Sprintf("%s [flags]", internal.ApplicationName),
	Short: "Find compromised npm packages on this machine",
	Long: stringutil.Tprintf(`Find packages from a list of known-compromised npm packages in lockfiles, installed package trees,
the global install root, nvm installs and the npm cache.

Examples:
    {{.appName}}                                       scan the home directory with the default catalog
    {{.appName}} --catalog packages.csv --root ~/src   scan one directory with a specific catalog
    {{.appName}} -o table --file ""                    print a table to the terminal instead of writing a report
`, map[string]interface{}{
		"appName": internal.ApplicationName,
	}),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if appConfig.Dev.ProfileCPU && appConfig.Dev.ProfileMem {
			return fmt.Errorf("cannot profile CPU and memory simultaneously")
		}

		if appConfig.Dev.ProfileCPU {
			defer profile.Start(profile.CPUProfile).Stop()
		} else if appConfig.Dev.ProfileMem {
			defer profile.Start(profile.MemProfile).Stop()
		}

		applyNegatedFlags(cmd.Flags(), appConfig)

		return runScan()
	},
}

// negatedFlags turn off scan phases that are enabled by default.
var negatedFlags = map[string]func(*config.Application){
	"no-global": func(cfg *config.Application) { cfg.Phases.Global = false },
	"no-nvm":    func(cfg *config.Application) { cfg.Phases.Nvm = false },
	"no-cache":  func(cfg *config.Application) { cfg.Phases.Cache = false },
}

func init() {
	setGlobalCliOptions()
	setRootFlags(rootCmd.Flags())
}

func setGlobalCliOptions() {
	rootCmd.PersistentFlags().StringVarP(&persistentOpts.ConfigPath, "config", "c", "", "application config file")

	flag := "quiet"
	rootCmd.PersistentFlags().BoolP(
		flag, "q", false,
		"suppress all logging output",
	)
	if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		fmt.Printf("unable to bind flag '%s': %+v", flag, err)
		os.Exit(1)
	}

	rootCmd.PersistentFlags().CountVarP(&persistentOpts.Verbosity, "verbose", "v", "increase verbosity (-v = info, -vv = debug, -vvv = trace)")
}

func setRootFlags(flags *pflag.FlagSet) {
	flags.StringP(
		"output", "o", presenter.JSONPresenter.String(),
		fmt.Sprintf("report output format, options=%v", presenter.Options),
	)

	flags.StringP(
		"file", "", internal.DefaultReportFile,
		"file to write the report to (an empty value writes to stdout)",
	)

	flags.StringP(
		"template", "t", "",
		"specify the path to a Go template file (requires 'template' output to be selected)",
	)

	flags.StringP(
		"catalog", "", internal.DefaultCatalogFile,
		"CSV file listing the compromised packages (columns: Package, Version)",
	)

	flags.StringArrayP(
		"root", "", location.DefaultRoots(),
		"directory to search for projects (can be given multiple times)",
	)

	flags.StringArrayP(
		"exclude", "", nil,
		"exclude directories matching the given glob, e.g. '**/.git' (can be given multiple times)",
	)

	flags.BoolP(
		"fail-on-findings", "", false,
		"exit with a non-zero code when any compromised package is found",
	)

	flags.IntP(
		"parallelism", "", matcher.DefaultConfig().Parallelism,
		"number of search roots scanned at the same time",
	)

	flags.BoolP("no-global", "", false, "do not scan the global install root (npm root -g)")
	flags.BoolP("no-nvm", "", false, "do not scan node versions installed by nvm")
	flags.BoolP("no-cache", "", false, "do not scan the npm cache")
}

func bindRootConfigOptions(flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"output":               "output",
		"file":                 "file",
		"output-template-file": "template",
		"catalog.path":         "catalog",
		"search.roots":         "root",
		"search.exclude":       "exclude",
		"fail-on-findings":     "fail-on-findings",
		"parallelism":          "parallelism",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

func applyNegatedFlags(flags *pflag.FlagSet, cfg *config.Application) {
	for flag, apply := range negatedFlags {
		if on, err := flags.GetBool(flag); err == nil && on {
			apply(cfg)
		}
	}
}

func runScan() error {
	reporter, closer, err := reportWriter()
	defer func() {
		if err := closer(); err != nil {
			log.Warnf("unable to write to report destination: %+v", err)
		}
	}()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return eventLoop(
		startWorker(ctx),
		setupSignals(),
		eventSubscription,
		cancel,
		ui.Select(appConfig.Quiet, reporter),
	)
}

func startWorker(ctx context.Context) <-chan error {
	errs := make(chan error)
	go func() {
		defer close(errs)

		fs := afero.NewOsFs()

		c, err := npmsweep.LoadCatalog(fs, appConfig.Catalog.Path)
		if err != nil {
			errs <- fmt.Errorf("failed to load compromised package catalog: %w", err)
			return
		}

		tool := query.NewJQ(appConfig.Query.ToConfig())
		phases := npmsweep.ResolvePhases(ctx, fs, appConfig.Npm.ToRunner(), appConfig.ToLocationConfig())

		report, err := npmsweep.Scan(ctx, fs, c, tool, phases, appConfig.ToMatcherConfig())
		if err != nil {
			errs <- fmt.Errorf("scan did not complete: %w", err)
			return
		}

		doc := models.NewDocument(report, appConfig)
		pres := presenter.GetPresenter(appConfig.PresenterOpt, presenter.Config{
			TemplateFilePath: appConfig.OutputTemplateFile,
			Color:            useColor(),
		}, doc)
		if pres == nil {
			errs <- fmt.Errorf("no presenter available for output format %q", appConfig.Output)
			return
		}

		bus.Publish(partybus.Event{
			Type:  event.ScanFinished,
			Value: pres,
			Source: monitor.Summary{
				DirectoriesProcessed: report.DirectoriesProcessed,
				ArtifactsSkipped:     len(report.Skipped),
				Findings:             report.Findings.Len(),
				ReportLocation:       strings.TrimSpace(appConfig.File),
			},
		})

		if appConfig.FailOnFindings && report.Findings.Len() > 0 {
			errs <- sweeperr.ErrFindingsDiscovered
		}
	}()
	return errs
}
