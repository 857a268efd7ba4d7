package config

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/anchore/npmsweep/internal"
	"github.com/anchore/npmsweep/npmsweep/location"
	"github.com/anchore/npmsweep/npmsweep/matcher"
	"github.com/anchore/npmsweep/npmsweep/presenter"
)

var ErrApplicationConfigNotFound = fmt.Errorf("application config not found")

type defaultValueLoader interface {
	loadDefaultValues(*viper.Viper)
}

type parser interface {
	parseConfigValues() error
}

type CliOnlyOptions struct {
	ConfigPath string
	Verbosity  int
}

type Application struct {
	ConfigPath         string           `yaml:",omitempty" json:"configPath"` // the location where the application config was read from (either from -c or discovered while loading)
	Verbosity          uint             `yaml:"verbosity,omitempty" json:"verbosity" mapstructure:"verbosity"`
	Output             string           `yaml:"output" json:"output" mapstructure:"output"`                                           // -o, the Presenter hint string to use for report formatting
	PresenterOpt       presenter.Option `yaml:"-" json:"-"`                                                                           // the parsed -o value
	File               string           `yaml:"file" json:"file" mapstructure:"file"`                                                 // --file, the file to write report output to
	OutputTemplateFile string           `yaml:"output-template-file" json:"output-template-file" mapstructure:"output-template-file"` // -t, the template file to use for formatting the final report
	Quiet              bool             `yaml:"quiet" json:"quiet" mapstructure:"quiet"`                                              // -q, indicates to not show any status output to stderr
	FailOnFindings     bool             `yaml:"fail-on-findings" json:"fail-on-findings" mapstructure:"fail-on-findings"`             // exit non-zero when anything is found
	Parallelism        int              `yaml:"parallelism" json:"parallelism" mapstructure:"parallelism"`                            // number of search roots scanned at the same time
	CliOptions         CliOnlyOptions   `yaml:"-" json:"-"`
	Catalog            catalogConfig    `yaml:"catalog" json:"catalog" mapstructure:"catalog"`
	Search             search           `yaml:"search" json:"search" mapstructure:"search"`
	Phases             phases           `yaml:"phases" json:"phases" mapstructure:"phases"`
	Match              matchConfig      `yaml:"match" json:"match" mapstructure:"match"`
	Query              queryConfig      `yaml:"query" json:"query" mapstructure:"query"`
	Npm                npm              `yaml:"npm" json:"npm" mapstructure:"npm"`
	Log                logging          `yaml:"log" json:"log" mapstructure:"log"`
	Dev                development      `yaml:"dev" json:"dev" mapstructure:"dev"`
}

func newApplicationConfig(v *viper.Viper, cliOpts CliOnlyOptions) *Application {
	config := &Application{
		CliOptions: cliOpts,
	}
	config.loadDefaultValues(v)

	return config
}

func LoadApplicationConfig(v *viper.Viper, cliOpts CliOnlyOptions) (*Application, error) {
	// the user may not have a config, and this is OK, we can use the default config + default cobra cli values instead
	config := newApplicationConfig(v, cliOpts)

	if err := readConfig(v, cliOpts.ConfigPath); err != nil && !errors.Is(err, ErrApplicationConfigNotFound) {
		return nil, err
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	config.ConfigPath = v.ConfigFileUsed()

	if err := config.parseConfigValues(); err != nil {
		return nil, fmt.Errorf("invalid application config: %w", err)
	}

	return config, nil
}

// init loads the default configuration values into the viper instance (before the config values are read and parsed).
func (cfg Application) loadDefaultValues(v *viper.Viper) {
	// set the default values for primitive fields in this struct
	v.SetDefault("output", presenter.JSONPresenter.String())
	v.SetDefault("file", internal.DefaultReportFile)
	v.SetDefault("parallelism", matcher.DefaultConfig().Parallelism)

	// for each field in the configuration struct, see if the field implements the defaultValueLoader interface and invoke it if it does
	value := reflect.ValueOf(cfg)
	for i := 0; i < value.NumField(); i++ {
		// note: the defaultValueLoader method receiver is NOT a pointer receiver.
		if loadable, ok := value.Field(i).Interface().(defaultValueLoader); ok {
			// the field implements defaultValueLoader, call it
			loadable.loadDefaultValues(v)
		}
	}
}

func (cfg *Application) parseConfigValues() error {
	// parse application config options
	for _, optionFn := range []func() error{
		cfg.parseLogLevelOption,
		cfg.parsePresenterOption,
		cfg.parseParallelismOption,
	} {
		if err := optionFn(); err != nil {
			return err
		}
	}

	// parse nested config options
	// for each field in the configuration struct, see if the field implements the parser interface
	// note: the app config is a pointer, so we need to grab the elements explicitly (to traverse the address)
	value := reflect.ValueOf(cfg).Elem()
	for i := 0; i < value.NumField(); i++ {
		// note: since the interface method of parser is a pointer receiver we need to get the value of the field as a pointer.
		if parsable, ok := value.Field(i).Addr().Interface().(parser); ok {
			// the field implements parser, call it
			if err := parsable.parseConfigValues(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (cfg *Application) parseLogLevelOption() error {
	switch {
	case cfg.Quiet:
		// TODO: quiet trumps all other logging options, including logging to a file. Console logging should be
		// silenced on its own.
		cfg.Log.LevelOpt = logrus.PanicLevel

	case cfg.CliOptions.Verbosity > 0:
		switch v := cfg.CliOptions.Verbosity; {
		case v == 1:
			cfg.Log.LevelOpt = logrus.InfoLevel
		case v == 2:
			cfg.Log.LevelOpt = logrus.DebugLevel
		default:
			cfg.Log.LevelOpt = logrus.TraceLevel
		}
		cfg.Verbosity = uint(cfg.CliOptions.Verbosity)

	case cfg.Log.Level != "":
		lvl, err := logrus.ParseLevel(strings.ToLower(cfg.Log.Level))
		if err != nil {
			return fmt.Errorf("bad log level value %q: %w", cfg.Log.Level, err)
		}
		cfg.Log.LevelOpt = lvl

		if lvl >= logrus.InfoLevel {
			cfg.Verbosity = 1
		}
	default:
		cfg.Log.LevelOpt = logrus.WarnLevel
	}

	return nil
}

func (cfg *Application) parsePresenterOption() error {
	option := presenter.ParseOption(cfg.Output)
	if option == presenter.UnknownPresenter {
		return fmt.Errorf("bad --output value %q", cfg.Output)
	}
	if option == presenter.TemplatePresenter && cfg.OutputTemplateFile == "" {
		return fmt.Errorf("must specify path to template file when using %q output format", presenter.TemplatePresenter)
	}
	cfg.PresenterOpt = option
	return nil
}

func (cfg *Application) parseParallelismOption() error {
	if cfg.Parallelism < 1 {
		return fmt.Errorf("bad --parallelism value %d: must be at least 1", cfg.Parallelism)
	}
	return nil
}

// ToLocationConfig describes where to look, as configured by the user.
func (cfg Application) ToLocationConfig() location.Config {
	return location.Config{
		Roots:   cfg.Search.Roots,
		Global:  cfg.Phases.Global,
		Nvm:     cfg.Phases.Nvm,
		NvmDir:  cfg.Phases.NvmDir,
		Cache:   cfg.Phases.Cache,
		NpmPath: cfg.Npm.Path,
	}
}

func (cfg Application) ToMatcherConfig() matcher.Config {
	return matcher.Config{
		Parallelism: cfg.Parallelism,
		Walk:        cfg.Search.ToWalkConfig(),
		Classifier:  cfg.Search.ToClassifierConfig(),
		BunScript:   cfg.Match.ToBunScriptConfig(),
	}
}

func (cfg Application) String() string {
	// yaml is pretty human friendly (at least when compared to json)
	appCfgStr, err := yaml.Marshal(&cfg)

	if err != nil {
		return err.Error()
	}

	return string(appCfgStr)
}

// readConfig attempts to read the given config path from disk or discover an alternate store location
func readConfig(v *viper.Viper, configPath string) error {
	var err error
	v.AutomaticEnv()
	v.SetEnvPrefix(internal.ApplicationName)
	// allow for nested options to be specified via environment variables
	// e.g. pod.context = APPNAME_POD_CONTEXT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// use explicitly the given user config
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read application config=%q : %w", configPath, err)
		}
		// don't fall through to other options if the config path was explicitly provided
		return nil
	}

	// start searching for valid configs in order...

	// 1. look for .<appname>.yaml (in the current directory)
	v.AddConfigPath(".")
	v.SetConfigName("." + internal.ApplicationName)
	if err = v.ReadInConfig(); err == nil {
		return nil
	} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
	}

	// 2. look for .<appname>/config.yaml (in the current directory)
	v.AddConfigPath("." + internal.ApplicationName)
	v.SetConfigName("config")
	if err = v.ReadInConfig(); err == nil {
		return nil
	} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
	}

	// 3. look for ~/.<appname>.yaml
	home, err := homedir.Dir()
	if err == nil {
		v.AddConfigPath(home)
		v.SetConfigName("." + internal.ApplicationName)
		if err = v.ReadInConfig(); err == nil {
			return nil
		} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
		}
	}

	// 4. look for <appname>/config.yaml in xdg locations (starting with xdg home config dir, then moving upwards)
	v.AddConfigPath(path.Join(xdg.ConfigHome, internal.ApplicationName))
	for _, dir := range xdg.ConfigDirs {
		v.AddConfigPath(path.Join(dir, internal.ApplicationName))
	}
	v.SetConfigName("config")
	if err = v.ReadInConfig(); err == nil {
		return nil
	} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
	}

	return ErrApplicationConfigNotFound
}
