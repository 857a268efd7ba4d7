package config

import (
	"github.com/spf13/viper"

	"github.com/anchore/npmsweep/npmsweep/matcher/bunscript"
)

// matchConfig contains all matching-related configuration options available to the user via the application config.
type matchConfig struct {
	ScanScriptContent bool `yaml:"scan-script-content" json:"scan-script-content" mapstructure:"scan-script-content"` // look for catalog package names inside suspicious scripts
}

func (cfg matchConfig) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("match.scan-script-content", true)
}

func (cfg matchConfig) ToBunScriptConfig() bunscript.MatcherConfig {
	return bunscript.MatcherConfig{
		ScanContent: cfg.ScanScriptContent,
	}
}
