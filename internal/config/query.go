package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/anchore/npmsweep/npmsweep/query"
)

// queryConfig configures the jq executable used to read lockfiles and manifests.
type queryConfig struct {
	Path    string        `yaml:"path" json:"path" mapstructure:"path"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" mapstructure:"timeout"`
}

func (cfg queryConfig) loadDefaultValues(v *viper.Viper) {
	c := query.DefaultConfig()
	v.SetDefault("query.path", c.Path)
	v.SetDefault("query.timeout", c.Timeout)
}

func (cfg queryConfig) ToConfig() query.Config {
	return query.Config{
		Path:    cfg.Path,
		Timeout: cfg.Timeout,
	}
}
