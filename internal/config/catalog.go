package config

import (
	"github.com/spf13/viper"

	"github.com/anchore/npmsweep/internal"
)

type catalogConfig struct {
	Path string `yaml:"path" json:"path" mapstructure:"path"` // the CSV listing compromised packages
}

func (cfg catalogConfig) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("catalog.path", internal.DefaultCatalogFile)
}
