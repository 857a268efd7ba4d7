package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/anchore/npmsweep/npmsweep/location"
)

// phases toggles the scan phases that follow the project search.
type phases struct {
	Global bool   `yaml:"global" json:"global" mapstructure:"global"`    // scan the root reported by `npm root -g`
	Nvm    bool   `yaml:"nvm" json:"nvm" mapstructure:"nvm"`             // scan node versions installed by nvm
	Cache  bool   `yaml:"cache" json:"cache" mapstructure:"cache"`       // scan the npm cache for tarballs
	NvmDir string `yaml:"nvm-dir" json:"nvm-dir" mapstructure:"nvm-dir"` // override $NVM_DIR
}

func (cfg phases) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("phases.global", true)
	v.SetDefault("phases.nvm", true)
	v.SetDefault("phases.cache", true)
	v.SetDefault("phases.nvm-dir", "")
}

// npm is the npm executable used to discover the global install root and the cache.
type npm struct {
	Path    string        `yaml:"path" json:"path" mapstructure:"path"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" mapstructure:"timeout"`
}

func (cfg npm) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("npm.path", "npm")
	v.SetDefault("npm.timeout", 10*time.Second)
}

func (cfg npm) ToRunner() location.CommandRunner {
	return location.CommandRunner{
		Timeout: cfg.Timeout,
	}
}
