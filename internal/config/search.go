package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"

	"github.com/anchore/npmsweep/npmsweep/artifact"
	"github.com/anchore/npmsweep/npmsweep/location"
	"github.com/anchore/npmsweep/npmsweep/walk"
)

type search struct {
	Roots           []string `yaml:"roots" json:"roots" mapstructure:"roots"`                                  // directories searched for projects
	Exclusions      []string `yaml:"exclude" json:"exclude" mapstructure:"exclude"`                            // doublestar patterns of directories to skip
	RequireManifest bool     `yaml:"require-manifest" json:"require-manifest" mapstructure:"require-manifest"` // only consider lockfiles next to a package.json
}

func (cfg *search) parseConfigValues() error {
	for _, pattern := range cfg.Exclusions {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("bad exclude pattern %q", pattern)
		}
	}
	return nil
}

func (cfg search) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("search.roots", location.DefaultRoots())
	v.SetDefault("search.exclude", []string{})
	v.SetDefault("search.require-manifest", artifact.DefaultClassifierConfig().RequireManifest)
}

func (cfg search) ToWalkConfig() walk.Config {
	return walk.Config{
		Exclusions: cfg.Exclusions,
	}
}

func (cfg search) ToClassifierConfig() artifact.ClassifierConfig {
	return artifact.ClassifierConfig{
		RequireManifest: cfg.RequireManifest,
	}
}
