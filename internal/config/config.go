// Package config loads analyzer settings from files, environment, and
// defaults via Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the materialized analyzer configuration.
type Config struct {
	Analysis struct {
		Radius              float64  `mapstructure:"radius"`
		BottleneckThreshold int      `mapstructure:"bottleneck_threshold"`
		MaxInputLen         int      `mapstructure:"max_input_len"`
		FuzzyCutoff         float64  `mapstructure:"fuzzy_cutoff"`
		CategoryPriority    []string `mapstructure:"category_priority"`
	} `mapstructure:"analysis"`

	Router struct {
		PortsPerCard int `mapstructure:"ports_per_card"`
	} `mapstructure:"router"`

	Facility struct {
		LayoutPath string `mapstructure:"layout_path"`
	} `mapstructure:"facility"`

	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logging"`
}

// NewViper builds a Viper instance with defaults applied and the
// DWGANALYZE_* environment overlay active. Pass a config file path to
// merge a file on top; an empty path skips the file entirely.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("analysis.radius", 50.0)
	v.SetDefault("analysis.bottleneck_threshold", 5)
	v.SetDefault("analysis.max_input_len", 64*1024)
	v.SetDefault("analysis.fuzzy_cutoff", 0.85)
	v.SetDefault("analysis.category_priority",
		[]string{"network", "server", "broadcast", "display", "control"})
	v.SetDefault("router.ports_per_card", 18)
	v.SetDefault("facility.layout_path", "")
	v.SetDefault("database.path", "cabledb.sqlite")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetEnvPrefix("DWGANALYZE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}
	return v, nil
}

// Load reads the configuration at path (or pure defaults when path is
// empty) into a Config.
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper materializes and validates a Config from an already-built
// Viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Analysis.Radius <= 0 {
		return nil, fmt.Errorf("analysis.radius must be positive, got %v", cfg.Analysis.Radius)
	}
	if cfg.Router.PortsPerCard <= 0 {
		return nil, fmt.Errorf("router.ports_per_card must be positive, got %d", cfg.Router.PortsPerCard)
	}
	return &cfg, nil
}
