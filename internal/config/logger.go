package config

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the zap logger the analyzers share, driven by the
// "logging.level" and "logging.format" keys. Level accepts the usual
// zap names (debug, info, warn, error); format is "json" for machine
// consumption or "console" for reading a batch run by eye.
func NewLogger(v *viper.Viper) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(v.GetString("logging.level"))); err != nil {
		return nil, fmt.Errorf("logging.level %q: %w", v.GetString("logging.level"), err)
	}

	var cfg zap.Config
	switch format := v.GetString("logging.format"); format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json", "":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("logging.format %q: want json or console", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}
