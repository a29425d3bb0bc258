// Package runconfig layers flags, environment variables, and a YAML file
// into one resolved Config for a run, grounded on the teacher's viper usage
// (internal/labelmutex/policy.go's v := viper.New(); v.SetConfigFile(...);
// v.ReadInConfig() idiom) generalized to also bind flags and environment
// variables, since this module's config is read once at CLI startup rather
// than queried ad hoc against a project's config.yaml.
package runconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/plantmatch/core/internal/types"
)

// Config is the fully resolved set of knobs a run needs, after flags, env
// vars, and the YAML file have been layered (flags > env > file > defaults).
type Config struct {
	RecipePath        string
	CapabilitiesDir   string
	CostsDir          string
	FindAll           bool
	GenerateStructured bool
	AttemptBudget     int
	Deadline          time.Duration
	Weights           types.Weights
	LogLevel          string
	LogFormat         string
	OTelExporter      string // "none", "stdout"
}

// defaults mirrors the zero-configuration behavior a bare `plantmatch run`
// invocation should have.
func defaults() Config {
	return Config{
		FindAll:            false,
		GenerateStructured: false,
		AttemptBudget:      200,
		Deadline:           0,
		Weights:            types.Weights{Energy: 1.0 / 3, Use: 1.0 / 3, CO2: 1.0 / 3},
		LogLevel:           "info",
		LogFormat:          "text",
		OTelExporter:       "none",
	}
}

// Load resolves a Config from an optional YAML file plus environment
// variables prefixed PLANTMATCH_, with cfg as the starting point (already
// populated from CLI flags by the caller) taking precedence over both.
func Load(yamlPath string, cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix("PLANTMATCH")
	v.AutomaticEnv()

	base := defaults()
	v.SetDefault("find_all", base.FindAll)
	v.SetDefault("generate_structured", base.GenerateStructured)
	v.SetDefault("attempt_budget", base.AttemptBudget)
	v.SetDefault("deadline", base.Deadline.String())
	v.SetDefault("weights.energy", base.Weights.Energy)
	v.SetDefault("weights.use", base.Weights.Use)
	v.SetDefault("weights.co2", base.Weights.CO2)
	v.SetDefault("log_level", base.LogLevel)
	v.SetDefault("log_format", base.LogFormat)
	v.SetDefault("otel_exporter", base.OTelExporter)

	if yamlPath != "" {
		if _, err := os.Stat(yamlPath); err == nil {
			v.SetConfigFile(yamlPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("runconfig: read %s: %w", yamlPath, err)
			}
		}
	}

	if cfg.RecipePath == "" {
		cfg.RecipePath = v.GetString("recipe_path")
	}
	if cfg.CapabilitiesDir == "" {
		cfg.CapabilitiesDir = v.GetString("capabilities_dir")
	}
	if cfg.CostsDir == "" {
		cfg.CostsDir = v.GetString("costs_dir")
	}
	if !cfg.FindAll {
		cfg.FindAll = v.GetBool("find_all")
	}
	if !cfg.GenerateStructured {
		cfg.GenerateStructured = v.GetBool("generate_structured")
	}
	if cfg.AttemptBudget == 0 {
		cfg.AttemptBudget = v.GetInt("attempt_budget")
	}
	if cfg.Deadline == 0 {
		cfg.Deadline = v.GetDuration("deadline")
	}
	if cfg.Weights == (types.Weights{}) {
		cfg.Weights = types.Weights{
			Energy: v.GetFloat64("weights.energy"),
			Use:    v.GetFloat64("weights.use"),
			CO2:    v.GetFloat64("weights.co2"),
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = v.GetString("log_level")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = v.GetString("log_format")
	}
	if cfg.OTelExporter == "" {
		cfg.OTelExporter = v.GetString("otel_exporter")
	}
	return nil
}
