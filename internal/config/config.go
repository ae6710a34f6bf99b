// Package config loads ~/.config/forja/config.toml, an optional .env file
// and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/misterclayt0n/forja/internal/models"
	"github.com/misterclayt0n/forja/internal/progression"
	"github.com/misterclayt0n/forja/internal/utils"
	"github.com/misterclayt0n/forja/internal/warmup"
)

const devModeConnectionString = "file:./local.db"

type Config struct {
	DB          DBConfig          `toml:"database"`
	Log         LogConfig         `toml:"log"`
	Training    TrainingConfig    `toml:"training"`
	Progression ProgressionConfig `toml:"progression"`
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string"` // The entire DB connection string.
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
	JSON  bool   `toml:"json"`
}

type TrainingConfig struct {
	Policy  string `toml:"policy"`
	Warmups string `toml:"warmups"`
	// lbs or kg. With kg, bar, plates and increments left unset in the file
	// default to metric values.
	Unit      string    `toml:"unit"`
	BarWeight float64   `toml:"bar_weight"`
	Plates    []float64 `toml:"plates"`
	Timezone  string    `toml:"timezone"`
	// Routine names trained in alternation; the next one is suggested.
	Rotation []string `toml:"rotation"`
	// Defaults to current_session.toml next to the config file.
	SessionFile string `toml:"session_file"`
}

type ProgressionConfig struct {
	DefaultIncrement float64            `toml:"default_increment"`
	Increments       map[string]float64 `toml:"increments"`
}

func Default() (*Config, error) {
	dir, err := utils.ConfigDir()
	if err != nil {
		return nil, err
	}
	inc := progression.DefaultIncrements()
	return &Config{
		DB:  DBConfig{ConnectionString: "file:" + filepath.Join(dir, "forja.db")},
		Log: LogConfig{Level: "warn"},
		Training: TrainingConfig{
			Policy:      models.PolicyStrictProgram,
			Warmups:     models.WarmupsDisplay,
			Unit:        models.UnitLbs,
			Rotation:    []string{"StrongLifts 5×5 A", "StrongLifts 5×5 B"},
			BarWeight:   warmup.DefaultBarWeight,
			Plates:      append([]float64(nil), warmup.StandardPlates...),
			SessionFile: filepath.Join(dir, "current_session.toml"),
		},
		Progression: ProgressionConfig{
			DefaultIncrement: inc.Default,
			Increments:       inc.Patterns,
		},
	}, nil
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := utils.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the config file at the default path. A missing file
// leaves the defaults in place.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("Failed to read config %s: %w", path, err)
	}
	if cfg.Training.Unit == models.UnitKg {
		cfg.applyMetricDefaults(md)
	}

	// .env is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("Failed to load .env: %w", err)
	}
	cfg.applyEnv()

	if cfg.DB.ConnectionString, err = expandHome(cfg.DB.ConnectionString); err != nil {
		return nil, err
	}
	if cfg.Training.SessionFile, err = expandHome(cfg.Training.SessionFile); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyMetricDefaults swaps the pound defaults for kilogram ones wherever
// the file did not set a value.
func (c *Config) applyMetricDefaults(md toml.MetaData) {
	if !md.IsDefined("training", "bar_weight") {
		c.Training.BarWeight = warmup.MetricBarWeight
	}
	if !md.IsDefined("training", "plates") {
		c.Training.Plates = append([]float64(nil), warmup.MetricPlates...)
	}
	inc := progression.MetricIncrements()
	if !md.IsDefined("progression", "default_increment") {
		c.Progression.DefaultIncrement = inc.Default
	}
	if !md.IsDefined("progression", "increments") {
		c.Progression.Increments = inc.Patterns
	}
}

func (c *Config) applyEnv() {
	if url := os.Getenv("TURSO_DATABASE_URL"); url != "" {
		c.DB.ConnectionString = url
		if token := os.Getenv("TURSO_AUTH_TOKEN"); token != "" && !strings.Contains(url, "authToken=") {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			c.DB.ConnectionString = url + sep + "authToken=" + token
		}
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		c.DB.ConnectionString = devModeConnectionString
	}

	if level := os.Getenv("FORJA_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

func (c *Config) Validate() error {
	switch c.Training.Policy {
	case models.PolicyStrictProgram, models.PolicyFreeform:
	default:
		return fmt.Errorf("invalid training.policy %q: want %s or %s",
			c.Training.Policy, models.PolicyStrictProgram, models.PolicyFreeform)
	}

	switch c.Training.Warmups {
	case models.WarmupsDisplay, models.WarmupsMaterialized:
	default:
		return fmt.Errorf("invalid training.warmups %q: want %s or %s",
			c.Training.Warmups, models.WarmupsDisplay, models.WarmupsMaterialized)
	}

	switch c.Training.Unit {
	case models.UnitLbs, models.UnitKg:
	default:
		return fmt.Errorf("invalid training.unit %q: want %s or %s",
			c.Training.Unit, models.UnitLbs, models.UnitKg)
	}

	if c.Training.BarWeight < 0 {
		return fmt.Errorf("training.bar_weight cannot be negative")
	}
	if len(c.Training.Plates) == 0 {
		return fmt.Errorf("training.plates cannot be empty")
	}
	for _, p := range c.Training.Plates {
		if p <= 0 {
			return fmt.Errorf("training.plates must be positive, got %v", p)
		}
	}

	if c.Progression.DefaultIncrement < 0 {
		return fmt.Errorf("progression.default_increment cannot be negative")
	}
	for pattern, inc := range c.Progression.Increments {
		if inc < 0 {
			return fmt.Errorf("progression.increments.%s cannot be negative", pattern)
		}
	}

	if c.DB.ConnectionString == "" {
		return fmt.Errorf("database.connection_string is empty")
	}
	return nil
}

func (c *Config) Increments() progression.Increments {
	return progression.Increments{
		Default:  c.Progression.DefaultIncrement,
		Patterns: c.Progression.Increments,
	}
}

// expandHome resolves a leading ~ in a plain path or a file: URL.
func expandHome(s string) (string, error) {
	prefix := ""
	rest := s
	if strings.HasPrefix(rest, "file:") {
		prefix, rest = "file:", strings.TrimPrefix(rest, "file:")
	}
	if rest != "~" && !strings.HasPrefix(rest, "~/") {
		return s, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return prefix + filepath.Join(home, strings.TrimPrefix(rest, "~")), nil
}
