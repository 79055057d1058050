package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	General GeneralConfig `toml:"general"`
	Catalog CatalogConfig `toml:"catalog"`
	Seed    SeedConfig    `toml:"seed"`
	Form    FormConfig    `toml:"form"`
}

type GeneralConfig struct {
	DBPath   string `toml:"db_path"`
	LogLevel string `toml:"log_level"`
}

// CatalogConfig points at a YAML reference catalog. Empty uses the built-in one.
type CatalogConfig struct {
	Path string `toml:"path"`
}

type SeedConfig struct {
	OnOpen bool   `toml:"on_open"`
	Path   string `toml:"path"`
}

type FormConfig struct {
	SchemaCacheTTL Duration `toml:"schema_cache_ttl"`
	MinOdds        float64  `toml:"min_odds"`
}

// Duration wraps time.Duration for TOML unmarshaling.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Level parses general.log_level, falling back to info for unknown values.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.General.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			DBPath:   "./data/bets.db",
			LogLevel: "info",
		},
		Seed: SeedConfig{
			OnOpen: true,
		},
		Form: FormConfig{
			SchemaCacheTTL: Duration{10 * time.Minute},
			MinOdds:        1.0,
		},
	}
}
