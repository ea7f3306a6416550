// Package config loads recall settings from defaults, a YAML file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/conorfennell/recall/internal/validation"
)

// EnvPrefix prefixes every environment variable read by Load.
// RECALL_DATABASE__PATH maps to database.path.
const EnvPrefix = "RECALL_"

type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
	Reminder ReminderConfig `koanf:"reminder"`
	Study    StudyConfig    `koanf:"study"`
}

type DatabaseConfig struct {
	Path string `koanf:"path" validate:"required"`
}

type ServerConfig struct {
	Addr string `koanf:"addr" validate:"required,hostname_port"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

type ReminderConfig struct {
	Enabled bool          `koanf:"enabled"`
	Every   time.Duration `koanf:"every" validate:"min=1m"`
}

type StudyConfig struct {
	// MaxCards caps how many due cards a queue returns; zero means no cap.
	MaxCards int `koanf:"max_cards" validate:"gte=0"`
}

var defaults = map[string]any{
	"database.path":    "recall.db",
	"server.addr":      "127.0.0.1:8080",
	"log.level":        "info",
	"log.format":       "text",
	"reminder.enabled": false,
	"reminder.every":   "1h",
	"study.max_cards":  0,
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"db":         "database.path",
	"addr":       "server.addr",
	"log-level":  "log.level",
	"log-format": "log.format",
	"max-cards":  "study.max_cards",
	"remind":     "reminder.enabled",
}

// Load builds the configuration. configFile may be empty, in which case
// recall.yaml in the working directory is used when present. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	explicit := configFile != ""
	if !explicit {
		configFile = "recall.yaml"
	}
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("configuration file %s could not be read: %w", configFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithValue(flags, ".", k, flagKey), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	v, err := validation.New("koanf")
	if err != nil {
		return err
	}
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// flagKey renames known flags and drops the rest, so unrelated flags such as
// --config or --help never reach the configuration.
func flagKey(name, value string) (string, any) {
	key, ok := flagKeys[name]
	if !ok {
		return "", nil
	}
	return key, value
}
