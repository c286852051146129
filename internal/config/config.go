// Package config loads mealbook settings from an optional config file,
// a .env file, and MEALBOOK_* environment variables, using viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Log     LogConfig     `mapstructure:"log"`
	Planner PlannerConfig `mapstructure:"planner"`
	Query   QueryConfig   `mapstructure:"query"`
	Display DisplayConfig `mapstructure:"display"`
}

// DataConfig selects where the snapshot lives.
type DataConfig struct {
	File    string `mapstructure:"file"`
	Backend string `mapstructure:"backend"` // json | yaml | sqlite | memory, empty = by extension
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `mapstructure:"level"` // off | normal | verbose
	File  string `mapstructure:"file"`  // "stderr" logs to the console
}

// PlannerConfig holds shopping list defaults.
type PlannerConfig struct {
	ShoppingDays int `mapstructure:"shopping_days"`
}

// QueryConfig holds query defaults.
type QueryConfig struct {
	TopRatedLimit int `mapstructure:"top_rated_limit"`
}

// DisplayConfig controls terminal output.
type DisplayConfig struct {
	Color bool `mapstructure:"color"`
}

// EnvPrefix is the prefix of environment overrides, e.g. MEALBOOK_DATA_FILE.
const EnvPrefix = "MEALBOOK"

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.file", "recipes_data.json")
	v.SetDefault("data.backend", "")
	v.SetDefault("log.level", "normal")
	v.SetDefault("log.file", ".mealbook/mealbook.log")
	v.SetDefault("planner.shopping_days", 7)
	v.SetDefault("query.top_rated_limit", 5)
	v.SetDefault("display.color", true)
}

// Load reads configuration. path may be empty, in which case a
// mealbook.{yaml,json,toml} in the working directory is used if present.
// A .env file in the working directory is loaded first when it exists.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mealbook")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Data.File == "" {
		c.Data.File = "recipes_data.json"
	}
	if c.Planner.ShoppingDays <= 0 {
		c.Planner.ShoppingDays = 7
	}
	if c.Query.TopRatedLimit <= 0 {
		c.Query.TopRatedLimit = 5
	}
}
