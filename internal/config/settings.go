package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pfrederiksen/bigmatches/internal/calendar"
	"github.com/pfrederiksen/bigmatches/internal/feed"
	"github.com/pfrederiksen/bigmatches/internal/logger"
)

const (
	EnvPrefix = "BIGMATCHES"

	DefaultSourcesPath = "sources.yaml"
	DefaultOutPath     = "big_matches.ics"
)

// Settings controls a single run.
type Settings struct {
	SourcesPath  string             `mapstructure:"sources"`
	OutPath      string             `mapstructure:"out"`
	CalendarName string             `mapstructure:"calendar_name"`
	Timeout      time.Duration      `mapstructure:"timeout"`
	UserAgent    string             `mapstructure:"user_agent"`
	Sort         calendar.SortOrder `mapstructure:"sort"`
	LogLevel     logger.Level       `mapstructure:"log_level"`
	Verbose      bool               `mapstructure:"verbose"`
}

// NewViper returns a viper instance with defaults and environment binding.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment take precedence over it.
func NewViper() *viper.Viper {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("sources", DefaultSourcesPath)
	v.SetDefault("out", DefaultOutPath)
	v.SetDefault("calendar_name", calendar.DefaultName)
	v.SetDefault("timeout", feed.Timeout)
	v.SetDefault("user_agent", feed.UserAgent)
	v.SetDefault("sort", string(calendar.SortBySource))
	v.SetDefault("log_level", string(logger.LevelInfo))
	v.SetDefault("verbose", false)

	return v
}

// LoadSettings resolves and validates settings from v.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	order, err := calendar.ParseSortOrder(string(s.Sort))
	if err != nil {
		return nil, err
	}
	s.Sort = order

	// --verbose is shorthand for debug logging.
	s.LogLevel = logger.ParseLevel(string(s.LogLevel))
	if s.Verbose {
		s.LogLevel = logger.LevelDebug
	}

	if s.Timeout <= 0 {
		return nil, fmt.Errorf("invalid timeout: %s (must be positive)", s.Timeout)
	}
	if s.SourcesPath == "" {
		return nil, fmt.Errorf("sources path cannot be empty")
	}
	if s.OutPath == "" {
		return nil, fmt.Errorf("output path cannot be empty")
	}

	return &s, nil
}
