// Package config loads service settings from YAML and SMARTEXIT_* variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SMARTEXIT_SERVER_ADDR.
const EnvPrefix = "SMARTEXIT"

// ErrConfigNotFound is returned when an explicit config file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Builder   BuilderConfig   `mapstructure:"builder"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Calendar  CalendarConfig  `mapstructure:"calendar"`
	Theme     ThemeConfig     `mapstructure:"theme"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig selects the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BuilderConfig tunes form saving.
type BuilderConfig struct {
	SaveTimeout time.Duration `mapstructure:"save_timeout"`
	SaveLatency time.Duration `mapstructure:"save_latency"`
}

// SchedulerConfig tunes interview booking.
type SchedulerConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	TimeZone string        `mapstructure:"time_zone"`
	HREmail  string        `mapstructure:"hr_email"`
}

// CalendarConfig points at the calendar provider. An empty token disables
// scheduling.
type CalendarConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	CalendarID string        `mapstructure:"calendar_id"`
	Token      string        `mapstructure:"token"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// ThemeConfig describes a static go-theme manifest for the preview page.
type ThemeConfig struct {
	Name        string            `mapstructure:"name"`
	Variant     string            `mapstructure:"variant"`
	Tokens      map[string]string `mapstructure:"tokens"`
	AssetPrefix string            `mapstructure:"asset_prefix"`
	Stylesheet  string            `mapstructure:"stylesheet"`
}

// themeVersion is stamped on manifests built from configuration.
const themeVersion = "1.0.0"

// Manifest converts the settings into a go-theme manifest. The stylesheet,
// when set, is registered under the "stylesheet" asset key.
func (t ThemeConfig) Manifest() *theme.Manifest {
	if strings.TrimSpace(t.Name) == "" {
		return nil
	}
	manifest := &theme.Manifest{
		Name:    t.Name,
		Version: themeVersion,
		Tokens:  t.Tokens,
	}
	if t.Stylesheet != "" {
		manifest.Assets = theme.Assets{
			Prefix: t.AssetPrefix,
			Files:  map[string]string{"stylesheet": t.Stylesheet},
		}
	}
	return manifest
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    45 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Builder: BuilderConfig{
			SaveTimeout: 10 * time.Second,
			SaveLatency: time.Second,
		},
		Scheduler: SchedulerConfig{
			Timeout:  30 * time.Second,
			TimeZone: "Local",
			HREmail:  "hr@company.com",
		},
		Calendar: CalendarConfig{
			BaseURL:    "https://www.googleapis.com/calendar/v3",
			CalendarID: "primary",
			Timeout:    30 * time.Second,
		},
		Theme: ThemeConfig{
			Name: "smartexit",
			Tokens: map[string]string{
				"color-primary": "#2563eb",
				"color-surface": "#f9fafb",
			},
		},
	}
}

// Load reads configFile when given and applies environment overrides on top
// of DefaultConfig. An empty configFile skips the file.
func Load(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	if configFile != "" {
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configFile)
		}
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override values that
// no file mentions.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("builder.save_timeout", cfg.Builder.SaveTimeout)
	v.SetDefault("builder.save_latency", cfg.Builder.SaveLatency)
	v.SetDefault("scheduler.timeout", cfg.Scheduler.Timeout)
	v.SetDefault("scheduler.time_zone", cfg.Scheduler.TimeZone)
	v.SetDefault("scheduler.hr_email", cfg.Scheduler.HREmail)
	v.SetDefault("calendar.base_url", cfg.Calendar.BaseURL)
	v.SetDefault("calendar.calendar_id", cfg.Calendar.CalendarID)
	v.SetDefault("calendar.token", cfg.Calendar.Token)
	v.SetDefault("calendar.timeout", cfg.Calendar.Timeout)
	v.SetDefault("theme.name", cfg.Theme.Name)
	v.SetDefault("theme.variant", cfg.Theme.Variant)
	v.SetDefault("theme.tokens", cfg.Theme.Tokens)
	v.SetDefault("theme.asset_prefix", cfg.Theme.AssetPrefix)
	v.SetDefault("theme.stylesheet", cfg.Theme.Stylesheet)
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("config: logging.format %q must be json or console", c.Logging.Format)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Scheduler.TimeZone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Scheduler.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("config: scheduler.time_zone: %w", err)
	}
	return loc, nil
}
