// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Calendar CalendarConfig `toml:"calendar"`
	Notify   NotifyConfig   `toml:"notify"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "latte"
}

// ScheduleConfig holds grid window settings.
type ScheduleConfig struct {
	DayStartHour int `toml:"day_start_hour"` // e.g. 8
	DayEndHour   int `toml:"day_end_hour"`   // e.g. 18
	SlotMinutes  int `toml:"slot_minutes"`   // 15, 30 or 60
}

// CalendarConfig holds external calendar connection settings. The
// calendar is considered connected only when both FeedURL and Token
// are set; otherwise external events are skipped entirely.
type CalendarConfig struct {
	FeedURL      string `toml:"feed_url"`      // ICS collection endpoint
	SyncURL      string `toml:"sync_url"`      // mirror re-push trigger endpoint
	Token        string `toml:"token"`         // bearer token
	CacheDir     string `toml:"cache_dir"`     // disk cache for feed bodies
	SyncSchedule string `toml:"sync_schedule"` // cron spec for the sync daemon
}

// NotifyConfig holds customer notification settings.
type NotifyConfig struct {
	WebhookURL string `toml:"webhook_url"` // reschedule notification endpoint
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			DayStartHour: 8,
			DayEndHour:   18,
			SlotMinutes:  30,
		},
		Calendar: CalendarConfig{
			CacheDir:     defaultCacheDir(),
			SyncSchedule: "@every 15m",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "shopcal.db"
	}
	return filepath.Join(home, ".local", "share", "shopcal", "shopcal.db")
}

// defaultCacheDir returns the default feed cache directory.
func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shopcal-cache"
	}
	return filepath.Join(home, ".cache", "shopcal", "feed")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "shopcal", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Calendar.CacheDir = expandPath(cfg.Calendar.CacheDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SHOPCAL_FEED_URL"); v != "" {
		cfg.Calendar.FeedURL = v
	}
	if v := os.Getenv("SHOPCAL_SYNC_URL"); v != "" {
		cfg.Calendar.SyncURL = v
	}
	if v := os.Getenv("SHOPCAL_CALENDAR_TOKEN"); v != "" {
		cfg.Calendar.Token = v
	}
	if v := os.Getenv("SHOPCAL_WEBHOOK_URL"); v != "" {
		cfg.Notify.WebhookURL = v
	}
	if v := os.Getenv("SHOPCAL_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("SHOPCAL_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	s := c.Schedule
	if s.DayStartHour < 0 || s.DayStartHour > 23 {
		return fmt.Errorf("day_start_hour out of range: %d", s.DayStartHour)
	}
	if s.DayEndHour < 1 || s.DayEndHour > 24 {
		return fmt.Errorf("day_end_hour out of range: %d", s.DayEndHour)
	}
	if s.DayStartHour >= s.DayEndHour {
		return errors.New("day_start_hour must be before day_end_hour")
	}
	switch s.SlotMinutes {
	case 15, 30, 60:
	default:
		return fmt.Errorf("slot_minutes must be 15, 30 or 60, got %d", s.SlotMinutes)
	}

	// Feed URL and token come as a pair; a lone value is a misconfiguration
	// rather than a disconnected calendar.
	hasURL := c.Calendar.FeedURL != ""
	hasToken := c.Calendar.Token != ""
	if hasURL != hasToken {
		return errors.New("both feed_url and token must be set, or neither")
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// CalendarConnected returns true if the external calendar is configured.
func (c *Config) CalendarConnected() bool {
	return c.Calendar.FeedURL != "" && c.Calendar.Token != ""
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
