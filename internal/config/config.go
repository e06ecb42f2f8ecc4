package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ReminderConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Time     string   `mapstructure:"time"`     // "20:00"
	Workdays []string `mapstructure:"workdays"` // ["Mon","Tue","Wed","Thu","Fri"]
	Holidays []string `mapstructure:"holidays"` // ["2025-01-26", "2025-08-15"]
	Timezone string   `mapstructure:"timezone"` // e.g. "Asia/Kolkata" (optional)
}

type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	BaseURL       string             `mapstructure:"base_url"`
	Theme         string             `mapstructure:"theme"` // "light" or "dark"
	TrendDays     int                `mapstructure:"trend_days"`
	SummaryWeeks  int                `mapstructure:"summary_weeks"`
	Reminder      ReminderConfig     `mapstructure:"reminder"`
	Notifications NotificationConfig `mapstructure:"notifications"`
}

func Default() Config {
	return Config{
		BaseURL:      "https://api.zyphh.com",
		Theme:        "light",
		TrendDays:    30,
		SummaryWeeks: 4,
		Reminder: ReminderConfig{
			Enabled:  false,
			Time:     "20:00",
			Workdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			Holidays: []string{},
			Timezone: "",
		},
		Notifications: NotificationConfig{Enabled: false},
	}
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "mindly")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Load() (Config, error) {
	cfg := Default()

	path, err := xdgConfigPath()
	if err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	// defaults
	v.SetDefault("base_url", cfg.BaseURL)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("trend_days", cfg.TrendDays)
	v.SetDefault("summary_weeks", cfg.SummaryWeeks)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)
	v.SetDefault("reminder.workdays", cfg.Reminder.Workdays)
	v.SetDefault("reminder.holidays", cfg.Reminder.Holidays)
	v.SetDefault("reminder.timezone", cfg.Reminder.Timezone)
	v.SetDefault("notifications.enabled", cfg.Notifications.Enabled)

	_ = v.ReadInConfig() // ok if missing
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	// normalize workdays
	for i, d := range cfg.Reminder.Workdays {
		d = strings.TrimSpace(d)
		if len(d) >= 3 {
			cfg.Reminder.Workdays[i] = strings.Title(strings.ToLower(d[:3]))
		}
	}
	if cfg.Theme != "dark" {
		cfg.Theme = "light"
	}
	return cfg, nil
}

// SaveTheme persists the theme preference so it survives restarts.
func SaveTheme(theme string) error {
	path, err := xdgConfigPath()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	_ = v.ReadInConfig()
	v.Set("theme", theme)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("config write: %w", err)
	}
	return nil
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Reminder.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}
