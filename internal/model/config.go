package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default countdown targets. Literal instants carry their own offset so the
// persisted value is the same regardless of the viewer's local timezone.
const (
	DefaultBirthdayTarget   = "2028-11-08T00:00:00+05:30"
	DefaultDisciplineStart  = "2026-07-01T00:00:00+05:30"
	DefaultDisciplineTarget = "2027-01-01T00:00:00+05:30"
)

// BirthdayConfig configures the birthday countdown panel.
type BirthdayConfig struct {
	Label  string `mapstructure:"label" yaml:"label"`
	Target string `mapstructure:"target" yaml:"target"`
}

// DisciplineConfig configures the goal countdown and its progress bar.
type DisciplineConfig struct {
	Label  string `mapstructure:"label" yaml:"label"`
	Start  string `mapstructure:"start" yaml:"start"`
	Target string `mapstructure:"target" yaml:"target"`
}

// CountdownConfig holds both countdown targets.
type CountdownConfig struct {
	Birthday   BirthdayConfig   `mapstructure:"birthday" yaml:"birthday"`
	Discipline DisciplineConfig `mapstructure:"discipline" yaml:"discipline"`

	// SyncTargets lets a changed literal above replace the instant that was
	// persisted on first run. When false, the stored instant always wins.
	SyncTargets bool `mapstructure:"sync_targets" yaml:"sync_targets"`
}

// RefreshConfig holds the periodic refresh intervals.
type RefreshConfig struct {
	TickSec          int `mapstructure:"tick_sec" yaml:"tick_sec"`
	QuoteIntervalSec int `mapstructure:"quote_interval_sec" yaml:"quote_interval_sec"`
}

// WaterConfig holds the water tracker settings.
type WaterConfig struct {
	GoalML     int   `mapstructure:"goal_ml" yaml:"goal_ml"`
	QuickAddML []int `mapstructure:"quick_add_ml" yaml:"quick_add_ml"`
}

// DatabaseConfig points at the SQLite file backing the key-value store.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls where log output goes while the UI owns the terminal.
type LogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Countdown CountdownConfig `mapstructure:"countdown" yaml:"countdown"`
	Refresh   RefreshConfig   `mapstructure:"refresh" yaml:"refresh"`
	Water     WaterConfig     `mapstructure:"water" yaml:"water"`
	Display   DisplayConfig   `mapstructure:"display" yaml:"display"`
}

// TickInterval returns the countdown refresh period.
func (c *AppConfig) TickInterval() time.Duration {
	if c.Refresh.TickSec <= 0 {
		return time.Second
	}
	return time.Duration(c.Refresh.TickSec) * time.Second
}

// QuoteInterval returns the quote rotation period.
func (c *AppConfig) QuoteInterval() time.Duration {
	if c.Refresh.QuoteIntervalSec <= 0 {
		return 12 * time.Second
	}
	return time.Duration(c.Refresh.QuoteIntervalSec) * time.Second
}

// configDir returns ~/.config/deva, or the working directory when the home
// directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "deva")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/deva/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := configDir()
	return &AppConfig{
		Database: DatabaseConfig{Path: filepath.Join(dir, "deva.db")},
		Log:      LogConfig{File: filepath.Join(dir, "deva.log")},
		Countdown: CountdownConfig{
			Birthday: BirthdayConfig{
				Label:  "Birthday Countdown",
				Target: DefaultBirthdayTarget,
			},
			Discipline: DisciplineConfig{
				Label:  "Discipline Goal",
				Start:  DefaultDisciplineStart,
				Target: DefaultDisciplineTarget,
			},
			SyncTargets: true,
		},
		Refresh: RefreshConfig{
			TickSec:          1,
			QuoteIntervalSec: 12,
		},
		Water: WaterConfig{
			GoalML:     DefaultWaterGoal,
			QuickAddML: []int{250, 500},
		},
		Display: DisplayConfig{Theme: "default"},
	}
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return defaultAppConfig()
}

// setDefaults registers every default on v so missing keys resolve to
// sensible values.
func setDefaults(v *viper.Viper, d *AppConfig) {
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("countdown.birthday.label", d.Countdown.Birthday.Label)
	v.SetDefault("countdown.birthday.target", d.Countdown.Birthday.Target)
	v.SetDefault("countdown.discipline.label", d.Countdown.Discipline.Label)
	v.SetDefault("countdown.discipline.start", d.Countdown.Discipline.Start)
	v.SetDefault("countdown.discipline.target", d.Countdown.Discipline.Target)
	v.SetDefault("countdown.sync_targets", d.Countdown.SyncTargets)
	v.SetDefault("refresh.tick_sec", d.Refresh.TickSec)
	v.SetDefault("refresh.quote_interval_sec", d.Refresh.QuoteIntervalSec)
	v.SetDefault("water.goal_ml", d.Water.GoalML)
	v.SetDefault("water.quick_add_ml", d.Water.QuickAddML)
	v.SetDefault("display.theme", d.Display.Theme)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("DEVA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, defaultAppConfig())

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that every countdown literal parses as an RFC 3339 instant.
func (c *AppConfig) Validate() error {
	literals := map[string]string{
		"countdown.birthday.target":   c.Countdown.Birthday.Target,
		"countdown.discipline.start":  c.Countdown.Discipline.Start,
		"countdown.discipline.target": c.Countdown.Discipline.Target,
	}
	for key, value := range literals {
		if _, err := time.Parse(time.RFC3339, value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	if c.Water.GoalML <= 0 {
		return fmt.Errorf("water.goal_ml must be positive, got %d", c.Water.GoalML)
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("log", cfg.Log)
	v.Set("countdown", cfg.Countdown)
	v.Set("refresh", cfg.Refresh)
	v.Set("water", cfg.Water)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
