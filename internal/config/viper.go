package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyRestDuration         = "rest.duration"
	keyRestMessage          = "rest.message"
	keyDefaultEstimate      = "work.default_estimate"
	keyNotificationsEnabled = "notifications.enabled"
	keyTaskStartCmd         = "hooks.task_start_cmd"
	keyDarkTheme            = "display.dark_theme"
	keyTwentyFourHour       = "display.24hr_clock"
	keyLogLevel             = "log.level"
	keyLogMaxSize           = "log.max_size_mb"
	keyLogMaxBackups        = "log.max_backups"
)

// WithViperConfig returns an Option that loads configuration from Viper. A
// missing config file is created with the default values.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
			return errWriteConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and any values set before the
// config file is read, such as first-run prompt answers.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyRestDuration, "5m")
	v.SetDefault(keyRestMessage, "Break is over, time to decide what is next")
	v.SetDefault(keyDefaultEstimate, "30m")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyTaskStartCmd, "")
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogMaxSize, 5)
	v.SetDefault(keyLogMaxBackups, 3)

	if c.Rest.Duration > 0 {
		v.SetDefault(keyRestDuration, c.Rest.Duration.String())
	}

	if c.Work.DefaultEstimate > 0 {
		v.SetDefault(keyDefaultEstimate, c.Work.DefaultEstimate.String())
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	system := c.System

	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	c.System = system
	c.System.ConfigPath = v.ConfigFileUsed()

	return nil
}

// ParseDuration accepts duration strings, or a bare number of minutes.
func ParseDuration(s string) (time.Duration, error) {
	// Try parsing as duration string first
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	// Try parsing as minutes in case duration unit is absent
	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, errInvalidDurationFormat.Fmt(s)
	}

	return mins, nil
}
