package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

type (
	// Config holds all configuration settings
	Config struct {
		Rest          RestConfig         `mapstructure:"rest"`
		Work          WorkConfig         `mapstructure:"work"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Hooks         HooksConfig        `mapstructure:"hooks"`
		Display       DisplayConfig      `mapstructure:"display"`
		Log           LogConfig          `mapstructure:"log"`
		System        SystemConfig       `mapstructure:"-"`
	}

	// RestConfig holds rest-related settings
	RestConfig struct {
		Message  string        `mapstructure:"message"`
		Duration time.Duration `mapstructure:"duration"`
	}

	// WorkConfig holds work-related settings
	WorkConfig struct {
		// DefaultEstimate is the budget of tickets that have no estimate
		DefaultEstimate time.Duration `mapstructure:"default_estimate"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// HooksConfig holds the commands run on lifecycle events
	HooksConfig struct {
		TaskStartCmd string `mapstructure:"task_start_cmd"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
	}

	// LogConfig holds log file settings
	LogConfig struct {
		Level      string `mapstructure:"level"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
	}

	// SystemConfig holds system-related settings
	SystemConfig struct {
		ConfigPath string
		DBPath     string
		LogPath    string
		StatusPath string
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	configDir      = "timeattack"
	configFileName = "config.yml"
	dbFileName     = "timeattack.db"
	logFileName    = "timeattack.log"
	statusFileName = "status.json"
	dbFilePath     string
	configFilePath string
	logFilePath    string
	statusFilePath string
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

func StatusFilePath() string {
	return statusFilePath
}

// InitializePaths resolves the config, database and log file locations.
// TIMEATTACK_ENV suffixes every file name so that separate environments
// do not share data.
func InitializePaths() error {
	env := strings.TrimSpace(os.Getenv("TIMEATTACK_ENV"))
	if env != "" {
		configFileName = fmt.Sprintf("config_%s.yml", env)
		dbFileName = fmt.Sprintf("timeattack_%s.db", env)
		logFileName = fmt.Sprintf("timeattack_%s.log", env)
		statusFileName = fmt.Sprintf("status_%s.json", env)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return errResolvePath.Wrap(err)
	}

	// DataFile creates the parent directories of the path it resolves
	dbFilePath, err = xdg.DataFile(filepath.Join(configDir, dbFileName))
	if err != nil {
		return errResolvePath.Wrap(err)
	}

	dataDir := filepath.Dir(dbFilePath)

	logFilePath = filepath.Join(dataDir, "log", logFileName)

	statusFilePath = filepath.Join(dataDir, statusFileName)

	return nil
}

// WithSystemPaths records the resolved file locations in the config.
func WithSystemPaths() Option {
	return func(c *Config) error {
		c.System = SystemConfig{
			ConfigPath: configFilePath,
			DBPath:     dbFilePath,
			LogPath:    logFilePath,
			StatusPath: statusFilePath,
		}

		return nil
	}
}

// New creates a new Config and applies options in order, then validates the
// result.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}
