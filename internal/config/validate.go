package config

import (
	"slices"
	"strings"
	"time"
)

var (
	// Minimum and maximum duration constraints.
	minDuration = 1 * time.Second
	maxDuration = 720 * time.Minute // 12 hours

	logLevels = []string{"debug", "info", "warn", "error"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := validateDuration(c.Rest.Duration, "rest"); err != nil {
		return err
	}

	if err := validateDuration(c.Work.DefaultEstimate, "default estimate"); err != nil {
		return err
	}

	if strings.TrimSpace(c.Rest.Message) == "" {
		return errEmptyMsg.Fmt("rest")
	}

	return c.validateLog()
}

func validateDuration(d time.Duration, name string) error {
	if d < minDuration || d > maxDuration {
		return errInvalidDuration.Fmt(name, minDuration, maxDuration)
	}

	return nil
}

func (c *Config) validateLog() error {
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return errInvalidLogLevel.Fmt(c.Log.Level)
	}

	if c.Log.MaxSizeMB < 1 {
		return errInvalidLogSize.Fmt(c.Log.MaxSizeMB)
	}

	if c.Log.MaxBackups < 0 {
		return errInvalidLogBackups.Fmt(c.Log.MaxBackups)
	}

	return nil
}
