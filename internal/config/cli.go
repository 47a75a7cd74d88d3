package config

import (
	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Rest          string
	Estimate      string
	Hook          string
	LogLevel      string
	DisableNotify bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Rest:          ctx.String("rest"),
			Estimate:      ctx.String("estimate"),
			Hook:          ctx.String("hook"),
			LogLevel:      ctx.String("log-level"),
			DisableNotify: ctx.Bool("disable-notification"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Rest != "" {
		dur, err := ParseDuration(opts.Rest)
		if err != nil {
			return errInvalidCLIDuration.Fmt("rest").Wrap(err)
		}

		c.Rest.Duration = dur
	}

	if opts.Estimate != "" {
		dur, err := ParseDuration(opts.Estimate)
		if err != nil {
			return errInvalidCLIDuration.Fmt("estimate").Wrap(err)
		}

		c.Work.DefaultEstimate = dur
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.Hook != "" {
		c.Hooks.TaskStartCmd = opts.Hook
	}

	if opts.LogLevel != "" {
		c.Log.Level = opts.LogLevel
	}

	return nil
}
