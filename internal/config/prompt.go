package config

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	RestDuration    int
	DefaultEstimate int
}

// WithPromptConfig returns an Option that asks for the main settings on the
// first run, before any config file exists.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return errPrompt.Wrap(err)
		}

		return applyPromptOptions(c, opts)
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	pterm.DefaultHeader.Println("timeattack")

	_ = putils.BulletListFromString(`Follow the prompts below to configure timeattack for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'timeattack edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Rest length").
				Options(
					huh.NewOption("5 minutes", 5).Selected(true),
					huh.NewOption("10 minutes", 10),
					huh.NewOption("15 minutes", 15),
				).
				Value(&opts.RestDuration),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Budget for tickets without an estimate").
				Options(
					huh.NewOption("30 minutes", 30).Selected(true),
					huh.NewOption("45 minutes", 45),
					huh.NewOption("60 minutes", 60),
					huh.NewOption("90 minutes", 90),
				).
				Value(&opts.DefaultEstimate),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, err
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) error {
	c.Rest.Duration = time.Duration(opts.RestDuration) * time.Minute
	c.Work.DefaultEstimate = time.Duration(opts.DefaultEstimate) * time.Minute

	return nil
}
