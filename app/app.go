// Package app defines the timeattack command-line interface.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/timeattack/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the timeattack app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "timeattack",
		Usage: `
		timeattack tracks time-boxed work against ticket estimates. A session
		is split into work, rest, deciding and transition tasks, and switching
		away from a ticket keeps its remaining budget for later.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Open a session and choose what to do first",
				Flags:  []cli.Flag{noPromptFlag},
				Action: withEnv(startAction),
			},
			{
				Name:      "work",
				Usage:     "Work on a ticket, resuming its remaining time if it was suspended",
				ArgsUsage: "[ticket]",
				Action:    withEnv(workAction),
			},
			{
				Name:      "rest",
				Usage:     "Take a rest. Defaults to the configured rest length",
				ArgsUsage: "[duration]",
				Action:    withEnv(restAction),
			},
			{
				Name:   "deciding",
				Usage:  "Record time spent choosing what to do next",
				Action: withEnv(decidingAction),
			},
			{
				Name:   "switch",
				Usage:  "Suspend the current ticket and record the context switch",
				Action: withEnv(switchAction),
			},
			{
				Name:   "pause",
				Usage:  "Pause or resume the active task",
				Action: withEnv(pauseAction),
			},
			{
				Name:   "done",
				Usage:  "End the active task",
				Action: withEnv(doneAction),
			},
			{
				Name:   "end",
				Usage:  "End the session and print its summary",
				Action: withEnv(endAction),
			},
			{
				Name:   "status",
				Usage:  "Print the active task and its remaining time",
				Action: statusAction,
			},
			{
				Name:   "watch",
				Usage:  "Show a live view of the active task",
				Action: withEnv(watchAction),
			},
			{
				Name:   "suspended",
				Usage:  "List tickets with suspended time",
				Action: withEnv(suspendedAction),
			},
			{
				Name:   "report",
				Usage:  "Print weekly statistics and the last session's summary",
				Flags:  []cli.Flag{weekFlag, jsonFlag},
				Action: withEnv(reportAction),
			},
			{
				Name:        "tickets",
				Usage:       "Manage local tickets",
				Subcommands: ticketCommands(),
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			restFlag,
			estimateFlag,
			hookFlag,
			logLevelFlag,
			disableNotificationFlag,
			noColorFlag,
		},
		Before: beforeAction,
	}
}
