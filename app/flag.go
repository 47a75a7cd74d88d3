package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the desktop notification that appears when a rest is over",
	}

	hookFlag = &cli.StringFlag{
		Name:  "hook",
		Usage: "Execute an arbitrary command whenever a task starts",
	}

	restFlag = &cli.StringFlag{
		Name:    "rest",
		Aliases: []string{"r"},
		Usage:   "Rest duration, e.g. 5m or 5 (default: 5m)",
	}

	estimateFlag = &cli.StringFlag{
		Name:    "estimate",
		Aliases: []string{"e"},
		Usage:   "Budget of tickets without an estimate (default: 30m)",
	}

	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn or error",
	}

	noPromptFlag = &cli.BoolFlag{
		Name:  "no-prompt",
		Usage: "Do not ask what to do next, stay in the deciding task",
	}

	weekFlag = &cli.StringFlag{
		Name:    "week",
		Aliases: []string{"w"},
		Usage:   "Report the week containing this date (e.g. 'last monday', '2025-03-03')",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the report as JSON",
	}

	ticketEstimateFlag = &cli.StringFlag{
		Name:    "estimate",
		Aliases: []string{"e"},
		Usage:   "Time estimate, e.g. 45m",
	}

	priorityFlag = &cli.IntFlag{
		Name:    "priority",
		Aliases: []string{"p"},
		Usage:   "Priority, higher sorts first",
	}

	dueFlag = &cli.StringFlag{
		Name:  "due",
		Usage: "Due date (e.g. 'friday', '2025-03-07')",
	}

	notesFlag = &cli.StringFlag{
		Name:  "notes",
		Usage: "Free-form notes",
	}

	allFlag = &cli.BoolFlag{
		Name:    "all",
		Aliases: []string{"a"},
		Usage:   "Include completed tickets",
	}
)
