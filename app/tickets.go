package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/timeattack/internal/config"
	"github.com/ayoisaiah/timeattack/internal/report"
	"github.com/ayoisaiah/timeattack/internal/tasksource"
	"github.com/ayoisaiah/timeattack/internal/timeutil"
	"github.com/ayoisaiah/timeattack/internal/ui"
)

func ticketCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:    "list",
			Aliases: []string{"ls"},
			Usage:   "List open tickets",
			Flags:   []cli.Flag{allFlag},
			Action:  withEnv(listTicketsAction),
		},
		{
			Name:      "add",
			Usage:     "Create a ticket",
			ArgsUsage: "<title>",
			Flags:     []cli.Flag{ticketEstimateFlag, priorityFlag, dueFlag, notesFlag},
			Action:    withEnv(addTicketAction),
		},
		{
			Name:      "estimate",
			Usage:     "Set or clear ('none') a ticket's estimate",
			ArgsUsage: "<ticket> <duration|none>",
			Action:    withEnv(estimateTicketAction),
		},
		{
			Name:      "state",
			Usage:     "Set a ticket's state, or advance it when no state is given",
			ArgsUsage: "<ticket> [todo|in_progress|done]",
			Action:    withEnv(stateTicketAction),
		},
		{
			Name:      "notes",
			Usage:     "Replace a ticket's notes",
			ArgsUsage: "<ticket> <notes>",
			Action:    withEnv(notesTicketAction),
		},
		{
			Name:      "rm",
			Usage:     "Delete a ticket",
			ArgsUsage: "<ticket>",
			Action:    withEnv(deleteTicketAction),
		},
	}
}

func stateText(s tasksource.State) string {
	switch s {
	case tasksource.StateDone:
		return ui.Green(s.DisplayName())
	case tasksource.StateInProgress:
		return ui.Yellow(s.DisplayName())
	}

	return s.DisplayName()
}

func dueText(d tasksource.DueStatus) string {
	switch d.Kind {
	case tasksource.DueOverdue:
		return ui.Red(d.String())
	case tasksource.DueToday, tasksource.DueSoon:
		return ui.Yellow(d.String())
	}

	return d.String()
}

// listTicketsAction prints tickets with the work time spent on each.
func listTicketsAction(ctx *cli.Context, e *env) error {
	tickets, err := e.tickets.FetchTasks(e.ctx)
	if err != nil {
		return err
	}

	now := e.clock()
	sessions := e.engine.Sessions()
	suspended := e.engine.Suspended()

	rows := [][]string{{"ID", "TITLE", "STATE", "PRIORITY", "ESTIMATE", "SPENT", "LEFT", "DUE"}}

	for _, t := range tickets {
		if t.State.IsCompleted() && !ctx.Bool(allFlag.Name) {
			continue
		}

		var spent time.Duration
		for i := range sessions {
			spent += report.WorkTimeForTicket(sessions[i], t.Identifier, now)
		}

		estimate := ""
		if t.Estimate != nil {
			estimate = timeutil.Format(*t.Estimate)
		}

		left := ""
		if s, ok := suspended[t.Identifier]; ok {
			left = timeutil.Format(s.RemainingTime)
		}

		rows = append(rows, []string{
			t.Identifier,
			t.Title,
			stateText(t.State),
			strconv.Itoa(t.Priority),
			estimate,
			timeutil.Format(spent),
			left,
			dueText(tasksource.DueDateStatus(t.DueDate, now)),
		})
	}

	if len(rows) == 1 {
		pterm.Info.Println("No tickets. Create one with 'timeattack tickets add <title>'")
		return nil
	}

	ui.PrintTable(rows, config.Stdout)

	return nil
}

func addTicketAction(ctx *cli.Context, e *env) error {
	req := tasksource.CreateRequest{
		Title:    strings.Join(ctx.Args().Slice(), " "),
		Notes:    ctx.String(notesFlag.Name),
		Priority: ctx.Int(priorityFlag.Name),
	}

	if s := ctx.String(ticketEstimateFlag.Name); s != "" {
		d, err := config.ParseDuration(s)
		if err != nil {
			return err
		}

		req.Estimate = &d
	}

	if s := ctx.String(dueFlag.Name); s != "" {
		due, err := timeutil.FromStr(s, e.clock())
		if err != nil {
			return err
		}

		req.DueDate = &due
	}

	t, err := e.tickets.CreateTask(e.ctx, req)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Created %s: %s", ui.Green(t.Identifier), t.Title)

	return nil
}

func ticketArg(ctx *cli.Context) (string, error) {
	id := strings.TrimSpace(ctx.Args().First())
	if id == "" {
		return "", errMissingTicket
	}

	return id, nil
}

func estimateTicketAction(ctx *cli.Context, e *env) error {
	id, err := ticketArg(ctx)
	if err != nil {
		return err
	}

	arg := ctx.Args().Get(1)
	if arg == "" {
		return errMissingEstimate
	}

	var estimate *time.Duration

	if !strings.EqualFold(arg, "none") {
		d, err := config.ParseDuration(arg)
		if err != nil {
			return err
		}

		estimate = &d
	}

	t, err := e.tickets.SetEstimate(e.ctx, id, estimate)
	if err != nil {
		return err
	}

	if t.Estimate == nil {
		pterm.Success.Printfln("Cleared the estimate of %s", t.Identifier)
	} else {
		pterm.Success.Printfln("%s is estimated at %s", t.Identifier, timeutil.Format(*t.Estimate))
	}

	return nil
}

func stateTicketAction(ctx *cli.Context, e *env) error {
	id, err := ticketArg(ctx)
	if err != nil {
		return err
	}

	t, err := e.tickets.Ticket(e.ctx, id)
	if err != nil {
		return err
	}

	next := t.State.Next()

	if arg := ctx.Args().Get(1); arg != "" {
		next, err = tasksource.ParseState(arg)
		if err != nil {
			return err
		}
	}

	t, err = e.tickets.UpdateTaskState(e.ctx, t.ID, next)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("%s is now %s", t.Identifier, stateText(t.State))

	return nil
}

func notesTicketAction(ctx *cli.Context, e *env) error {
	id, err := ticketArg(ctx)
	if err != nil {
		return err
	}

	notes := strings.Join(ctx.Args().Tail(), " ")

	t, err := e.tickets.UpdateNotes(e.ctx, id, notes)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Updated the notes of %s", t.Identifier)

	return nil
}

func deleteTicketAction(ctx *cli.Context, e *env) error {
	id, err := ticketArg(ctx)
	if err != nil {
		return err
	}

	if err := e.tickets.DeleteTask(e.ctx, id); err != nil {
		return err
	}

	pterm.Success.Printfln("Deleted %s", id)

	return nil
}
