package app

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/maruel/natural"

	"github.com/ayoisaiah/timeattack/internal/timeutil"
)

const (
	choiceWork     = "work"
	choiceRest     = "rest"
	choiceDeciding = "deciding"
)

func naturalCompare(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}

	return 0
}

// promptChoice asks what to do in a session that has just opened. It does
// nothing once another task has replaced the initial deciding task.
func (e *env) promptChoice(ctx context.Context, _ string) error {
	if !e.prompt {
		return nil
	}

	task, ok := e.engine.ActiveTask()
	if !ok || !task.Type.IsDeciding() {
		return nil
	}

	var choice string

	err := huh.NewSelect[string]().
		Title("What would you like to do?").
		Options(
			huh.NewOption("Work on a ticket", choiceWork),
			huh.NewOption(
				fmt.Sprintf("Rest for %s", timeutil.Format(e.cfg.Rest.Duration)),
				choiceRest,
			),
			huh.NewOption("Keep deciding", choiceDeciding),
		).
		Value(&choice).
		Run()
	if err != nil {
		return errPrompt.Wrap(err)
	}

	switch choice {
	case choiceWork:
		id, err := e.pickTicket(ctx)
		if err != nil {
			return err
		}

		return e.startWork(id)
	case choiceRest:
		return e.startRest(e.cfg.Rest.Duration)
	}

	return nil
}

// pickTicket asks the user to choose from open and suspended tickets.
func (e *env) pickTicket(ctx context.Context) (string, error) {
	tickets, err := e.tickets.FetchTasks(ctx)
	if err != nil {
		return "", err
	}

	suspended := e.engine.Suspended()

	var (
		opts []huh.Option[string]
		seen = make(map[string]bool)
	)

	for _, t := range tickets {
		if t.State.IsCompleted() {
			continue
		}

		label := t.Identifier + "  " + t.Title
		if s, ok := suspended[t.Identifier]; ok {
			label += fmt.Sprintf("  (%s left)", timeutil.Format(s.RemainingTime))
		}

		seen[t.Identifier] = true
		opts = append(opts, huh.NewOption(label, t.Identifier))
	}

	for _, id := range slices.SortedFunc(maps.Keys(suspended), naturalCompare) {
		if seen[id] {
			continue
		}

		label := fmt.Sprintf("%s  (%s left)", id, timeutil.Format(suspended[id].RemainingTime))
		opts = append(opts, huh.NewOption(label, id))
	}

	if len(opts) == 0 {
		return "", errNoTickets
	}

	var id string

	err = huh.NewSelect[string]().
		Title("Which ticket?").
		Options(opts...).
		Value(&id).
		Run()
	if err != nil {
		return "", errPrompt.Wrap(err)
	}

	return id, nil
}
