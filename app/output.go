package app

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/timeattack/internal/config"
	"github.com/ayoisaiah/timeattack/internal/report"
	"github.com/ayoisaiah/timeattack/internal/session"
	"github.com/ayoisaiah/timeattack/internal/timeutil"
	"github.com/ayoisaiah/timeattack/internal/ui"
	"github.com/ayoisaiah/timeattack/timer"
)

func (e *env) timeFormat() string {
	if e.cfg.Display.TwentyFourHour {
		return "15:04:05"
	}

	return "03:04:05 PM"
}

// printActive writes the active task and its remaining time to stdout.
func printActive(e *env) {
	task, ok := e.engine.ActiveTask()
	if !ok {
		pterm.Info.Println("No active task")
		return
	}

	now := e.clock()
	text := ui.TaskType(task.Type)

	if task.IsPaused() {
		text += " " + ui.Yellow("[paused]")
	}

	elapsed := task.Elapsed(now)

	budget, ok := timer.Budget(task, e.engine.Estimate)
	if !ok {
		fmt.Fprintf(config.Stdout, "%s: %s elapsed\n", text, timeutil.Format(elapsed))
		return
	}

	left := budget - elapsed
	if left < 0 {
		fmt.Fprintf(config.Stdout, "%s: %s over budget\n", text, ui.Red(timeutil.Format(-left)))
		return
	}

	fmt.Fprintf(
		config.Stdout,
		"%s: %s left (until %s)\n",
		text,
		timeutil.Format(left),
		ui.Highlight(now.Add(left).Format(e.timeFormat())),
	)
}

func summaryItems(sum report.Summary) []pterm.BulletListItem {
	items := []pterm.BulletListItem{
		{Level: 0, Text: "Total: " + timeutil.Format(sum.Total)},
		{Level: 0, Text: "Work: " + ui.Green(timeutil.Format(sum.Work))},
	}

	for _, t := range sum.Tickets {
		items = append(items, pterm.BulletListItem{
			Level: 1,
			Text:  fmt.Sprintf("%s: %s", t.TicketID, timeutil.Format(t.Actual)),
		})
	}

	return append(items,
		pterm.BulletListItem{Level: 0, Text: "Rest: " + ui.Blue(timeutil.Format(sum.Rest))},
		pterm.BulletListItem{Level: 0, Text: "Overhead: " + ui.Magenta(timeutil.Format(sum.Overhead))},
		pterm.BulletListItem{Level: 1, Text: "Deciding: " + timeutil.Format(sum.Deciding)},
		pterm.BulletListItem{Level: 1, Text: "Transitioning: " + timeutil.Format(sum.Transition)},
	)
}

// printSummary writes the totals of a session.
func printSummary(s session.Session) {
	sum := report.Summarize(s, time.Now())

	pterm.DefaultSection.Println("Session summary")

	out, err := pterm.DefaultBulletList.WithItems(summaryItems(sum)).Srender()
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	fmt.Fprintln(config.Stdout, out)
}
