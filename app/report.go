package app

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/timeattack/internal/config"
	"github.com/ayoisaiah/timeattack/internal/report"
	"github.com/ayoisaiah/timeattack/internal/tasksource"
	"github.com/ayoisaiah/timeattack/internal/timeutil"
	"github.com/ayoisaiah/timeattack/internal/ui"
)

type reportJSON struct {
	Week report.WeeklyStats `json:"week"`
	Last *report.Summary    `json:"last_session,omitempty"`
}

// reportAction prints the statistics of the current or requested week,
// followed by the summary of the latest session.
func reportAction(ctx *cli.Context, e *env) error {
	now := e.clock()
	weekStart := report.StartOfWeek(now)

	if s := ctx.String(weekFlag.Name); s != "" {
		t, err := timeutil.FromStr(s, now)
		if err != nil {
			return err
		}

		weekStart = report.StartOfWeek(t)
	}

	sessions := e.engine.Sessions()

	// Only estimates recorded on tickets count towards accuracy.
	estimates := tasksource.NewEstimator(e.tickets, 0)

	out := reportJSON{
		Week: report.Weekly(
			sessions,
			e.engine.TransitionRecords(),
			estimates.Estimate,
			weekStart,
			now,
		),
	}

	if len(sessions) > 0 {
		sum := report.Summarize(sessions[len(sessions)-1], now)
		out.Last = &sum
	}

	if ctx.Bool(jsonFlag.Name) {
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}

		fmt.Fprintln(config.Stdout, string(b))

		return nil
	}

	printWeek(out.Week)

	if out.Last != nil {
		pterm.DefaultSection.Println("Last session")

		list, err := pterm.DefaultBulletList.WithItems(summaryItems(*out.Last)).Srender()
		if err != nil {
			return err
		}

		fmt.Fprintln(config.Stdout, list)
	}

	return nil
}

func printWeek(w report.WeeklyStats) {
	pterm.DefaultSection.Printfln(
		"Week of %s to %s",
		w.WeekStart.Format("Jan 02, 2006"),
		w.WeekEnd.AddDate(0, 0, -1).Format("Jan 02, 2006"),
	)

	if w.Sessions == 0 {
		pterm.Info.Println("No sessions this week")
		return
	}

	rows := [][]string{{"TICKET", "ESTIMATE", "ACTUAL", "ACCURACY"}}

	for _, t := range w.Tickets {
		estimate, accuracy := "", ""

		if t.Estimate != nil {
			estimate = timeutil.Format(*t.Estimate)
		}

		if t.HasAccuracy {
			accuracy = ui.Accuracy(t.Accuracy)
		}

		actual := timeutil.Format(t.Actual)
		if t.Over() {
			actual = ui.Red(actual)
		}

		rows = append(rows, []string{t.TicketID, estimate, actual, accuracy})
	}

	if len(rows) > 1 {
		ui.PrintTable(rows, config.Stdout)
	}

	items := []pterm.BulletListItem{
		{Level: 0, Text: fmt.Sprintf("Sessions: %d", w.Sessions)},
		{Level: 0, Text: "Work: " + ui.Green(timeutil.Format(w.Work))},
		{Level: 0, Text: "Rest: " + ui.Blue(timeutil.Format(w.Rest))},
		{Level: 0, Text: "Overhead: " + ui.Magenta(timeutil.Format(w.Overhead))},
	}

	if w.TotalEstimate > 0 {
		items = append(items, pterm.BulletListItem{
			Level: 0,
			Text:  "Estimated: " + timeutil.Format(w.TotalEstimate),
		})
	}

	if w.HasAccuracy {
		items = append(items, pterm.BulletListItem{
			Level: 0,
			Text:  "Accuracy: " + ui.Accuracy(w.Accuracy),
		})
	}

	list, err := pterm.DefaultBulletList.WithItems(items).Srender()
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	fmt.Fprintln(config.Stdout, list)
}
