package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/timeattack/internal/config"
	"github.com/ayoisaiah/timeattack/internal/session"
	"github.com/ayoisaiah/timeattack/internal/tasksource"
	"github.com/ayoisaiah/timeattack/internal/timeutil"
	"github.com/ayoisaiah/timeattack/internal/ui"
	"github.com/ayoisaiah/timeattack/store"
	"github.com/ayoisaiah/timeattack/timer"
)

const (
	envNoColor           = "NO_COLOR"
	envTimeattackNoColor = "TIMEATTACK_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// resolveTicket maps a ticket id or identifier to the identifier used in
// work tasks. Tickets unknown to the local source are used as given.
func (e *env) resolveTicket(arg string) (string, error) {
	t, err := e.tickets.Ticket(e.ctx, arg)
	if err == nil {
		return t.Identifier, nil
	}

	if errors.Is(err, tasksource.ErrTaskNotFound) {
		return arg, nil
	}

	return "", err
}

func (e *env) startWork(ticketID string) error {
	_, resumed := e.engine.Suspension(ticketID)

	if err := e.apply(e.engine.ResumeWorkTask(ticketID)); err != nil {
		return err
	}

	if resumed {
		pterm.Success.Printfln("Resumed %s", ui.Green(ticketID))
	}

	printActive(e)

	return nil
}

func (e *env) startRest(d time.Duration) error {
	if err := e.apply(e.engine.StartTask(session.Rest(d), nil)); err != nil {
		return err
	}

	printActive(e)

	if e.cfg.Notifications.Enabled {
		pterm.Info.Println("Run 'timeattack watch' to be alerted when the rest is over")
	}

	return nil
}

// startAction opens a session and asks what to do first.
func startAction(ctx *cli.Context, e *env) error {
	e.prompt = !ctx.Bool(noPromptFlag.Name)

	if s, ok := e.engine.CurrentSession(); ok {
		pterm.Info.Printfln(
			"A session is already open since %s",
			ui.Highlight(s.StartTime.Format(e.timeFormat())),
		)

		return nil
	}

	if err := e.apply(e.engine.StartSession()); err != nil {
		return err
	}

	if s, ok := e.engine.CurrentSession(); ok {
		pterm.Success.Printfln("Session started at %s", s.StartTime.Format(e.timeFormat()))
	}

	printActive(e)

	return nil
}

// workAction starts a work task on the ticket given, or on one picked from
// a list.
func workAction(ctx *cli.Context, e *env) error {
	var (
		id  string
		err error
	)

	if arg := strings.TrimSpace(ctx.Args().First()); arg != "" {
		id, err = e.resolveTicket(arg)
	} else {
		id, err = e.pickTicket(e.ctx)
	}

	if err != nil {
		return err
	}

	return e.startWork(id)
}

// restAction starts a rest task of the given or configured length.
func restAction(ctx *cli.Context, e *env) error {
	d := e.cfg.Rest.Duration

	if arg := ctx.Args().First(); arg != "" {
		var err error

		d, err = config.ParseDuration(arg)
		if err != nil {
			return err
		}
	}

	return e.startRest(d)
}

func decidingAction(_ *cli.Context, e *env) error {
	if err := e.apply(e.engine.StartTask(session.Deciding(), nil)); err != nil {
		return err
	}

	printActive(e)

	return nil
}

// switchAction suspends the current ticket and starts a transition task.
func switchAction(_ *cli.Context, e *env) error {
	prev, _ := e.engine.ActiveTask()

	if err := e.apply(e.engine.SuspendAndTransition()); err != nil {
		return err
	}

	if id, ok := prev.Type.TicketID(); ok {
		if s, ok := e.engine.Suspension(id); ok {
			pterm.Success.Printfln(
				"Suspended %s with %s left",
				ui.Green(id),
				ui.Highlight(timeutil.Format(s.RemainingTime)),
			)
		}
	}

	printActive(e)

	return nil
}

func pauseAction(_ *cli.Context, e *env) error {
	if err := e.apply(e.engine.TogglePause()); err != nil {
		return err
	}

	task, _ := e.engine.ActiveTask()
	if task.IsPaused() {
		pterm.Success.Printfln("Paused %s", ui.TaskType(task.Type))
	} else {
		pterm.Success.Printfln("Resumed %s", ui.TaskType(task.Type))
	}

	return nil
}

func doneAction(_ *cli.Context, e *env) error {
	prev, _ := e.engine.ActiveTask()

	if err := e.apply(e.engine.EndActiveTask()); err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Ended %s after %s",
		ui.TaskType(prev.Type),
		timeutil.Format(prev.ActualDuration(e.clock())),
	)

	return nil
}

// endAction closes the session. Its summary is printed when the completed
// session is dispatched.
func endAction(_ *cli.Context, e *env) error {
	return e.apply(e.engine.EndSession())
}

// statusAction prints the active task. While another process holds the
// database, the status file written by the live view is reported instead.
func statusAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if errors.Is(err, store.ErrRunning) {
		return printStatusFile(err)
	}

	if err != nil {
		return err
	}

	defer e.Close()

	if _, ok := e.engine.CurrentSession(); !ok {
		pterm.Info.Println("No session is open")
		return nil
	}

	printActive(e)

	return nil
}

func printStatusFile(running error) error {
	s, err := timer.ReadStatus(config.StatusFilePath())
	if errors.Is(err, os.ErrNotExist) {
		return running
	}

	if err != nil {
		return err
	}

	fmt.Fprintln(config.Stdout, s.Line(time.Now()))

	return nil
}

// watchAction shows the live view. A rest task that is already running gets
// its alert scheduled for the time it has left.
func watchAction(_ *cli.Context, e *env) error {
	if task, ok := e.engine.ActiveTask(); ok && !task.IsPaused() {
		if d, ok := task.Type.RestDuration(); ok {
			if left := d - task.Elapsed(e.clock()); left > 0 {
				e.notifier.Schedule(task.ID, left, "Rest is over", e.cfg.Rest.Message)
			}
		}
	}

	t := timer.New(e.ctx, e.engine, e.dispatcher,
		timer.WithClock(e.clock),
		timer.WithTwentyFourHour(e.cfg.Display.TwentyFourHour),
		timer.WithStyle(timer.NewStyle(e.cfg.Display.DarkTheme)),
		timer.WithStatusFile(e.cfg.System.StatusPath),
		timer.WithLogger(e.logger),
	)

	_, err := tea.NewProgram(t).Run()

	return err
}

// suspendedAction lists the suspended tickets, most recent first.
func suspendedAction(_ *cli.Context, e *env) error {
	entries := e.engine.Suspended()
	if len(entries) == 0 {
		pterm.Info.Println("No suspended tickets")
		return nil
	}

	list := make([]session.Suspension, 0, len(entries))
	for _, s := range entries {
		list = append(list, s)
	}

	slices.SortFunc(list, func(a, b session.Suspension) int {
		if c := b.SuspendedAt.Compare(a.SuspendedAt); c != 0 {
			return c
		}

		return naturalCompare(a.TicketID, b.TicketID)
	})

	rows := [][]string{{"#", "TICKET", "TIME LEFT", "SUSPENDED AT"}}

	for i, s := range list {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			s.TicketID,
			timeutil.Format(s.RemainingTime),
			s.SuspendedAt.Local().Format("Jan 02, 2006 " + e.timeFormat()),
		})
	}

	ui.PrintTable(rows, config.Stdout)

	return nil
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, config.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envTimeattackNoColor); exists {
		disableStyling()
	}

	if ctx.Bool(noColorFlag.Name) {
		disableStyling()
	}

	return config.InitializePaths()
}
