package timer

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/timeattack/internal/session"
	"github.com/ayoisaiah/timeattack/internal/timeutil"
)

func (t *Timer) labelView(task session.Task) string {
	text := task.Type.String()
	if id, ok := task.Type.TicketID(); ok {
		text += " " + id
	}

	switch task.Type.Kind() {
	case session.KindWork:
		return t.style.Work.Render(text)
	case session.KindRest:
		return t.style.Rest.Render(text)
	case session.KindDeciding:
		return t.style.Deciding.Render(text)
	}

	return t.style.Transitioning.Render(text)
}

func (t *Timer) taskView(task session.Task) string {
	var s strings.Builder

	now := t.clock()
	elapsed := task.Elapsed(now)
	budget, hasBudget := Budget(task, t.ctrl.Estimate)

	s.WriteString(t.labelView(task))

	switch {
	case task.IsPaused():
		s.WriteString(t.style.Secondary.Render("[Paused]"))
	case hasBudget && budget > elapsed:
		end := now.Add(budget - elapsed)
		s.WriteString(t.style.Hint.Render("until " + end.Format(t.clockFmt)))
	}

	s.WriteString("\n\n")

	if !hasBudget {
		s.WriteString(t.style.Main.Render(timeutil.Clock(elapsed)))
		s.WriteString(t.style.Hint.Render(" elapsed"))

		return s.String()
	}

	remaining := budget - elapsed
	if remaining < 0 {
		s.WriteString(t.style.Overrun.Render(timeutil.Clock(remaining)))
	} else {
		s.WriteString(t.style.Main.Render(timeutil.Clock(remaining)))
	}

	s.WriteString("\n\n")
	s.WriteString(t.progress.ViewAs(Progress(elapsed, budget)))

	return s.String()
}

func (t *Timer) helpView() string {
	return "\n\n" + t.help.ShortHelpView([]key.Binding{
		defaultKeymap.pause,
		defaultKeymap.swtch,
		defaultKeymap.quit,
	})
}

func (t *Timer) View() string {
	var s strings.Builder

	sess, ok := t.ctrl.CurrentSession()

	switch task, active := t.ctrl.ActiveTask(); {
	case !ok:
		s.WriteString(t.style.Hint.Render("No session is open. Run `timeattack start` to begin."))
	case !active:
		s.WriteString(t.style.Hint.Render("No active task. Start one with `timeattack work` or `timeattack rest`."))
	default:
		s.WriteString(t.taskView(task))
		s.WriteString("\n\n")
		s.WriteString(t.style.Hint.Render(
			"session " + timeutil.Format(sess.TotalDuration(t.clock())),
		))
	}

	if t.err != nil {
		s.WriteString("\n\n" + t.style.Error.Render(t.err.Error()))
	}

	s.WriteString(t.helpView())

	return t.style.Base.Render(s.String())
}
