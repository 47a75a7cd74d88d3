package timer

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

func (t *Timer) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.quit):
		return t, t.quit()

	case key.Matches(msg, defaultKeymap.pause):
		if _, ok := t.ctrl.ActiveTask(); !ok {
			return t, nil
		}

		return t, t.act(t.ctrl.TogglePause)

	case key.Matches(msg, defaultKeymap.swtch):
		if _, ok := t.ctrl.ActiveTask(); !ok {
			return t, nil
		}

		return t, t.act(t.ctrl.SuspendAndTransition)
	}

	return t, nil
}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		t.writeStatus()

		return t, t.tick()

	case actionMsg:
		t.err = msg.err
		t.writeStatus()

		return t, nil

	case tea.KeyMsg:
		return t.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		t.progress.Width = msg.Width - padding*2 - 4
		if t.progress.Width > maxWidth {
			t.progress.Width = maxWidth
		}

		return t, nil

	// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		m, cmd := t.progress.Update(msg)
		t.progress, _ = m.(progress.Model)

		return t, cmd
	}

	return t, nil
}
