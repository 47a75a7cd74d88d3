package timer

import "github.com/charmbracelet/lipgloss"

// Style holds the lipgloss styles used by the view.
type Style struct {
	Base          lipgloss.Style
	Main          lipgloss.Style
	Secondary     lipgloss.Style
	Hint          lipgloss.Style
	Overrun       lipgloss.Style
	Error         lipgloss.Style
	Work          lipgloss.Style
	Rest          lipgloss.Style
	Deciding      lipgloss.Style
	Transitioning lipgloss.Style
}

func label(bg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color(bg)).
		Padding(0, 1).
		MarginRight(1)
}

// NewStyle returns the palette for a dark or light terminal.
func NewStyle(dark bool) Style {
	fg, hint := "#FFFFFF", "#7C7C7C"
	if !dark {
		fg, hint = "#1A1A1A", "#5C5C5C"
	}

	return Style{
		Base:          lipgloss.NewStyle().Padding(1, padding),
		Main:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(fg)),
		Secondary:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00")),
		Hint:          lipgloss.NewStyle().Foreground(lipgloss.Color(hint)),
		Overrun:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F")),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		Work:          label("#5FD787"),
		Rest:          label("#5FAFFF"),
		Deciding:      label("#D787FF"),
		Transitioning: label("#5FD7D7"),
	}
}
