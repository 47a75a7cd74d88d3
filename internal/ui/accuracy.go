package ui

import (
	"fmt"

	"github.com/ayoisaiah/timeattack/internal/session"
)

// Band classifies how close an estimate was to the time actually spent.
type Band int

const (
	BandGood Band = iota
	BandFair
	BandPoor
)

// AccuracyBand buckets an estimate/actual ratio: within 20% is good, within
// 50% is fair.
func AccuracyBand(ratio float64) Band {
	switch {
	case ratio >= 0.8 && ratio <= 1.2:
		return BandGood
	case ratio >= 0.5 && ratio <= 1.5:
		return BandFair
	}

	return BandPoor
}

// Accuracy renders a ratio as a coloured percentage.
func Accuracy(ratio float64) string {
	s := fmt.Sprintf("%.0f%%", ratio*100)

	switch AccuracyBand(ratio) {
	case BandGood:
		return Green(s)
	case BandFair:
		return Yellow(s)
	}

	return Red(s)
}

// TaskType colours a task type label by kind.
func TaskType(tt session.TaskType) string {
	label := tt.String()
	if id, ok := tt.TicketID(); ok {
		label += " " + id
	}

	switch tt.Kind() {
	case session.KindWork:
		return Green(label)
	case session.KindRest:
		return Blue(label)
	case session.KindDeciding:
		return Magenta(label)
	}

	return Cyan(label)
}
