// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"time"

	"github.com/hako/durafmt"
	"github.com/markusmobius/go-dateparser"
)

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// keyLayout keeps every fraction digit so that keys sort byte-wise in time
// order.
const keyLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.Format(keyLayout))
}

// Format renders d with its two largest units, e.g. "1 hour 5 minutes".
// Durations under a second render as "0 seconds".
func Format(d time.Duration) string {
	if d < 0 {
		return "-" + Format(-d)
	}

	if d < time.Second {
		return "0 seconds"
	}

	//nolint:gomnd // limit to first 2 units
	return durafmt.Parse(d.Truncate(time.Second)).LimitToUnit("hours").LimitFirstN(2).String()
}

// Clock renders d as mm:ss, or hh:mm:ss from one hour up.
func Clock(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	secs := int(d.Round(time.Second).Seconds())
	h, m, s := secs/3600, (secs%3600)/60, secs%60

	if h > 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
	}

	return fmt.Sprintf("%s%02d:%02d", sign, m, s)
}

// FromStr parses an absolute or relative date such as "2025-03-03" or
// "last monday", relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	d, err := dateparser.Parse(cfg, s)
	if err != nil {
		return time.Time{}, errParseDate.Fmt(s).Wrap(err)
	}

	return d.Time, nil
}
