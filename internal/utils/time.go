package utils

import (
	"fmt"
	"time"
)

// Loc is the calendar zone used for day and week boundaries. It defaults to
// the host zone and is replaced from config at startup.
var Loc = time.Local

// SetLocation switches Loc to the named IANA zone. An empty name keeps the
// host zone.
func SetLocation(name string) error {
	if name == "" {
		Loc = time.Local
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("Failed to load time zone %q: %w", name, err)
	}
	Loc = loc
	return nil
}

// FormatLocal returns t formatted in the configured zone.
func FormatLocal(t time.Time) string {
	return t.In(Loc).Format("Mon, 02 Jan 2006 15:04")
}

func ToLocal(t time.Time) time.Time {
	return t.In(Loc)
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
