package daycounter

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const msPerDay = 1000 * 60 * 60 * 24

// isoLayout matches the timestamp shape written by JavaScript's toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z"

// dateOnlyLayout is accepted from user input and legacy values.
const dateOnlyLayout = "2006-01-02"

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Recompute returns the number of whole calendar days between date and now,
// both taken in loc. The result is symmetric around today.
func Recompute(date, now time.Time, loc *time.Location) int {
	// Midnight-to-midnight spans in loc can be 23h or 25h across DST changes,
	// so the difference is taken between the same civil dates in UTC.
	start := civilDate(date, loc)
	today := civilDate(now, loc)
	diff := today.Sub(start).Milliseconds()
	days := int(math.Floor(float64(diff) / msPerDay))
	if days < 0 {
		days = -days
	}
	return days
}

func civilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatStartDate serializes t for the persistence gateway.
func FormatStartDate(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParseStartDate reads a persisted or user supplied date. Date-only values
// are interpreted as midnight in loc.
func ParseStartDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation(dateOnlyLayout, value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}
