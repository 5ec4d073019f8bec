package analyzer

import (
	"strings"
	"time"
)

// Period is a named slice of the day derived from a conversation's start
// time.
type Period string

const (
	Morning   Period = "Morning"   // [06:00, 12:00)
	Afternoon Period = "Afternoon" // [12:00, 17:00)
	Evening   Period = "Evening"   // [17:00, 22:00)
	Night     Period = "Night"     // [22:00, 24:00) and [00:00, 06:00)
)

// Periods lists the buckets in report order.
var Periods = []Period{Morning, Afternoon, Evening, Night}

// clockLayout matches 12-hour clock strings like "9:05 AM" or "11:30 PM".
const clockLayout = "3:04 PM"

// ParseClock parses a 12-hour clock string. Leading zeros and lower-case
// meridiems are accepted.
func ParseClock(s string) (time.Time, error) {
	return time.Parse(clockLayout, strings.ToUpper(strings.TrimSpace(s)))
}

// PeriodOf classifies an hour of day (0-23) into its period.
func PeriodOf(hour int) Period {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 22:
		return Evening
	default:
		return Night
	}
}

// ClassifyPeriod parses a clock string and returns its period. The second
// return value is false when the string is empty or unparsable; callers
// treat that as "excluded from bucketing", never as a fatal error.
func ClassifyPeriod(s string) (Period, bool) {
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	t, err := ParseClock(s)
	if err != nil {
		return "", false
	}
	return PeriodOf(t.Hour()), true
}

// DurationMinutes returns the minutes between two clock strings. Spans that
// cross midnight wrap forward by 24 hours. The second return value is false
// when either time is missing or unparsable.
func DurationMinutes(start, end string) (int, bool) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, false
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, false
	}

	minutes := int(e.Sub(s).Minutes())
	if minutes < 0 {
		minutes += 24 * 60
	}
	return minutes, true
}
