package utils

import "time"

// DateLayout is the wire format for session dates.
const DateLayout = "2006-01-02"

func TodayStr() string {
	return time.Now().UTC().Format(DateLayout)
}

// ParseDate returns the zero time for anything that is not YYYY-MM-DD,
// letting callers treat bad rows as absent instead of failing a whole page.
func ParseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// StartOfWeek truncates t to the preceding Sunday midnight.
func StartOfWeek(t time.Time) time.Time {
	t = t.AddDate(0, 0, -int(t.Weekday()))
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
