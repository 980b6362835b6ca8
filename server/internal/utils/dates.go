package utils

import (
	"fmt"
	"time"

	// User time zones must resolve on hosts without a zoneinfo database.
	_ "time/tzdata"
)

// DayLayout is the wire and form format for calendar dates.
const DayLayout = "2006-01-02"

// Day returns the calendar date of t in loc as midnight UTC. Dates are stored
// as UTC midnights so that equality and range comparisons work on any driver.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is Day(time.Now(), loc).
func Today(loc *time.Location) time.Time {
	return Day(time.Now(), loc)
}

// WeekStart returns the Monday on or before day.
func WeekStart(day time.Time) time.Time {
	y, m, d := day.Date()
	day = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekDays returns the seven dates of the week that starts on weekStart.
func WeekDays(weekStart time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = weekStart.AddDate(0, 0, i)
	}
	return days
}

// ParseDay parses a YYYY-MM-DD date. An empty string yields fallback.
func ParseDay(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// LoadLocation resolves a user's time zone, falling back to UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
