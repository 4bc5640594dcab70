package utils

import (
	"math"
	"time"
)

// StartOfDay truncates t to midnight in the local time zone.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from one midnight to another.
// Rounding keeps the count stable across DST transitions.
func DaysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// FormatShortDate renders a date as M/D/YYYY, matching the format the web
// client shows for deadlines and interview dates.
func FormatShortDate(t time.Time) string {
	return t.Format("1/2/2006")
}
