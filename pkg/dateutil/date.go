package dateutil

import "time"

const dateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func NextDay(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1)
}

// DateKey returns the calendar date of t in UTC, formatted as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// YesterdayKey returns the DateKey of the day before t.
func YesterdayKey(t time.Time) string {
	return DateKey(t.UTC().AddDate(0, 0, -1))
}
