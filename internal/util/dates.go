package util

import "time"

// CalculateActualDate returns the actual date for a target day in a given month,
// handling months with fewer days (e.g., day 31 in February returns Feb 28/29)
func CalculateActualDate(year int, month time.Month, targetDay int) time.Time {
	// Get last day of month by going to day 0 of next month
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	actualDay := targetDay
	if actualDay > lastDay {
		actualDay = lastDay
	}

	return time.Date(year, month, actualDay, 0, 0, 0, 0, time.UTC)
}

// AddMonths moves start forward by n calendar months keeping its day of month
// where possible. Jan 31 + 1 month is Feb 28 (or 29).
func AddMonths(start time.Time, n int) time.Time {
	total := int(start.Month()) - 1 + n
	year := start.Year() + total/12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	return CalculateActualDate(year, time.Month(month+1), start.Day())
}

// DaysBetween returns the number of whole days from start to end in UTC.
// The result is negative when end is before start.
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}
