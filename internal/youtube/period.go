package youtube

import "time"

// MonthRange resolves a calendar month to its inclusive first and last day,
// both at midnight UTC. The last day comes from "day 0 of the next month",
// which time.Date normalizes to the previous month's final day (28-31).
func MonthRange(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return start, end
}

// inPeriod reports whether a publish timestamp falls inside the month that
// starts at start. The upper bound covers the whole final day.
func inPeriod(t, start time.Time) bool {
	return !t.Before(start) && t.Before(start.AddDate(0, 1, 0))
}
