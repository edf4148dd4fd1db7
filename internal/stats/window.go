package stats

import "time"

// DayWindow returns the bounds of the calendar day containing now
func DayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// WeekWindow returns the bounds of the week containing now.
// Weeks start on Sunday.
func WeekWindow(now time.Time) (time.Time, time.Time) {
	dayStart, _ := DayWindow(now)
	start := dayStart.AddDate(0, 0, -int(now.Weekday()))
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

// MonthWindow returns the bounds of the calendar month containing now
func MonthWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// QuarterWindow returns the bounds of the three-month span ending with
// the month containing now. The statistics screens use it for growth
// trends, which need more than one month of points.
func QuarterWindow(now time.Time) (time.Time, time.Time) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	start := monthStart.AddDate(0, -2, 0)
	end := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
