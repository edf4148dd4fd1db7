package stats

import (
	"testing"
	"time"

	"yuyingbao/internal/models"
)

func TestDayWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	start, end := DayWindow(now)

	if start != time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) {
		t.Errorf("start = %v", start)
	}
	if !end.After(now) || end.Day() != 15 {
		t.Errorf("end = %v, want late on the same day", end)
	}
}

func TestWeekWindowStartsSunday(t *testing.T) {
	// 2025-06-18 is a Wednesday.
	now := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
	start, end := WeekWindow(now)

	if start.Weekday() != time.Sunday {
		t.Errorf("start weekday = %v, want Sunday", start.Weekday())
	}
	if start != time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) {
		t.Errorf("start = %v, want 2025-06-15", start)
	}
	if !end.After(now) {
		t.Errorf("end = %v, should contain now", end)
	}
}

func TestMonthWindow(t *testing.T) {
	now := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
	start, end := MonthWindow(now)

	if start != time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("start = %v", start)
	}
	if end.Month() != time.June || end.Day() != 30 {
		t.Errorf("end = %v, want last instant of June", end)
	}
}

func TestQuarterWindowSpansThreeMonths(t *testing.T) {
	now := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
	start, end := QuarterWindow(now)

	if start != time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("start = %v, want 2025-04-01", start)
	}
	if end.Month() != time.June {
		t.Errorf("end = %v, want end of June", end)
	}
}

func TestFeedingSeriesDaily(t *testing.T) {
	records := []models.DisplayRecord{
		bottle(1, day(1, 8), 100),
		bottle(2, day(1, 18), 50),
		bottle(3, day(3, 8), 200),
	}

	points := FeedingSeries(records, day(1, 0), day(3, 23), Daily)
	if len(points) != 3 {
		t.Fatalf("len = %d, want 3 daily buckets", len(points))
	}
	if points[0].Value != 150 || points[0].Count != 2 {
		t.Errorf("day 1 = %+v, want 150ml over 2 feedings", points[0])
	}
	if points[1].Value != 0 {
		t.Errorf("day 2 = %+v, want empty bucket", points[1])
	}
	if points[2].Value != 200 {
		t.Errorf("day 3 = %+v, want 200ml", points[2])
	}
	if points[0].Label != "06/01" {
		t.Errorf("label = %q, want 06/01", points[0].Label)
	}
}

func TestDiaperSeriesMonthly(t *testing.T) {
	records := []models.DisplayRecord{
		diaper(1, time.Date(2025, 4, 10, 8, 0, 0, 0, time.UTC), models.TextureSoft),
		diaper(2, time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC), models.TextureSoft),
		diaper(3, time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC), models.TextureHard),
	}

	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC)
	points := DiaperSeries(records, start, end, Monthly)

	if len(points) != 3 {
		t.Fatalf("len = %d, want 3 monthly buckets", len(points))
	}
	if points[0].Count != 1 || points[1].Count != 0 || points[2].Count != 2 {
		t.Errorf("counts = %d/%d/%d, want 1/0/2", points[0].Count, points[1].Count, points[2].Count)
	}
	if points[2].Label != "6月" {
		t.Errorf("label = %q, want 6月", points[2].Label)
	}
}
