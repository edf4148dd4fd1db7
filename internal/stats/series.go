package stats

import (
	"fmt"
	"time"

	"yuyingbao/internal/models"
)

// Granularity selects the bucket size for chart series
type Granularity int

const (
	Daily Granularity = iota
	Weekly
	Monthly
)

// FeedingSeries buckets feeding volume over [start, end] for charting.
// Every bucket in the window appears even when it holds no records, so
// the chart axis stays continuous.
func FeedingSeries(records []models.DisplayRecord, start, end time.Time, granularity Granularity) []models.SeriesPoint {
	buckets, labels := makeBuckets(start, end, granularity)

	counts := make([]int, len(buckets))
	values := make([]float64, len(buckets))
	for _, record := range records {
		if !record.Kind.IsFeeding() || !inWindow(record.HappenedAt, start, end) {
			continue
		}
		i := bucketIndex(buckets, record.HappenedAt)
		if i < 0 {
			continue
		}
		counts[i]++
		values[i] += feedingVolume(record)
	}

	points := make([]models.SeriesPoint, len(buckets))
	for i := range buckets {
		points[i] = models.SeriesPoint{
			Label:   labels[i],
			Value:   values[i],
			Count:   counts[i],
			Display: fmt.Sprintf("%.0fml", values[i]),
		}
	}
	return points
}

// DiaperSeries buckets diaper counts over [start, end] for charting
func DiaperSeries(records []models.DisplayRecord, start, end time.Time, granularity Granularity) []models.SeriesPoint {
	buckets, labels := makeBuckets(start, end, granularity)

	counts := make([]int, len(buckets))
	for _, record := range records {
		if record.Kind != models.KindDiaper || !inWindow(record.HappenedAt, start, end) {
			continue
		}
		i := bucketIndex(buckets, record.HappenedAt)
		if i < 0 {
			continue
		}
		counts[i]++
	}

	points := make([]models.SeriesPoint, len(buckets))
	for i := range buckets {
		points[i] = models.SeriesPoint{
			Label:   labels[i],
			Value:   float64(counts[i]),
			Count:   counts[i],
			Display: fmt.Sprintf("%d次", counts[i]),
		}
	}
	return points
}

// makeBuckets returns the start instant and label of every bucket in
// the window, in ascending order.
func makeBuckets(start, end time.Time, granularity Granularity) ([]time.Time, []string) {
	var buckets []time.Time
	var labels []string

	switch granularity {
	case Weekly:
		cursor := start.AddDate(0, 0, -int(start.Weekday()))
		cursor = time.Date(cursor.Year(), cursor.Month(), cursor.Day(), 0, 0, 0, 0, start.Location())
		for !cursor.After(end) {
			buckets = append(buckets, cursor)
			labels = append(labels, cursor.Format("01/02")+"周")
			cursor = cursor.AddDate(0, 0, 7)
		}
	case Monthly:
		cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		for !cursor.After(end) {
			buckets = append(buckets, cursor)
			labels = append(labels, fmt.Sprintf("%d月", int(cursor.Month())))
			cursor = cursor.AddDate(0, 1, 0)
		}
	default:
		cursor := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		for !cursor.After(end) {
			buckets = append(buckets, cursor)
			labels = append(labels, cursor.Format("01/02"))
			cursor = cursor.AddDate(0, 0, 1)
		}
	}
	return buckets, labels
}

// bucketIndex finds the last bucket starting at or before the instant
func bucketIndex(buckets []time.Time, at time.Time) int {
	for i := len(buckets) - 1; i >= 0; i-- {
		if !at.Before(buckets[i]) {
			return i
		}
	}
	return -1
}
