// Package stats computes record summaries entirely from data already in
// memory. Nothing in here talks to the network or the local store, so
// the same aggregation runs identically on fresh or cached records.
package stats

import (
	"math"
	"sort"
	"strconv"
	"time"

	"yuyingbao/internal/models"
)

// millilitersPerMinute converts nursing time into an estimated intake
// so direct breastfeeding shows up in volume totals.
const millilitersPerMinute = 10

// DaysInWindow returns the day count a window spans for per-day
// averages. A window inside a single day still counts as one day.
func DaysInWindow(start, end time.Time) int {
	if end.Before(start) {
		return 1
	}
	days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// AggregateFeeding summarizes the feeding records within [start, end].
// Bottle, formula and water records contribute their amount; nursing
// records contribute estimated volume from their duration.
func AggregateFeeding(records []models.DisplayRecord, start, end time.Time) models.FeedingAggregate {
	days := DaysInWindow(start, end)
	agg := models.FeedingAggregate{Days: days}

	for _, record := range records {
		if !record.Kind.IsFeeding() || !inWindow(record.HappenedAt, start, end) {
			continue
		}
		agg.Count++
		agg.TotalMl += feedingVolume(record)
	}

	if agg.Count > 0 {
		agg.AvgAmountMl = math.Round(agg.TotalMl / float64(agg.Count))
	}
	agg.AvgDailyMl = math.Round(agg.TotalMl / float64(days))
	agg.AvgFrequency = math.Round(float64(agg.Count)/float64(days)*10) / 10
	return agg
}

// feedingVolume returns the milliliters one feeding record contributes
func feedingVolume(record models.DisplayRecord) float64 {
	if record.Breastfeeding != nil {
		return float64(record.Breastfeeding.DurationMin) * millilitersPerMinute
	}
	if record.BottleFeed != nil {
		return record.BottleFeed.AmountMl
	}
	return 0
}

// normalTextures are the stool consistencies counted as healthy
var normalTextures = map[models.DiaperTexture]bool{
	models.TextureSoft:   true,
	models.TextureNormal: true,
}

// AggregateDiaper summarizes the diaper records within [start, end]
func AggregateDiaper(records []models.DisplayRecord, start, end time.Time) models.DiaperAggregate {
	var agg models.DiaperAggregate

	for _, record := range records {
		if record.Kind != models.KindDiaper || !inWindow(record.HappenedAt, start, end) {
			continue
		}
		agg.Count++
		if record.DiaperChange != nil && normalTextures[record.DiaperChange.Texture] {
			agg.NormalCount++
		}
	}

	days := DaysInWindow(start, end)
	agg.AvgDaily = math.Round(float64(agg.Count)/float64(days)*10) / 10
	if agg.Count > 0 {
		agg.NormalRate = int(math.Round(float64(agg.NormalCount) / float64(agg.Count) * 100))
	}
	return agg
}

// AggregateGrowth summarizes the growth measurements within [start, end].
// Gains need at least two measurements; the monthly weight gain also
// needs the measurements to fall in different calendar months.
func AggregateGrowth(records []models.DisplayRecord, start, end time.Time) models.GrowthAggregate {
	var points []models.DisplayRecord
	for _, record := range records {
		if record.Kind != models.KindGrowth || record.GrowthMeasure == nil {
			continue
		}
		if !inWindow(record.HappenedAt, start, end) {
			continue
		}
		points = append(points, record)
	}

	var agg models.GrowthAggregate
	if len(points) == 0 {
		return agg
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].HappenedAt.Before(points[j].HappenedAt)
	})

	first, last := points[0], points[len(points)-1]
	agg.HasData = true
	agg.LatestHeightCm = last.GrowthMeasure.HeightCm
	agg.LatestWeightKg = last.GrowthMeasure.WeightKg

	if len(points) < 2 {
		return agg
	}

	heightGain := last.GrowthMeasure.HeightCm - first.GrowthMeasure.HeightCm
	weightGain := last.GrowthMeasure.WeightKg - first.GrowthMeasure.WeightKg
	agg.HeightGainCm = strconv.FormatFloat(heightGain, 'f', 1, 64)
	agg.WeightGainKg = strconv.FormatFloat(weightGain, 'f', 1, 64)

	months := monthsBetween(first.HappenedAt, last.HappenedAt)
	if months > 0 {
		agg.AvgWeightGainKg = strconv.FormatFloat(weightGain/float64(months), 'f', 2, 64)
	}
	return agg
}

// monthsBetween counts whole calendar months between two instants
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

func inWindow(at, start, end time.Time) bool {
	return !at.Before(start) && !at.After(end)
}
