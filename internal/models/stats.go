package models

// FeedingAggregate summarizes feeding records over a time window.
// Averages are rounded the same way the statistics screens display them.
type FeedingAggregate struct {
	Count        int     `json:"count"`
	TotalMl      float64 `json:"totalMl"`
	AvgAmountMl  float64 `json:"avgAmountMl"`  // per feeding
	AvgDailyMl   float64 `json:"avgDailyMl"`   // per day in window
	AvgFrequency float64 `json:"avgFrequency"` // feedings per day, one decimal
	Days         int     `json:"days"`
}

// DiaperAggregate summarizes diaper records over a time window
type DiaperAggregate struct {
	Count       int     `json:"count"`
	AvgDaily    float64 `json:"avgDaily"` // changes per day, one decimal
	NormalCount int     `json:"normalCount"`
	NormalRate  int     `json:"normalRate"` // percentage, rounded
}

// GrowthAggregate summarizes growth measurements over a time window
type GrowthAggregate struct {
	HasData         bool    `json:"hasData"`
	LatestHeightCm  float64 `json:"latestHeightCm"`
	LatestWeightKg  float64 `json:"latestWeightKg"`
	HeightGainCm    string  `json:"heightGainCm"`  // one decimal, empty without two points
	WeightGainKg    string  `json:"weightGainKg"`  // one decimal, empty without two points
	AvgWeightGainKg string  `json:"avgWeightGain"` // per month, two decimals
}

// TodayStatistics is the server's per-baby daily summary
type TodayStatistics struct {
	FeedingCount   int     `json:"feedingCount"`
	FeedingTotalMl float64 `json:"feedingTotalMl"`
	DiaperCount    int     `json:"diaperCount"`
	Suggestion     string  `json:"suggestion,omitempty"`
}

// SeriesPoint is one bucket of a statistics chart series
type SeriesPoint struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Count   int     `json:"count"`
	Display string  `json:"display,omitempty"`
}
