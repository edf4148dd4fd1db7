// Package recommend evaluates feeding intake against age-bracket
// reference values. The reference table is fixed at build time and the
// evaluation is pure, so results are reproducible for any input.
package recommend

import "fmt"

// Level classifies a daily intake against the recommended range
type Level string

const (
	LevelBelow  Level = "below"
	LevelNormal Level = "normal"
	LevelAbove  Level = "above"
)

// Bracket holds the reference values for one age range
type Bracket struct {
	Key            string  // e.g. "0-6"
	MinMonths      int     // inclusive
	MaxMonths      int     // exclusive
	FeedingMinMl   float64 // daily intake lower bound, inclusive
	FeedingMaxMl   float64 // daily intake upper bound, inclusive
	FeedingsPerDay int
	WeightGainLo   float64 // kg per month
	WeightGainHi   float64
}

// brackets are ordered by age. An age below the first bracket clamps to
// the first, and an age past the last clamps to the last.
var brackets = []Bracket{
	{Key: "0-6", MinMonths: 0, MaxMonths: 6, FeedingMinMl: 600, FeedingMaxMl: 900, FeedingsPerDay: 6, WeightGainLo: 0.5, WeightGainHi: 1.0},
	{Key: "6-12", MinMonths: 6, MaxMonths: 12, FeedingMinMl: 800, FeedingMaxMl: 1200, FeedingsPerDay: 5, WeightGainLo: 0.3, WeightGainHi: 0.6},
	{Key: "12-24", MinMonths: 12, MaxMonths: 24, FeedingMinMl: 1000, FeedingMaxMl: 1500, FeedingsPerDay: 4, WeightGainLo: 0.2, WeightGainHi: 0.4},
}

// BracketFor returns the reference bracket for an age in months.
// Out-of-range ages clamp to the nearest bracket rather than failing.
func BracketFor(ageMonths int) Bracket {
	if ageMonths < brackets[0].MinMonths {
		return brackets[0]
	}
	for _, b := range brackets {
		if ageMonths >= b.MinMonths && ageMonths < b.MaxMonths {
			return b
		}
	}
	return brackets[len(brackets)-1]
}

// Advice is the outcome of classifying a daily intake
type Advice struct {
	Level   Level
	Bracket Bracket
	Message string
}

// ClassifyFeeding compares an average daily intake in milliliters with
// the bracket for the given age. Values on the bounds count as normal.
func ClassifyFeeding(ageMonths int, avgDailyMl float64) Advice {
	bracket := BracketFor(ageMonths)

	switch {
	case avgDailyMl < bracket.FeedingMinMl:
		return Advice{
			Level:   LevelBelow,
			Bracket: bracket,
			Message: fmt.Sprintf("日均喂养量%.0fml，低于推荐值%.0fml", avgDailyMl, bracket.FeedingMinMl),
		}
	case avgDailyMl > bracket.FeedingMaxMl:
		return Advice{
			Level:   LevelAbove,
			Bracket: bracket,
			Message: fmt.Sprintf("日均喂养量%.0fml，超过推荐值%.0fml", avgDailyMl, bracket.FeedingMaxMl),
		}
	default:
		return Advice{
			Level:   LevelNormal,
			Bracket: bracket,
			Message: fmt.Sprintf("日均喂养量%.0fml，在正常范围内", avgDailyMl),
		}
	}
}

// ClassifyWeightGain compares a monthly weight gain in kilograms with
// the bracket for the given age.
func ClassifyWeightGain(ageMonths int, gainKgPerMonth float64) Advice {
	bracket := BracketFor(ageMonths)

	switch {
	case gainKgPerMonth < bracket.WeightGainLo:
		return Advice{
			Level:   LevelBelow,
			Bracket: bracket,
			Message: fmt.Sprintf("月均体重增长%.2fkg，低于参考值%.1fkg", gainKgPerMonth, bracket.WeightGainLo),
		}
	case gainKgPerMonth > bracket.WeightGainHi:
		return Advice{
			Level:   LevelAbove,
			Bracket: bracket,
			Message: fmt.Sprintf("月均体重增长%.2fkg，超过参考值%.1fkg", gainKgPerMonth, bracket.WeightGainHi),
		}
	default:
		return Advice{
			Level:   LevelNormal,
			Bracket: bracket,
			Message: fmt.Sprintf("月均体重增长%.2fkg，在正常范围内", gainKgPerMonth),
		}
	}
}
