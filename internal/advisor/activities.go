package advisor

import (
	"fmt"

	"tripcircle/internal/types"
)

// Suitability scoring parameters from the compatibility table. Deductions
// stack; the final score clamps at 0.
const (
	baseActivityScore = 100

	avoidConditionPenalty = 40
	temperaturePenalty    = 20
	windPenalty           = 15
	precipProbPenalty     = 25

	unknownActivityScore = 50

	tierExcellentMin = 70
	tierGoodMin      = 50
	tierFairMin      = 30
)

// Best-day scoring penalties, applied per DailySummary.
const (
	bestDayAvoidPenalty    = 40
	bestDayNotIdealPenalty = 10
	bestDayTempPenalty     = 20
	bestDayPrecipPenalty   = 30
)

// Alternative-suggestion rule table boundaries. The table covers exactly
// three regimes (rainy, clear-and-comfortable, clear-and-hot); anything else
// yields no alternatives. That gap is documented behavior, preserved as-is.
const (
	comfortableTempMin = 15.0
	hotTempMin         = 28.0

	maxAlternatives = 4
)

// Assess evaluates a free-text activity name against a weather snapshot and
// returns the scored assessment. Unresolvable names get the neutral
// "unknown" tier with no penalty scoring applied.
func (c *Catalog) Assess(activity string, snap *types.WeatherSnapshot) types.ActivityAssessment {
	profile := c.Resolve(activity)
	if profile == nil {
		return types.ActivityAssessment{
			Activity: activity,
			Tier:     types.TierUnknown,
			Score:    unknownActivityScore,
		}
	}

	a := types.ActivityAssessment{
		Activity:     activity,
		CanonicalKey: profile.Key,
		Score:        baseActivityScore,
	}

	if conditionIn(snap.Condition, profile.Avoid) {
		a.Score -= avoidConditionPenalty
		a.Issues = append(a.Issues,
			fmt.Sprintf("%s conditions are unsuitable for %s", snap.Condition, profile.Key))
		a.Recommendations = append(a.Recommendations,
			"consider an indoor alternative or wait for conditions to improve")
	}

	temp := snap.Temperature.Current
	switch {
	case temp < profile.TempMin:
		a.Score -= temperaturePenalty
		a.Issues = append(a.Issues,
			fmt.Sprintf("%.0f°C is colder than ideal for %s", temp, profile.Key))
		a.Recommendations = append(a.Recommendations,
			"dress warmly in layers")
	case temp > profile.TempMax:
		a.Score -= temperaturePenalty
		a.Issues = append(a.Issues,
			fmt.Sprintf("%.0f°C is hotter than ideal for %s", temp, profile.Key))
		a.Recommendations = append(a.Recommendations,
			"plan for early morning or evening and stay hydrated")
	}

	if snap.WindSpeed > profile.MaxWind {
		a.Score -= windPenalty
		a.Issues = append(a.Issues,
			fmt.Sprintf("wind of %.1f m/s exceeds the comfortable limit for %s", snap.WindSpeed, profile.Key))
		a.Recommendations = append(a.Recommendations,
			"check for sheltered spots or a calmer time slot")
	}

	if snap.PrecipProbability != nil && *snap.PrecipProbability > profile.MaxPrecipProb {
		a.Score -= precipProbPenalty
		a.Issues = append(a.Issues,
			fmt.Sprintf("%.0f%% chance of rain is high for %s", *snap.PrecipProbability, profile.Key))
		a.Recommendations = append(a.Recommendations,
			"bring waterproof gear or have a backup plan")
	}

	if a.Score < 0 {
		a.Score = 0
	}
	a.Tier = tierForScore(a.Score)
	return a
}

// tierForScore maps a clamped score onto its suitability tier.
func tierForScore(score int) types.SuitabilityTier {
	switch {
	case score >= tierExcellentMin:
		return types.TierExcellent
	case score >= tierGoodMin:
		return types.TierGood
	case score >= tierFairMin:
		return types.TierFair
	default:
		return types.TierPoor
	}
}

// BestDay scores each daily summary for the activity and returns the best
// one. Ties are broken by original day order (first max wins). Returns nil
// for an unknown activity or empty day list.
func (c *Catalog) BestDay(activity string, days []types.DailySummary) *types.DailySummary {
	profile := c.Resolve(activity)
	if profile == nil || len(days) == 0 {
		return nil
	}

	bestIdx := -1
	bestScore := -1
	for i, day := range days {
		score := baseActivityScore
		if conditionIn(day.DominantCondition, profile.Avoid) {
			score -= bestDayAvoidPenalty
		} else if !conditionIn(day.DominantCondition, profile.Ideal) {
			score -= bestDayNotIdealPenalty
		}
		if day.TempAvg < profile.TempMin || day.TempAvg > profile.TempMax {
			score -= bestDayTempPenalty
		}
		if day.MaxPrecipProb > profile.MaxPrecipProb {
			score -= bestDayPrecipPenalty
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	day := days[bestIdx]
	return &day
}

// alternativeSets maps each covered weather regime to its proposal list, in
// proposal order. Entries must be catalog keys.
var (
	indoorAlternatives  = []string{"museum", "shopping", "spa", "cinema"}
	outdoorAlternatives = []string{"hiking", "sightseeing", "cycling", "picnic"}
	waterAlternatives   = []string{"swimming", "snorkeling", "surfing", "kayaking"}
)

// Alternatives proposes up to four catalog activities not already planned,
// chosen from the rule table keyed on current conditions: rainy or stormy
// weather proposes the indoor set, clear and comfortable the outdoor set,
// clear and hot the water set. Other condition/temperature combinations
// return nothing; alternatives may legitimately be empty.
func (c *Catalog) Alternatives(snap *types.WeatherSnapshot, planned []string) []string {
	var candidates []string
	switch {
	case snap.Condition == types.ConditionRain || snap.Condition == types.ConditionThunderstorm:
		candidates = indoorAlternatives
	case snap.Condition == types.ConditionClear && snap.Temperature.Current >= hotTempMin:
		candidates = waterAlternatives
	case snap.Condition == types.ConditionClear && snap.Temperature.Current >= comfortableTempMin:
		candidates = outdoorAlternatives
	default:
		return nil
	}

	plannedKeys := make(map[string]struct{}, len(planned))
	for _, p := range planned {
		if profile := c.Resolve(p); profile != nil {
			plannedKeys[profile.Key] = struct{}{}
		}
	}

	var out []string
	for _, key := range candidates {
		if _, ok := plannedKeys[key]; ok {
			continue
		}
		out = append(out, key)
		if len(out) == maxAlternatives {
			break
		}
	}
	return out
}
