package weather

import (
	"time"

	"tripcircle/internal/types"
)

// Daily verdict thresholds.
const (
	poorPrecipProbThreshold = 70.0
	fairPrecipProbThreshold = 40.0
)

// SummarizeDaily buckets forecast points by calendar date and aggregates each
// day into a DailySummary. Days appear in order of first occurrence. The
// dominant condition is the mode of the day's condition categories; ties are
// broken by whichever tied condition was encountered first.
func SummarizeDaily(points []types.ForecastPoint) []types.DailySummary {
	type bucket struct {
		date   time.Time
		points []types.ForecastPoint
	}

	var order []string
	buckets := make(map[string]*bucket)

	for _, p := range points {
		y, m, d := p.Timestamp.Date()
		date := time.Date(y, m, d, 0, 0, 0, 0, p.Timestamp.Location())
		key := date.Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{date: date}
			buckets[key] = b
			order = append(order, key)
		}
		b.points = append(b.points, p)
	}

	summaries := make([]types.DailySummary, 0, len(order))
	for _, key := range order {
		summaries = append(summaries, summarizeDay(buckets[key].date, buckets[key].points))
	}
	return summaries
}

func summarizeDay(date time.Time, points []types.ForecastPoint) types.DailySummary {
	s := types.DailySummary{
		Date:    date,
		TempMin: points[0].Temperature.Current,
		TempMax: points[0].Temperature.Current,
	}

	var (
		tempSum     float64
		humiditySum float64
		windSum     float64
		precipSum   float64
	)

	// Condition counts with first-occurrence order preserved for tie-breaks.
	counts := make(map[types.Condition]int)
	var condOrder []types.Condition

	for _, p := range points {
		t := p.Temperature.Current
		if t < s.TempMin {
			s.TempMin = t
		}
		if t > s.TempMax {
			s.TempMax = t
		}
		tempSum += t
		humiditySum += float64(p.Humidity)
		windSum += p.WindSpeed
		s.TotalRain += p.Rain
		precipSum += p.PrecipProbability
		if p.PrecipProbability > s.MaxPrecipProb {
			s.MaxPrecipProb = p.PrecipProbability
		}

		if _, seen := counts[p.Condition]; !seen {
			condOrder = append(condOrder, p.Condition)
		}
		counts[p.Condition]++
	}

	n := float64(len(points))
	s.TempAvg = tempSum / n
	s.AvgHumidity = humiditySum / n
	s.AvgWindSpeed = windSum / n
	s.AvgPrecipProb = precipSum / n

	best := -1
	for _, c := range condOrder {
		if counts[c] > best {
			best = counts[c]
			s.DominantCondition = c
		}
	}

	s.Verdict = dayVerdict(s)
	return s
}

// dayVerdict derives the three-level suitability rating for a day.
func dayVerdict(s types.DailySummary) types.Verdict {
	switch {
	case s.AvgPrecipProb > poorPrecipProbThreshold,
		s.TotalRain > 0,
		s.DominantCondition == types.ConditionThunderstorm:
		return types.VerdictPoor
	case s.AvgPrecipProb > fairPrecipProbThreshold,
		s.DominantCondition == types.ConditionRain:
		return types.VerdictFair
	default:
		return types.VerdictGood
	}
}
