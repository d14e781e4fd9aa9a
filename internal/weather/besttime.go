package weather

import (
	"tripcircle/internal/types"
)

// Best-time scoring parameters.
const (
	baseSegmentScore    = 100.0
	rainPenalty         = 20.0
	uncomfortablePenalty = 10.0
	comfortTempMin      = 10.0
	comfortTempMax      = 35.0
)

// daySegments enumerates the scored segments in tie-break order: when two
// segments score equally, the earlier one wins.
var daySegments = []types.DaySegment{
	types.SegmentMorning,
	types.SegmentAfternoon,
	types.SegmentEvening,
}

// segmentForHour maps a local hour to its day segment. Hours before 06:00
// belong to no scored segment.
func segmentForHour(hour int) (types.DaySegment, bool) {
	switch {
	case hour >= 6 && hour < 12:
		return types.SegmentMorning, true
	case hour >= 12 && hour < 18:
		return types.SegmentAfternoon, true
	case hour >= 18:
		return types.SegmentEvening, true
	default:
		return "", false
	}
}

// BestTimeOfDay partitions forecast points into morning, afternoon, and
// evening slots by local hour and scores each slot by comfort heuristics:
// start at 100, subtract the slot's average precipitation probability,
// subtract 20 more if any point in the slot has nonzero rain, subtract 10
// more if the average temperature falls outside the comfort band. Scores
// floor at 0 and an empty slot scores 0. The highest-scoring slot wins;
// ties go to the earliest segment.
func BestTimeOfDay(points []types.ForecastPoint) types.BestTime {
	type slot struct {
		tempSum   float64
		precipSum float64
		anyRain   bool
		count     int
	}
	slots := make(map[types.DaySegment]*slot, len(daySegments))
	for _, seg := range daySegments {
		slots[seg] = &slot{}
	}

	for _, p := range points {
		seg, ok := segmentForHour(p.Timestamp.Hour())
		if !ok {
			continue
		}
		s := slots[seg]
		s.tempSum += p.Temperature.Current
		s.precipSum += p.PrecipProbability
		if p.Rain > 0 {
			s.anyRain = true
		}
		s.count++
	}

	result := types.BestTime{Segment: daySegments[0]}
	bestScore := -1.0

	for _, seg := range daySegments {
		s := slots[seg]
		score := 0.0
		if s.count > 0 {
			n := float64(s.count)
			score = baseSegmentScore - s.precipSum/n
			if s.anyRain {
				score -= rainPenalty
			}
			avgTemp := s.tempSum / n
			if avgTemp < comfortTempMin || avgTemp > comfortTempMax {
				score -= uncomfortablePenalty
			}
			if score < 0 {
				score = 0
			}
		}
		result.Scores = append(result.Scores, types.SegmentScore{Segment: seg, Score: score})
		if score > bestScore {
			bestScore = score
			result.Segment = seg
		}
	}

	return result
}
