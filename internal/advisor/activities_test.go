package advisor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcircle/internal/types"
)

func snapshotWith(cond types.Condition, temp, wind float64) *types.WeatherSnapshot {
	return &types.WeatherSnapshot{
		Location:    "Testville",
		Temperature: types.TemperatureBlock{Current: temp, FeelsLike: temp},
		Condition:   cond,
		WindSpeed:   wind,
	}
}

func TestAssessIdealConditionsIsExcellent(t *testing.T) {
	c := DefaultCatalog()

	a := c.Assess("hiking", snapshotWith(types.ConditionClear, 20, 3))

	assert.Equal(t, 100, a.Score)
	assert.Equal(t, types.TierExcellent, a.Tier)
	assert.Empty(t, a.Issues)
	assert.Equal(t, "hiking", a.CanonicalKey)
}

func TestAssessAvoidConditionPenalty(t *testing.T) {
	c := DefaultCatalog()

	a := c.Assess("hiking", snapshotWith(types.ConditionRain, 20, 3))

	assert.Equal(t, 60, a.Score)
	assert.Equal(t, types.TierGood, a.Tier)
	require.NotEmpty(t, a.Issues)
	assert.Contains(t, a.Issues[0], "Rain")
	require.NotEmpty(t, a.Recommendations)
}

func TestAssessStackedPenaltiesClampAtZero(t *testing.T) {
	c := DefaultCatalog()

	precip := 90.0
	snap := snapshotWith(types.ConditionThunderstorm, -10, 20)
	snap.PrecipProbability = &precip

	// Avoid (40) + temp (20) + wind (15) + precip (25) = 100 off the base.
	a := c.Assess("hiking", snap)

	assert.Equal(t, 0, a.Score)
	assert.Equal(t, types.TierPoor, a.Tier)
	assert.Len(t, a.Issues, 4)
}

func TestAssessPrecipPenaltyRequiresProbability(t *testing.T) {
	c := DefaultCatalog()

	// No PrecipProbability on the snapshot: the precip rule cannot fire.
	a := c.Assess("hiking", snapshotWith(types.ConditionClear, 20, 3))
	assert.Equal(t, 100, a.Score)

	precip := 80.0
	snap := snapshotWith(types.ConditionClear, 20, 3)
	snap.PrecipProbability = &precip
	a = c.Assess("hiking", snap)
	assert.Equal(t, 75, a.Score)
}

func TestAssessUnknownActivity(t *testing.T) {
	c := DefaultCatalog()

	a := c.Assess("quantum knitting", snapshotWith(types.ConditionClear, 20, 3))

	assert.Equal(t, types.TierUnknown, a.Tier)
	assert.Equal(t, unknownActivityScore, a.Score)
	assert.Empty(t, a.CanonicalKey)
	assert.Empty(t, a.Issues)
}

func TestTierBoundaries(t *testing.T) {
	assert.Equal(t, types.TierExcellent, tierForScore(70))
	assert.Equal(t, types.TierGood, tierForScore(69))
	assert.Equal(t, types.TierGood, tierForScore(50))
	assert.Equal(t, types.TierFair, tierForScore(49))
	assert.Equal(t, types.TierFair, tierForScore(30))
	assert.Equal(t, types.TierPoor, tierForScore(29))
	assert.Equal(t, types.TierPoor, tierForScore(0))
}

func day(date time.Time, cond types.Condition, tempAvg, maxPrecip float64) types.DailySummary {
	return types.DailySummary{
		Date:              date,
		TempAvg:           tempAvg,
		DominantCondition: cond,
		MaxPrecipProb:     maxPrecip,
	}
}

func TestBestDayPrefersIdealConditions(t *testing.T) {
	c := DefaultCatalog()
	d1 := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	days := []types.DailySummary{
		day(d1, types.ConditionRain, 20, 80),  // avoid + precip
		day(d2, types.ConditionClear, 20, 10), // clean
	}

	best := c.BestDay("hiking", days)
	require.NotNil(t, best)
	assert.Equal(t, d2, best.Date)
}

func TestBestDayTieGoesToFirst(t *testing.T) {
	c := DefaultCatalog()
	d1 := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	days := []types.DailySummary{
		day(d1, types.ConditionClear, 20, 10),
		day(d2, types.ConditionClear, 20, 10),
	}

	best := c.BestDay("hiking", days)
	require.NotNil(t, best)
	assert.Equal(t, d1, best.Date)
}

func TestBestDayNilForUnknownOrEmpty(t *testing.T) {
	c := DefaultCatalog()

	assert.Nil(t, c.BestDay("quantum knitting", []types.DailySummary{{}}))
	assert.Nil(t, c.BestDay("hiking", nil))
}

func TestAlternativesRegimes(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		name string
		snap *types.WeatherSnapshot
		want []string
	}{
		{
			name: "rain proposes indoor set",
			snap: snapshotWith(types.ConditionRain, 20, 3),
			want: []string{"museum", "shopping", "spa", "cinema"},
		},
		{
			name: "thunderstorm proposes indoor set",
			snap: snapshotWith(types.ConditionThunderstorm, 20, 3),
			want: []string{"museum", "shopping", "spa", "cinema"},
		},
		{
			name: "clear and hot proposes water set",
			snap: snapshotWith(types.ConditionClear, 30, 3),
			want: []string{"swimming", "snorkeling", "surfing", "kayaking"},
		},
		{
			name: "clear and comfortable proposes outdoor set",
			snap: snapshotWith(types.ConditionClear, 20, 3),
			want: []string{"hiking", "sightseeing", "cycling", "picnic"},
		},
		{
			name: "cloudy cool is outside the table",
			snap: snapshotWith(types.ConditionClouds, 12, 3),
			want: nil,
		},
		{
			name: "clear but cold is outside the table",
			snap: snapshotWith(types.ConditionClear, 5, 3),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Alternatives(tt.snap, nil))
		})
	}
}

func TestAlternativesExcludePlanned(t *testing.T) {
	c := DefaultCatalog()

	got := c.Alternatives(snapshotWith(types.ConditionRain, 20, 3), []string{"museum day", "shopping"})
	assert.Equal(t, []string{"spa", "cinema"}, got)
}
