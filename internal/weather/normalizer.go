// Package weather implements the weather data layer for the TripCircle
// advisory engine: normalization of upstream provider observations into
// canonical snapshots, synthetic multi-day forecast extrapolation, daily
// aggregation, and best-time-of-day selection.
//
// The forecast synthesis is an explicit approximation: the provider's free
// tier exposes only current conditions, so future points are extrapolated
// from the current reading with a sinusoidal daily cycle plus jitter. It is
// a known accuracy limitation, not a bug.
package weather

import (
	"math"
	"time"

	"tripcircle/internal/types"
)

// Observation is the raw current-weather reading returned by a provider
// client, before normalization. Units are the provider's: temperatures in
// Celsius (unrounded), wind in km/h.
type Observation struct {
	Location      string
	TempC         float64
	FeelsLikeC    float64
	TempMinC      *float64 // nil when the provider gives no range
	TempMaxC      *float64
	Condition     types.Condition
	Description   string
	Humidity      int
	Pressure      int
	WindSpeedKmh  float64
	WindDirection int
	CloudCover    int
	VisibilityM   int
	RainMm        *float64 // nil when absent upstream
	ObservedAt    time.Time
}

// syntheticRangeOffset compensates for the missing min/max range on the
// provider's current-weather endpoint: when no range is reported, the
// snapshot carries current +/- 3 degrees C.
const syntheticRangeOffset = 3.0

// kmhPerMs converts km/h wind speeds to m/s.
const kmhPerMs = 3.6

// Normalize converts a provider observation into a canonical WeatherSnapshot.
// Temperatures are rounded to the nearest integer, wind speed is converted
// to m/s, and rain defaults to 0 when the provider omits it.
func Normalize(obs Observation) *types.WeatherSnapshot {
	current := math.Round(obs.TempC)

	min := current - syntheticRangeOffset
	if obs.TempMinC != nil {
		min = math.Round(*obs.TempMinC)
	}
	max := current + syntheticRangeOffset
	if obs.TempMaxC != nil {
		max = math.Round(*obs.TempMaxC)
	}

	rain := 0.0
	if obs.RainMm != nil {
		rain = *obs.RainMm
	}

	return &types.WeatherSnapshot{
		Location: obs.Location,
		Temperature: types.TemperatureBlock{
			Current:   current,
			FeelsLike: math.Round(obs.FeelsLikeC),
			Min:       min,
			Max:       max,
		},
		Condition:     obs.Condition,
		Description:   obs.Description,
		Humidity:      obs.Humidity,
		Pressure:      obs.Pressure,
		WindSpeed:     obs.WindSpeedKmh / kmhPerMs,
		WindDirection: obs.WindDirection,
		CloudCover:    obs.CloudCover,
		Visibility:    obs.VisibilityM,
		Rain:          rain,
		ObservedAt:    obs.ObservedAt,
	}
}
