package weather

import (
	"math"
	"math/rand/v2"
	"time"

	"tripcircle/internal/types"
)

// Forecast synthesis parameters.
const (
	// ForecastPoints is the fixed number of extrapolated points per forecast.
	ForecastPoints = 40

	// ForecastInterval is the spacing between consecutive points.
	ForecastInterval = 3 * time.Hour

	// pointsPerDay is the number of forecast points covering one daily cycle.
	pointsPerDay = 8

	// dailyCycleAmplitude is the amplitude of the sinusoidal day/night
	// temperature swing, in degrees C.
	dailyCycleAmplitude = 5.0

	// tempJitter is the half-width of the uniform temperature jitter, in
	// degrees C. Drawn independently for temperature and feels-like.
	tempJitter = 1.5

	humidityJitter   = 10.0
	windJitter       = 2.0
	cloudJitter      = 20.0
	maxSynthPrecipPr = 30.0
)

// Synthesize extrapolates a fixed-length forecast from a snapshot, starting
// at the given time. The rng parameter makes the jitter source injectable:
// tests pass a seeded generator to assert exact values, production callers
// pass a real random source. Calling twice with distinct generators yields
// different jitter; downstream aggregates must therefore be asserted as
// ranges, not exact values.
func Synthesize(snap *types.WeatherSnapshot, now time.Time, rng *rand.Rand) *types.Forecast {
	jitter := func(halfWidth float64) float64 {
		return (rng.Float64()*2 - 1) * halfWidth
	}

	points := make([]types.ForecastPoint, 0, ForecastPoints)
	for i := 0; i < ForecastPoints; i++ {
		cycle := dailyCycleAmplitude * math.Sin(2*math.Pi*float64(i)/pointsPerDay)

		temp := snap.Temperature.Current + cycle + jitter(tempJitter)
		feels := snap.Temperature.FeelsLike + cycle + jitter(tempJitter)

		humidity := float64(snap.Humidity) + jitter(humidityJitter)
		humidity = clamp(humidity, 0, 100)

		wind := snap.WindSpeed + jitter(windJitter)
		if wind < 0 {
			wind = 0
		}

		cloud := float64(snap.CloudCover) + jitter(cloudJitter)
		cloud = clamp(cloud, 0, 100)

		points = append(points, types.ForecastPoint{
			Timestamp: now.Add(time.Duration(i) * ForecastInterval),
			Temperature: types.TemperatureBlock{
				Current:   temp,
				FeelsLike: feels,
				Min:       temp - syntheticRangeOffset,
				Max:       temp + syntheticRangeOffset,
			},
			// The synthesis has no condition model; the current condition
			// and rain reading carry through to every point.
			Condition:         snap.Condition,
			Rain:              snap.Rain,
			Humidity:          int(math.Round(humidity)),
			WindSpeed:         wind,
			CloudCover:        int(math.Round(cloud)),
			PrecipProbability: rng.Float64() * maxSynthPrecipPr,
		})
	}

	return &types.Forecast{
		Location:    snap.Location,
		GeneratedAt: now,
		Points:      points,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
