package types

import "time"

// TemperatureBlock groups the temperature readings carried by a snapshot or
// forecast point. All values are degrees Celsius, rounded to the nearest
// integer by the normalizer.
type TemperatureBlock struct {
	Current   float64 `json:"current"`
	FeelsLike float64 `json:"feels_like"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// WeatherSnapshot is a single point-in-time weather reading for a location.
// It is immutable once constructed: downstream components read from it but
// never modify it.
type WeatherSnapshot struct {
	Location      string           `json:"location"`
	Temperature   TemperatureBlock `json:"temperature"`
	Condition     Condition        `json:"condition"`
	Description   string           `json:"description"`
	Humidity      int              `json:"humidity"`    // percent
	Pressure      int              `json:"pressure"`    // hPa
	WindSpeed     float64          `json:"wind_speed"`  // m/s
	WindDirection int              `json:"wind_direction"` // degrees
	CloudCover    int              `json:"cloud_cover"` // percent
	Visibility    int              `json:"visibility"`  // metres
	Rain          float64          `json:"rain"`        // mm, defaults to 0 when absent upstream

	// PrecipProbability is optional: the current-weather endpoint of the
	// provider does not report it, but callers assessing forecast-derived
	// conditions can supply one.
	PrecipProbability *float64 `json:"precip_probability,omitempty"`

	ObservedAt time.Time `json:"observed_at"`
}

// ForecastPoint is one extrapolated future reading, derived from a snapshot.
type ForecastPoint struct {
	Timestamp         time.Time        `json:"timestamp"`
	Temperature       TemperatureBlock `json:"temperature"`
	Condition         Condition        `json:"condition"`
	Humidity          int              `json:"humidity"`
	WindSpeed         float64          `json:"wind_speed"`
	CloudCover        int              `json:"cloud_cover"`
	Rain              float64          `json:"rain"`
	PrecipProbability float64          `json:"precip_probability"` // percent 0-100
}

// Forecast is a fixed-length sequence of extrapolated points for a location.
// The synthesis is an approximation of a real multi-day forecast; see the
// weather package documentation for the accuracy caveat.
type Forecast struct {
	Location    string          `json:"location"`
	GeneratedAt time.Time       `json:"generated_at"`
	Points      []ForecastPoint `json:"points"`
}

// DailySummary aggregates one calendar day's forecast points.
type DailySummary struct {
	Date              time.Time `json:"date"` // midnight, local
	TempMin           float64   `json:"temp_min"`
	TempMax           float64   `json:"temp_max"`
	TempAvg           float64   `json:"temp_avg"`
	DominantCondition Condition `json:"dominant_condition"`
	AvgHumidity       float64   `json:"avg_humidity"`
	AvgWindSpeed      float64   `json:"avg_wind_speed"`
	TotalRain         float64   `json:"total_rain"`
	MaxPrecipProb     float64   `json:"max_precip_prob"`
	AvgPrecipProb     float64   `json:"avg_precip_prob"`
	Verdict           Verdict   `json:"verdict"`
}

// SegmentScore is the comfort score computed for one day segment.
type SegmentScore struct {
	Segment DaySegment `json:"segment"`
	Score   float64    `json:"score"`
}

// BestTime is the result of best-time-of-day selection over a forecast.
type BestTime struct {
	Segment DaySegment     `json:"segment"`
	Scores  []SegmentScore `json:"scores"`
}
