package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripcircle/internal/types"
	"tripcircle/internal/weather"
)

// defaultWeatherAPIBaseURL is the production endpoint. Tests override it
// with an httptest server URL.
const defaultWeatherAPIBaseURL = "https://api.weatherapi.com/v1"

// weatherAPIUnknownLocationCode is the provider's error code for "no
// matching location found". The provider reports it inside a 400 response
// body, so classification needs the code, not just the status.
const weatherAPIUnknownLocationCode = 1006

// WeatherAPIClient fetches current conditions from weatherapi.com and maps
// responses into weather.Observation values. It implements weather.Provider.
//
// Failure classification happens here, at the data-source boundary:
//   - provider error 1006 (no matching location) -> types.ErrCodeNotFoundLocation
//   - anything else -> types.ErrCodeUpstreamWeather (or upstream_rate_limited
//     when the circuit breaker is open or the quota is exhausted)
type WeatherAPIClient struct {
	*BaseClient
	baseURL string
	apiKey  string
}

// NewWeatherAPIClient creates a client for the weatherapi.com current
// conditions endpoint. An empty baseURL selects the production API.
func NewWeatherAPIClient(httpClient *http.Client, baseURL, apiKey, userAgent string, opts ...BaseClientOption) *WeatherAPIClient {
	if baseURL == "" {
		baseURL = defaultWeatherAPIBaseURL
	}
	return &WeatherAPIClient{
		BaseClient: NewBaseClient(httpClient, "weatherapi", DefaultRetryPolicy(), userAgent, opts...),
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// weatherAPIResponse mirrors the subset of the provider's current.json
// payload the normalizer consumes. The free tier has no forecast endpoint,
// which is why the weather package synthesizes one.
type weatherAPIResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		FeelsC    float64 `json:"feelslike_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
		Humidity   int     `json:"humidity"`
		PressureMb float64 `json:"pressure_mb"`
		WindKph    float64 `json:"wind_kph"`
		WindDegree int     `json:"wind_degree"`
		Cloud      int     `json:"cloud"`
		VisKm      float64 `json:"vis_km"`
		PrecipMm   float64 `json:"precip_mm"`
		LastUpdatedEpoch int64 `json:"last_updated_epoch"`
	} `json:"current"`
}

// weatherAPIError is the provider's error envelope.
type weatherAPIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// conditionFromText maps the provider's free-text condition onto the
// canonical closed set. Unrecognized values degrade to Clouds rather than
// failing.
func conditionFromText(text string) types.Condition {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "thunder"):
		return types.ConditionThunderstorm
	case strings.Contains(lower, "snow"), strings.Contains(lower, "sleet"),
		strings.Contains(lower, "blizzard"), strings.Contains(lower, "ice"):
		return types.ConditionSnow
	case strings.Contains(lower, "rain"), strings.Contains(lower, "drizzle"),
		strings.Contains(lower, "shower"):
		return types.ConditionRain
	case strings.Contains(lower, "fog"):
		return types.ConditionFog
	case strings.Contains(lower, "mist"), strings.Contains(lower, "haze"):
		return types.ConditionMist
	case strings.Contains(lower, "sunny"), strings.Contains(lower, "clear"):
		return types.ConditionClear
	case strings.Contains(lower, "cloud"), strings.Contains(lower, "overcast"):
		return types.ConditionClouds
	default:
		return types.ConditionClouds
	}
}

// CurrentWeather implements weather.Provider.
func (c *WeatherAPIClient) CurrentWeather(ctx context.Context, location string) (*weather.Observation, error) {
	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s&aqi=no",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to build weather request",
			err,
		)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.NewAppError(
			types.ErrCodeUpstreamWeather,
			"failed to read weather source response",
			err,
		)
	}

	if resp.StatusCode != http.StatusOK {
		var provErr weatherAPIError
		if json.Unmarshal(body, &provErr) == nil &&
			provErr.Error.Code == weatherAPIUnknownLocationCode {
			return nil, types.NewAppErrorWithDetails(
				types.ErrCodeNotFoundLocation,
				"location not recognized by the weather source",
				nil,
				map[string]any{"location": location},
			)
		}
		return nil, types.NewAppError(
			types.ErrCodeUpstreamWeather,
			fmt.Sprintf("weather source returned status %d", resp.StatusCode),
			nil,
		)
	}

	var payload weatherAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, types.NewAppError(
			types.ErrCodeUpstreamWeather,
			"failed to decode weather source response",
			err,
		)
	}

	name := payload.Location.Name
	if name == "" {
		name = location
	}

	cur := payload.Current
	rain := cur.PrecipMm
	observedAt := time.Now().UTC()
	if cur.LastUpdatedEpoch > 0 {
		observedAt = time.Unix(cur.LastUpdatedEpoch, 0).UTC()
	}

	return &weather.Observation{
		Location:      name,
		TempC:         cur.TempC,
		FeelsLikeC:    cur.FeelsC,
		Condition:     conditionFromText(cur.Condition.Text),
		Description:   cur.Condition.Text,
		Humidity:      cur.Humidity,
		Pressure:      int(cur.PressureMb),
		WindSpeedKmh:  cur.WindKph,
		WindDirection: cur.WindDegree,
		CloudCover:    cur.Cloud,
		VisibilityM:   int(cur.VisKm * 1000),
		RainMm:        &rain,
		ObservedAt:    observedAt,
	}, nil
}
