package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcircle/internal/core"
	"tripcircle/internal/types"
	"tripcircle/internal/weather"
)

type mockWeatherService struct {
	snapshotFn   func(ctx context.Context, location string) (*types.WeatherSnapshot, error)
	getOutlookFn func(ctx context.Context, location string) (*weather.Outlook, error)
	compareFn    func(ctx context.Context, locations []string) ([]weather.DestinationReport, error)
}

func (m *mockWeatherService) Snapshot(ctx context.Context, location string) (*types.WeatherSnapshot, error) {
	return m.snapshotFn(ctx, location)
}

func (m *mockWeatherService) GetOutlook(ctx context.Context, location string) (*weather.Outlook, error) {
	return m.getOutlookFn(ctx, location)
}

func (m *mockWeatherService) Compare(ctx context.Context, locations []string) ([]weather.DestinationReport, error) {
	return m.compareFn(ctx, locations)
}

func newWeatherRouter(ws WeatherService) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewWeatherHandler(ws, core.NewValidator(logger), logger)

	router := chi.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func fiveDayOutlook(location string) *weather.Outlook {
	days := make([]types.DailySummary, 5)
	for i := range days {
		days[i] = types.DailySummary{
			Date:    time.Date(2026, 9, 10+i, 0, 0, 0, 0, time.UTC),
			TempAvg: 22,
			Verdict: types.VerdictGood,
		}
	}
	return &weather.Outlook{
		Snapshot: &types.WeatherSnapshot{Location: location, Condition: types.ConditionClear},
		Forecast: &types.Forecast{Location: location},
		Days:     days,
		BestTime: types.BestTime{Segment: types.SegmentMorning},
	}
}

func TestCurrentRequiresLocation(t *testing.T) {
	router := newWeatherRouter(&mockWeatherService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/weather/current", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(types.ErrCodeValidationMissingField), errorCode(t, rec))
}

func TestCurrentReturnsSnapshot(t *testing.T) {
	ws := &mockWeatherService{
		snapshotFn: func(ctx context.Context, location string) (*types.WeatherSnapshot, error) {
			assert.Equal(t, "Lisbon", location)
			return &types.WeatherSnapshot{
				Location:  "Lisbon",
				Condition: types.ConditionClear,
				Temperature: types.TemperatureBlock{
					Current: 24,
				},
			}, nil
		},
	}
	router := newWeatherRouter(ws)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/weather/current?location=Lisbon", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	var snapshot types.WeatherSnapshot
	require.NoError(t, json.Unmarshal(envelope["data"], &snapshot))
	assert.Equal(t, "Lisbon", snapshot.Location)
	assert.InDelta(t, 24, snapshot.Temperature.Current, 0.001)
}

func TestCurrentLocationNotFound(t *testing.T) {
	ws := &mockWeatherService{
		snapshotFn: func(ctx context.Context, location string) (*types.WeatherSnapshot, error) {
			return nil, types.NewAppError(types.ErrCodeNotFoundLocation, "location not recognized", nil)
		},
	}
	router := newWeatherRouter(ws)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/weather/current?location=Xyzzy", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(types.ErrCodeNotFoundLocation), errorCode(t, rec))
}

func TestForecastDefaultsToFiveDays(t *testing.T) {
	ws := &mockWeatherService{
		getOutlookFn: func(ctx context.Context, location string) (*weather.Outlook, error) {
			return fiveDayOutlook(location), nil
		},
	}
	router := newWeatherRouter(ws)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/weather/forecast?location=Lisbon", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	var resp ForecastResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &resp))
	assert.Equal(t, "Lisbon", resp.Location)
	assert.Len(t, resp.Days, 5)
	assert.Equal(t, types.SegmentMorning, resp.BestTime.Segment)
}

func TestForecastTrimsToRequestedDays(t *testing.T) {
	ws := &mockWeatherService{
		getOutlookFn: func(ctx context.Context, location string) (*weather.Outlook, error) {
			return fiveDayOutlook(location), nil
		},
	}
	router := newWeatherRouter(ws)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/weather/forecast?location=Lisbon&days=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	var resp ForecastResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &resp))
	assert.Len(t, resp.Days, 2)
}

func TestForecastRejectsOutOfRangeDays(t *testing.T) {
	router := newWeatherRouter(&mockWeatherService{})

	for _, days := range []string{"0", "6", "abc", "-1"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/weather/forecast?location=Lisbon&days="+days, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code, "days=%s", days)
		assert.Equal(t, string(types.ErrCodeValidationInvalidField), errorCode(t, rec), "days=%s", days)
	}
}

func TestCompareReturnsReports(t *testing.T) {
	ws := &mockWeatherService{
		compareFn: func(ctx context.Context, locations []string) ([]weather.DestinationReport, error) {
			require.Equal(t, []string{"Lisbon", "Porto"}, locations)
			return []weather.DestinationReport{
				{Location: "Lisbon", Verdict: types.VerdictGood},
				{Location: "Porto", Error: "weather data unavailable"},
			}, nil
		},
	}
	router := newWeatherRouter(ws)

	payload := `{"locations":["Lisbon","Porto"]}`
	req := httptest.NewRequest(http.MethodPost, "/weather/compare", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	var reports []weather.DestinationReport
	require.NoError(t, json.Unmarshal(envelope["data"], &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, types.VerdictGood, reports[0].Verdict)
	assert.Equal(t, "weather data unavailable", reports[1].Error)
}

func TestCompareRejectsSingleLocation(t *testing.T) {
	router := newWeatherRouter(&mockWeatherService{})

	req := httptest.NewRequest(http.MethodPost, "/weather/compare", bytes.NewBufferString(`{"locations":["Lisbon"]}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(types.ErrCodeValidationInvalidField), errorCode(t, rec))
}
