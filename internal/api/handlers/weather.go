package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tripcircle/internal/core"
	"tripcircle/internal/types"
	"tripcircle/internal/weather"
)

// WeatherService is the slice of the weather service used by this handler.
type WeatherService interface {
	Snapshot(ctx context.Context, location string) (*types.WeatherSnapshot, error)
	GetOutlook(ctx context.Context, location string) (*weather.Outlook, error)
	Compare(ctx context.Context, locations []string) ([]weather.DestinationReport, error)
}

// CompareRequest is the request body for POST /v1/weather/compare.
type CompareRequest struct {
	Locations []string `json:"locations" validate:"required,min=2,max=5,dive,required,max=200"`
}

// ForecastResponse is the response body for GET /v1/weather/forecast.
type ForecastResponse struct {
	Location string               `json:"location"`
	Days     []types.DailySummary `json:"days"`
	BestTime types.BestTime       `json:"best_time"`
}

const (
	defaultForecastDays = 5
	maxForecastDays     = 5
)

// WeatherHandler exposes current conditions, the multi-day outlook, and
// destination comparison.
type WeatherHandler struct {
	weather   WeatherService
	validator *core.Validator
	logger    *slog.Logger
}

// NewWeatherHandler creates a WeatherHandler with the provided dependencies.
func NewWeatherHandler(ws WeatherService, v *core.Validator, l *slog.Logger) *WeatherHandler {
	if l == nil {
		l = slog.Default()
	}
	return &WeatherHandler{
		weather:   ws,
		validator: v,
		logger:    l,
	}
}

// RegisterRoutes mounts weather routes on the provided chi.Router.
func (h *WeatherHandler) RegisterRoutes(r chi.Router) {
	r.Route("/weather", func(r chi.Router) {
		r.Get("/current", h.Current)
		r.Get("/forecast", h.Forecast)
		r.Post("/compare", h.Compare)
	})
}

// Current handles GET /v1/weather/current?location=.
func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"location query parameter is required",
			nil,
		))
		return
	}

	snapshot, err := h.weather.Snapshot(r.Context(), location)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: snapshot})
}

// Forecast handles GET /v1/weather/forecast?location=&days=. Days may be
// 1 through 5 and defaults to 5.
func (h *WeatherHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"location query parameter is required",
			nil,
		))
		return
	}

	days := defaultForecastDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 || parsed > maxForecastDays {
			core.Error(w, r, types.NewAppError(
				types.ErrCodeValidationInvalidField,
				"days must be a number between 1 and 5",
				nil,
			))
			return
		}
		days = parsed
	}

	outlook, err := h.weather.GetOutlook(r.Context(), location)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	summaries := outlook.Days
	if len(summaries) > days {
		summaries = summaries[:days]
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: ForecastResponse{
		Location: outlook.Snapshot.Location,
		Days:     summaries,
		BestTime: outlook.BestTime,
	}})
}

// Compare handles POST /v1/weather/compare. A failed fetch for one location
// is reported inside that location's entry; only validation failures and
// cancellation fail the request.
func (h *WeatherHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	reports, err := h.weather.Compare(r.Context(), req.Locations)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: reports})
}
