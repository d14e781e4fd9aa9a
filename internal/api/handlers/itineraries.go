package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tripcircle/internal/core"
	"tripcircle/internal/types"
)

// ItineraryRepo defines the data access contract for itinerary operations.
type ItineraryRepo interface {
	UpsertDay(ctx context.Context, day *types.ItineraryDay) error
	GetDay(ctx context.Context, circleID string, date time.Time) (*types.ItineraryDay, error)
	ListDays(ctx context.Context, circleID string) ([]*types.ItineraryDay, error)
	DeleteDay(ctx context.Context, circleID string, date time.Time) error
}

// ItineraryItemRequest is one planned entry in an UpsertDayRequest.
type ItineraryItemRequest struct {
	ID          string `json:"id,omitempty" validate:"omitempty,uuid"`
	Title       string `json:"title" validate:"required,max=200"`
	ActivityKey string `json:"activity_key,omitempty" validate:"omitempty,max=50"`
	StartTime   string `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime     string `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	Notes       string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// UpsertDayRequest is the request body for PUT /v1/circles/{id}/itinerary/{date}.
type UpsertDayRequest struct {
	Items []ItineraryItemRequest `json:"items" validate:"required,max=20,dive"`
}

// ItineraryHandler manages a circle's day-by-day trip plan.
type ItineraryHandler struct {
	repo      ItineraryRepo
	validator *core.Validator
	logger    *slog.Logger
}

// NewItineraryHandler creates an ItineraryHandler with the provided dependencies.
func NewItineraryHandler(repo ItineraryRepo, v *core.Validator, l *slog.Logger) *ItineraryHandler {
	if l == nil {
		l = slog.Default()
	}
	return &ItineraryHandler{
		repo:      repo,
		validator: v,
		logger:    l,
	}
}

// RegisterRoutes mounts itinerary routes on the provided chi.Router.
func (h *ItineraryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/circles/{id}/itinerary", func(r chi.Router) {
		r.Get("/", h.List)
		r.Put("/{date}", h.UpsertDay)
		r.Get("/{date}", h.GetDay)
		r.Delete("/{date}", h.DeleteDay)
	})
}

// itineraryParams extracts and validates the circle ID and, when expectDate
// is set, the date path segment.
func itineraryParams(r *http.Request, expectDate bool) (circleID string, date time.Time, err error) {
	circleID = chi.URLParam(r, "id")
	if circleID == "" {
		return "", time.Time{}, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"circle ID is required",
			nil,
		)
	}
	if !expectDate {
		return circleID, time.Time{}, nil
	}

	raw := chi.URLParam(r, "date")
	parsed, perr := types.ParseDateOnly(raw)
	if perr != nil {
		return "", time.Time{}, types.NewAppError(
			types.ErrCodeValidationInvalidField,
			"date must be formatted YYYY-MM-DD",
			perr,
		)
	}
	return circleID, parsed.Time(), nil
}

// UpsertDay handles PUT /v1/circles/{id}/itinerary/{date}. The day's items
// are replaced wholesale.
func (h *ItineraryHandler) UpsertDay(w http.ResponseWriter, r *http.Request) {
	circleID, date, err := itineraryParams(r, true)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	var req UpsertDayRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	items := make([]types.ItineraryItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = types.ItineraryItem{
			ID:          item.ID,
			Title:       item.Title,
			ActivityKey: item.ActivityKey,
			StartTime:   item.StartTime,
			EndTime:     item.EndTime,
			Notes:       item.Notes,
		}
	}

	day := &types.ItineraryDay{
		CircleID: circleID,
		Date:     date,
		Items:    items,
	}

	if err := h.repo.UpsertDay(r.Context(), day); err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: day})
}

// GetDay handles GET /v1/circles/{id}/itinerary/{date}.
func (h *ItineraryHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	circleID, date, err := itineraryParams(r, true)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	day, err := h.repo.GetDay(r.Context(), circleID, date)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: day})
}

// List handles GET /v1/circles/{id}/itinerary.
func (h *ItineraryHandler) List(w http.ResponseWriter, r *http.Request) {
	circleID, _, err := itineraryParams(r, false)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	days, err := h.repo.ListDays(r.Context(), circleID)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	if days == nil {
		days = []*types.ItineraryDay{}
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: days})
}

// DeleteDay handles DELETE /v1/circles/{id}/itinerary/{date}.
func (h *ItineraryHandler) DeleteDay(w http.ResponseWriter, r *http.Request) {
	circleID, date, err := itineraryParams(r, true)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	if err := h.repo.DeleteDay(r.Context(), circleID, date); err != nil {
		core.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
