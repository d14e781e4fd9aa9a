// Package handlers contains the HTTP handler implementations for the
// TripCircle API. Each handler defines local interfaces for its
// dependencies and is wired up in cmd/api.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tripcircle/internal/core"
	"tripcircle/internal/types"
)

// CircleRepo defines the data access contract for circle operations.
// Mirrors the concrete db.CircleRepository methods used by this handler.
type CircleRepo interface {
	Create(ctx context.Context, c *types.Circle) error
	GetByID(ctx context.Context, id string) (*types.CircleProgress, error)
	List(ctx context.Context) ([]*types.Circle, error)
	Update(ctx context.Context, c *types.Circle) error
	Delete(ctx context.Context, id string) error
	AddContribution(ctx context.Context, ct *types.Contribution) error
	ListContributions(ctx context.Context, circleID string) ([]*types.Contribution, error)
}

// CreateCircleRequest is the request body for POST /v1/circles.
type CreateCircleRequest struct {
	Name        string         `json:"name" validate:"required,max=200"`
	Destination string         `json:"destination" validate:"required,max=200"`
	Description string         `json:"description,omitempty" validate:"max=2000"`
	GoalAmount  int64          `json:"goal_amount" validate:"required,gt=0"`
	Currency    string         `json:"currency" validate:"required,len=3,uppercase"`
	TripStart   types.DateOnly `json:"trip_start" validate:"required"`
	TripEnd     types.DateOnly `json:"trip_end" validate:"required"`
}

// UpdateCircleRequest is the request body for PATCH /v1/circles/{id}.
// Pointer fields allow partial updates.
type UpdateCircleRequest struct {
	Name        *string         `json:"name,omitempty" validate:"omitempty,max=200"`
	Destination *string         `json:"destination,omitempty" validate:"omitempty,max=200"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	GoalAmount  *int64          `json:"goal_amount,omitempty" validate:"omitempty,gt=0"`
	Currency    *string         `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
	TripStart   *types.DateOnly `json:"trip_start,omitempty"`
	TripEnd     *types.DateOnly `json:"trip_end,omitempty"`
}

// AddContributionRequest is the request body for POST /v1/circles/{id}/contributions.
type AddContributionRequest struct {
	MemberName string `json:"member_name" validate:"required,max=200"`
	Amount     int64  `json:"amount"`
	Note       string `json:"note,omitempty" validate:"max=500"`
}

// CircleHandler manages travel circle CRUD and contributions.
type CircleHandler struct {
	repo      CircleRepo
	validator *core.Validator
	logger    *slog.Logger
}

// NewCircleHandler creates a CircleHandler with the provided dependencies.
func NewCircleHandler(repo CircleRepo, v *core.Validator, l *slog.Logger) *CircleHandler {
	if l == nil {
		l = slog.Default()
	}
	return &CircleHandler{
		repo:      repo,
		validator: v,
		logger:    l,
	}
}

// RegisterRoutes mounts circle routes on the provided chi.Router.
func (h *CircleHandler) RegisterRoutes(r chi.Router) {
	r.Route("/circles", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Patch("/", h.Update)
			r.Delete("/", h.Delete)
			r.Post("/contributions", h.AddContribution)
			r.Get("/contributions", h.ListContributions)
		})
	})
}

// Create handles POST /v1/circles.
func (h *CircleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCircleRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	if req.TripEnd.Before(req.TripStart) {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationDateRange,
			"trip_end must not be before trip_start",
			nil,
		))
		return
	}

	circle := &types.Circle{
		Name:        req.Name,
		Destination: req.Destination,
		Description: req.Description,
		GoalAmount:  req.GoalAmount,
		Currency:    req.Currency,
		TripStart:   req.TripStart.Time(),
		TripEnd:     req.TripEnd.Time(),
	}

	if err := h.repo.Create(r.Context(), circle); err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusCreated, core.APIResponse{Data: circle})
}

// Get handles GET /v1/circles/{id}. The response includes funding progress.
func (h *CircleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"circle ID is required",
			nil,
		))
		return
	}

	progress, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: progress})
}

// List handles GET /v1/circles.
func (h *CircleHandler) List(w http.ResponseWriter, r *http.Request) {
	circles, err := h.repo.List(r.Context())
	if err != nil {
		core.Error(w, r, err)
		return
	}
	if circles == nil {
		circles = []*types.Circle{}
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: circles})
}

// Update handles PATCH /v1/circles/{id}.
func (h *CircleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"circle ID is required",
			nil,
		))
		return
	}

	var req UpdateCircleRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	progress, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	circle := progress.Circle

	if req.Name != nil {
		circle.Name = *req.Name
	}
	if req.Destination != nil {
		circle.Destination = *req.Destination
	}
	if req.Description != nil {
		circle.Description = *req.Description
	}
	if req.GoalAmount != nil {
		circle.GoalAmount = *req.GoalAmount
	}
	if req.Currency != nil {
		circle.Currency = *req.Currency
	}
	if req.TripStart != nil {
		circle.TripStart = req.TripStart.Time()
	}
	if req.TripEnd != nil {
		circle.TripEnd = req.TripEnd.Time()
	}

	if circle.TripEnd.Before(circle.TripStart) {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationDateRange,
			"trip_end must not be before trip_start",
			nil,
		))
		return
	}

	if err := h.repo.Update(r.Context(), &circle); err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: circle})
}

// Delete handles DELETE /v1/circles/{id}.
func (h *CircleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"circle ID is required",
			nil,
		))
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		core.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddContribution handles POST /v1/circles/{id}/contributions.
func (h *CircleHandler) AddContribution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"circle ID is required",
			nil,
		))
		return
	}

	var req AddContributionRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	if req.Amount <= 0 {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationInvalidAmount,
			"contribution amount must be positive",
			nil,
		))
		return
	}

	contribution := &types.Contribution{
		CircleID:   id,
		MemberName: req.MemberName,
		Amount:     req.Amount,
		Note:       req.Note,
	}

	if err := h.repo.AddContribution(r.Context(), contribution); err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusCreated, core.APIResponse{Data: contribution})
}

// ListContributions handles GET /v1/circles/{id}/contributions.
func (h *CircleHandler) ListContributions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"circle ID is required",
			nil,
		))
		return
	}

	contributions, err := h.repo.ListContributions(r.Context(), id)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	if contributions == nil {
		contributions = []*types.Contribution{}
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: contributions})
}
