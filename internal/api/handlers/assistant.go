package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tripcircle/internal/core"
	"tripcircle/internal/types"
)

// Advisor handles one chat turn for the assistant endpoint.
type Advisor interface {
	Advise(ctx context.Context, message string, convCtx types.AdvisorContext) (*types.AdvisorResponse, error)
}

// AssistantCircleReader loads the circle used to fill in conversation
// context the caller left implicit.
type AssistantCircleReader interface {
	GetByID(ctx context.Context, id string) (*types.CircleProgress, error)
}

// AssistantItineraryReader loads a circle's planned days so their activity
// keys can seed the advisor's context.
type AssistantItineraryReader interface {
	ListDays(ctx context.Context, circleID string) ([]*types.ItineraryDay, error)
}

// MessageRequest is the request body for POST /v1/assistant/message.
type MessageRequest struct {
	Message     string   `json:"message" validate:"required,max=2000"`
	CircleID    string   `json:"circle_id,omitempty" validate:"omitempty,uuid"`
	Destination string   `json:"destination,omitempty" validate:"omitempty,max=200"`
	Activities  []string `json:"activities,omitempty" validate:"omitempty,max=20,dive,required,max=50"`
}

// AssistantHandler serves the conversational advisory endpoint.
type AssistantHandler struct {
	advisor     Advisor
	circles     AssistantCircleReader
	itineraries AssistantItineraryReader
	validator   *core.Validator
	logger      *slog.Logger
}

// NewAssistantHandler creates an AssistantHandler. The readers may be nil,
// in which case circle_id resolution is disabled and only explicit context
// is used.
func NewAssistantHandler(advisor Advisor, circles AssistantCircleReader, itineraries AssistantItineraryReader, v *core.Validator, l *slog.Logger) *AssistantHandler {
	if l == nil {
		l = slog.Default()
	}
	return &AssistantHandler{
		advisor:     advisor,
		circles:     circles,
		itineraries: itineraries,
		validator:   v,
		logger:      l,
	}
}

// RegisterRoutes mounts assistant routes on the provided chi.Router.
func (h *AssistantHandler) RegisterRoutes(r chi.Router) {
	r.Route("/assistant", func(r chi.Router) {
		r.Post("/message", h.Message)
	})
}

// Message handles POST /v1/assistant/message.
//
// When circle_id is present, the circle's destination and its itinerary's
// activity keys become the conversation context for any field the request
// leaves empty. Explicit destination/activities always win.
func (h *AssistantHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	convCtx := types.AdvisorContext{
		Destination: req.Destination,
		Activities:  req.Activities,
	}

	if req.CircleID != "" && h.circles != nil {
		if err := h.resolveCircleContext(r.Context(), req.CircleID, &convCtx); err != nil {
			core.Error(w, r, err)
			return
		}
	}

	response, err := h.advisor.Advise(r.Context(), req.Message, convCtx)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: response})
}

// resolveCircleContext fills empty context fields from the circle and its
// itinerary. An unknown circle is an error; a missing itinerary is not.
func (h *AssistantHandler) resolveCircleContext(ctx context.Context, circleID string, convCtx *types.AdvisorContext) error {
	circle, err := h.circles.GetByID(ctx, circleID)
	if err != nil {
		return err
	}

	if convCtx.Destination == "" {
		convCtx.Destination = circle.Destination
	}

	if len(convCtx.Activities) > 0 || h.itineraries == nil {
		return nil
	}

	days, err := h.itineraries.ListDays(ctx, circleID)
	if err != nil {
		h.logger.WarnContext(ctx, "itinerary lookup failed, advising without planned activities",
			"circle_id", circleID,
			"error", err,
		)
		return nil
	}

	seen := make(map[string]struct{})
	for _, day := range days {
		for _, item := range day.Items {
			if item.ActivityKey == "" {
				continue
			}
			if _, ok := seen[item.ActivityKey]; ok {
				continue
			}
			seen[item.ActivityKey] = struct{}{}
			convCtx.Activities = append(convCtx.Activities, item.ActivityKey)
		}
	}
	return nil
}
