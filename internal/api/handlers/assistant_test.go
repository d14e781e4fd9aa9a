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

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcircle/internal/core"
	"tripcircle/internal/types"
)

type mockAdvisor struct {
	adviseFn func(ctx context.Context, message string, convCtx types.AdvisorContext) (*types.AdvisorResponse, error)
}

func (m *mockAdvisor) Advise(ctx context.Context, message string, convCtx types.AdvisorContext) (*types.AdvisorResponse, error) {
	return m.adviseFn(ctx, message, convCtx)
}

type mockAssistantCircles struct {
	getByIDFn func(ctx context.Context, id string) (*types.CircleProgress, error)
}

func (m *mockAssistantCircles) GetByID(ctx context.Context, id string) (*types.CircleProgress, error) {
	return m.getByIDFn(ctx, id)
}

type mockAssistantItineraries struct {
	listDaysFn func(ctx context.Context, circleID string) ([]*types.ItineraryDay, error)
}

func (m *mockAssistantItineraries) ListDays(ctx context.Context, circleID string) ([]*types.ItineraryDay, error) {
	return m.listDaysFn(ctx, circleID)
}

func newAssistantRouter(a Advisor, circles AssistantCircleReader, itineraries AssistantItineraryReader) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewAssistantHandler(a, circles, itineraries, core.NewValidator(logger), logger)

	router := chi.NewRouter()
	h.RegisterRoutes(router)
	return router
}

const testCircleID = "7f6f48b4-3a57-4c35-b2e7-9c1f6f2a0d11"

func TestMessagePassesExplicitContext(t *testing.T) {
	var gotMessage string
	var gotCtx types.AdvisorContext
	advisor := &mockAdvisor{
		adviseFn: func(ctx context.Context, message string, convCtx types.AdvisorContext) (*types.AdvisorResponse, error) {
			gotMessage = message
			gotCtx = convCtx
			return &types.AdvisorResponse{Text: "Right now in Lisbon it is clear."}, nil
		},
	}
	router := newAssistantRouter(advisor, nil, nil)

	payload := `{"message":"What's the weather like?","destination":"Lisbon","activities":["hiking"]}`
	req := httptest.NewRequest(http.MethodPost, "/assistant/message", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "What's the weather like?", gotMessage)
	assert.Equal(t, "Lisbon", gotCtx.Destination)
	assert.Equal(t, []string{"hiking"}, gotCtx.Activities)

	envelope := decodeEnvelope(t, rec)
	var resp types.AdvisorResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &resp))
	assert.Equal(t, "Right now in Lisbon it is clear.", resp.Text)
}

func TestMessageResolvesCircleContext(t *testing.T) {
	circles := &mockAssistantCircles{
		getByIDFn: func(ctx context.Context, id string) (*types.CircleProgress, error) {
			assert.Equal(t, testCircleID, id)
			return &types.CircleProgress{Circle: types.Circle{ID: id, Destination: "Porto"}}, nil
		},
	}
	itineraries := &mockAssistantItineraries{
		listDaysFn: func(ctx context.Context, circleID string) ([]*types.ItineraryDay, error) {
			return []*types.ItineraryDay{
				{Items: []types.ItineraryItem{
					{Title: "Coastal hike", ActivityKey: "hiking"},
					{Title: "Lunch"},
					{Title: "Another hike", ActivityKey: "hiking"},
				}},
				{Items: []types.ItineraryItem{
					{Title: "Tile museum", ActivityKey: "museum"},
				}},
			}, nil
		},
	}

	var gotCtx types.AdvisorContext
	advisor := &mockAdvisor{
		adviseFn: func(ctx context.Context, message string, convCtx types.AdvisorContext) (*types.AdvisorResponse, error) {
			gotCtx = convCtx
			return &types.AdvisorResponse{Text: "ok"}, nil
		},
	}
	router := newAssistantRouter(advisor, circles, itineraries)

	payload := `{"message":"Will it rain during our trip?","circle_id":"` + testCircleID + `"}`
	req := httptest.NewRequest(http.MethodPost, "/assistant/message", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Porto", gotCtx.Destination)
	assert.Equal(t, []string{"hiking", "museum"}, gotCtx.Activities)
}

func TestMessageExplicitFieldsWinOverCircle(t *testing.T) {
	circles := &mockAssistantCircles{
		getByIDFn: func(ctx context.Context, id string) (*types.CircleProgress, error) {
			return &types.CircleProgress{Circle: types.Circle{ID: id, Destination: "Porto"}}, nil
		},
	}

	var gotCtx types.AdvisorContext
	advisor := &mockAdvisor{
		adviseFn: func(ctx context.Context, message string, convCtx types.AdvisorContext) (*types.AdvisorResponse, error) {
			gotCtx = convCtx
			return &types.AdvisorResponse{Text: "ok"}, nil
		},
	}
	router := newAssistantRouter(advisor, circles, &mockAssistantItineraries{})

	payload := `{"message":"How about kayaking?","circle_id":"` + testCircleID + `","destination":"Faro","activities":["kayaking"]}`
	req := httptest.NewRequest(http.MethodPost, "/assistant/message", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Faro", gotCtx.Destination)
	assert.Equal(t, []string{"kayaking"}, gotCtx.Activities)
}

func TestMessageUnknownCircleFails(t *testing.T) {
	circles := &mockAssistantCircles{
		getByIDFn: func(ctx context.Context, id string) (*types.CircleProgress, error) {
			return nil, types.NewAppError(types.ErrCodeNotFoundCircle, "circle not found", nil)
		},
	}
	router := newAssistantRouter(&mockAdvisor{}, circles, nil)

	payload := `{"message":"Will it rain?","circle_id":"` + testCircleID + `"}`
	req := httptest.NewRequest(http.MethodPost, "/assistant/message", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(types.ErrCodeNotFoundCircle), errorCode(t, rec))
}

func TestMessageItineraryFailureIsNotFatal(t *testing.T) {
	circles := &mockAssistantCircles{
		getByIDFn: func(ctx context.Context, id string) (*types.CircleProgress, error) {
			return &types.CircleProgress{Circle: types.Circle{ID: id, Destination: "Porto"}}, nil
		},
	}
	itineraries := &mockAssistantItineraries{
		listDaysFn: func(ctx context.Context, circleID string) ([]*types.ItineraryDay, error) {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "query failed", nil)
		},
	}

	var gotCtx types.AdvisorContext
	advisor := &mockAdvisor{
		adviseFn: func(ctx context.Context, message string, convCtx types.AdvisorContext) (*types.AdvisorResponse, error) {
			gotCtx = convCtx
			return &types.AdvisorResponse{Text: "ok"}, nil
		},
	}
	router := newAssistantRouter(advisor, circles, itineraries)

	payload := `{"message":"Will it rain?","circle_id":"` + testCircleID + `"}`
	req := httptest.NewRequest(http.MethodPost, "/assistant/message", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Porto", gotCtx.Destination)
	assert.Empty(t, gotCtx.Activities)
}

func TestMessageValidation(t *testing.T) {
	router := newAssistantRouter(&mockAdvisor{}, nil, nil)

	tests := []struct {
		name    string
		payload string
	}{
		{"empty message", `{"message":""}`},
		{"bad circle id", `{"message":"hi","circle_id":"not-a-uuid"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/assistant/message", bytes.NewBufferString(tt.payload))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, string(types.ErrCodeValidationInvalidField), errorCode(t, rec))
		})
	}
}
