package db

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tripcircle/internal/types"
)

// ItineraryRepository provides data access for itinerary days. Items within
// a day are stored as a jsonb document since they are always read and
// written as a unit.
type ItineraryRepository struct {
	db DBTX
}

func NewItineraryRepository(db DBTX) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

func scanItineraryDay(row pgx.Row) (*types.ItineraryDay, error) {
	var d types.ItineraryDay
	var items []byte
	err := row.Scan(&d.ID, &d.CircleID, &d.Date, &items, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &d.Items); err != nil {
			return nil, err
		}
	}
	if d.Items == nil {
		d.Items = []types.ItineraryItem{}
	}
	return &d, nil
}

// UpsertDay creates or replaces the itinerary for one date of a circle's
// trip. Item IDs are assigned server-side when missing.
func (r *ItineraryRepository) UpsertDay(ctx context.Context, day *types.ItineraryDay) error {
	for i := range day.Items {
		if day.Items[i].ID == "" {
			day.Items[i].ID = uuid.NewString()
		}
	}
	if day.Items == nil {
		day.Items = []types.ItineraryItem{}
	}
	items, err := json.Marshal(day.Items)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalUnexpected, "failed to encode itinerary items", err)
	}

	now := time.Now().UTC()
	day.ID = uuid.NewString()
	day.CreatedAt = now
	day.UpdatedAt = now

	tag, err := r.db.Exec(ctx, `
		INSERT INTO itinerary_days (id, circle_id, date, items, created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, $5
		WHERE EXISTS (SELECT 1 FROM circles WHERE id = $2)
		ON CONFLICT (circle_id, date) DO UPDATE
		SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at`,
		day.ID, day.CircleID, day.Date, items, now,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to save itinerary day", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundCircle, "circle not found", nil)
	}
	return nil
}

// GetDay fetches the itinerary for one date of a circle's trip.
func (r *ItineraryRepository) GetDay(ctx context.Context, circleID string, date time.Time) (*types.ItineraryDay, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, circle_id, date, items, created_at, updated_at
		FROM itinerary_days
		WHERE circle_id = $1 AND date = $2`,
		circleID, date,
	)
	day, err := scanItineraryDay(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.NewAppError(types.ErrCodeNotFoundItinerary, "itinerary day not found", nil)
	}
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to load itinerary day", err)
	}
	return day, nil
}

// ListDays returns a circle's full itinerary in date order.
func (r *ItineraryRepository) ListDays(ctx context.Context, circleID string) ([]*types.ItineraryDay, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, circle_id, date, items, created_at, updated_at
		FROM itinerary_days
		WHERE circle_id = $1
		ORDER BY date ASC`,
		circleID,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to list itinerary days", err)
	}
	defer rows.Close()

	var days []*types.ItineraryDay
	for rows.Next() {
		day, err := scanItineraryDay(rows)
		if err != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan itinerary day", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to read itinerary days", err)
	}
	return days, nil
}

// DeleteDay removes one date from a circle's itinerary.
func (r *ItineraryRepository) DeleteDay(ctx context.Context, circleID string, date time.Time) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM itinerary_days
		WHERE circle_id = $1 AND date = $2`,
		circleID, date,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to delete itinerary day", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundItinerary, "itinerary day not found", nil)
	}
	return nil
}
