package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tripcircle/internal/types"
)

// CircleRepository provides data access for the circles and contributions
// tables.
type CircleRepository struct {
	db DBTX
}

// NewCircleRepository creates a CircleRepository backed by the given
// database connection (pool or transaction).
func NewCircleRepository(db DBTX) *CircleRepository {
	return &CircleRepository{db: db}
}

// circleColumns is the standard column set for circle queries.
const circleColumns = `c.id, c.name, c.destination, c.description,
	c.goal_amount, c.currency, c.trip_start, c.trip_end,
	c.created_at, c.updated_at`

func scanCircle(row pgx.Row) (*types.Circle, error) {
	var c types.Circle
	var description *string
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Destination,
		&description,
		&c.GoalAmount,
		&c.Currency,
		&c.TripStart,
		&c.TripEnd,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		c.Description = *description
	}
	return &c, nil
}

// Create inserts a new circle, assigning its ID and timestamps.
func (r *CircleRepository) Create(ctx context.Context, c *types.Circle) error {
	c.ID = uuid.NewString()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.db.Exec(ctx, `
		INSERT INTO circles (id, name, destination, description,
			goal_amount, currency, trip_start, trip_end, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.Destination, c.Description,
		c.GoalAmount, c.Currency, c.TripStart, c.TripEnd, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to create circle", err)
	}
	return nil
}

// GetByID fetches a circle with its funding progress.
func (r *CircleRepository) GetByID(ctx context.Context, id string) (*types.CircleProgress, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+circleColumns+`,
			COALESCE(SUM(ct.amount), 0) AS contributed
		FROM circles c
		LEFT JOIN contributions ct ON ct.circle_id = c.id
		WHERE c.id = $1
		GROUP BY c.id`,
		id,
	)

	var p types.CircleProgress
	var description *string
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Destination,
		&description,
		&p.GoalAmount,
		&p.Currency,
		&p.TripStart,
		&p.TripEnd,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.ContributedAmount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.NewAppError(types.ErrCodeNotFoundCircle, "circle not found", nil)
	}
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to load circle", err)
	}
	if description != nil {
		p.Description = *description
	}
	if p.GoalAmount > 0 {
		p.PercentFunded = float64(p.ContributedAmount) / float64(p.GoalAmount) * 100
	}
	return &p, nil
}

// List returns all circles ordered by creation time, newest first.
func (r *CircleRepository) List(ctx context.Context) ([]*types.Circle, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+circleColumns+`
		FROM circles c
		ORDER BY c.created_at DESC`,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to list circles", err)
	}
	defer rows.Close()

	var circles []*types.Circle
	for rows.Next() {
		c, err := scanCircle(rows)
		if err != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan circle", err)
		}
		circles = append(circles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to read circles", err)
	}
	return circles, nil
}

// Update modifies the mutable fields of a circle.
func (r *CircleRepository) Update(ctx context.Context, c *types.Circle) error {
	c.UpdatedAt = time.Now().UTC()
	tag, err := r.db.Exec(ctx, `
		UPDATE circles
		SET name = $2, destination = $3, description = NULLIF($4, ''),
			goal_amount = $5, currency = $6, trip_start = $7, trip_end = $8,
			updated_at = $9
		WHERE id = $1`,
		c.ID, c.Name, c.Destination, c.Description,
		c.GoalAmount, c.Currency, c.TripStart, c.TripEnd, c.UpdatedAt,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to update circle", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundCircle, "circle not found", nil)
	}
	return nil
}

// Delete removes a circle and, via FK cascade, its contributions and
// itinerary.
func (r *CircleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM circles WHERE id = $1`, id)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to delete circle", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundCircle, "circle not found", nil)
	}
	return nil
}

// AddContribution records a member's contribution against a circle.
func (r *CircleRepository) AddContribution(ctx context.Context, ct *types.Contribution) error {
	ct.ID = uuid.NewString()
	ct.CreatedAt = time.Now().UTC()

	tag, err := r.db.Exec(ctx, `
		INSERT INTO contributions (id, circle_id, member_name, amount, note, created_at)
		SELECT $1, $2, $3, $4, NULLIF($5, ''), $6
		WHERE EXISTS (SELECT 1 FROM circles WHERE id = $2)`,
		ct.ID, ct.CircleID, ct.MemberName, ct.Amount, ct.Note, ct.CreatedAt,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to add contribution", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundCircle, "circle not found", nil)
	}
	return nil
}

// ListContributions returns a circle's contributions, newest first.
func (r *CircleRepository) ListContributions(ctx context.Context, circleID string) ([]*types.Contribution, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, circle_id, member_name, amount, COALESCE(note, ''), created_at
		FROM contributions
		WHERE circle_id = $1
		ORDER BY created_at DESC`,
		circleID,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to list contributions", err)
	}
	defer rows.Close()

	var contributions []*types.Contribution
	for rows.Next() {
		var ct types.Contribution
		if err := rows.Scan(&ct.ID, &ct.CircleID, &ct.MemberName, &ct.Amount, &ct.Note, &ct.CreatedAt); err != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan contribution", err)
		}
		contributions = append(contributions, &ct)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to read contributions", err)
	}
	return contributions, nil
}
