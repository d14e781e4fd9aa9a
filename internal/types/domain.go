package types

import "time"

// Circle is a travel circle: a group pooling contributions toward a trip.
type Circle struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	Description string    `json:"description,omitempty"`
	GoalAmount  int64     `json:"goal_amount"` // minor units (cents)
	Currency    string    `json:"currency"`
	TripStart   time.Time `json:"trip_start"`
	TripEnd     time.Time `json:"trip_end"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CircleProgress is a circle together with its funding state.
type CircleProgress struct {
	Circle
	ContributedAmount int64   `json:"contributed_amount"`
	PercentFunded     float64 `json:"percent_funded"`
}

// Contribution is one member's payment into a circle's pool.
type Contribution struct {
	ID         string    `json:"id"`
	CircleID   string    `json:"circle_id"`
	MemberName string    `json:"member_name"`
	Amount     int64     `json:"amount"` // minor units (cents)
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ItineraryItem is a single planned entry within an itinerary day.
type ItineraryItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ActivityKey string `json:"activity_key,omitempty"` // catalog key feeding the advisor
	StartTime   string `json:"start_time,omitempty"`   // HH:MM, local to the destination
	EndTime     string `json:"end_time,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// ItineraryDay is one day of a circle's trip plan.
type ItineraryDay struct {
	ID        string          `json:"id"`
	CircleID  string          `json:"circle_id"`
	Date      time.Time       `json:"date"`
	Items     []ItineraryItem `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
