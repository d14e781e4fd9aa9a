package types

// IntentEntities holds the pieces of information extracted from a chat
// message, independently of intent scoring.
type IntentEntities struct {
	Location      string   `json:"location,omitempty"`
	TimeReference string   `json:"time_reference,omitempty"`
	Activities    []string `json:"activities,omitempty"`
}

// Intent is the classification of a single chat message.
type Intent struct {
	Type       IntentType         `json:"type"`
	Confidence float64            `json:"confidence"`
	Entities   IntentEntities     `json:"entities"`
	Scores     map[IntentType]int `json:"scores"`
}

// ActivityAssessment is the result of scoring one activity against a weather
// snapshot.
type ActivityAssessment struct {
	Activity        string          `json:"activity"`      // as provided by the user
	CanonicalKey    string          `json:"canonical_key"` // catalog key, empty when unknown
	Tier            SuitabilityTier `json:"tier"`
	Score           int             `json:"score"` // 0-100
	Issues          []string        `json:"issues,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
	BestDay         *DailySummary   `json:"best_day,omitempty"`
}

// PackingSummary carries the aggregate facts a packing list was derived from,
// plus free-text tips.
type PackingSummary struct {
	ItemCount   int         `json:"item_count"`
	TempMin     float64     `json:"temp_min"`
	TempMax     float64     `json:"temp_max"`
	Conditions  []Condition `json:"conditions"`
	ExpectRain  bool        `json:"expect_rain"`
	PackingTips []string    `json:"packing_tips"`
}

// PackingList groups recommended items into five disjoint buckets. Each
// bucket holds unique item names; insertion order is not significant.
type PackingList struct {
	Clothing     []string       `json:"clothing"`
	Accessories  []string       `json:"accessories"`
	ActivityGear []string       `json:"activity_gear"`
	Essentials   []string       `json:"essentials"`
	Other        []string       `json:"other"`
	Summary      PackingSummary `json:"summary"`
}

// AdvisorContext carries conversation state forwarded from earlier turns.
type AdvisorContext struct {
	Destination string   `json:"destination,omitempty"`
	Activities  []string `json:"activities,omitempty"`
}

// AdvisoryData is the structured payload attached to a full advisory
// response. All fields are nil on the destination-prompt path.
type AdvisoryData struct {
	Weather      *WeatherSnapshot     `json:"weather,omitempty"`
	Forecast     []DailySummary       `json:"forecast,omitempty"`
	BestTime     *BestTime            `json:"best_time,omitempty"`
	Activities   []ActivityAssessment `json:"activities,omitempty"`
	Alternatives []string             `json:"alternatives,omitempty"`
	Packing      *PackingList         `json:"packing,omitempty"`
}

// AdvisorAction is a follow-up action the client can offer the user.
type AdvisorAction struct {
	Type  ActionType `json:"type"`
	Label string     `json:"label"`
}

// AdvisorResponse is the outcome of one chat turn: human-readable text, a
// structured payload, suggested follow-up prompts, and actions.
type AdvisorResponse struct {
	Text        string          `json:"text"`
	Intent      Intent          `json:"intent"`
	Data        *AdvisoryData   `json:"data,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty"`
	Actions     []AdvisorAction `json:"actions,omitempty"`
}
