package types

// Condition is the canonical weather condition category reported by the
// upstream provider. The set is closed; unrecognized provider values are
// mapped to the nearest category by the normalizer.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionSnow         Condition = "Snow"
	ConditionMist         Condition = "Mist"
	ConditionFog          Condition = "Fog"
)

// Verdict is the three-level day suitability rating derived from a
// DailySummary.
type Verdict string

const (
	VerdictGood Verdict = "good"
	VerdictFair Verdict = "fair"
	VerdictPoor Verdict = "poor"
)

// SuitabilityTier describes how well an activity fits a weather snapshot.
type SuitabilityTier string

const (
	TierExcellent SuitabilityTier = "excellent"
	TierGood      SuitabilityTier = "good"
	TierFair      SuitabilityTier = "fair"
	TierPoor      SuitabilityTier = "poor"
	TierUnknown   SuitabilityTier = "unknown"
)

// IntentType classifies what a chat message is asking about.
type IntentType string

const (
	IntentWeather       IntentType = "weather"
	IntentActivity      IntentType = "activity"
	IntentAccommodation IntentType = "accommodation"
	IntentTransport     IntentType = "transport"
	IntentGeneral       IntentType = "general"
)

// DaySegment identifies a portion of the day used by best-time-of-day
// selection.
type DaySegment string

const (
	SegmentMorning   DaySegment = "morning"
	SegmentAfternoon DaySegment = "afternoon"
	SegmentEvening   DaySegment = "evening"
)

// ActivityCategory tags a catalog activity by where it takes place.
type ActivityCategory string

const (
	CategoryOutdoor ActivityCategory = "outdoor"
	CategoryIndoor  ActivityCategory = "indoor"
	CategoryMixed   ActivityCategory = "mixed"
)

// ActionType identifies a follow-up action offered alongside an advisory
// response.
type ActionType string

const (
	ActionViewForecast         ActionType = "view_forecast"
	ActionRescheduleActivities ActionType = "reschedule_activities"
	ActionViewPackingList      ActionType = "view_packing_list"
)
