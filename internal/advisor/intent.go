// Package advisor implements the rule-based travel advisory engine: intent
// classification of chat messages, activity-weather suitability scoring,
// packing list generation, and composition of the assistant's responses.
//
// The engine is stateless and request-scoped. All rule tables are immutable
// configuration injected at construction time; the only external effect is
// the weather fetch performed by the injected weather service.
package advisor

import (
	"regexp"
	"strings"

	"tripcircle/internal/types"
)

// Intent scoring weights and confidence bands.
const (
	keywordWeight = 1
	patternWeight = 2

	confidenceNoSignal = 0.3
	confidenceLow      = 0.5
	confidenceMedium   = 0.7
	confidenceHigh     = 0.9
)

// intentRule holds the keyword and pattern sets for one intent category.
type intentRule struct {
	intent   types.IntentType
	keywords []string
	patterns []*regexp.Regexp
}

// Classifier scores free-text messages against per-intent keyword and
// pattern tables. It is pure: identical inputs always produce identical
// Intents.
type Classifier struct {
	rules        []intentRule
	locationRe   *regexp.Regexp
	timePatterns []*regexp.Regexp
	activityKeys []string
}

// NewClassifier creates a Classifier with the default rule tables.
func NewClassifier() *Classifier {
	return &Classifier{
		rules: []intentRule{
			{
				intent: types.IntentWeather,
				keywords: []string{
					"weather", "temperature", "rain", "sunny", "forecast",
					"climate", "hot", "cold", "humid", "wind", "snow",
					"storm", "umbrella",
				},
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)what.*\b(weather|temperature)\b`),
					regexp.MustCompile(`(?i)\b(will|is) it (rain|snow|sunny|hot|cold)`),
					regexp.MustCompile(`(?i)\bhow (hot|cold|warm|humid)\b`),
				},
			},
			{
				intent: types.IntentActivity,
				keywords: []string{
					"activity", "activities", "hiking", "museum", "beach",
					"tour", "visit", "sightseeing", "surfing", "skiing",
					"swimming", "adventure", "explore",
				},
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\bwhat (can|should) (i|we) do\b`),
					regexp.MustCompile(`(?i)\bthings to do\b`),
					regexp.MustCompile(`(?i)\bplaces to (visit|see)\b`),
				},
			},
			{
				intent: types.IntentAccommodation,
				keywords: []string{
					"hotel", "hostel", "stay", "accommodation", "airbnb",
					"room", "booking", "resort", "lodge",
				},
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\bwhere (to|should|can) (i|we )?stay\b`),
					regexp.MustCompile(`(?i)\bplace to (stay|sleep)\b`),
				},
			},
			{
				intent: types.IntentTransport,
				keywords: []string{
					"flight", "train", "bus", "taxi", "transport", "drive",
					"airport", "metro", "ferry",
				},
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\bhow (do|can) (i|we) get\b`),
					regexp.MustCompile(`(?i)\bgetting (to|around)\b`),
				},
			},
			{
				intent: types.IntentGeneral,
				keywords: []string{
					"help", "plan", "trip", "travel", "recommend",
					"suggest", "advice", "itinerary",
				},
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\bhelp me plan\b`),
					regexp.MustCompile(`(?i)\bany (suggestions|recommendations)\b`),
				},
			},
		},
		locationRe: regexp.MustCompile(`\bin ([A-Z][a-zA-Z]+(?:\s[A-Z][a-zA-Z]+)*)`),
		timePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\btoday\b`),
			regexp.MustCompile(`(?i)\btomorrow\b`),
			regexp.MustCompile(`(?i)\bthis (weekend|week|morning|afternoon|evening)\b`),
			regexp.MustCompile(`(?i)\bnext (weekend|week|month)\b`),
			regexp.MustCompile(`(?i)\bon (monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
			regexp.MustCompile(`(?i)\bin \d+ days?\b`),
		},
		activityKeys: []string{
			"hiking", "swimming", "beach", "museum", "surfing", "skiing",
			"cycling", "kayaking", "sightseeing", "shopping", "camping",
			"snorkeling", "golf", "fishing", "picnic", "running",
		},
	}
}

// Classify scores a message against every intent category and returns the
// winning Intent with its confidence and extracted entities.
//
// When all scores are zero but the conversation already has a destination,
// the message is treated as a weather follow-up. An empty message yields
// "general" with the no-signal confidence.
func (c *Classifier) Classify(message string, convCtx types.AdvisorContext) types.Intent {
	lower := strings.ToLower(message)

	scores := make(map[types.IntentType]int, len(c.rules))
	for _, rule := range c.rules {
		score := 0
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				score += keywordWeight
			}
		}
		for _, p := range rule.patterns {
			if p.MatchString(message) {
				score += patternWeight
			}
		}
		scores[rule.intent] = score
	}

	top, runnerUp := types.IntentGeneral, 0
	topScore := -1
	for _, rule := range c.rules {
		s := scores[rule.intent]
		if s > topScore {
			runnerUp = topScore
			topScore = s
			top = rule.intent
		} else if s > runnerUp {
			runnerUp = s
		}
	}
	if runnerUp < 0 {
		runnerUp = 0
	}

	// A zero top score means nothing matched: fall back to "general", or
	// treat the message as a weather follow-up when the conversation
	// already has a destination.
	if topScore == 0 {
		top = types.IntentGeneral
		if convCtx.Destination != "" {
			top = types.IntentWeather
		}
	}

	var confidence float64
	switch {
	case topScore == 0:
		confidence = confidenceNoSignal
	case topScore-runnerUp >= 2:
		confidence = confidenceHigh
	case topScore-runnerUp >= 1:
		confidence = confidenceMedium
	default:
		confidence = confidenceLow
	}

	return types.Intent{
		Type:       top,
		Confidence: confidence,
		Entities:   c.extractEntities(message, lower),
		Scores:     scores,
	}
}

// extractEntities pulls a location, a time reference, and activity mentions
// out of the message. Extraction is independent of intent scoring.
func (c *Classifier) extractEntities(message, lower string) types.IntentEntities {
	var e types.IntentEntities

	if m := c.locationRe.FindStringSubmatch(message); m != nil {
		e.Location = m[1]
	}

	for _, p := range c.timePatterns {
		if m := p.FindString(message); m != "" {
			e.TimeReference = m
			break
		}
	}

	for _, key := range c.activityKeys {
		if strings.Contains(lower, key) {
			e.Activities = append(e.Activities, key)
		}
	}

	return e
}
