package advisor

import (
	"fmt"
	"strings"

	"tripcircle/internal/types"
	"tripcircle/internal/weather"
)

// exampleDestinations seeds the destination-request prompt.
var exampleDestinations = []string{"Paris", "Tokyo", "Barcelona", "Bali"}

// tierEmoji marks each suitability tier in the composed text.
var tierEmoji = map[types.SuitabilityTier]string{
	types.TierExcellent: "🌟",
	types.TierGood:      "✅",
	types.TierFair:      "⚠️",
	types.TierPoor:      "❌",
	types.TierUnknown:   "❓",
}

var segmentLabel = map[types.DaySegment]string{
	types.SegmentMorning:   "morning (06:00–12:00)",
	types.SegmentAfternoon: "afternoon (12:00–18:00)",
	types.SegmentEvening:   "evening (18:00–24:00)",
}

// composeDestinationPrompt is the terminal response for the missing-
// destination path: a conversational redirect, not an error.
func composeDestinationPrompt(intent types.Intent) *types.AdvisorResponse {
	return &types.AdvisorResponse{
		Text: "I'd love to help with that! Which destination are you asking about? " +
			"Tell me a city and I can check the weather and your plans there.",
		Intent:      intent,
		Suggestions: destinationSuggestions(),
	}
}

func destinationSuggestions() []string {
	suggestions := make([]string, 0, len(exampleDestinations))
	for _, city := range exampleDestinations {
		suggestions = append(suggestions, fmt.Sprintf("What's the weather in %s?", city))
	}
	return suggestions
}

// composeRetryPrompt turns a classified provider failure into the matching
// conversational retry message.
func composeRetryPrompt(intent types.Intent, location string, code types.ErrorCode) *types.AdvisorResponse {
	var text string
	if code == types.ErrCodeNotFoundLocation {
		text = fmt.Sprintf("I couldn't find a place called %q. Could you check the spelling or try a nearby city?", location)
	} else {
		text = "I couldn't reach the weather service just now. Please try again in a moment."
	}
	return &types.AdvisorResponse{
		Text:        text,
		Intent:      intent,
		Suggestions: destinationSuggestions(),
	}
}

// composeRedirect answers accommodation and transport questions, which the
// advisory engine does not cover.
func composeRedirect(intent types.Intent) *types.AdvisorResponse {
	topic := "booking"
	if intent.Type == types.IntentTransport {
		topic = "transport"
	}
	return &types.AdvisorResponse{
		Text: fmt.Sprintf("I focus on weather and activity planning, so I can't help with %s details yet. "+
			"I can tell you what the weather looks like for your trip, though!", topic),
		Intent:      intent,
		Suggestions: destinationSuggestions(),
	}
}

// composeAdvisory assembles the full multi-section advisory text plus the
// structured payload, suggestions, and actions.
func composeAdvisory(
	intent types.Intent,
	outlook *weather.Outlook,
	assessments []types.ActivityAssessment,
	alternatives []string,
	packing *types.PackingList,
) *types.AdvisorResponse {
	snap := outlook.Snapshot
	var b strings.Builder

	// Current conditions.
	fmt.Fprintf(&b, "Right now in %s it's %.0f°C (feels like %.0f°C) with %s.",
		snap.Location, snap.Temperature.Current, snap.Temperature.FeelsLike,
		strings.ToLower(string(snap.Condition)))
	fmt.Fprintf(&b, " Humidity %d%%, wind %.1f m/s.\n\n", snap.Humidity, snap.WindSpeed)

	// Forecast summary.
	if len(outlook.Days) > 0 {
		b.WriteString("Outlook for the next few days:\n")
		for _, day := range outlook.Days {
			fmt.Fprintf(&b, "• %s: %.0f–%.0f°C, %s — %s day for being out\n",
				day.Date.Format("Mon Jan 2"), day.TempMin, day.TempMax,
				strings.ToLower(string(day.DominantCondition)), day.Verdict)
		}
		b.WriteString("\n")
	}

	// Best time recommendation.
	fmt.Fprintf(&b, "Best time to be outside: %s.\n\n", segmentLabel[outlook.BestTime.Segment])

	// Per-activity assessments.
	if len(assessments) > 0 {
		b.WriteString("Your activities:\n")
		for _, a := range assessments {
			fmt.Fprintf(&b, "%s %s — %s (%d/100)", tierEmoji[a.Tier], a.Activity, a.Tier, a.Score)
			if len(a.Issues) > 0 {
				fmt.Fprintf(&b, ": %s", a.Issues[0])
			}
			// All recommendations stay on the assessment; only the first
			// surfaces in the composed text.
			if len(a.Recommendations) > 0 {
				fmt.Fprintf(&b, " — %s", a.Recommendations[0])
			}
			if a.BestDay != nil {
				fmt.Fprintf(&b, " (best day: %s)", a.BestDay.Date.Format("Mon Jan 2"))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Alternative suggestions.
	if len(alternatives) > 0 {
		fmt.Fprintf(&b, "Given the conditions, you might also enjoy: %s.\n\n",
			strings.Join(alternatives, ", "))
	}

	// Packing highlights.
	if packing != nil && len(packing.Summary.PackingTips) > 0 {
		b.WriteString("Packing notes:\n")
		for _, tip := range packing.Summary.PackingTips {
			fmt.Fprintf(&b, "• %s\n", tip)
		}
	}

	conflicts := hasConflicts(assessments)

	suggestions := []string{
		"Show me the full forecast",
		"What should I pack?",
	}
	if conflicts {
		suggestions = append(suggestions, "Help me reschedule my activities")
	}
	suggestions = append(suggestions, "Suggest other activities")

	actions := []types.AdvisorAction{
		{Type: types.ActionViewForecast, Label: "View forecast"},
	}
	if conflicts {
		actions = append(actions, types.AdvisorAction{
			Type:  types.ActionRescheduleActivities,
			Label: "Reschedule activities",
		})
	}
	actions = append(actions, types.AdvisorAction{
		Type:  types.ActionViewPackingList,
		Label: "View packing list",
	})

	return &types.AdvisorResponse{
		Text:   strings.TrimRight(b.String(), "\n"),
		Intent: intent,
		Data: &types.AdvisoryData{
			Weather:      snap,
			Forecast:     outlook.Days,
			BestTime:     &outlook.BestTime,
			Activities:   assessments,
			Alternatives: alternatives,
			Packing:      packing,
		},
		Suggestions: suggestions,
		Actions:     actions,
	}
}

// hasConflicts reports whether any planned activity scored into the poor
// tier; that is what gates the reschedule suggestion and action.
func hasConflicts(assessments []types.ActivityAssessment) bool {
	for _, a := range assessments {
		if a.Tier == types.TierPoor {
			return true
		}
	}
	return false
}
