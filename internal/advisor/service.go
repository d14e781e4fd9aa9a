package advisor

import (
	"context"
	"errors"
	"log/slog"

	"tripcircle/internal/types"
	"tripcircle/internal/weather"
)

// WeatherReader is the slice of the weather service the advisor needs.
type WeatherReader interface {
	GetOutlook(ctx context.Context, location string) (*weather.Outlook, error)
}

// Service orchestrates one chat turn: classify the message, resolve a
// destination, fetch weather, score activities, and compose the response.
// It is stateless; every call builds its entities fresh and persists
// nothing.
type Service struct {
	weather    WeatherReader
	classifier *Classifier
	catalog    *Catalog
	packer     *PackingGenerator
	logger     *slog.Logger
}

// NewService creates an advisor Service. Passing nil for classifier,
// catalog, or packer selects the built-in rule tables.
func NewService(w WeatherReader, classifier *Classifier, catalog *Catalog, packer *PackingGenerator, logger *slog.Logger) *Service {
	if classifier == nil {
		classifier = NewClassifier()
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if packer == nil {
		packer = NewPackingGenerator(DefaultPackingRules(), DefaultGearCatalog())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		weather:    w,
		classifier: classifier,
		catalog:    catalog,
		packer:     packer,
		logger:     logger,
	}
}

// Advise handles a single user chat turn.
//
// Unresolvable locations and weather-source outages surface as
// conversational retry prompts, not errors: the returned error is non-nil
// only for context cancellation or programmer error.
func (s *Service) Advise(ctx context.Context, message string, convCtx types.AdvisorContext) (*types.AdvisorResponse, error) {
	intent := s.classifier.Classify(message, convCtx)

	// Accommodation and transport questions belong to collaborators outside
	// this engine.
	if intent.Type == types.IntentAccommodation || intent.Type == types.IntentTransport {
		return composeRedirect(intent), nil
	}

	destination := intent.Entities.Location
	if destination == "" {
		destination = convCtx.Destination
	}
	if destination == "" {
		return composeDestinationPrompt(intent), nil
	}

	outlook, err := s.weather.GetOutlook(ctx, destination)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var appErr *types.AppError
		if errors.As(err, &appErr) {
			s.logger.WarnContext(ctx, "weather fetch failed",
				"location", destination,
				"code", appErr.Code,
			)
			return composeRetryPrompt(intent, destination, appErr.Code), nil
		}
		return nil, err
	}

	activities := mergeActivities(convCtx.Activities, intent.Entities.Activities)

	assessments := make([]types.ActivityAssessment, 0, len(activities))
	for _, activity := range activities {
		a := s.catalog.Assess(activity, outlook.Snapshot)
		if a.Tier != types.TierUnknown {
			a.BestDay = s.catalog.BestDay(activity, outlook.Days)
		}
		assessments = append(assessments, a)
	}

	alternatives := s.catalog.Alternatives(outlook.Snapshot, activities)
	packing := s.packer.Generate(outlook.Days, activities)

	return composeAdvisory(intent, outlook, assessments, alternatives, packing), nil
}

// mergeActivities unions the conversation's planned activities with those
// mentioned in the message, preserving order and dropping duplicates.
func mergeActivities(planned, mentioned []string) []string {
	seen := make(map[string]struct{}, len(planned)+len(mentioned))
	var out []string
	for _, list := range [][]string{planned, mentioned} {
		for _, a := range list {
			if a == "" {
				continue
			}
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}
