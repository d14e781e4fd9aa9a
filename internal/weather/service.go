package weather

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tripcircle/internal/types"
)

// Provider is the outbound weather data source. Implementations classify
// failures into types.AppError codes at this boundary: not_found_location
// for unrecognized locations, upstream_weather_unavailable for everything
// else. Everything above this interface treats a returned Observation as
// given.
type Provider interface {
	CurrentWeather(ctx context.Context, location string) (*Observation, error)
}

// CompareConcurrency bounds the number of in-flight provider fetches during
// a multi-destination comparison.
const CompareConcurrency = 4

// MaxCompareLocations is the largest comparison batch accepted.
const MaxCompareLocations = 5

// DestinationReport is one location's entry in a comparison result. Err is
// set (and the weather fields nil) when that location's fetch failed;
// a single bad location does not fail the batch.
type DestinationReport struct {
	Location string                 `json:"location"`
	Snapshot *types.WeatherSnapshot `json:"snapshot,omitempty"`
	Verdict  types.Verdict          `json:"verdict,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// Outlook bundles everything the advisory engine derives for one location:
// the normalized snapshot plus the synthetic forecast and its aggregations.
type Outlook struct {
	Snapshot *types.WeatherSnapshot `json:"snapshot"`
	Forecast *types.Forecast        `json:"forecast"`
	Days     []types.DailySummary   `json:"days"`
	BestTime types.BestTime         `json:"best_time"`
}

// Service exposes the weather operations used by the advisor and the HTTP
// layer. It is stateless and request-scoped: nothing is cached, and
// concurrent requests for the same location each re-fetch.
type Service struct {
	provider Provider
	logger   *slog.Logger
	newRand  func() *rand.Rand
	now      func() time.Time
}

// ServiceOption is a functional option for configuring a Service.
type ServiceOption func(*Service)

// WithRandSource overrides the jitter source factory. Tests use this to
// obtain deterministic forecasts.
func WithRandSource(newRand func() *rand.Rand) ServiceOption {
	return func(s *Service) {
		s.newRand = newRand
	}
}

// WithClock overrides the time source. Tests use this to pin forecast
// timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a weather Service backed by the given provider.
func NewService(provider Provider, logger *slog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		provider: provider,
		logger:   logger,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot fetches and normalizes current conditions for a location.
func (s *Service) Snapshot(ctx context.Context, location string) (*types.WeatherSnapshot, error) {
	obs, err := s.provider.CurrentWeather(ctx, location)
	if err != nil {
		return nil, err
	}
	return Normalize(*obs), nil
}

// GetOutlook fetches current conditions and derives the full advisory view:
// synthetic forecast, daily summaries, and best time of day.
func (s *Service) GetOutlook(ctx context.Context, location string) (*Outlook, error) {
	snap, err := s.Snapshot(ctx, location)
	if err != nil {
		return nil, err
	}

	forecast := Synthesize(snap, s.now(), s.newRand())
	days := SummarizeDaily(forecast.Points)

	return &Outlook{
		Snapshot: snap,
		Forecast: forecast,
		Days:     days,
		BestTime: BestTimeOfDay(forecast.Points),
	}, nil
}

// Compare fetches snapshots for several candidate destinations concurrently
// and rates each day-one verdict. Per-location failures are reported inside
// the corresponding DestinationReport rather than failing the batch; the
// returned error is non-nil only for input validation or context
// cancellation.
func (s *Service) Compare(ctx context.Context, locations []string) ([]DestinationReport, error) {
	if len(locations) == 0 {
		return nil, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"at least one location is required",
			nil,
		)
	}
	if len(locations) > MaxCompareLocations {
		return nil, types.NewAppErrorWithDetails(
			types.ErrCodeValidationBatchSize,
			"too many locations in comparison",
			nil,
			map[string]any{"max": MaxCompareLocations},
		)
	}

	reports := make([]DestinationReport, len(locations))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(CompareConcurrency)

	for i, loc := range locations {
		g.Go(func() error {
			report := DestinationReport{Location: loc}

			outlook, err := s.GetOutlook(gctx, loc)
			if err != nil {
				if errors.Is(gctx.Err(), context.Canceled) || errors.Is(gctx.Err(), context.DeadlineExceeded) {
					return gctx.Err()
				}
				s.logger.WarnContext(gctx, "comparison fetch failed",
					"location", loc,
					"error", err,
				)
				report.Error = userFacingFetchError(err)
			} else {
				report.Snapshot = outlook.Snapshot
				if len(outlook.Days) > 0 {
					report.Verdict = outlook.Days[0].Verdict
				}
			}

			mu.Lock()
			reports[i] = report
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// userFacingFetchError reduces a provider failure to a short message safe to
// embed in a comparison report.
func userFacingFetchError(err error) string {
	var appErr *types.AppError
	if errors.As(err, &appErr) && appErr.Code == types.ErrCodeNotFoundLocation {
		return "location not recognized"
	}
	return "weather data unavailable"
}
