package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/golf-edge-service/internal/cache"
	"github.com/cypherlabdev/golf-edge-service/internal/metrics"
	"github.com/cypherlabdev/golf-edge-service/internal/models"
	"github.com/cypherlabdev/golf-edge-service/pkg/arbitrage"
	"github.com/cypherlabdev/golf-edge-service/pkg/market"
	"github.com/cypherlabdev/golf-edge-service/pkg/odds"
)

var (
	// ErrInvalidRequest marks a request that cannot be analyzed as sent
	ErrInvalidRequest = errors.New("invalid analysis request")
	// ErrReportNotFound is returned when no report exists for an event
	ErrReportNotFound = errors.New("report not found")
)

// reference market depths
const (
	top5Depth  = 5
	top10Depth = 10
)

// ArbitrageService turns analysis requests into ranked reports, caching and
// publishing each one
type ArbitrageService struct {
	analyzer  Analyzer
	providers arbitrage.Resolver
	cache     Cache
	publisher Publisher
	logger    zerolog.Logger
}

// NewArbitrageService creates a new arbitrage service. publisher may be nil.
func NewArbitrageService(
	analyzer Analyzer,
	providers arbitrage.Resolver,
	cache Cache,
	publisher Publisher,
	logger zerolog.Logger,
) *ArbitrageService {
	return &ArbitrageService{
		analyzer:  analyzer,
		providers: providers,
		cache:     cache,
		publisher: publisher,
		logger:    logger.With().Str("component", "arbitrage_service").Logger(),
	}
}

// Analyze builds snapshots from the request, runs the engine and returns the
// ranked report. Caching and publishing failures are logged, not returned.
func (s *ArbitrageService) Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.Report, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidRequest)
	}
	if req.EventID == "" {
		return nil, fmt.Errorf("%w: event_id is required", ErrInvalidRequest)
	}

	start := time.Now()
	mode := req.Mode
	if mode == "" {
		mode = models.ModeEachWay
	}

	offers, skipped := s.buildOffers(req.Offers)
	ref := arbitrage.Reference{
		Win:   s.buildReference(req.Reference.Win, market.WinOnly),
		Top5:  s.buildReference(req.Reference.Top5, top5Depth),
		Top10: s.buildReference(req.Reference.Top10, top10Depth),
	}

	result, err := s.analyzer.Run(mode, offers, ref)
	if err != nil {
		return nil, fmt.Errorf("analysis failed for event %s: %w", req.EventID, err)
	}
	skipped = append(skipped, result.Skipped...)

	groups := arbitrage.Group(result.Records, mode)
	report := &models.Report{
		ID:          uuid.New(),
		EventID:     req.EventID,
		BatchID:     req.BatchID,
		Mode:        mode,
		Records:     result.Records,
		Groups:      groups,
		Stats:       arbitrage.Summarize(groups),
		Skipped:     skipped,
		GeneratedAt: time.Now().UTC(),
	}

	metrics.AnalysisLatency.Observe(time.Since(start).Seconds())
	s.recordMetrics(report)

	// Cache the report
	if err := s.cache.SetReport(ctx, report); err != nil {
		s.logger.Warn().
			Err(err).
			Str("event_id", report.EventID).
			Msg("failed to cache edge report")
		// Don't fail the request on cache errors
	}

	if s.publisher != nil {
		if err := s.publisher.PublishReport(ctx, report); err != nil {
			s.logger.Warn().
				Err(err).
				Str("event_id", report.EventID).
				Msg("failed to publish edge report")
		}
	}

	s.logger.Info().
		Str("event_id", report.EventID).
		Str("batch_id", report.BatchID).
		Str("mode", string(mode)).
		Int("records", report.Stats.Records).
		Int("positive_entities", report.Stats.PositiveEntities).
		Int("skipped", len(report.Skipped)).
		Msg("analyzed and cached edge report")

	return report, nil
}

// GetReport retrieves the latest cached report for an event
func (s *ArbitrageService) GetReport(ctx context.Context, eventID string) (*models.Report, error) {
	report, err := s.cache.GetReport(ctx, eventID)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, eventID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to retrieve report: %w", err)
	}

	s.logger.Debug().
		Str("event_id", eventID).
		Int("records", len(report.Records)).
		Msg("cache hit for edge report")

	return report, nil
}

// ListEvents returns the events with a cached report
func (s *ArbitrageService) ListEvents(ctx context.Context) ([]string, error) {
	events, err := s.cache.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// buildOffers converts offer messages into engine offers. Offers with
// unreadable terms are skipped whole; rejected quotes are skipped one by one.
func (s *ArbitrageService) buildOffers(msgs []models.OfferMessage) ([]arbitrage.Offer, []models.SkippedOffer) {
	offers := make([]arbitrage.Offer, 0, len(msgs))
	var skipped []models.SkippedOffer

	for _, msg := range msgs {
		sourceID := s.sourceID(msg.Source)

		var terms *odds.EachWayTerms
		if msg.Terms != nil {
			parsed, err := odds.ParseEachWayTerms(msg.Terms.PlaceFraction, msg.Terms.PlaceCount)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("source", sourceID).
					Msg("skipping offer with invalid each-way terms")
				skipped = append(skipped, models.SkippedOffer{
					SourceID: sourceID,
					Reason:   arbitrage.ReasonInvalidTerms,
					Detail:   err.Error(),
				})
				continue
			}
			terms = &parsed
		}

		snapshot, rejected := market.NewSnapshot(msg.Source, market.WinOnly, toRawQuotes(msg.Quotes))
		for _, r := range rejected {
			skipped = append(skipped, models.SkippedOffer{
				SourceID: sourceID,
				Label:    r.Quote.Label,
				Reason:   rejectionReason(r),
				Detail:   r.Error(),
			})
		}
		s.logRejections(msg.Source, rejected)

		offers = append(offers, arbitrage.Offer{
			Source:   msg.Source,
			Terms:    terms,
			Snapshot: snapshot,
		})
	}

	return offers, skipped
}

// buildReference maps a reference message onto the availability the engine
// expects. A missing message stays the zero value.
func (s *ArbitrageService) buildReference(msg *models.SnapshotMessage, depth int) market.Availability {
	if msg == nil {
		return market.Availability{}
	}
	if !msg.Available {
		s.logger.Warn().
			Str("source", msg.Source).
			Int("depth", depth).
			Str("reason", msg.Reason).
			Msg("reference market unavailable")
		return market.Unavailable(msg.Reason)
	}

	snapshot, rejected := market.NewSnapshot(msg.Source, depth, toRawQuotes(msg.Quotes))
	s.logRejections(msg.Source, rejected)
	return market.Present(snapshot)
}

func (s *ArbitrageService) logRejections(source string, rejected []market.Rejection) {
	if len(rejected) == 0 {
		return
	}
	metrics.QuotesRejected.Add(float64(len(rejected)))
	for _, r := range rejected {
		s.logger.Debug().
			Err(r.Err).
			Str("source", source).
			Str("label", r.Quote.Label).
			Str("odds", r.Quote.Odds).
			Msg("rejected quote")
	}
	s.logger.Warn().
		Str("source", source).
		Int("rejected", len(rejected)).
		Msg("quotes rejected while building snapshot")
}

func (s *ArbitrageService) sourceID(source string) string {
	if s.providers == nil {
		return source
	}
	key, err := s.providers.Resolve(source)
	if err != nil {
		return source
	}
	return key
}

func (s *ArbitrageService) recordMetrics(report *models.Report) {
	metrics.RecordsProduced.WithLabelValues(string(report.Mode)).Add(float64(len(report.Records)))
	for _, skip := range report.Skipped {
		metrics.OffersSkipped.WithLabelValues(skip.Reason).Inc()
	}
	for _, record := range report.Records {
		if record.PlaceFallback {
			metrics.PlaceFallbacks.Inc()
		}
	}
	metrics.PositiveEntities.Set(float64(report.Stats.PositiveEntities))
}

func toRawQuotes(quotes []models.RawQuote) []market.RawQuote {
	raws := make([]market.RawQuote, len(quotes))
	for i, q := range quotes {
		raws[i] = market.RawQuote{Label: q.Label, Odds: q.Odds}
	}
	return raws
}

func rejectionReason(r market.Rejection) string {
	switch {
	case errors.Is(r.Err, market.ErrBlankLabel):
		return arbitrage.ReasonBlankLabel
	case errors.Is(r.Err, market.ErrDuplicate):
		return arbitrage.ReasonDuplicate
	default:
		return arbitrage.ReasonParseError
	}
}
