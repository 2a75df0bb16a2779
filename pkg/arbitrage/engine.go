// Package arbitrage scores bookmaker each-way offers against exchange lay
// prices and ranks the resulting edges.
package arbitrage

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cypherlabdev/golf-edge-service/internal/models"
	"github.com/cypherlabdev/golf-edge-service/pkg/market"
	"github.com/cypherlabdev/golf-edge-service/pkg/matcher"
	"github.com/cypherlabdev/golf-edge-service/pkg/odds"
	"github.com/cypherlabdev/golf-edge-service/pkg/projector"
)

// Skip reasons reported in Report.Skipped
const (
	ReasonParseError    = "parse_error"
	ReasonUnmatched     = "unmatched_entity"
	ReasonUnknownSource = "unknown_source"
	ReasonInvalidTerms  = "invalid_terms"
	ReasonBlankLabel    = "blank_label"
	ReasonDuplicate     = "duplicate_entity"
)

var (
	// ErrMissingReference means a snapshot the mode needs was never supplied
	ErrMissingReference = errors.New("reference snapshot missing")
	// ErrReferenceUnavailable means the win reference could not be acquired
	ErrReferenceUnavailable = errors.New("win reference unavailable")
	// ErrInvalidMode is returned for an unknown mode
	ErrInvalidMode = errors.New("invalid mode")
)

// Resolver maps an offer source to a provider key.
type Resolver interface {
	Resolve(source string) (string, error)
}

// Offer is one bookmaker's win market plus the each-way terms it pays.
// Terms is nil when the bookmaker's terms were not scraped.
type Offer struct {
	Source   string
	Terms    *odds.EachWayTerms
	Snapshot *market.Snapshot
}

// Reference holds the exchange lay markets offers are scored against.
// Top5 and Top10 are only read in each-way mode.
type Reference struct {
	Win   market.Availability
	Top5  market.Availability
	Top10 market.Availability
}

// Report is the result of one engine run.
type Report struct {
	Records []models.ArbitrageRecord
	Skipped []models.SkippedOffer
}

// Engine computes win/place edges. It holds no state between runs.
type Engine struct {
	config    Config
	providers Resolver
	logger    zerolog.Logger
}

// NewEngine creates a new arbitrage engine
func NewEngine(config Config, providers Resolver, logger zerolog.Logger) *Engine {
	return &Engine{
		config:    config,
		providers: providers,
		logger:    logger.With().Str("component", "arbitrage_engine").Logger(),
	}
}

// places bundles the place-leg references for one run
type places struct {
	projector *projector.Projector
	top5      *market.Snapshot
	top10     *market.Snapshot
}

type offerResult struct {
	records []models.ArbitrageRecord
	skipped []models.SkippedOffer
}

// Run scores every offer against the reference and returns the records
// ranked by edge. Per-offer and per-quote problems are reported in
// Report.Skipped; only a missing snapshot the mode needs is an error.
func (e *Engine) Run(mode models.Mode, offers []Offer, ref Reference) (*Report, error) {
	if mode != models.ModeEachWay && mode != models.ModeWinOnly {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	if ref.Win.IsZero() {
		return nil, fmt.Errorf("%w: win", ErrMissingReference)
	}
	win, ok := ref.Win.Get()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrReferenceUnavailable, ref.Win.Reason())
	}

	for i, offer := range offers {
		if offer.Snapshot == nil {
			return nil, fmt.Errorf("%w: offer %d (%s) has no snapshot", ErrMissingReference, i, offer.Source)
		}
	}

	var pl places
	if mode == models.ModeEachWay {
		var err error
		if pl, err = e.placeReferences(ref); err != nil {
			return nil, err
		}
	}

	// offers are independent; each writes only its own slot
	results := make([]offerResult, len(offers))
	var g errgroup.Group
	if e.config.Workers > 0 {
		g.SetLimit(e.config.Workers)
	}
	for i, offer := range offers {
		g.Go(func() error {
			results[i] = e.scoreOffer(mode, offer, win, pl)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{Records: make([]models.ArbitrageRecord, 0)}
	for _, res := range results {
		report.Records = append(report.Records, res.records...)
		report.Skipped = append(report.Skipped, res.skipped...)
	}
	Rank(report.Records, mode)

	e.logger.Info().
		Str("mode", string(mode)).
		Int("offers", len(offers)).
		Int("records", len(report.Records)).
		Int("skipped", len(report.Skipped)).
		Msg("arbitrage run complete")

	return report, nil
}

// Rank sorts records by edge, best first, keeping input order on ties.
func Rank(records []models.ArbitrageRecord, mode models.Mode) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RankingEdge(mode) > records[j].RankingEdge(mode)
	})
}

func (e *Engine) placeReferences(ref Reference) (places, error) {
	if ref.Top5.IsZero() {
		return places{}, fmt.Errorf("%w: top 5", ErrMissingReference)
	}
	if ref.Top10.IsZero() {
		return places{}, fmt.Errorf("%w: top 10", ErrMissingReference)
	}

	var pl places
	top5, ok5 := ref.Top5.Get()
	if ok5 {
		pl.top5 = top5
	} else {
		e.logger.Warn().Str("reason", ref.Top5.Reason()).Msg("top 5 reference unavailable, using blended place prices")
	}
	top10, ok10 := ref.Top10.Get()
	if ok10 {
		pl.top10 = top10
	} else {
		e.logger.Warn().Str("reason", ref.Top10.Reason()).Msg("top 10 reference unavailable, using blended place prices")
	}

	if ok5 && ok10 {
		proj, err := projector.New(top5, top10)
		if err != nil {
			return places{}, err
		}
		pl.projector = proj
	}
	return pl, nil
}

func (e *Engine) scoreOffer(mode models.Mode, offer Offer, win *market.Snapshot, pl places) offerResult {
	var res offerResult

	providerKey, err := e.providers.Resolve(offer.Source)
	if err != nil {
		e.logger.Warn().Err(err).Str("source", offer.Source).Msg("skipping offer from unknown source")
		res.skipped = append(res.skipped, models.SkippedOffer{
			SourceID: offer.Source,
			Reason:   ReasonUnknownSource,
			Detail:   err.Error(),
		})
		return res
	}

	terms := e.config.DefaultTerms
	if offer.Terms != nil {
		if err := offer.Terms.Validate(); err != nil {
			e.logger.Warn().Err(err).Str("source", providerKey).Msg("skipping offer with invalid each-way terms")
			res.skipped = append(res.skipped, models.SkippedOffer{
				SourceID: providerKey,
				Reason:   ReasonInvalidTerms,
				Detail:   err.Error(),
			})
			return res
		}
		terms = *offer.Terms
	}
	depth := e.config.PlaceDepth(providerKey, offer.Terms)

	pairs := matcher.Match(offer.Snapshot, win)
	matched := matcher.Index(pairs)
	for _, q := range offer.Snapshot.Quotes() {
		if _, ok := matched[q.Identity]; !ok {
			res.skipped = append(res.skipped, models.SkippedOffer{
				SourceID: providerKey,
				Identity: q.Identity,
				Label:    q.Label,
				Reason:   ReasonUnmatched,
			})
		}
	}

	for _, pair := range pairs {
		record := models.ArbitrageRecord{
			Identity:          pair.Identity,
			Label:             pair.A.Label,
			SourceID:          providerKey,
			OfferWinPrice:     pair.A.Price,
			ReferenceWinPrice: pair.B.Price,
			WinEdge:           Edge(pair.A.Price, pair.B.Price),
		}

		if mode == models.ModeEachWay {
			place, err := odds.DerivePlacePrice(pair.A.Odds, terms)
			if err != nil {
				e.logger.Debug().Err(err).Str("source", providerKey).Str("identity", pair.Identity).Msg("skipping quote with unparseable odds")
				res.skipped = append(res.skipped, models.SkippedOffer{
					SourceID: providerKey,
					Identity: pair.Identity,
					Label:    pair.A.Label,
					Reason:   ReasonParseError,
					Detail:   err.Error(),
				})
				continue
			}

			refPlace, fallback := e.referencePlace(pair.Identity, depth, pair.B.Price, terms, pl)

			placeEdge := Edge(place.Price, refPlace)
			record.PlaceLeg = &models.PlaceLeg{
				OfferPlacePrice:     place.Price,
				OfferPlaceFraction:  place.Fraction.String(),
				ReferencePlacePrice: refPlace,
				PlaceEdge:           placeEdge,
				CombinedEdge:        (record.WinEdge + placeEdge) / 2,
				PlaceDepthUsed:      depth,
				PlaceFallback:       fallback,
			}
		}

		res.records = append(res.records, record)
	}

	return res
}

// referencePlace resolves the lay place price at depth, preferring the
// projection and falling back to the blended price. The bool reports a
// fallback.
func (e *Engine) referencePlace(identity string, depth int, winLay float64, terms odds.EachWayTerms, pl places) (float64, bool) {
	if pl.projector != nil {
		projected, err := pl.projector.Project(identity, depth)
		if err == nil {
			return projected.Price, false
		}
		e.logger.Debug().
			Err(err).
			Str("identity", identity).
			Int("depth", depth).
			Msg("projection unavailable, using blended place price")
	}
	return Blended(identity, depth, winLay, terms, pl.top5, pl.top10), true
}

// Blended averages the place price implied by the win lay price under the
// offer's terms with the observed place lay price nearest to depth. When no
// place market quotes the entity the win-implied price is returned alone.
func Blended(identity string, depth int, winLay float64, terms odds.EachWayTerms, top5, top10 *market.Snapshot) float64 {
	implied := odds.PlaceFromDecimal(winLay, terms)

	near, far := top10, top5
	if abs(depth-5) < abs(depth-10) {
		near, far = top5, top10
	}
	for _, snap := range []*market.Snapshot{near, far} {
		if snap == nil {
			continue
		}
		if q, ok := snap.Quote(identity); ok {
			return (implied + q.Price) / 2
		}
	}
	return implied
}

// Edge returns the percentage by which offer beats reference.
func Edge(offer, reference float64) float64 {
	return (offer/reference - 1) * 100
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
