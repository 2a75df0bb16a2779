// Package projector estimates lay prices for place depths that were never
// quoted from the top 5 and top 10 markets that were.
//
// Implied probability is treated as piecewise linear in depth, anchored at
// depths 5 and 10. Between the anchors the estimate is interpolated and
// beyond depth 10 the same per-place slope is extrapolated.
package projector

import (
	"errors"
	"fmt"

	"github.com/cypherlabdev/golf-edge-service/internal/models"
	"github.com/cypherlabdev/golf-edge-service/pkg/market"
)

const (
	// MinDepth is the shallowest depth that can be projected
	MinDepth = 5
	// MaxDepth is the deepest depth that can be projected
	MaxDepth = 15

	lowAnchor  = 5
	highAnchor = 10
)

var (
	// ErrDepthOutOfRange is returned for depths outside [MinDepth, MaxDepth]
	ErrDepthOutOfRange = errors.New("depth out of range")
	// ErrUnknownEntity is returned when either anchor market lacks the entity
	ErrUnknownEntity = errors.New("entity missing from reference market")
	// ErrDegenerate is returned when the projected probability is not a
	// usable probability, typically because the top 10 price is longer than
	// the top 5 price
	ErrDegenerate = errors.New("degenerate projection")
)

// Projector projects place prices from two anchor snapshots.
type Projector struct {
	top5  *market.Snapshot
	top10 *market.Snapshot
}

// New creates a projector over the top 5 and top 10 lay markets.
func New(top5, top10 *market.Snapshot) (*Projector, error) {
	if top5 == nil || top10 == nil {
		return nil, errors.New("projector requires both top 5 and top 10 snapshots")
	}
	return &Projector{top5: top5, top10: top10}, nil
}

// Project returns the estimated lay price for identity at depth.
func (p *Projector) Project(identity string, depth int) (models.ProjectedPrice, error) {
	if depth < MinDepth || depth > MaxDepth {
		return models.ProjectedPrice{}, fmt.Errorf("%w: %d not in [%d,%d]", ErrDepthOutOfRange, depth, MinDepth, MaxDepth)
	}

	q5, ok := p.top5.Quote(identity)
	if !ok {
		return models.ProjectedPrice{}, fmt.Errorf("%w: %q not in top %d", ErrUnknownEntity, identity, lowAnchor)
	}
	q10, ok := p.top10.Quote(identity)
	if !ok {
		return models.ProjectedPrice{}, fmt.Errorf("%w: %q not in top %d", ErrUnknownEntity, identity, highAnchor)
	}

	prob := Probability(1/q5.Price, 1/q10.Price, depth)
	if prob <= 0 || prob > 1 {
		return models.ProjectedPrice{}, fmt.Errorf("%w: probability %.4f at depth %d", ErrDegenerate, prob, depth)
	}

	return models.ProjectedPrice{
		Identity:       identity,
		RequestedDepth: depth,
		Price:          1 / prob,
	}, nil
}

// Probability returns the implied probability at depth given the implied
// probabilities at depths 5 and 10. Anchors are returned exactly.
func Probability(p5, p10 float64, depth int) float64 {
	switch {
	case depth == lowAnchor:
		return p5
	case depth == highAnchor:
		return p10
	}

	marginal := (p10 - p5) / float64(highAnchor-lowAnchor)
	if depth < highAnchor {
		return p5 + float64(depth-lowAnchor)*marginal
	}
	return p10 + float64(depth-highAnchor)*marginal
}
