// Package market holds immutable per-source quote snapshots.
package market

import (
	"errors"
	"fmt"

	"github.com/cypherlabdev/golf-edge-service/pkg/identity"
	"github.com/cypherlabdev/golf-edge-service/pkg/odds"
)

var (
	// ErrBlankLabel marks a quote without an entity name
	ErrBlankLabel = errors.New("blank entity label")
	// ErrDuplicate marks a second quote for an identity already in the snapshot
	ErrDuplicate = errors.New("duplicate entity")
)

// WinOnly is the depth of a snapshot that is not a place market.
const WinOnly = 0

// RawQuote is one (label, price) pair as scraped from a source.
type RawQuote struct {
	Label string `json:"label"`
	Odds  string `json:"odds"`
}

// Quote is a validated price for one entity.
type Quote struct {
	Identity string
	Label    string
	Odds     string // as quoted, kept for exact place-fraction derivation
	Price    float64
}

// Rejection records a raw quote that did not make it into a snapshot.
type Rejection struct {
	Quote RawQuote
	Err   error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("%q (%s): %v", r.Quote.Label, r.Quote.Odds, r.Err)
}

func (r Rejection) Unwrap() error {
	return r.Err
}

// Snapshot is one source's quotes for one market. It is never modified after
// NewSnapshot returns.
type Snapshot struct {
	sourceID string
	depth    int
	quotes   map[string]Quote
	order    []string
}

// NewSnapshot validates raw quotes and builds a snapshot keyed by normalized
// identity. Invalid quotes are returned as rejections and left out. When an
// identity repeats, the first quote wins.
func NewSnapshot(sourceID string, depth int, raws []RawQuote) (*Snapshot, []Rejection) {
	s := &Snapshot{
		sourceID: sourceID,
		depth:    depth,
		quotes:   make(map[string]Quote, len(raws)),
		order:    make([]string, 0, len(raws)),
	}

	var rejected []Rejection
	for _, raw := range raws {
		if identity.IsBlank(raw.Label) {
			rejected = append(rejected, Rejection{Quote: raw, Err: ErrBlankLabel})
			continue
		}

		price, err := odds.ToDecimal(raw.Odds)
		if err != nil {
			rejected = append(rejected, Rejection{Quote: raw, Err: err})
			continue
		}

		key := identity.Normalize(raw.Label)
		if _, exists := s.quotes[key]; exists {
			rejected = append(rejected, Rejection{Quote: raw, Err: ErrDuplicate})
			continue
		}

		s.quotes[key] = Quote{
			Identity: key,
			Label:    raw.Label,
			Odds:     raw.Odds,
			Price:    price,
		}
		s.order = append(s.order, key)
	}

	return s, rejected
}

// SourceID returns the id of the source the quotes came from.
func (s *Snapshot) SourceID() string { return s.sourceID }

// Depth returns the number of places the market pays, or WinOnly.
func (s *Snapshot) Depth() int { return s.depth }

// Len returns the number of quotes.
func (s *Snapshot) Len() int { return len(s.order) }

// Quote looks up a quote by normalized identity.
func (s *Snapshot) Quote(identity string) (Quote, bool) {
	q, ok := s.quotes[identity]
	return q, ok
}

// Identities returns the identities in insertion order.
func (s *Snapshot) Identities() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Quotes returns a copy of the quotes in insertion order.
func (s *Snapshot) Quotes() []Quote {
	out := make([]Quote, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.quotes[key])
	}
	return out
}
