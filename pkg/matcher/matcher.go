// Package matcher joins snapshots from different sources by identity.
package matcher

import (
	"github.com/cypherlabdev/golf-edge-service/pkg/market"
)

// Pair is one entity quoted by both sides of a match.
type Pair struct {
	Identity string
	A        market.Quote
	B        market.Quote
}

// Match returns the entities present in both a and b, in a's insertion
// order. Entities quoted on one side only are left out.
func Match(a, b *market.Snapshot) []Pair {
	if a == nil || b == nil {
		return nil
	}

	pairs := make([]Pair, 0, min(a.Len(), b.Len()))
	for _, quoteA := range a.Quotes() {
		quoteB, ok := b.Quote(quoteA.Identity)
		if !ok {
			continue
		}
		pairs = append(pairs, Pair{Identity: quoteA.Identity, A: quoteA, B: quoteB})
	}
	return pairs
}

// Index returns the pairs keyed by identity.
func Index(pairs []Pair) map[string]Pair {
	out := make(map[string]Pair, len(pairs))
	for _, p := range pairs {
		out[p.Identity] = p
	}
	return out
}
