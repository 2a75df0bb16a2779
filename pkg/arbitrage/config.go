package arbitrage

import (
	"fmt"

	"github.com/cypherlabdev/golf-edge-service/pkg/odds"
	"github.com/cypherlabdev/golf-edge-service/pkg/projector"
)

// Config holds the engine's each-way defaults
type Config struct {
	DefaultTerms   odds.EachWayTerms // place terms for offers that did not report their own
	DefaultDepth   int               // place depth when neither override nor terms give one
	DepthOverrides map[string]int    // provider key -> place depth
	Workers        int               // concurrent offers, 0 for unlimited
}

// DefaultConfig returns 1/5 odds, 10 places, default depth 10
func DefaultConfig() Config {
	return Config{
		DefaultTerms: odds.EachWayTerms{
			PlaceFraction: odds.Fraction{Num: 1, Den: 5},
			PlaceCount:    10,
		},
		DefaultDepth: 10,
	}
}

// Validate checks the terms and that every depth can be projected
func (c Config) Validate() error {
	if err := c.DefaultTerms.Validate(); err != nil {
		return fmt.Errorf("default terms: %w", err)
	}
	if !projectable(c.DefaultDepth) {
		return fmt.Errorf("default depth %d not in [%d,%d]", c.DefaultDepth, projector.MinDepth, projector.MaxDepth)
	}
	for key, depth := range c.DepthOverrides {
		if !projectable(depth) {
			return fmt.Errorf("depth override for %s: %d not in [%d,%d]", key, depth, projector.MinDepth, projector.MaxDepth)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// PlaceDepth resolves the depth for a provider: the configured override,
// else the offer's own place count, else the default.
func (c Config) PlaceDepth(providerKey string, terms *odds.EachWayTerms) int {
	if depth, ok := c.DepthOverrides[providerKey]; ok {
		return depth
	}
	if terms != nil {
		return terms.PlaceCount
	}
	return c.DefaultDepth
}

func projectable(depth int) bool {
	return depth >= projector.MinDepth && depth <= projector.MaxDepth
}
