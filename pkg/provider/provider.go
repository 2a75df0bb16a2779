// Package provider maps offer sources (provider keys or page URLs) to
// provider keys.
package provider

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownSource is returned when a source matches no provider
var ErrUnknownSource = errors.New("unknown source")

// DefaultPatterns maps the bookmakers and exchanges the acquisition side
// scrapes to the URL substrings that identify them.
var DefaultPatterns = map[string][]string{
	"betfair":     {"betfair"},
	"bet365":      {"bet365"},
	"betvictor":   {"betvictor"},
	"boylesports": {"boylesports"},
	"coral":       {"coral.co.uk"},
	"ladbrokes":   {"ladbrokes"},
	"paddypower":  {"paddypower"},
	"skybet":      {"skybet", "betting.sky.com"},
	"williamhill": {"williamhill"},
}

// Registry resolves sources to provider keys. It is read-only after
// construction.
type Registry struct {
	keys     []string // sorted, for deterministic substring matching
	patterns map[string][]string
}

// NewRegistry builds a registry from provider key -> URL substrings.
// Keys and patterns are compared case-insensitively.
func NewRegistry(patterns map[string][]string) *Registry {
	r := &Registry{patterns: make(map[string][]string, len(patterns))}
	for key, subs := range patterns {
		k := strings.ToLower(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		for _, s := range subs {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				r.patterns[k] = append(r.patterns[k], s)
			}
		}
		if _, ok := r.patterns[k]; !ok {
			r.patterns[k] = nil
		}
	}

	for k := range r.patterns {
		r.keys = append(r.keys, k)
	}
	sort.Strings(r.keys)
	return r
}

// Resolve returns the provider key for source: an exact key match first,
// then the first key (alphabetically) with a pattern contained in source.
func (r *Registry) Resolve(source string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(source))
	if s == "" {
		return "", fmt.Errorf("%w: empty source", ErrUnknownSource)
	}

	if _, ok := r.patterns[s]; ok {
		return s, nil
	}

	for _, key := range r.keys {
		for _, pattern := range r.patterns[key] {
			if strings.Contains(s, pattern) {
				return key, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownSource, source)
}

// Keys returns the known provider keys, sorted.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}
