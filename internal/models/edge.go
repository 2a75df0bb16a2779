package models

import (
	"time"

	"github.com/google/uuid"
)

// Mode selects which legs the engine scores
type Mode string

const (
	ModeEachWay Mode = "each_way" // win and place legs
	ModeWinOnly Mode = "win_only" // win leg only
)

// ProjectedPrice is a lay price estimated for a depth that was not quoted
type ProjectedPrice struct {
	Identity       string  `json:"identity"`
	RequestedDepth int     `json:"requested_depth"`
	Price          float64 `json:"price"`
}

// ArbitrageRecord compares one bookmaker offer against the reference prices
// for one entity. PlaceLeg is nil in win-only mode, which drops the place keys
// from the JSON form.
type ArbitrageRecord struct {
	Identity          string  `json:"identity"`
	Label             string  `json:"label"`
	SourceID          string  `json:"source_id"`
	OfferWinPrice     float64 `json:"offer_win_price"`
	ReferenceWinPrice float64 `json:"reference_win_price"`
	WinEdge           float64 `json:"win_edge"` // percent
	*PlaceLeg
}

// PlaceLeg is the each-way half of a record
type PlaceLeg struct {
	OfferPlacePrice     float64 `json:"offer_place_price"`
	OfferPlaceFraction  string  `json:"offer_place_fraction"` // reduced, e.g. "5/2"
	ReferencePlacePrice float64 `json:"reference_place_price"`
	PlaceEdge           float64 `json:"place_edge"`    // percent
	CombinedEdge        float64 `json:"combined_edge"` // percent, mean of win and place
	PlaceDepthUsed      int     `json:"place_depth_used"`
	PlaceFallback       bool    `json:"place_fallback"` // blended reference used instead of projection
}

// RankingEdge is the edge records are ordered by in the given mode
func (r ArbitrageRecord) RankingEdge(mode Mode) float64 {
	if mode == ModeWinOnly || r.PlaceLeg == nil {
		return r.WinEdge
	}
	return r.CombinedEdge
}

// EntityGroup is every record for one entity, best first
type EntityGroup struct {
	Identity  string            `json:"identity"`
	Label     string            `json:"label"`
	BestEdge  float64           `json:"best_edge"`
	Records   []ArbitrageRecord `json:"records"`
	Positives int               `json:"positive_sources"`
}

// EdgeStats summarizes positive edges across entities
type EdgeStats struct {
	Records             int `json:"records"`
	Entities            int `json:"entities"`
	PositiveEntities    int `json:"positive_entities"`
	MultiSourcePositive int `json:"multi_source_positive_entities"`
}

// SkippedOffer is a quote or offer the engine could not score
type SkippedOffer struct {
	SourceID string `json:"source_id"`
	Identity string `json:"identity,omitempty"`
	Label    string `json:"label,omitempty"`
	Reason   string `json:"reason"`
	Detail   string `json:"detail,omitempty"`
}

// Report is the ranked output of one analysis run
type Report struct {
	ID          uuid.UUID         `json:"id"`
	EventID     string            `json:"event_id"`
	BatchID     string            `json:"batch_id,omitempty"`
	Mode        Mode              `json:"mode"`
	Records     []ArbitrageRecord `json:"records"`
	Groups      []EntityGroup     `json:"groups"`
	Stats       EdgeStats         `json:"stats"`
	Skipped     []SkippedOffer    `json:"skipped,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
}
