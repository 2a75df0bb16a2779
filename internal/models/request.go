package models

// RawQuote is one scraped (label, price) pair
type RawQuote struct {
	Label string `json:"label"`
	Odds  string `json:"odds"`
}

// EachWayTermsMessage carries a bookmaker's each-way rule, e.g. "1/5" x 10
type EachWayTermsMessage struct {
	PlaceFraction string `json:"place_fraction"`
	PlaceCount    int    `json:"place_count"`
}

// OfferMessage is one bookmaker's win market
type OfferMessage struct {
	Source string               `json:"source"` // provider key or page URL
	Terms  *EachWayTermsMessage `json:"terms,omitempty"`
	Quotes []RawQuote           `json:"quotes"`
}

// SnapshotMessage is one reference market. Available=false reports an
// acquisition failure with Reason.
type SnapshotMessage struct {
	Source    string     `json:"source"`
	Available bool       `json:"available"`
	Reason    string     `json:"reason,omitempty"`
	Quotes    []RawQuote `json:"quotes,omitempty"`
}

// ReferenceMessage groups the exchange markets offers are compared against
type ReferenceMessage struct {
	Win   *SnapshotMessage `json:"win"`
	Top5  *SnapshotMessage `json:"top5,omitempty"`
	Top10 *SnapshotMessage `json:"top10,omitempty"`
}

// AnalysisRequest is what acquisition publishes for one event
type AnalysisRequest struct {
	EventID   string           `json:"event_id"`
	BatchID   string           `json:"batch_id,omitempty"`
	Mode      Mode             `json:"mode"`
	Offers    []OfferMessage   `json:"offers"`
	Reference ReferenceMessage `json:"reference"`
}
