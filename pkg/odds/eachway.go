package odds

import (
	"fmt"
	"math"
)

// EachWayTerms is a bookmaker's each-way rule: the place leg pays
// PlaceFraction of the win odds for a finish inside the top PlaceCount.
type EachWayTerms struct {
	PlaceFraction Fraction
	PlaceCount    int
}

// ParseEachWayTerms builds terms from a fraction string such as "1/5".
func ParseEachWayTerms(fraction string, places int) (EachWayTerms, error) {
	f, err := parseFractional(clean(fraction))
	if err != nil {
		return EachWayTerms{}, fmt.Errorf("place fraction: %w", err)
	}

	terms := EachWayTerms{PlaceFraction: f, PlaceCount: places}
	if err := terms.Validate(); err != nil {
		return EachWayTerms{}, err
	}
	return terms, nil
}

// Validate checks the fraction is in (0, 1] and at least one place is paid.
func (t EachWayTerms) Validate() error {
	if t.PlaceFraction.Num <= 0 || t.PlaceFraction.Den <= 0 {
		return fmt.Errorf("invalid place fraction %s", t.PlaceFraction)
	}
	if t.PlaceFraction.Den > math.MaxInt32 {
		return fmt.Errorf("place fraction %s out of range", t.PlaceFraction)
	}
	if t.PlaceFraction.Num > t.PlaceFraction.Den {
		return fmt.Errorf("place fraction %s exceeds 1", t.PlaceFraction)
	}
	if t.PlaceCount < 1 {
		return fmt.Errorf("place count must be at least 1, got %d", t.PlaceCount)
	}
	return nil
}

// String renders terms as "1/5 x 10"
func (t EachWayTerms) String() string {
	return fmt.Sprintf("%s x %d", t.PlaceFraction, t.PlaceCount)
}

// PlacePrice is the place leg of an each-way bet.
type PlacePrice struct {
	Fraction Fraction // lowest terms
	Price    float64
}

// DerivePlacePrice applies each-way terms to a win price. The reduced fraction
// is what a bettor reads off the board and is returned alongside the decimal.
func DerivePlacePrice(win string, terms EachWayTerms) (PlacePrice, error) {
	if err := terms.Validate(); err != nil {
		return PlacePrice{}, err
	}

	w, err := ParseFraction(win)
	if err != nil {
		return PlacePrice{}, err
	}

	place := Fraction{
		Num: w.Num * terms.PlaceFraction.Num,
		Den: w.Den * terms.PlaceFraction.Den,
	}.Reduce()

	return PlacePrice{Fraction: place, Price: place.Price()}, nil
}

// PlaceFromDecimal applies the place fraction to a decimal win price.
func PlaceFromDecimal(winPrice float64, terms EachWayTerms) float64 {
	frac := float64(terms.PlaceFraction.Num) / float64(terms.PlaceFraction.Den)
	return (winPrice-1)*frac + 1
}
