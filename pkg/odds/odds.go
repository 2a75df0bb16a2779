// Package odds converts bookmaker price notations and derives each-way place
// prices.
package odds

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrParse marks a price string that cannot be read as odds.
var ErrParse = errors.New("odds parse error")

// maxDecimalPlaces bounds the exact fraction built from a decimal numeral
const maxDecimalPlaces = 6

var one = decimal.NewFromInt(1)

// Fraction is the profit part of a price, "n/d" meaning n returned per d staked
// on top of the stake.
type Fraction struct {
	Num int64
	Den int64
}

// String renders the fraction the way it is shown on a board, e.g. "5/2"
func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// Reduce returns the fraction in lowest terms.
func (f Fraction) Reduce() Fraction {
	g := gcd(f.Num, f.Den)
	if g == 0 {
		return f
	}
	return Fraction{Num: f.Num / g, Den: f.Den / g}
}

// Price returns the decimal multiplier, n/d + 1.
func (f Fraction) Price() float64 {
	return float64(f.Num)/float64(f.Den) + 1
}

// ToDecimal converts "n/d" or a plain decimal numeral into a decimal price.
// Evens ("evs", "evens") is read as 1/1.
func ToDecimal(s string) (float64, error) {
	s = clean(s)
	if isFractional(s) {
		f, err := parseFractional(s)
		if err != nil {
			return 0, err
		}
		return f.Price(), nil
	}

	d, err := parseNumeral(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// ParseFraction returns the exact fraction behind a price string. Decimal
// numerals are converted exactly: "4.5" becomes 7/2.
func ParseFraction(s string) (Fraction, error) {
	s = clean(s)
	if isFractional(s) {
		return parseFractional(s)
	}

	d, err := parseNumeral(s)
	if err != nil {
		return Fraction{}, err
	}

	profit := d.Sub(one)
	if profit.Exponent() < -maxDecimalPlaces {
		return Fraction{}, fmt.Errorf("%w: %q has more than %d decimal places", ErrParse, s, maxDecimalPlaces)
	}

	coef := profit.Coefficient()
	if !coef.IsInt64() {
		return Fraction{}, fmt.Errorf("%w: %q out of range", ErrParse, s)
	}

	num := coef.Int64()
	den := int64(1)
	for exp := profit.Exponent(); exp < 0; exp++ {
		den *= 10
	}
	for exp := profit.Exponent(); exp > 0; exp-- {
		num *= 10
	}

	f := Fraction{Num: num, Den: den}.Reduce()
	if f.Num > math.MaxInt32 || f.Den > math.MaxInt32 {
		return Fraction{}, fmt.Errorf("%w: %q out of range", ErrParse, s)
	}
	return f, nil
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isFractional(s string) bool {
	return strings.Contains(s, "/") || s == "evs" || s == "evens"
}

func parseFractional(s string) (Fraction, error) {
	if s == "evs" || s == "evens" {
		return Fraction{Num: 1, Den: 1}, nil
	}

	numStr, denStr, ok := strings.Cut(s, "/")
	if !ok {
		return Fraction{}, fmt.Errorf("%w: %q", ErrParse, s)
	}

	// 32-bit operands keep products of two fractions inside int64; ParseFraction
	// applies the same bound to decimal numerals
	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 32)
	if err != nil {
		return Fraction{}, fmt.Errorf("%w: numerator of %q", ErrParse, s)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(denStr), 10, 32)
	if err != nil {
		return Fraction{}, fmt.Errorf("%w: denominator of %q", ErrParse, s)
	}
	if num <= 0 || den <= 0 {
		return Fraction{}, fmt.Errorf("%w: %q must have positive numerator and denominator", ErrParse, s)
	}

	return Fraction{Num: num, Den: den}, nil
}

func parseNumeral(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty price", ErrParse)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrParse, s)
	}
	if d.LessThan(one) {
		return decimal.Zero, fmt.Errorf("%w: price %s below 1.0", ErrParse, d.String())
	}

	return d, nil
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
