package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/golf-edge-service/pkg/odds"
)

func TestNewSnapshot_Success(t *testing.T) {
	snap, rejected := NewSnapshot("betfair", 10, []RawQuote{
		{Label: "Rory McIlroy", Odds: "5.0"},
		{Label: "Jon Rahm", Odds: "7/2"},
	})

	assert.Empty(t, rejected)
	assert.Equal(t, "betfair", snap.SourceID())
	assert.Equal(t, 10, snap.Depth())
	assert.Equal(t, 2, snap.Len())

	q, ok := snap.Quote("rory mcilroy")
	require.True(t, ok)
	assert.Equal(t, "Rory McIlroy", q.Label)
	assert.Equal(t, "5.0", q.Odds)
	assert.InDelta(t, 5.0, q.Price, 1e-12)

	q, ok = snap.Quote("jon rahm")
	require.True(t, ok)
	assert.InDelta(t, 4.5, q.Price, 1e-12)
}

func TestNewSnapshot_Rejections(t *testing.T) {
	snap, rejected := NewSnapshot("paddypower", WinOnly, []RawQuote{
		{Label: "Rory McIlroy", Odds: "10/1"},
		{Label: "  ", Odds: "5/1"},
		{Label: "Jon Rahm", Odds: "SP"},
		{Label: "rory  mcilroy", Odds: "12/1"},
		{Label: "Viktor Hovland", Odds: "0.5"},
	})

	assert.Equal(t, 1, snap.Len())
	require.Len(t, rejected, 4)
	assert.ErrorIs(t, rejected[0], ErrBlankLabel)
	assert.ErrorIs(t, rejected[1], odds.ErrParse)
	assert.ErrorIs(t, rejected[2], ErrDuplicate)
	assert.ErrorIs(t, rejected[3], odds.ErrParse)
	assert.Contains(t, rejected[1].Error(), "Jon Rahm")

	// first quote wins on duplicates
	q, ok := snap.Quote("rory mcilroy")
	require.True(t, ok)
	assert.InDelta(t, 11.0, q.Price, 1e-12)
}

func TestSnapshot_InsertionOrder(t *testing.T) {
	snap, _ := NewSnapshot("bet365", WinOnly, []RawQuote{
		{Label: "C", Odds: "3/1"},
		{Label: "A", Odds: "4/1"},
		{Label: "B", Odds: "5/1"},
	})

	assert.Equal(t, []string{"c", "a", "b"}, snap.Identities())

	quotes := snap.Quotes()
	require.Len(t, quotes, 3)
	assert.Equal(t, "C", quotes[0].Label)
	assert.Equal(t, "B", quotes[2].Label)
}

func TestSnapshot_AccessorsReturnCopies(t *testing.T) {
	snap, _ := NewSnapshot("bet365", WinOnly, []RawQuote{{Label: "A", Odds: "4/1"}})

	ids := snap.Identities()
	ids[0] = "mutated"
	quotes := snap.Quotes()
	quotes[0].Price = 99

	assert.Equal(t, []string{"a"}, snap.Identities())
	q, _ := snap.Quote("a")
	assert.InDelta(t, 5.0, q.Price, 1e-12)
}

func TestAvailability(t *testing.T) {
	snap, _ := NewSnapshot("betfair", 5, nil)

	present := Present(snap)
	got, ok := present.Get()
	assert.True(t, ok)
	assert.Same(t, snap, got)
	assert.False(t, present.IsZero())

	missing := Unavailable("timeout")
	_, ok = missing.Get()
	assert.False(t, ok)
	assert.Equal(t, "timeout", missing.Reason())
	assert.False(t, missing.IsZero())

	assert.Equal(t, "source unavailable", Unavailable("").Reason())
	assert.True(t, Availability{}.IsZero())
	assert.True(t, Present(nil).IsZero())
}
