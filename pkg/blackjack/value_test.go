package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blackjack-server/pkg/deck"
)

func handOf(t *testing.T, cards string) *deck.Deck {
	t.Helper()

	d := deck.New()
	for _, card := range deck.CardsFromString(cards) {
		assert.NoError(t, d.Insert(card, true))
	}

	return d
}

func TestCardValue(t *testing.T) {
	a := assert.New(t)

	a.Equal(2, CardValue(deck.CardFromString("2c")))
	a.Equal(10, CardValue(deck.CardFromString("10d")))
	a.Equal(10, CardValue(deck.CardFromString("11h")))
	a.Equal(10, CardValue(deck.CardFromString("12s")))
	a.Equal(10, CardValue(deck.CardFromString("13c")))
	a.Equal(11, CardValue(deck.CardFromString("14c")))
}

func TestHandValue(t *testing.T) {
	a := assert.New(t)

	// no aces: the literal sum, even over 21
	a.Equal(7, HandValue(handOf(t, "5h,2h")))
	a.Equal(25, HandValue(handOf(t, "11h,5h,12h")))

	// soft hands
	a.Equal(21, HandValue(handOf(t, "14h,13h")))
	a.Equal(12, HandValue(handOf(t, "14h,13h,14d")))
	a.Equal(18, HandValue(handOf(t, "5h,2h,14h,13d")))

	// a single ace that still fits stays high
	a.Equal(17, HandValue(handOf(t, "14h,6h")))

	// every combination busts: report the aces-high sum
	a.Equal(32, HandValue(handOf(t, "13h,12h,14h,14d")))

	a.Equal(0, HandValue(deck.New()))
}

func TestHandValue_Idempotent(t *testing.T) {
	hand := handOf(t, "5h,2h,14h,13d")

	first := HandValue(hand)
	assert.Equal(t, first, HandValue(hand))
	assert.Equal(t, first, HandValue(hand))
}

func TestHandIcons(t *testing.T) {
	assert.Equal(t, "A♠, K♡", HandIcons(handOf(t, "14s,13h")))
	assert.Equal(t, "", HandIcons(deck.New()))
}
