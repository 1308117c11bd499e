package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("2♣", (&Card{Rank: 2, Suit: Clubs}).String())
	a.Equal("10♢", (&Card{Rank: 10, Suit: Diamonds}).String())
	a.Equal("J♡", (&Card{Rank: Jack, Suit: Hearts}).String())
	a.Equal("Q♠", (&Card{Rank: Queen, Suit: Spades}).String())
	a.Equal("K♣", (&Card{Rank: King, Suit: Clubs}).String())
	a.Equal("A♠", (&Card{Rank: Ace, Suit: Spades}).String())

	a.PanicsWithValue("unknown suit", func() {
		_ = (&Card{Rank: 2, Suit: "bananas"}).String()
	})
}

func TestCard_Equal(t *testing.T) {
	a := assert.New(t)
	card := &Card{Rank: Ace, Suit: Spades}
	a.True(card.Equal(&Card{Rank: Ace, Suit: Spades}))
	a.False(card.Equal(&Card{Rank: Ace, Suit: Hearts}))
	a.False(card.Equal(&Card{Rank: King, Suit: Spades}))
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)
	a.Equal(&Card{Rank: 2, Suit: Clubs}, CardFromString("2c"))
	a.Equal(&Card{Rank: 10, Suit: Hearts}, CardFromString("10h"))
	a.Equal(&Card{Rank: Ace, Suit: Spades}, CardFromString("14s"))
	a.Equal(&Card{Rank: Queen, Suit: Diamonds}, CardFromString("12D"))
	a.Nil(CardFromString(""))

	a.Panics(func() { CardFromString("15c") })
	a.Panics(func() { CardFromString("2x") })
	a.Panics(func() { CardFromString("ace of spades") })
}

func TestCardsFromString(t *testing.T) {
	a := assert.New(t)
	a.Equal([]*Card{}, CardsFromString(""))

	cards := CardsFromString("2c,14s,11h")
	a.Equal(3, len(cards))
	a.Equal(&Card{Rank: 2, Suit: Clubs}, cards[0])
	a.Equal(&Card{Rank: Ace, Suit: Spades}, cards[1])
	a.Equal(&Card{Rank: Jack, Suit: Hearts}, cards[2])
}

func TestCardsToString_RoundTrip(t *testing.T) {
	a := assert.New(t)
	a.Equal("", CardToString(nil))
	a.Equal("14c", CardToString(&Card{Rank: Ace, Suit: Clubs}))

	const s = "2c,14s,11h,10d"
	a.Equal(s, CardsToString(CardsFromString(s)))
}
