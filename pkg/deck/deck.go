package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"math/rand"

	"blackjack-server/internal/rng"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// ErrDuplicateCard is an error when Insert() is attempted with a card already in the deck
var ErrDuplicateCard = errors.New("card is already in the deck")

// seedSource provides crypto-quality seeds for production shuffles
var seedSource rng.Generator = rng.Crypto{}

// Deck is an ordered collection of cards.
// The top of the deck is the end of the slice: Draw() pops from the end, and
// Insert() with top=true appends. A Deck doubles as a hand, which starts empty.
type Deck struct {
	Cards []*Card `json:"cards"`
	seed  int64
	rng   *rand.Rand
}

// New returns a new, empty deck.
// Call ResetAndShuffle() to fill it with a shuffled 52-card deck.
func New() *Deck {
	return &Deck{
		Cards: make([]*Card, 0, 52),
		seed:  -1,
	}
}

// SetSeed will set the seed
// This should only be used by tests. Production decks are seeded from a
// crypto-random source the first time ResetAndShuffle() is called.
func (d *Deck) SetSeed(seed int64) {
	d.seed = seed
	d.rng = rand.New(rand.NewSource(seed)) // nolint:gosec
}

func (d *Deck) buildDeck() {
	cards := make([]*Card, 0, 52)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, &Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
}

// ResetAndShuffle replaces the contents with the canonical 52-card deck and
// applies a uniform random permutation.
func (d *Deck) ResetAndShuffle() {
	d.buildDeck()

	if d.rng == nil {
		d.SetSeed(seedSource.Int63())
	}

	for j := len(d.Cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// GetSeed returns the seed used to shuffle the deck
func (d *Deck) GetSeed() int64 {
	return d.seed
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Draw removes and returns the card at the top of the deck
// If there are no more cards, an ErrEndOfDeck is returned along with a nil card.
func (d *Deck) Draw() (*Card, error) {
	n := len(d.Cards)
	if n == 0 {
		return nil, ErrEndOfDeck
	}

	card := d.Cards[n-1]
	d.Cards = d.Cards[:n-1]

	return card, nil
}

// Insert adds a card to the deck. If top is true the card goes on top,
// otherwise it goes on the bottom.
// A card equal in value to one already present returns ErrDuplicateCard and
// leaves the deck untouched.
func (d *Deck) Insert(card *Card, top bool) error {
	if d.HasCard(card) {
		return ErrDuplicateCard
	}

	if top {
		d.Cards = append(d.Cards, card)
	} else {
		d.Cards = append([]*Card{card}, d.Cards...)
	}

	return nil
}

// HasCard returns true if a card of equal value is in the deck
func (d *Deck) HasCard(card *Card) bool {
	for _, c := range d.Cards {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// Clear removes all cards from the deck
func (d *Deck) Clear() {
	d.Cards = d.Cards[:0]
}

// Equal returns true if both decks contain identical cards in the same order.
// Only meant for test fixtures, not gameplay.
func (d *Deck) Equal(other *Deck) bool {
	if len(d.Cards) != len(other.Cards) {
		return false
	}

	for i, card := range d.Cards {
		if !card.Equal(other.Cards[i]) {
			return false
		}
	}

	return true
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}

func (d *Deck) String() string {
	return CardsToString(d.Cards)
}
