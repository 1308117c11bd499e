package blackjack

import (
	"strings"

	"blackjack-server/pkg/deck"
)

const aceValue = 11

// CardValue returns the blackjack value of a single card.
// Face cards count 10, an ace counts 11, everything else counts its rank.
func CardValue(card *deck.Card) int {
	switch {
	case card.Rank == deck.Ace:
		return aceValue
	case card.Rank > 10:
		return 10
	}

	return card.Rank
}

// HandValue returns the best blackjack total for the hand.
// Aces flex between 11 and 1: the highest total not exceeding 21 wins. A hand
// that busts under every combination reports its literal all-aces-high sum so
// callers can show how far over it went.
func HandValue(hand *deck.Deck) int {
	total := 0
	aces := 0
	for _, card := range hand.Cards {
		if card.Rank == deck.Ace {
			aces++
		}

		total += CardValue(card)
	}

	if total <= 21 || aces == 0 {
		return total
	}

	nonAceTotal := total - aces*aceValue

	best := -1
	for n := 0; n <= aces; n++ {
		option := nonAceTotal + aceValue*n + (aces - n)
		if option > 21 {
			continue
		}

		if option > best {
			best = option
		}
	}

	if best < 0 {
		return total
	}

	return best
}

// HandIcons renders a hand the way it's shown at the table, e.g. "A♠, K♡"
func HandIcons(hand *deck.Deck) string {
	icons := make([]string, len(hand.Cards))
	for i, card := range hand.Cards {
		icons[i] = card.String()
	}

	return strings.Join(icons, ", ")
}
