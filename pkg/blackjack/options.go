package blackjack

import (
	"time"

	"blackjack-server/pkg/deck"
)

// Options configures a game
type Options struct {
	// DealerStandsAt is the hand value at which the dealer stops drawing.
	// Hard 17 by default; there is no soft-17 rule.
	DealerStandsAt int

	// TurnTimeout bounds how long the table waits on a single prompt.
	// An expired prompt forfeits the participant's round. Zero waits forever.
	TurnTimeout time.Duration

	// Shuffle overrides how the round deck is rebuilt at the start of each
	// round. Tests use it to stack known cards. Nil gets a freshly shuffled
	// 52-card deck.
	Shuffle func(d *deck.Deck)
}

// DefaultOptions returns the default game options
func DefaultOptions() Options {
	return Options{
		DealerStandsAt: 17,
	}
}
