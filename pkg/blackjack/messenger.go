package blackjack

import "context"

// Messenger carries text between the engine and a single participant.
// Implementations differ only in transport: one reads a terminal, another
// rides a websocket. The engine never sees past this interface.
type Messenger interface {
	// Prompt sends text to the participant and blocks until a raw reply
	// arrives. It returns ErrGone if the participant can no longer answer,
	// or the context error if ctx is done first. At most one prompt per
	// participant is outstanding at a time.
	Prompt(ctx context.Context, text string) (string, error)

	// Send delivers a line of text to the participant, best effort
	Send(text string)
}

// Broadcaster announces a line of text to the whole table, best effort
type Broadcaster interface {
	Broadcast(text string)
}
