package blackjack

import "errors"

// ErrNoMoney is an error when a bet is attempted with an empty balance
var ErrNoMoney = errors.New("participant has no money")

// ErrInsufficientFunds is an error when a debit exceeds the remaining balance
var ErrInsufficientFunds = errors.New("amount exceeds remaining balance")

// ErrGone is returned by a Messenger when the participant can no longer
// reply, typically because the connection went away
var ErrGone = errors.New("participant is no longer connected")
