package blackjack

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/deck"
)

// Participant is a player seated at the blackjack table.
// The hand is emptied every round; the balance persists until the
// participant leaves the game.
type Participant struct {
	// ID is a stable identifier assigned at join time
	ID string
	// Name is the display name used in table announcements
	Name string

	hand      *deck.Deck
	balance   int
	messenger Messenger
	logger    logrus.FieldLogger
}

// NewParticipant returns a new participant with the given buy-in
func NewParticipant(id, name string, balance int, messenger Messenger, logger logrus.FieldLogger) *Participant {
	p := &Participant{
		ID:        id,
		Name:      name,
		hand:      deck.New(),
		balance:   balance,
		messenger: messenger,
		logger:    logger.WithField("player", name),
	}

	p.logger.WithField("balance", balance).Debug("participant created")
	return p
}

func (p *Participant) String() string {
	return p.Name
}

// Hand returns the participant's current hand
func (p *Participant) Hand() *deck.Deck {
	return p.hand
}

// AddCard puts a card on top of the participant's hand
func (p *Participant) AddCard(card *deck.Card) error {
	return p.hand.Insert(card, true)
}

// ClearHand empties the participant's hand at the end of a round
func (p *Participant) ClearHand() {
	p.hand.Clear()
}

// Balance returns the remaining money
func (p *Participant) Balance() int {
	return p.balance
}

// Credit increases the balance by amount
func (p *Participant) Credit(amount int) {
	p.balance += amount
	p.logger.WithFields(logrus.Fields{
		"amount":  amount,
		"balance": p.balance,
	}).Debug("credit")
}

// Debit decreases the balance by amount and returns the amount taken.
// A debit can never drive the balance negative: ErrInsufficientFunds is
// returned and nothing is taken if amount exceeds the balance.
func (p *Participant) Debit(amount int) (int, error) {
	if amount > p.balance {
		return 0, ErrInsufficientFunds
	}

	p.balance -= amount
	p.logger.WithFields(logrus.Fields{
		"amount":  amount,
		"balance": p.balance,
	}).Debug("debit")

	return amount, nil
}

// Send delivers a line of text to just this participant
func (p *Participant) Send(text string) {
	p.messenger.Send(text)
}

// RequestChoice prompts until the participant replies with a valid action
// from the allowed set. Unparseable input earns "Not a valid command!" and a
// new prompt; a parseable but disallowed action is silently re-prompted.
// The only errors are transport-level: ErrGone or a done context.
func (p *Participant) RequestChoice(ctx context.Context, prompt string, allowed []Action) (Action, error) {
	for {
		reply, err := p.messenger.Prompt(ctx, prompt)
		if err != nil {
			return 0, err
		}

		action, ok := ActionFromString(reply)
		if !ok {
			p.logger.WithField("input", reply).Info("invalid command")
			p.Send("Not a valid command!")
			continue
		}

		if !actionAllowed(action, allowed) {
			p.logger.WithField("action", action).Info("disallowed action")
			continue
		}

		p.logger.WithField("action", action).Info("accepted decision")
		return action, nil
	}
}

// RequestBet prompts until the participant names a stake they can cover:
// an integer greater than zero and no more than the balance. Returns
// ErrNoMoney immediately if the balance is already empty.
func (p *Participant) RequestBet(ctx context.Context) (int, error) {
	if p.balance == 0 {
		return 0, ErrNoMoney
	}

	prompt := fmt.Sprintf("%s - How much would you like to bet?", p.Name)
	for {
		reply, err := p.messenger.Prompt(ctx, prompt)
		if err != nil {
			return 0, err
		}

		bet, err := strconv.Atoi(strings.TrimSpace(reply))
		if err != nil {
			p.logger.WithField("input", reply).Info("invalid bet")
			p.Send("Enter a positive number")
			continue
		}

		if bet > p.balance {
			p.logger.WithField("bet", bet).Info("bet over balance")
			p.Send(fmt.Sprintf("You don't have %d$! you can place a bet up to %d", bet, p.balance))
			continue
		}

		if bet <= 0 {
			p.Send("Enter a positive number")
			continue
		}

		return bet, nil
	}
}
