package blackjack

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/deck"
)

// payout multipliers
const (
	sameAsTheBet       = 1
	twiceTheBet        = 2
	blackjackNumerator = 3 // 1.5x expressed as bet*3/2
)

// roundState is the engine's per-round bookkeeping for one participant,
// keyed by participant ID so nothing depends on object identity
type roundState struct {
	bet     int
	inRound bool
}

// Game is a blackjack table. One goroutine owns the game: every round runs
// strictly sequentially, one participant at a time, and the only suspension
// points are the participants' prompts.
type Game struct {
	options     Options
	broadcaster Broadcaster
	logger      logrus.FieldLogger

	// players in stable registration order
	players    []*Participant
	dealerHand *deck.Deck
	gameDeck   *deck.Deck
	round      map[string]*roundState
}

// NewGame returns a new blackjack table
func NewGame(logger logrus.FieldLogger, broadcaster Broadcaster, options Options) *Game {
	if options.DealerStandsAt <= 0 {
		options.DealerStandsAt = DefaultOptions().DealerStandsAt
	}

	return &Game{
		options:     options,
		broadcaster: broadcaster,
		logger:      logger,
		players:     make([]*Participant, 0, 6),
		dealerHand:  deck.New(),
		gameDeck:    deck.New(),
		round:       make(map[string]*roundState),
	}
}

// AddPlayer seats a participant. Players added mid-round are dealt in
// starting from the next round.
func (g *Game) AddPlayer(p *Participant) {
	g.players = append(g.players, p)
	g.logger.WithField("player", p.Name).Info("player added")
}

// RemovePlayer unseats the participant with the given id.
// Must not be called while a round is in progress; a disconnected
// participant's pending prompt resolves to ErrGone and the engine forfeits
// them on its own.
func (g *Game) RemovePlayer(id string) *Participant {
	for i, p := range g.players {
		if p.ID == id {
			g.players = append(g.players[:i], g.players[i+1:]...)
			g.logger.WithField("player", p.Name).Info("player removed")
			return p
		}
	}

	return nil
}

// Players returns the seated participants in registration order
func (g *Game) Players() []*Participant {
	return append([]*Participant{}, g.players...)
}

// DealerHand returns the dealer's current hand
func (g *Game) DealerHand() *deck.Deck {
	return g.dealerHand
}

// Bet returns the current-round stake held for the participant
func (g *Game) Bet(p *Participant) int {
	if state, ok := g.round[p.ID]; ok {
		return state.bet
	}

	return 0
}

func (g *Game) inRoundPlayers() []*Participant {
	players := make([]*Participant, 0, len(g.players))
	for _, p := range g.players {
		if state, ok := g.round[p.ID]; ok && state.inRound {
			players = append(players, p)
		}
	}

	return players
}

func (g *Game) isInRound(p *Participant) bool {
	state, ok := g.round[p.ID]
	return ok && state.inRound
}

func (g *Game) removeFromRound(p *Participant) {
	if state, ok := g.round[p.ID]; ok {
		state.inRound = false
	}
}

func (g *Game) broadcast(format string, a ...interface{}) {
	g.broadcaster.Broadcast(fmt.Sprintf(format, a...))
}

// PlayRound runs one complete round: betting, dealing, naturals, player
// turns, the dealer's draw loop, and settlement. Per-round state is reset on
// entry and hands are emptied on the way out.
//
// The returned error is nil for every normal table outcome, including
// "nobody bet". A non-nil error means the round was aborted: the context was
// canceled, or the deck violated an invariant (ErrEndOfDeck,
// deck.ErrDuplicateCard).
func (g *Game) PlayRound(ctx context.Context) error {
	g.dealerHand.Clear()
	g.round = make(map[string]*roundState)

	if g.options.Shuffle != nil {
		g.gameDeck.Clear()
		g.options.Shuffle(g.gameDeck)
	} else {
		g.gameDeck.ResetAndShuffle()
	}

	defer func() {
		for _, p := range g.players {
			p.ClearHand()
		}
		g.dealerHand.Clear()
	}()

	if err := g.takeBets(ctx); err != nil {
		return err
	}

	if len(g.inRoundPlayers()) == 0 {
		g.broadcast("No players in this round")
		return nil
	}

	if err := g.deal(); err != nil {
		g.logger.WithError(err).Error("could not deal cards")
		return err
	}

	if g.anyNatural() {
		g.handleNaturals()
	}

	if err := g.playerTurns(ctx); err != nil {
		return err
	}

	if len(g.inRoundPlayers()) == 0 {
		g.broadcast("No more players, game over")
		return nil
	}

	if err := g.dealerTurn(); err != nil {
		g.logger.WithError(err).Error("dealer could not draw")
		return err
	}

	if HandValue(g.dealerHand) > 21 {
		names := make([]string, 0)
		for _, p := range g.inRoundPlayers() {
			names = append(names, p.Name)
		}

		g.broadcast("Dealer is bust! %s - you get twice your bet", strings.Join(names, ", "))
		for _, p := range g.inRoundPlayers() {
			g.payout(p, g.round[p.ID].bet*twiceTheBet)
			g.round[p.ID].bet = 0
		}

		return nil
	}

	g.settle()
	return nil
}

// promptCtx applies the per-prompt timeout, if any
func (g *Game) promptCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.options.TurnTimeout > 0 {
		return context.WithTimeout(ctx, g.options.TurnTimeout)
	}

	return context.WithCancel(ctx)
}

// forfeited reports whether a prompt error takes only this participant out
// of the round (disconnect or timeout) as opposed to tearing the round down
func forfeited(err error) bool {
	return errors.Is(err, ErrGone) || errors.Is(err, context.DeadlineExceeded)
}

func (g *Game) takeBets(ctx context.Context) error {
	for _, p := range g.Players() {
		if p.Balance() == 0 {
			p.Send("You have no money to bet with, sitting this round out")
			continue
		}

		pctx, cancel := g.promptCtx(ctx)
		action, err := p.RequestChoice(pctx, "To bet, type 'B'. To skip this round, type 'Skip'", []Action{ActionBet, ActionSkip})
		cancel()
		if err != nil {
			if forfeited(err) && ctx.Err() == nil {
				g.logger.WithField("player", p.Name).WithError(err).Info("no bet from player")
				continue
			}

			return err
		}

		if action == ActionSkip {
			continue
		}

		pctx, cancel = g.promptCtx(ctx)
		bet, err := p.RequestBet(pctx)
		cancel()
		if err != nil {
			if forfeited(err) && ctx.Err() == nil {
				continue
			}

			return err
		}

		// RequestBet capped the bet at the balance
		staked, err := p.Debit(bet)
		if err != nil {
			return err
		}

		g.round[p.ID] = &roundState{bet: staked, inRound: true}
		g.logger.WithFields(logrus.Fields{
			"player": p.Name,
			"bet":    staked,
		}).Info("bet placed")
	}

	return nil
}

// deal gives two cards to every in-round player and the dealer, one card at
// a time around the table
func (g *Game) deal() error {
	for i := 0; i < 2; i++ {
		for _, p := range g.inRoundPlayers() {
			card, err := g.gameDeck.Draw()
			if err != nil {
				return err
			}

			if err := p.AddCard(card); err != nil {
				return err
			}
		}

		card, err := g.gameDeck.Draw()
		if err != nil {
			return err
		}

		if err := g.dealerHand.Insert(card, true); err != nil {
			return err
		}
	}

	g.broadcast("Dealer's cards: %s, 🂠", g.dealerHand.Cards[0])
	for _, p := range g.inRoundPlayers() {
		g.broadcast("%s's cards: %s", p.Name, HandIcons(p.Hand()))
	}

	return nil
}

func (g *Game) anyNatural() bool {
	for _, p := range g.inRoundPlayers() {
		if HandValue(p.Hand()) == 21 {
			return true
		}
	}

	return false
}

// handleNaturals resolves two-card 21s before anyone gets to act.
// The dealer's hand is revealed; naturals push against a dealer blackjack and
// pay 1.5x otherwise. Anyone paid or pushed here leaves the round. Bets that
// stay debited stay forfeited unless settlement later pays them.
func (g *Game) handleNaturals() {
	g.broadcast("Dealer's hand: %s", HandIcons(g.dealerHand))

	if HandValue(g.dealerHand) == 21 {
		g.broadcast("Dealer has Blackjack - %s", HandIcons(g.dealerHand))
		for _, p := range g.inRoundPlayers() {
			if HandValue(p.Hand()) != 21 {
				continue
			}

			state := g.round[p.ID]
			p.Credit(state.bet)
			state.bet = 0
			g.removeFromRound(p)
			g.broadcast("%s is in a tie with the dealer.", p.Name)
		}

		return
	}

	for _, p := range g.inRoundPlayers() {
		if HandValue(p.Hand()) != 21 {
			continue
		}

		state := g.round[p.ID]
		g.logger.WithField("player", p.Name).Info("blackjack, paying 1.5x")
		g.payout(p, state.bet*blackjackNumerator/2)
		state.bet = 0
		g.removeFromRound(p)
		g.broadcast("%s won 1.5 times their bet", p.Name)
	}
}

func (g *Game) playerTurns(ctx context.Context) error {
	for _, p := range g.inRoundPlayers() {
		if !g.isInRound(p) {
			continue
		}

		if err := g.playTurn(ctx, p); err != nil {
			return err
		}
	}

	return nil
}

// playTurn runs one participant's decision loop until they stand, double,
// surrender, bust, or disappear
func (g *Game) playTurn(ctx context.Context, p *Participant) error {
	allowed := []Action{ActionHit, ActionDouble, ActionStand, ActionSurrender}
	prompt := fmt.Sprintf(
		"%s - To hit type 'H'\nTo stand type 'S'\nTo double down type 'D'\nTo surrender and get half your money back, type 'Surrender'",
		p.Name,
	)

	for {
		pctx, cancel := g.promptCtx(ctx)
		action, err := p.RequestChoice(pctx, prompt, allowed)
		cancel()
		if err != nil {
			if forfeited(err) && ctx.Err() == nil {
				g.forfeit(p)
				return nil
			}

			return err
		}

		state := g.round[p.ID]

		switch action {
		case ActionHit:
			// no doubling down after a hit
			allowed = removeAction(allowed, ActionDouble)

			card, err := g.gameDeck.Draw()
			if err != nil {
				return err
			}

			if err := p.AddCard(card); err != nil {
				return err
			}

			g.broadcast("%s's deck: %s", p.Name, HandIcons(p.Hand()))
		case ActionDouble:
			if state.bet > p.Balance() {
				g.logger.WithField("player", p.Name).Info("cannot afford double down")
				p.Send(fmt.Sprintf("%s - You don't have enough to double down", p.Name))
				continue
			}

			card, err := g.gameDeck.Draw()
			if err != nil {
				return err
			}

			if err := p.AddCard(card); err != nil {
				return err
			}

			g.broadcast("%s's deck: %s", p.Name, HandIcons(p.Hand()))

			staked, err := p.Debit(state.bet)
			if err != nil {
				return err
			}

			state.bet += staked
		case ActionStand:
			g.logger.WithField("player", p.Name).Info("stand")
		case ActionSurrender:
			p.Credit(state.bet / 2)
			state.bet = 0
			g.removeFromRound(p)
			g.broadcast("%s said SURRENDER", p.Name)
		}

		// every action gets the same bust check
		if g.isInRound(p) && HandValue(p.Hand()) > 21 {
			g.broadcast("Player %s is bust: %s", p.Name, HandIcons(p.Hand()))
			state.bet = 0
			g.removeFromRound(p)
			return nil
		}

		if action == ActionStand || action == ActionDouble || !g.isInRound(p) {
			return nil
		}
	}
}

// forfeit takes a vanished participant out of the round; the bet stays lost
func (g *Game) forfeit(p *Participant) {
	if state, ok := g.round[p.ID]; ok {
		state.bet = 0
		state.inRound = false
	}

	g.logger.WithField("player", p.Name).Info("player forfeited the round")
	g.broadcast("%s is no longer playing this round", p.Name)
}

// dealerTurn draws until the dealer reaches the stand threshold
func (g *Game) dealerTurn() error {
	for HandValue(g.dealerHand) < g.options.DealerStandsAt {
		card, err := g.gameDeck.Draw()
		if err != nil {
			return err
		}

		if err := g.dealerHand.Insert(card, true); err != nil {
			return err
		}

		g.logger.Debug("dealer took another card")
		g.broadcast("Dealer's deck: %s", HandIcons(g.dealerHand))
	}

	return nil
}

// settle compares every remaining hand against the dealer's final total
func (g *Game) settle() {
	dealerTotal := HandValue(g.dealerHand)

	for _, p := range g.inRoundPlayers() {
		state := g.round[p.ID]
		total := HandValue(p.Hand())

		switch {
		case total > dealerTotal:
			p.Send(fmt.Sprintf("%s, You beat the dealer! you get twice your bet", p.Name))
			g.broadcast("%s has beat the dealer!", p.Name)
			g.payout(p, state.bet*twiceTheBet)
		case total == dealerTotal:
			p.Send(fmt.Sprintf("%s, You are tied with the dealer! you get your bet back", p.Name))
			g.payout(p, state.bet*sameAsTheBet)
		default:
			p.Send(fmt.Sprintf("%s, You lost", p.Name))
			g.broadcast("%s lost", p.Name)
		}

		state.bet = 0
	}
}

func (g *Game) payout(p *Participant, amount int) {
	g.logger.WithFields(logrus.Fields{
		"player": p.Name,
		"amount": amount,
	}).Info("paying player")

	p.Send(fmt.Sprintf("%s, you won %d$", p.Name, amount))
	p.Credit(amount)
}
