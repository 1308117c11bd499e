package room

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"blackjack-server/internal/config"
	"blackjack-server/pkg/blackjack"
)

// defaultStartRoundDelay is the pre-round pause used when the config does not
// set one. The pause exists so players connecting while a round wraps up get
// seated before the next deal.
const defaultStartRoundDelay = time.Second * 10

// Room hosts one blackjack table. A single goroutine owns the game and runs
// rounds back to back; clients join and leave through channels so the game is
// never touched concurrently.
type Room struct {
	// ID is the room identifier
	ID string

	pitBoss *PitBoss
	game    *blackjack.Game
	logger  logrus.FieldLogger

	clients map[*Client]bool
	lock    sync.RWMutex

	join  chan *Client
	close chan bool

	startRoundDelay    time.Duration
	removeBrokePlayers bool
}

// NewRoom creates a new room
// This is called from a blocking state, so it needs to return quickly
func NewRoom(pitBoss *PitBoss, id string) *Room {
	cfg := config.Instance()

	logger := logrus.WithField("room", id)

	opts := blackjack.DefaultOptions()
	opts.DealerStandsAt = cfg.Game.DealerStandsAt
	opts.TurnTimeout = time.Second * time.Duration(cfg.Room.TurnTimeout)

	delay := defaultStartRoundDelay
	if cfg.Room.StartRoundDelay > 0 {
		delay = time.Second * time.Duration(cfg.Room.StartRoundDelay)
	}

	r := &Room{
		ID:                 id,
		pitBoss:            pitBoss,
		logger:             logger,
		clients:            make(map[*Client]bool),
		join:               make(chan *Client, 256),
		close:              make(chan bool),
		startRoundDelay:    delay,
		removeBrokePlayers: cfg.Room.RemoveBrokePlayers,
	}

	r.game = blackjack.NewGame(logger, r, opts)
	return r
}

// StartShift starts the room run loop
func (r *Room) StartShift() {
	go r.runLoop()
}

// EndShift is called when the room is no longer needed
func (r *Room) EndShift() {
	close(r.close)
}

// AddClient adds a client to the room. The client is seated at the table
// between rounds.
// This method must return quickly.
func (r *Room) AddClient(client *Client) {
	r.lock.Lock()
	client.room = r
	r.clients[client] = true
	r.lock.Unlock()

	r.join <- client
}

// RemoveClient removes a client and reports whether it was the last one.
// The run loop unseats the matching participant between rounds; a prompt
// pending for the client resolves on its own once the client shuts down.
// This method must return quickly.
func (r *Room) RemoveClient(client *Client) (lastClient bool) {
	client.Shutdown()

	r.lock.Lock()
	delete(r.clients, client)
	nClients := len(r.clients)
	r.lock.Unlock()

	return nClients == 0
}

// Clients returns a slice of the currently connected clients
func (r *Room) Clients() []*Client {
	r.lock.RLock()
	defer r.lock.RUnlock()

	clients := make([]*Client, 0, len(r.clients))
	for client := range r.clients {
		clients = append(clients, client)
	}

	return clients
}

// NumClients returns the number of connected clients
func (r *Room) NumClients() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.clients)
}

// Broadcast sends a message to every connected client
func (r *Room) Broadcast(text string) {
	for _, client := range r.Clients() {
		client.Send(text)
	}
}

func (r *Room) runLoop() {
	r.logger.Debug("creating room run loop")

	for {
		if len(r.game.Players()) == 0 {
			select {
			case client := <-r.join:
				r.seat(client)
			case <-r.close:
				r.logger.Debug("terminating room run loop")
				return
			}
		}

		// pre-round pause so latecomers make the deal
		delay := time.NewTimer(r.startRoundDelay)
	wait:
		for {
			select {
			case client := <-r.join:
				r.seat(client)
			case <-r.close:
				delay.Stop()
				r.logger.Debug("terminating room run loop")
				return
			case <-delay.C:
				break wait
			}
		}

		if err := r.game.PlayRound(context.Background()); err != nil {
			r.logger.WithError(err).Error("round aborted")
		}

		r.sweep()
	}
}

// seat turns a newly joined client into a participant for the next round.
// NOTE: must only be called from the run loop.
func (r *Room) seat(client *Client) {
	if client.Gone() {
		return
	}

	p := blackjack.NewParticipant(client.ID, client.Name, client.BuyIn, client, r.logger)
	r.game.AddPlayer(p)
	r.Broadcast(fmt.Sprintf("Welcome %s to room %s", client.Name, r.ID))
}

// sweep unseats participants whose client left and, if configured, players
// who ran out of money.
// NOTE: must only be called from the run loop.
func (r *Room) sweep() {
	connected := make(map[string]*Client)
	for _, client := range r.Clients() {
		connected[client.ID] = client
	}

	for _, p := range r.game.Players() {
		client, ok := connected[p.ID]
		switch {
		case !ok || client.Gone():
			r.game.RemovePlayer(p.ID)
		case r.removeBrokePlayers && p.Balance() == 0:
			p.Send("You don't have any money left. Reconnect to play again.")
			r.game.RemovePlayer(p.ID)
			client.Shutdown()
		}
	}
}
