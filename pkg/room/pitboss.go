package room

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"blackjack-server/internal/config"
)

// PitBoss is responsible for dispatching players to rooms. Connecting
// clients land in the most populated room with a free seat; when every room
// is full a new one is opened.
type PitBoss struct {
	rooms      map[string]*Room
	maxPlayers int
	connect    chan *Client
	disconnect chan *Client
}

// NewPitBoss returns a new dispatch object
func NewPitBoss() *PitBoss {
	return &PitBoss{
		rooms:      make(map[string]*Room),
		maxPlayers: config.Instance().Room.MaxPlayers,
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			room := p.findRoom()
			logrus.WithFields(logrus.Fields{
				"client": client.String(),
				"room":   room.ID,
			}).Debug("client connected")

			room.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")

			room := client.room
			if room == nil {
				client.Shutdown()
				continue
			}

			if room.RemoveClient(client) {
				room.EndShift()
				delete(p.rooms, room.ID)
			}
		}
	}
}

// findRoom returns the most populated room with a free seat, opening a new
// room if none qualifies
// NOTE: must only be called from the run loop
func (p *PitBoss) findRoom() *Room {
	var best *Room
	for _, room := range p.rooms {
		n := room.NumClients()
		if n >= p.maxPlayers {
			continue
		}

		if best == nil || n > best.NumClients() {
			best = room
		}
	}

	if best != nil {
		return best
	}

	id := uuid.New().String()
	logrus.WithField("room", id).Info("opening room")

	room := NewRoom(p, id)
	room.StartShift()
	p.rooms[id] = room

	return room
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
