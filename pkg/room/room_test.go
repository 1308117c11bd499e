package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// drain empties the client's send channel and returns the message values
func drain(c *Client) []string {
	values := make([]string, 0)
	for {
		select {
		case msg := <-c.SendChan():
			values = append(values, msg.Value)
		default:
			return values
		}
	}
}

func TestRoom_AddAndRemoveClient(t *testing.T) {
	a := assert.New(t)

	r := NewRoom(NewPitBoss(), "room-1")
	c1 := NewClient(nil, "id-1", "P1", 100)
	c2 := NewClient(nil, "id-2", "P2", 100)

	r.AddClient(c1)
	r.AddClient(c2)
	a.Equal(2, r.NumClients())
	a.Equal(r, c1.room)

	a.False(r.RemoveClient(c1))
	a.True(c1.Gone())
	a.Equal(1, r.NumClients())

	a.True(r.RemoveClient(c2))
	a.Equal(0, r.NumClients())
}

func TestRoom_SeatWelcomesPlayer(t *testing.T) {
	a := assert.New(t)

	r := NewRoom(NewPitBoss(), "room-1")
	c := NewClient(nil, "id-1", "Test Player", 500)
	r.AddClient(c)

	r.seat(<-r.join)

	players := r.game.Players()
	a.Equal(1, len(players))
	a.Equal("Test Player", players[0].Name)
	a.Equal(500, players[0].Balance())
	a.Contains(drain(c), "Welcome Test Player to room room-1")
}

func TestRoom_SeatSkipsGoneClient(t *testing.T) {
	a := assert.New(t)

	r := NewRoom(NewPitBoss(), "room-1")
	c := NewClient(nil, "id-1", "Test Player", 500)
	r.AddClient(c)
	c.Shutdown()

	r.seat(<-r.join)
	a.Equal(0, len(r.game.Players()))
}

func TestRoom_SweepRemovesGonePlayers(t *testing.T) {
	a := assert.New(t)

	r := NewRoom(NewPitBoss(), "room-1")
	stay := NewClient(nil, "id-1", "Stay Player", 100)
	gone := NewClient(nil, "id-2", "Gone Player", 100)
	r.AddClient(stay)
	r.AddClient(gone)
	r.seat(<-r.join)
	r.seat(<-r.join)

	r.RemoveClient(gone)
	r.sweep()

	players := r.game.Players()
	a.Equal(1, len(players))
	a.Equal("id-1", players[0].ID)
}

func TestRoom_SweepRemovesBrokePlayers(t *testing.T) {
	a := assert.New(t)

	r := NewRoom(NewPitBoss(), "room-1")
	r.removeBrokePlayers = true

	broke := NewClient(nil, "id-1", "Broke Player", 0)
	r.AddClient(broke)
	r.seat(<-r.join)

	r.sweep()

	a.Equal(0, len(r.game.Players()))
	a.True(broke.Gone())
	a.Contains(drain(broke), "You don't have any money left. Reconnect to play again.")
}

func TestRoom_Broadcast(t *testing.T) {
	a := assert.New(t)

	r := NewRoom(NewPitBoss(), "room-1")
	c1 := NewClient(nil, "id-1", "P1", 100)
	c2 := NewClient(nil, "id-2", "P2", 100)
	r.AddClient(c1)
	r.AddClient(c2)

	r.Broadcast("dealer wins")

	a.Contains(drain(c1), "dealer wins")
	a.Contains(drain(c2), "dealer wins")
}
