package room

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPitBoss_FindRoom(t *testing.T) {
	a := assert.New(t)

	p := NewPitBoss()
	a.Equal(0, len(p.rooms))

	// no rooms yet, one gets opened
	r1 := p.findRoom()
	a.Equal(1, len(p.rooms))

	r1.AddClient(NewClient(nil, "id-1", "P1", 100))
	a.Equal(r1, p.findRoom())

	// a fuller room wins over an emptier one
	r2 := NewRoom(p, "half-full")
	r2.AddClient(NewClient(nil, "id-2", "P2", 100))
	r2.AddClient(NewClient(nil, "id-3", "P3", 100))
	p.rooms[r2.ID] = r2
	a.Equal(r2, p.findRoom())

	// every room at capacity forces a new one
	for _, r := range p.rooms {
		for r.NumClients() < p.maxPlayers {
			id := fmt.Sprintf("id-%s-%d", r.ID, r.NumClients())
			r.AddClient(NewClient(nil, id, "Filler", 100))
		}
	}

	r3 := p.findRoom()
	a.NotEqual(r1, r3)
	a.NotEqual(r2, r3)
	a.Equal(3, len(p.rooms))
}
