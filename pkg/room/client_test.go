package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"blackjack-server/pkg/blackjack"
)

func TestClient_PromptAndReply(t *testing.T) {
	a := assert.New(t)
	c := NewClient(nil, "abc123", "Test Player", 500)

	go c.ReceivedLine("hit")

	reply, err := c.Prompt(context.Background(), "your move")
	a.NoError(err)
	a.Equal("hit", reply)

	msg := <-c.SendChan()
	a.Equal(KeyPrompt, msg.Key)
	a.Equal("your move", msg.Value)
}

func TestClient_PromptAfterShutdown(t *testing.T) {
	a := assert.New(t)
	c := NewClient(nil, "abc123", "Test Player", 500)

	c.Shutdown()
	c.Shutdown() // idempotent

	a.True(c.Gone())

	_, err := c.Prompt(context.Background(), "your move")
	a.Equal(blackjack.ErrGone, err)
}

func TestClient_PromptHonorsContext(t *testing.T) {
	a := assert.New(t)
	c := NewClient(nil, "abc123", "Test Player", 500)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*10)
	defer cancel()

	_, err := c.Prompt(ctx, "your move")
	a.Equal(context.DeadlineExceeded, err)
}

func TestClient_Send(t *testing.T) {
	a := assert.New(t)
	c := NewClient(nil, "abc123", "Test Player", 500)

	c.Send("hello")
	c.SendError("whoops")

	msg := <-c.SendChan()
	a.Equal(&Message{Key: KeyMessage, Value: "hello"}, msg)

	msg = <-c.SendChan()
	a.Equal(&Message{Key: KeyError, Value: "whoops"}, msg)
}

func TestClient_EnqueueDropsWhenFull(t *testing.T) {
	a := assert.New(t)
	c := NewClient(nil, "abc123", "Test Player", 500)

	for i := 0; i < 256; i++ {
		a.True(c.enqueue(newMessage(KeyMessage, "x")))
	}

	a.False(c.enqueue(newMessage(KeyMessage, "overflow")))
}

func TestClient_String(t *testing.T) {
	c := NewClient(nil, "abc123", "Test Player", 500)
	assert.Equal(t, "Test Player:abc123", c.String())
}
