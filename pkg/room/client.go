package room

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"blackjack-server/pkg/blackjack"
)

// Client is a player connected to the server via websockets.
// It implements blackjack.Messenger: prompts go out as frames on the send
// channel and resolve when the websocket read loop delivers a reply line.
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// ID is the session identifier, also used as the participant id
	ID string

	// Name is the display name supplied at login
	Name string

	// BuyIn is the amount of money the player brought to the table
	BuyIn int

	send  chan *Message
	input chan string
	done  chan struct{}
	once  sync.Once

	room *Room
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, id, name string, buyIn int) *Client {
	return &Client{
		Conn:  conn,
		ID:    id,
		Name:  name,
		BuyIn: buyIn,
		send:  make(chan *Message, 256),
		input: make(chan string, 16),
		done:  make(chan struct{}),
	}
}

// Prompt asks the player a question and waits for their next reply line
func (c *Client) Prompt(ctx context.Context, text string) (string, error) {
	c.enqueue(newMessage(KeyPrompt, text))

	select {
	case line := <-c.input:
		return line, nil
	case <-c.done:
		return "", blackjack.ErrGone
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Send delivers a one-way message to the player
func (c *Client) Send(text string) {
	c.enqueue(newMessage(KeyMessage, text))
}

// SendError delivers an error message to the player
func (c *Client) SendError(text string) {
	c.enqueue(newMessage(KeyError, text))
}

// enqueue puts a message on the send channel, dropping it if the client
// cannot keep up
func (c *Client) enqueue(msg *Message) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns the channel the websocket write loop drains
func (c *Client) SendChan() <-chan *Message {
	return c.send
}

// ReceivedLine is called by the websocket read loop with each inbound line
func (c *Client) ReceivedLine(line string) {
	select {
	case c.input <- line:
	case <-c.done:
	}
}

// Shutdown marks the client gone. Any pending or future prompt resolves to
// blackjack.ErrGone. Safe to call more than once.
func (c *Client) Shutdown() {
	c.once.Do(func() {
		close(c.done)
	})
}

// Done is closed once the client is gone
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Gone returns true if the client has been shut down
func (c *Client) Gone() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.Name, c.ID)
}
