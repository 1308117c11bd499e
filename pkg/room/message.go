package room

// message keys
const (
	KeyMessage = "message"
	KeyPrompt  = "prompt"
	KeyError   = "error"
)

// Message is an outbound websocket frame
type Message struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func newMessage(key, value string) *Message {
	return &Message{
		Key:   key,
		Value: value,
	}
}
