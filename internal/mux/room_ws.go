package mux

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"blackjack-server/internal/util"
	"blackjack-server/pkg/room"
	"blackjack-server/pkg/token"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// loginPayload is the first frame a client must send after connecting
type loginPayload struct {
	Name  string `json:"name"`
	BuyIn string `json:"buyIn"`
}

func (m *Mux) getRoomWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		client, ok := login(conn, remoteAddr(r))
		if !ok {
			_ = conn.Close()
			return
		}

		m.pitBoss.ClientConnected(client)

		defer func() {
			client.Shutdown()
			m.pitBoss.ClientDisconnected(client)
			_ = conn.Close()
		}()

		go webSocketWriteLoop(client)
		webSocketReadLoop(client)
	}
}

// login reads the first frame and turns it into a client.
// A missing name gets a random one; a buy-in that isn't a positive integer
// is rejected the way the player was connected: politely, then disconnected.
func login(conn *websocket.Conn, remote string) (*room.Client, bool) {
	var payload loginPayload
	if err := conn.ReadJSON(&payload); err != nil {
		logrus.WithError(err).WithField("remote", remote).Debug("could not read login payload")
		return nil, false
	}

	buyIn, err := strconv.Atoi(strings.TrimSpace(payload.BuyIn))
	if err != nil || buyIn <= 0 {
		logrus.WithFields(logrus.Fields{
			"remote": remote,
			"buyIn":  payload.BuyIn,
		}).Warn("bad buy-in from client")

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(&room.Message{
			Key:   room.KeyError,
			Value: "Server received bad input, disconnecting",
		})

		return nil, false
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		name = util.GetRandomName()
	}

	id, err := token.Generate(8)
	if err != nil {
		logrus.WithError(err).Error("could not generate session id")
		return nil, false
	}

	return room.NewClient(conn, id, name, buyIn), true
}

func webSocketWriteLoop(client *room.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case msg := <-client.SendChan():
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteJSON(msg); err != nil {
				logrus.WithError(err).WithField("client", client.String()).Error("could not write message")
				return
			}
		case <-client.Done():
			// flush anything still queued before the close frame
			for {
				select {
				case msg := <-client.SendChan():
					_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
					_ = client.Conn.WriteJSON(msg)
					continue
				default:
				}
				break
			}

			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = client.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func webSocketReadLoop(client *room.Client) {
	for {
		messageType, data, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("client", client.String()).Debug("websocket closed unexpectedly")
			}

			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		line := strings.TrimSpace(string(data))
		if line == "" {
			continue
		}

		client.ReceivedLine(line)
	}
}
