package battle

import (
	"encoding/json"
	"log"

	"github.com/gofiber/contrib/websocket"
)

const sendBuffer = 16

// Client is one websocket participant. Hub logic only ever touches the send
// channel; the socket itself is owned by the pumps in Serve.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	name string
	room string
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// enqueue hands a frame to the write pump. A client that stopped draining its
// buffer loses frames rather than stalling the whole room under the hub lock.
func (c *Client) enqueue(msg []byte) {
	select {
	case c.send <- msg:
	default:
		log.Printf("[Battle] dropping frame for slow client %q", c.name)
	}
}

// Serve runs the read loop until the connection closes, with a writer
// goroutine draining the send channel. It always deregisters the client on
// the way out; per protocol a transport drop is membership shrinkage only.
func (c *Client) Serve() {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range c.send {
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		c.dispatch(raw)
	}

	c.hub.Disconnect(c)
	close(c.send)
	<-done
}

// dispatch routes one inbound frame. Unknown events and malformed payloads are
// dropped; the protocol has no error replies.
func (c *Client) dispatch(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return
	}

	switch env.Event {
	case EventJoinRoom:
		var p JoinRoomPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		c.hub.JoinRoom(c, p.Room, p.Username)
	case EventStartBattle:
		var p StartBattlePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		c.hub.StartBattle(c, p.Room)
	case EventPlayerLostFocus:
		var p LostFocusPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		c.hub.ReportFocusLoss(c, p.Room)
	}
}
