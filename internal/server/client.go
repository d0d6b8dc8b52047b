package server

import (
	"encoding/json"
	"time"

	"fortunestreet/internal/protocol"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one board display connected over a websocket.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	log  *zap.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	id := uuid.NewString()
	return &Client{
		ID:   id,
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
		log:  hub.log.With(zap.String("client", id)),
	}
}

// ReadPump forwards display messages to the hub until the connection drops.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("ws read", zap.Error(err))
			}
			return
		}
		var env protocol.Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.log.Debug("ws parse", zap.Error(err))
			continue
		}
		select {
		case c.hub.incoming <- IncomingMessage{Client: c, Envelope: env}:
		case <-c.hub.done:
			return
		}
	}
}

// WritePump drains the send channel to the websocket and keeps it alive
// with pings. It exits when the hub closes the channel.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendEnvelope queues a typed message for this client.
func (c *Client) SendEnvelope(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		c.log.Error("marshal", zap.Error(err))
		return
	}
	c.trySend(data)
}

func (c *Client) trySend(data []byte) {
	select {
	case c.send <- data:
	default:
		c.log.Warn("send buffer full, dropping message")
	}
}

// IncomingMessage pairs a message with its source client.
type IncomingMessage struct {
	Client   *Client
	Envelope protocol.Envelope
}
