package websocket

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// FrameHandler processes inbound frames for a connection. Implemented by
// the realtime handler, which owns auth and subscription semantics.
type FrameHandler interface {
	HandleFrame(c *Client, data []byte)
}

// Client is a middleman between the websocket connection and the hub.
// UserID is uuid.Nil until a successful auth frame; an unauthenticated
// client stays connected but is never registered, so it receives no
// targeted pushes.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn

	// Set by the frame handler on successful auth.
	UserID uuid.UUID

	// Buffered channel of outbound frames.
	Send chan []byte

	handler FrameHandler
}

func NewClient(hub *Hub, conn *websocket.Conn, handler FrameHandler) *Client {
	return &Client{
		Hub:     hub,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		handler: handler,
	}
}

// Run starts the write pump in a goroutine and reads frames on the
// calling goroutine until the connection closes.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		if c.UserID != uuid.Nil {
			c.Hub.Unregister(c)
		}
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}
		c.handler.HandleFrame(c, data)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Nothing closes Send in normal operation; guard anyway.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush any frames queued behind this one.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
