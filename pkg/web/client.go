package web

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Client is a websocket connection receiving serial output.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	Send chan []byte
	ID   uint8

	RemoteAddr string
	UserAgent  string

	avgLatency  atomic.Uint32
	connectedAt time.Time
}

// Latency returns the average round trip time to the client
// in milliseconds.
func (c *Client) Latency() uint16 {
	return uint16(c.avgLatency.Load())
}

func (c *Client) unregister() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}

// ReadPump reads messages from the client until the connection
// closes or the client asks to close it.
func (c *Client) ReadPump() {
	defer func() {
		c.unregister()
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case KeepAlive:
		case Closing:
			return
		}
	}
}

// WritePump writes queued messages to the client until the hub
// closes the Send channel.
func (c *Client) WritePump() {
	defer func() {
		c.unregister()
		c.conn.Close()
	}()

	for message := range c.Send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}

		if rtt, err := rtt(c.conn.UnderlyingConn()); err == nil {
			avg := c.avgLatency.Load()
			c.avgLatency.Store((avg*9 + uint32(rtt)) / 10)
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
