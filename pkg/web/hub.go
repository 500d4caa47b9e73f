// Package web broadcasts the serial output of a running GameBoy to
// websocket clients.
package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// BacklogSize is the amount of serial output replayed to new clients.
const BacklogSize = 4096

// Hub tracks the connected clients and broadcasts serial output
// to them. Hub implements io.Writer so that it can be attached to
// the serial controller directly.
type Hub struct {
	clients map[*Client]bool
	backlog *backlog
	title   string

	broadcast            chan []byte
	register, unregister chan *Client
	done                 chan struct{}

	currentID uint8
	dropped   atomic.Uint64

	log log.Logger
	mu  sync.Mutex
}

// NewHub returns a new Hub announcing title to its clients.
func NewHub(title string, logger log.Logger) *Hub {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		backlog:    newBacklog(BacklogSize),
		title:      title,
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        logger,
	}
}

// Write queues p for broadcast. It never blocks: when the queue
// is full the bytes are dropped and counted.
func (h *Hub) Write(p []byte) (int, error) {
	msg := append([]byte{SerialData}, p...)
	select {
	case h.broadcast <- msg:
	default:
		h.dropped.Add(uint64(len(p)))
	}
	return len(p), nil
}

// Dropped returns the number of bytes dropped by Write.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Run handles client registration and broadcasting until ctx
// is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				select {
				case c.Send <- []byte{ClientClosing}:
				default:
				}
				h.remove(c)
			}
			return nil
		case c := <-h.register:
			h.clients[c] = true
			c.Send <- append([]byte{ServerInfo}, h.title...)
			if b := h.backlog.bytes(); len(b) > 0 {
				c.Send <- append([]byte{Backlog}, b...)
			}
			h.log.Debugf("web: client %d connected from %s", c.ID, c.RemoteAddr)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.remove(c)
				h.log.Debugf("web: client %d disconnected", c.ID)
			}
		case msg := <-h.broadcast:
			h.backlog.add(msg[1:])
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	delete(h.clients, c)
	close(c.Send)
}

// ServeHTTP upgrades the connection to a websocket and
// registers a new client.
func (h *Hub) ServeHTTP(wr http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(wr, r, nil)
	if err != nil {
		h.log.Errorf("web: upgrading connection: %v", err)
		return
	}

	c := h.newClient(conn, r)
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.ReadPump()
	go c.WritePump()
}

// ListenAndServe serves the hub on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	h.log.Infof("web: serving serial output on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newClient creates a new client for the connection.
func (h *Hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentID++

	return &Client{
		hub:         h,
		conn:        conn,
		Send:        make(chan []byte, 256),
		ID:          h.currentID,
		RemoteAddr:  r.RemoteAddr,
		UserAgent:   r.Header.Get("User-Agent"),
		connectedAt: time.Now(),
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 4,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
