package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	publishBuffer = 8
	clientBuffer  = 16
	writeWait     = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// client is one connected spectator.
type client struct {
	ID   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans snapshots out to every connected spectator. Publish is called
// from the game loop and never blocks; Run owns the broadcast.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client
	last    []byte
	lastRun string

	publish chan Snapshot
	dropped int
}

// NewHub creates an idle hub. Start Run before publishing.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
		publish: make(chan Snapshot, publishBuffer),
	}
}

// Publish queues a snapshot. It reports false and drops the snapshot when
// the hub is behind.
func (h *Hub) Publish(snap Snapshot) bool {
	select {
	case h.publish <- snap:
		return true
	default:
		h.mu.Lock()
		h.dropped++
		h.mu.Unlock()
		return false
	}
}

// Run broadcasts queued snapshots until ctx is done, then disconnects
// every spectator.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case snap := <-h.publish:
			msg, err := json.Marshal(snap)
			if err != nil {
				log.Printf("spectate: encode snapshot: %v", err)
				continue
			}
			h.broadcast(snap.RunID, msg)
		}
	}
}

func (h *Hub) broadcast(runID string, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = msg
	h.lastRun = runID
	for _, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// Slow spectator: skip this frame, the next one supersedes it.
		}
	}
}

// Clients is the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped is the number of snapshots discarded by Publish.
func (h *Hub) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Router exposes the status endpoint and the websocket feed.
func (h *Hub) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Get("/", h.handleStatus)
	r.Get("/ws", h.handleWebSocket)
	return r
}

type status struct {
	Clients int             `json:"clients"`
	RunID   string          `json:"run_id,omitempty"`
	Last    json.RawMessage `json:"last,omitempty"`
}

func (h *Hub) handleStatus(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	st := status{Clients: len(h.clients), RunID: h.lastRun, Last: h.last}
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		log.Printf("spectate: write status: %v", err)
	}
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("spectate: upgrade:", err)
		return
	}
	c := &client{ID: uuid.NewString(), conn: conn, send: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	h.clients[c.ID] = c
	if h.last != nil {
		c.send <- h.last
	}
	h.mu.Unlock()
	log.Printf("spectate: client %s connected", c.ID)

	go h.writePump(c)
	h.readPump(c)
}

// readPump discards inbound messages and unregisters the client when the
// connection drops.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("spectate: client %s: %v", c.ID, err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	for msg := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			break
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("spectate: write to %s: %v", c.ID, err)
			break
		}
	}
	c.conn.Close()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	delete(h.clients, c.ID)
	close(c.send)
	log.Printf("spectate: client %s disconnected", c.ID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

// Serve runs the hub and its HTTP server until ctx is cancelled.
func Serve(ctx context.Context, addr string, h *Hub) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go h.Run(ctx)

	errc := make(chan error, 1)
	go func() {
		log.Printf("spectate: listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectate server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("spectate shutdown: %w", err)
		}
		return nil
	}
}
