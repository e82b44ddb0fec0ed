package preview

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Update is the frame pushed to live clients and returned by actions.
type Update struct {
	Type      string `json:"type"`
	Seq       uint64 `json:"seq"`
	HTML      string `json:"html"`
	Action    string `json:"action,omitempty"`
	Mutations int    `json:"mutations"`
}

// hub tracks live connections. Writes are serialized by mu since a
// websocket connection allows one writer at a time.
type hub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	logger *slog.Logger
}

func newHub(logger *slog.Logger) *hub {
	return &hub{conns: make(map[*websocket.Conn]struct{}), logger: logger}
}

// add registers conn and sends it first.
func (h *hub) add(conn *websocket.Conn, first Update) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := write(conn, first); err != nil {
		return err
	}
	h.conns[conn] = struct{}{}
	return nil
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
	}
}

// broadcast sends msg to every client, dropping the ones that fail.
func (h *hub) broadcast(msg Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := write(conn, msg); err != nil {
			h.logger.Debug("dropping live client", "error", err)
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

func (h *hub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"),
			time.Now().Add(writeWait))
		conn.Close()
		delete(h.conns, conn)
	}
}

func write(conn *websocket.Conn, msg Update) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
