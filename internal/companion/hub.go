package companion

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muurk/textwatch/internal/config"
	"github.com/muurk/textwatch/internal/logging"
	"github.com/muurk/textwatch/internal/protocol"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Data is the latest glucose reading held by the companion.
type Data struct {
	Value     int   `json:"value"`
	Trend     int   `json:"trend"`
	Timestamp int64 `json:"timestamp"`
}

// peer is one connected face
type peer struct {
	conn *websocket.Conn
	addr string

	// gorilla connections allow a single concurrent writer
	wmu sync.Mutex
}

func (p *peer) write(data []byte) error {
	p.wmu.Lock()
	defer p.wmu.Unlock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteMessage(websocket.BinaryMessage, data)
}

// Hub tracks connected faces, the latest reading and the face settings
type Hub struct {
	mu       sync.Mutex
	peers    map[*peer]struct{}
	data     Data
	settings config.Settings
	capture  *Capture
	now      func() time.Time
	upgrader websocket.Upgrader
}

// HubOption configures a Hub
type HubOption func(*Hub)

// WithClock replaces time.Now for default timestamps
func WithClock(now func() time.Time) HubOption {
	return func(h *Hub) { h.now = now }
}

// WithCapture records every message crossing the hub
func WithCapture(c *Capture) HubOption {
	return func(h *Hub) { h.capture = c }
}

// NewHub creates a hub with no reading and the given settings
func NewHub(settings config.Settings, opts ...HubOption) *Hub {
	h := &Hub{
		peers:    make(map[*peer]struct{}),
		data:     Data{Trend: -1},
		settings: settings,
		now:      time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Data returns the latest reading
func (h *Hub) Data() Data {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.data
}

// Settings returns the settings pushed to faces
func (h *Hub) Settings() config.Settings {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.settings
}

// Peers returns the number of connected faces
func (h *Hub) Peers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

// Update stores a reading and pushes it to every face.
// A zero timestamp means now.
func (h *Hub) Update(value, trend int, timestamp int64) Data {
	if timestamp == 0 {
		timestamp = h.now().Unix()
	}
	d := Data{Value: value, Trend: trend, Timestamp: timestamp}

	h.mu.Lock()
	h.data = d
	h.mu.Unlock()

	logging.Info("Glucose updated",
		zap.Int("value", d.Value),
		zap.Int("trend", d.Trend),
		zap.Int64("timestamp", d.Timestamp),
	)
	h.broadcast(protocol.NewGlucose(d.Value, d.Trend, d.Timestamp))
	return d
}

// SetSettings stores new settings and pushes them to every face
func (h *Hub) SetSettings(s config.Settings) {
	h.mu.Lock()
	h.settings = s
	h.mu.Unlock()

	logging.Info("Settings updated",
		zap.Bool("invert", s.Invert),
		zap.Stringer("text_align", s.TextAlign),
		zap.Stringer("language", s.Language),
	)
	h.broadcast(settingsDict(s))
}

func settingsDict(s config.Settings) *protocol.Dict {
	return protocol.NewSettings(s.Invert, uint8(s.TextAlign), uint8(s.Language))
}

// ServeWS upgrades a face connection and serves it until it closes
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	p := &peer{conn: conn, addr: r.RemoteAddr}
	h.mu.Lock()
	h.peers[p] = struct{}{}
	settings := h.settings
	h.mu.Unlock()

	logging.LogConnection(p.addr, "websocket_upgraded")

	defer func() {
		h.mu.Lock()
		delete(h.peers, p)
		h.mu.Unlock()
		_ = conn.Close()
		logging.LogConnection(p.addr, "websocket_closed")
	}()

	h.send(p, settingsDict(settings))

	done := make(chan struct{})
	defer close(done)
	go h.ping(p, done)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Info("Connection closed or error reading message",
					zap.String("remote_addr", p.addr),
					zap.Error(err),
				)
			}
			return
		}
		if kind != websocket.BinaryMessage {
			logging.Warn("Ignoring non-binary message",
				zap.String("remote_addr", p.addr),
				zap.Int("type", kind),
			)
			continue
		}
		h.receive(p, data)
	}
}

func (h *Hub) ping(p *peer, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := p.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (h *Hub) receive(p *peer, data []byte) {
	logging.LogMessage(p.addr, "received", data)
	h.capture.Record(p.addr, DirectionInbound, data)

	d, err := protocol.Decode(data, 0)
	if err != nil {
		logging.Error("Failed to decode message",
			zap.String("remote_addr", p.addr),
			zap.Error(err),
		)
		return
	}

	if !protocol.IsRequest(d) {
		logging.Debug("Ignoring message without request",
			zap.String("remote_addr", p.addr),
			zap.Stringer("dict", d),
		)
		return
	}

	current := h.Data()
	if current.Value <= 0 {
		logging.Info("Data requested but no data",
			zap.String("remote_addr", p.addr),
		)
		return
	}
	h.send(p, protocol.NewGlucose(current.Value, current.Trend, current.Timestamp))
}

func (h *Hub) send(p *peer, d *protocol.Dict) {
	data, err := protocol.Encode(d, 0)
	if err != nil {
		logging.Error("Failed to encode message", zap.Error(err))
		return
	}
	h.capture.Record(p.addr, DirectionOutbound, data)
	if err := p.write(data); err != nil {
		logging.Warn("Failed to send message",
			zap.String("remote_addr", p.addr),
			zap.Error(err),
		)
		return
	}
	logging.LogMessage(p.addr, "sent", data)
}

func (h *Hub) broadcast(d *protocol.Dict) {
	h.mu.Lock()
	peers := make([]*peer, 0, len(h.peers))
	for p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.Unlock()

	for _, p := range peers {
		h.send(p, d)
	}
}

// Close disconnects every face
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for p := range h.peers {
		logging.Info("Closing active connection", zap.String("remote_addr", p.addr))
		_ = p.conn.Close()
	}
}
