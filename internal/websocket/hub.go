package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MaxConnectionsPerUser caps the live streams one user may hold open
const MaxConnectionsPerUser = 5

var (
	// ErrClientClosed is returned when sending to a closed client
	ErrClientClosed = errors.New("client is closed")

	// ErrSlowClient is returned when a client's outbox is full
	ErrSlowClient = errors.New("client outbox is full")

	// ErrTooManyConnections is returned by Register when the user is at the cap
	ErrTooManyConnections = errors.New("too many live connections for user")
)

// ClientInterface is a single live stream the hub can deliver to
type ClientInterface interface {
	ID() string
	UserID() int32
	Send(data []byte) error
	Close() error
}

// ActivityRecorder is told when a user's live stream shows signs of life
type ActivityRecorder interface {
	RecordActivity(userID int32)
}

// session is the set of open streams of one user
type session struct {
	clients map[string]ClientInterface
}

// Stats is a point-in-time view of the hub
type Stats struct {
	Users       int
	Connections int
}

// Hub routes entity events to the live streams of their owner.
// It is safe for concurrent use.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int32]*session
	activity ActivityRecorder
	logger   zerolog.Logger
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[int32]*session),
		logger:   log.With().Str("component", "ws_hub").Logger(),
	}
}

// SetActivityRecorder makes open streams keep their user's presence fresh
func (h *Hub) SetActivityRecorder(activity ActivityRecorder) {
	h.mu.Lock()
	h.activity = activity
	h.mu.Unlock()
}

// Register attaches a client to its user's session
func (h *Hub) Register(client ClientInterface) error {
	userID := client.UserID()

	h.mu.Lock()
	s, ok := h.sessions[userID]
	if !ok {
		s = &session{clients: make(map[string]ClientInterface)}
		h.sessions[userID] = s
	}
	if len(s.clients) >= MaxConnectionsPerUser {
		h.mu.Unlock()
		return ErrTooManyConnections
	}
	s.clients[client.ID()] = client
	count := len(s.clients)
	h.mu.Unlock()

	h.touch(userID)
	h.logger.Debug().
		Int32("user_id", userID).
		Str("client_id", client.ID()).
		Int("user_connections", count).
		Msg("WebSocket client registered")
	return nil
}

// Unregister detaches a client. Unknown clients are ignored.
func (h *Hub) Unregister(client ClientInterface) {
	if h.detach(client.UserID(), client.ID()) {
		h.logger.Debug().
			Int32("user_id", client.UserID()).
			Str("client_id", client.ID()).
			Msg("WebSocket client unregistered")
	}
}

func (h *Hub) detach(userID int32, clientID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[userID]
	if !ok {
		return false
	}
	if _, exists := s.clients[clientID]; !exists {
		return false
	}
	delete(s.clients, clientID)
	if len(s.clients) == 0 {
		delete(h.sessions, userID)
	}
	return true
}

// deliver sends an event to every stream of a user. Streams whose outbox is
// full are dropped so one stalled tab cannot hold events back.
func (h *Hub) deliver(userID int32, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		h.logger.Error().Err(err).Int32("user_id", userID).Str("event_type", event.Type).Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	s, ok := h.sessions[userID]
	var targets []ClientInterface
	if ok {
		targets = make([]ClientInterface, 0, len(s.clients))
		for _, c := range s.clients {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if err := c.Send(data); err != nil {
			h.logger.Warn().Err(err).Int32("user_id", userID).Str("client_id", c.ID()).Msg("Dropping WebSocket client")
			h.Unregister(c)
			_ = c.Close()
			continue
		}
		delivered++
	}

	if delivered > 0 {
		h.logger.Debug().Int32("user_id", userID).Str("event_type", event.Type).Int("delivered", delivered).Msg("Event delivered")
	}
}

// touch records activity for a user with an open stream
func (h *Hub) touch(userID int32) {
	h.mu.RLock()
	activity := h.activity
	h.mu.RUnlock()

	if activity != nil {
		activity.RecordActivity(userID)
	}
}

// ClientCount returns the number of open streams of a user
func (h *Hub) ClientCount(userID int32) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if s, ok := h.sessions[userID]; ok {
		return len(s.clients)
	}
	return 0
}

// Online reports whether the user has a live stream open right now
func (h *Hub) Online(userID int32) bool {
	return h.ClientCount(userID) > 0
}

// Stats counts connected users and streams
func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := Stats{Users: len(h.sessions)}
	for _, s := range h.sessions {
		stats.Connections += len(s.clients)
	}
	return stats
}

// CloseAll disconnects every client. Used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	var clients []ClientInterface
	for _, s := range h.sessions {
		for _, c := range s.clients {
			clients = append(clients, c)
		}
	}
	h.sessions = make(map[int32]*session)
	h.mu.Unlock()

	for _, c := range clients {
		if err := c.Close(); err != nil {
			h.logger.Debug().Err(err).Str("client_id", c.ID()).Msg("Error closing WebSocket client")
		}
	}
}
