// Package hub holds the in-memory coordination state of the chat hub:
// which users have live socket connections and who is currently typing
// where. Everything here is process state guarded by mutexes, handlers
// never touch the maps directly.
package hub

import (
	"sync"
	"time"
)

const (
	defaultGrace      = 30 * time.Second
	defaultMaxPending = 256
)

// PendingEvent is an event queued for a user who had no live connection
// when it was emitted. It is replayed on the next register within the
// grace window.
type PendingEvent struct {
	Event   string
	Payload interface{}

	queuedAt time.Time
}

// Registry maps a user identity to its live connections. One user may
// hold several concurrent connections (multi-device); the user counts as
// offline only when the last one closes.
type Registry struct {
	mu          sync.Mutex
	connections map[string]map[string]bool
	pending     map[string][]PendingEvent

	// Grace bounds how long events queue for a disconnected user.
	Grace time.Duration
	// MaxPending caps the per-user queue, oldest entries drop first.
	MaxPending int
}

func NewRegistry() *Registry {
	return &Registry{
		connections: make(map[string]map[string]bool),
		pending:     make(map[string][]PendingEvent),
		Grace:       defaultGrace,
		MaxPending:  defaultMaxPending,
	}
}

// Register binds a connection to a user. Returns the queued events to
// replay on this connection and whether the user just came online.
func (r *Registry) Register(userID, socketID string) ([]PendingEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sockets, ok := r.connections[userID]
	if !ok {
		sockets = make(map[string]bool)
		r.connections[userID] = sockets
	}
	first := len(sockets) == 0
	sockets[socketID] = true

	pending := r.takePendingLocked(userID)
	return pending, first
}

// Disconnect removes a connection. Returns true when it was the user's
// last one.
func (r *Registry) Disconnect(userID, socketID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sockets, ok := r.connections[userID]
	if !ok {
		return false
	}
	delete(sockets, socketID)
	if len(sockets) > 0 {
		return false
	}
	delete(r.connections, userID)
	return true
}

// Online reports whether the user has at least one live connection.
func (r *Registry) Online(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.connections[userID]) > 0
}

// Connections returns the live connection count for a user.
func (r *Registry) Connections(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.connections[userID])
}

// OnlineUsers snapshots the ids of all connected users.
func (r *Registry) OnlineUsers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]string, 0, len(r.connections))
	for userID := range r.connections {
		users = append(users, userID)
	}
	return users
}

// QueueIfOffline buffers the event when the user has no connection and
// reports whether it was queued. Delivery to connected users goes over
// their room instead.
func (r *Registry) QueueIfOffline(userID, event string, payload interface{}) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.connections[userID]) > 0 {
		return false
	}
	queue := r.prunePendingLocked(userID)
	queue = append(queue, PendingEvent{Event: event, Payload: payload, queuedAt: time.Now()})
	if len(queue) > r.MaxPending {
		queue = queue[len(queue)-r.MaxPending:]
	}
	r.pending[userID] = queue
	return true
}

// PendingCount is the current queue depth for a user.
func (r *Registry) PendingCount(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.prunePendingLocked(userID))
}

func (r *Registry) takePendingLocked(userID string) []PendingEvent {
	queue := r.prunePendingLocked(userID)
	delete(r.pending, userID)
	return queue
}

func (r *Registry) prunePendingLocked(userID string) []PendingEvent {
	queue := r.pending[userID]
	if len(queue) == 0 {
		return nil
	}
	cutoff := time.Now().Add(-r.Grace)
	kept := queue[:0]
	for _, event := range queue {
		if event.queuedAt.After(cutoff) {
			kept = append(kept, event)
		}
	}
	if len(kept) == 0 {
		delete(r.pending, userID)
		return nil
	}
	r.pending[userID] = kept
	return kept
}
