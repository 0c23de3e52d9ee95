package hub

import (
	"sync"
	"time"
)

const (
	defaultStopAfter = 5 * time.Second
	defaultMinGap    = time.Second
)

type typingKey struct {
	scope  string
	userID string
}

type typingEntry struct {
	timer         *time.Timer
	lastBroadcast time.Time
}

// TypingCoordinator debounces typing state per (scope, user), where the
// scope is a conversation id or a group/channel composite. Every
// typing=true resets the auto-stop timer; an explicit stop cancels it.
// If neither arrives, the coordinator fires the expiry callback itself
// so peers never see a stuck indicator.
type TypingCoordinator struct {
	mu      sync.Mutex
	entries map[typingKey]*typingEntry

	// StopAfter is the silence window before the coordinator
	// synthesizes a stop broadcast.
	StopAfter time.Duration
	// MinGap throttles repeated typing=true broadcasts: a burst only
	// reaches peers once per gap.
	MinGap time.Duration
}

func NewTypingCoordinator() *TypingCoordinator {
	return &TypingCoordinator{
		entries:   make(map[typingKey]*typingEntry),
		StopAfter: defaultStopAfter,
		MinGap:    defaultMinGap,
	}
}

// Start records typing activity. expire runs if the auto-stop timer
// fires before an explicit Stop. The return value tells the caller
// whether to broadcast this event or swallow it as part of a burst.
func (c *TypingCoordinator) Start(scope, userID string, expire func()) bool {
	key := typingKey{scope: scope, userID: userID}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if ok {
		entry.timer.Stop()
		entry.timer = c.newTimerLocked(key, expire)
		if now.Sub(entry.lastBroadcast) < c.MinGap {
			return false
		}
		entry.lastBroadcast = now
		return true
	}

	c.entries[key] = &typingEntry{
		timer:         c.newTimerLocked(key, expire),
		lastBroadcast: now,
	}
	return true
}

// Stop cancels the pending auto-stop. Returns whether the user was
// actually marked typing, a stray stop broadcasts nothing.
func (c *TypingCoordinator) Stop(scope, userID string) bool {
	key := typingKey{scope: scope, userID: userID}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(c.entries, key)
	return true
}

// ClearUser drops every typing record of a user without firing expiry
// callbacks. Called on disconnect so stale timers never broadcast
// against a gone recipient set.
func (c *TypingCoordinator) ClearUser(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if key.userID == userID {
			entry.timer.Stop()
			delete(c.entries, key)
		}
	}
}

// Active reports whether a typing record is live for the key.
func (c *TypingCoordinator) Active(scope, userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[typingKey{scope: scope, userID: userID}]
	return ok
}

func (c *TypingCoordinator) newTimerLocked(key typingKey, expire func()) *time.Timer {
	var timer *time.Timer
	timer = time.AfterFunc(c.StopAfter, func() {
		c.mu.Lock()
		entry, ok := c.entries[key]
		// A reset replaced the timer, or an explicit stop already won.
		if !ok || entry.timer != timer {
			c.mu.Unlock()
			return
		}
		delete(c.entries, key)
		c.mu.Unlock()

		if expire != nil {
			expire()
		}
	})
	return timer
}
