package hub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTracksMultipleConnections(t *testing.T) {
	registry := NewRegistry()

	_, first := registry.Register("alice", "sock-1")
	assert.True(t, first)
	_, first = registry.Register("alice", "sock-2")
	assert.False(t, first)

	assert.True(t, registry.Online("alice"))
	assert.Equal(t, 2, registry.Connections("alice"))
	assert.Equal(t, []string{"alice"}, registry.OnlineUsers())
}

func TestDisconnectReportsLastConnection(t *testing.T) {
	registry := NewRegistry()
	registry.Register("alice", "sock-1")
	registry.Register("alice", "sock-2")

	assert.False(t, registry.Disconnect("alice", "sock-1"))
	assert.True(t, registry.Online("alice"))

	assert.True(t, registry.Disconnect("alice", "sock-2"))
	assert.False(t, registry.Online("alice"))
	assert.Empty(t, registry.OnlineUsers())
}

func TestDisconnectUnknownConnection(t *testing.T) {
	registry := NewRegistry()
	assert.False(t, registry.Disconnect("ghost", "sock-1"))
}

func TestRegisterSameSocketTwice(t *testing.T) {
	registry := NewRegistry()
	registry.Register("alice", "sock-1")
	registry.Register("alice", "sock-1")
	assert.Equal(t, 1, registry.Connections("alice"))
}

func TestQueueIfOfflineBuffersAndReplays(t *testing.T) {
	registry := NewRegistry()

	queued := registry.QueueIfOffline("bob", "recived_dm", map[string]interface{}{"content": "hi"})
	assert.True(t, queued)
	assert.Equal(t, 1, registry.PendingCount("bob"))

	pending, first := registry.Register("bob", "sock-1")
	assert.True(t, first)
	require.Len(t, pending, 1)
	assert.Equal(t, "recived_dm", pending[0].Event)
	// The queue drains on register.
	assert.Zero(t, registry.PendingCount("bob"))
}

func TestQueueIfOfflineSkipsConnectedUsers(t *testing.T) {
	registry := NewRegistry()
	registry.Register("bob", "sock-1")

	assert.False(t, registry.QueueIfOffline("bob", "recived_dm", nil))
	assert.Zero(t, registry.PendingCount("bob"))
}

func TestPendingExpiresAfterGrace(t *testing.T) {
	registry := NewRegistry()
	registry.Grace = 20 * time.Millisecond

	registry.QueueIfOffline("bob", "recived_dm", nil)
	time.Sleep(40 * time.Millisecond)

	assert.Zero(t, registry.PendingCount("bob"))
	pending, _ := registry.Register("bob", "sock-1")
	assert.Empty(t, pending)
}

func TestPendingQueueCapDropsOldest(t *testing.T) {
	registry := NewRegistry()
	registry.MaxPending = 3

	for i := 0; i < 5; i++ {
		registry.QueueIfOffline("bob", "recived_dm", i)
	}

	pending, _ := registry.Register("bob", "sock-1")
	require.Len(t, pending, 3)
	assert.Equal(t, 2, pending[0].Payload)
	assert.Equal(t, 4, pending[2].Payload)
}
