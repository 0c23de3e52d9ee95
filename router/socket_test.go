package router

import (
	"testing"

	"chathub-service/hub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDelivery swaps the emit path and registry for a test and restores
// them afterwards. emitted collects (event, userID) pairs.
func stubDelivery(t *testing.T, remote bool) *[]string {
	t.Helper()

	prevConnections, prevEmit, prevRemote := connections, emit, remoteActive
	t.Cleanup(func() {
		connections, emit, remoteActive = prevConnections, prevEmit, prevRemote
	})

	emitted := []string{}
	connections = hub.NewRegistry()
	emit = func(id string, event string, _ any) {
		emitted = append(emitted, event+"->"+id)
	}
	remoteActive = func(string) bool { return remote }
	return &emitted
}

func TestDeliverQueuesWhenOfflineEverywhere(t *testing.T) {
	emitted := stubDelivery(t, false)

	deliver("bob", "recived_dm", map[string]interface{}{"content": "hi"})

	assert.Empty(t, *emitted)
	assert.Equal(t, 1, connections.PendingCount("bob"))
}

func TestDeliverEmitsToRemoteInstanceConnections(t *testing.T) {
	// The local registry is empty but a peer instance holds the room.
	emitted := stubDelivery(t, true)

	deliver("bob", "recived_dm", map[string]interface{}{"content": "hi"})

	require.Equal(t, []string{"recived_dm->bob"}, *emitted)
	assert.Zero(t, connections.PendingCount("bob"))
}

func TestDeliverEmitsToLocalConnections(t *testing.T) {
	emitted := stubDelivery(t, false)
	connections.Register("bob", "sock-1")

	deliver("bob", "recived_dm", nil)

	require.Equal(t, []string{"recived_dm->bob"}, *emitted)
	assert.Zero(t, connections.PendingCount("bob"))
}
