package hub

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypingAutoStopFires(t *testing.T) {
	coordinator := NewTypingCoordinator()
	coordinator.StopAfter = 20 * time.Millisecond

	var expired int32
	broadcast := coordinator.Start("dm_alice_bob", "alice", func() {
		atomic.AddInt32(&expired, 1)
	})
	assert.True(t, broadcast)
	assert.True(t, coordinator.Active("dm_alice_bob", "alice"))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&expired) == 1
	}, time.Second, 5*time.Millisecond)
	assert.False(t, coordinator.Active("dm_alice_bob", "alice"))
}

func TestTypingRestartResetsAutoStop(t *testing.T) {
	coordinator := NewTypingCoordinator()
	coordinator.StopAfter = 40 * time.Millisecond
	coordinator.MinGap = time.Nanosecond

	var expired int32
	expire := func() { atomic.AddInt32(&expired, 1) }

	coordinator.Start("dm_alice_bob", "alice", expire)
	for i := 0; i < 3; i++ {
		time.Sleep(25 * time.Millisecond)
		coordinator.Start("dm_alice_bob", "alice", expire)
	}
	// Still inside the window thanks to the resets.
	assert.Zero(t, atomic.LoadInt32(&expired))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&expired) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestTypingExplicitStopCancelsTimer(t *testing.T) {
	coordinator := NewTypingCoordinator()
	coordinator.StopAfter = 20 * time.Millisecond

	var expired int32
	coordinator.Start("dm_alice_bob", "alice", func() {
		atomic.AddInt32(&expired, 1)
	})

	assert.True(t, coordinator.Stop("dm_alice_bob", "alice"))
	assert.False(t, coordinator.Active("dm_alice_bob", "alice"))

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&expired))
}

func TestStrayStopIsANoop(t *testing.T) {
	coordinator := NewTypingCoordinator()
	assert.False(t, coordinator.Stop("dm_alice_bob", "alice"))
}

func TestTypingBurstIsThrottled(t *testing.T) {
	coordinator := NewTypingCoordinator()
	coordinator.MinGap = time.Hour

	broadcasts := 0
	for i := 0; i < 10; i++ {
		if coordinator.Start("dm_alice_bob", "alice", nil) {
			broadcasts++
		}
	}
	assert.Equal(t, 1, broadcasts)
}

func TestTypingScopesAreIndependent(t *testing.T) {
	coordinator := NewTypingCoordinator()
	coordinator.MinGap = time.Hour

	assert.True(t, coordinator.Start("dm_alice_bob", "alice", nil))
	assert.True(t, coordinator.Start("group-1/general", "alice", nil))
	assert.True(t, coordinator.Start("dm_alice_bob", "bob", nil))
}

func TestClearUserCancelsSilently(t *testing.T) {
	coordinator := NewTypingCoordinator()
	coordinator.StopAfter = 20 * time.Millisecond

	var expired int32
	expire := func() { atomic.AddInt32(&expired, 1) }
	coordinator.Start("dm_alice_bob", "alice", expire)
	coordinator.Start("group-1/general", "alice", expire)
	coordinator.Start("dm_alice_bob", "bob", expire)

	coordinator.ClearUser("alice")
	assert.False(t, coordinator.Active("dm_alice_bob", "alice"))
	assert.False(t, coordinator.Active("group-1/general", "alice"))
	assert.True(t, coordinator.Active("dm_alice_bob", "bob"))

	// Only bob's timer still fires.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&expired))
}
