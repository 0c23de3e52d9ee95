package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceStatusTransitions(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice")

	presence, err := SetPresence("alice", "online", "")
	require.NoError(t, err)
	assert.Equal(t, "online", presence.Status)
	assert.False(t, presence.LastSeen.IsZero())

	presence, err = SetPresence("alice", "away", "brb")
	require.NoError(t, err)
	assert.Equal(t, "away", presence.Status)
	assert.Equal(t, "brb", presence.CustomMessage)

	// Flipping back without a message keeps the old custom message.
	presence, err = SetPresence("alice", "online", "")
	require.NoError(t, err)
	assert.Equal(t, "online", presence.Status)
	assert.Equal(t, "brb", presence.CustomMessage)

	// Going offline clears it.
	presence, err = SetPresence("alice", "offline", "")
	require.NoError(t, err)
	assert.Equal(t, "offline", presence.Status)
	assert.Empty(t, presence.CustomMessage)
}

func TestGetPresenceDefaultsToOffline(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice")

	presence, err := GetPresence("alice")
	require.NoError(t, err)
	assert.Equal(t, "offline", presence.Status)
}

func TestGetPresenceUnknownUser(t *testing.T) {
	setupDB(t)

	_, err := GetPresence("nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetCustomStatusKeepsStatus(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice")

	_, err := SetPresence("alice", "online", "")
	require.NoError(t, err)

	presence, err := SetCustomStatus("alice", "in a meeting")
	require.NoError(t, err)
	assert.Equal(t, "online", presence.Status)
	assert.Equal(t, "in a meeting", presence.CustomMessage)
}

func TestAllPresenceSnapshot(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob", "carol")

	_, err := SetPresence("carol", "online", "")
	require.NoError(t, err)
	_, err = SetPresence("alice", "away", "")
	require.NoError(t, err)

	records, err := AllPresence()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "alice", records[0].UserID)
	assert.Equal(t, "carol", records[1].UserID)
}
