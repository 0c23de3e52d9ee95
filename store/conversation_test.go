package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationIDIsOrderIndependent(t *testing.T) {
	assert.Equal(t, ConversationID("alice", "bob"), ConversationID("bob", "alice"))
	assert.Equal(t, "dm_alice_bob", ConversationID("bob", "alice"))
}

func TestCanonicalConversationID(t *testing.T) {
	assert.Equal(t, "dm_alice_bob", CanonicalConversationID("dm_bob_alice"))
	assert.Equal(t, "dm_alice_bob", CanonicalConversationID("dm_alice_bob"))
	// Ids that do not parse pass through untouched.
	assert.Equal(t, "group-77", CanonicalConversationID("group-77"))
}

func TestEnsureConversationResolvesBothDirections(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob")

	first, err := EnsureConversation("alice", "bob")
	require.NoError(t, err)
	second, err := EnsureConversation("bob", "alice")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	conversations, err := ConversationList("alice")
	require.NoError(t, err)
	assert.Len(t, conversations, 1)
}

func TestConversationPeer(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob")

	conversation, err := EnsureConversation("alice", "bob")
	require.NoError(t, err)

	peer, err := ConversationPeer(conversation.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "bob", peer)

	peer, err = ConversationPeer(conversation.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", peer)
}

func TestRelatedUserIDs(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob", "carol", "dave", "eve")

	_, err := EnsureConversation("alice", "bob")
	require.NoError(t, err)

	group, err := CreateGroup("team", "", "alice", []string{"carol", "dave"}, false)
	require.NoError(t, err)
	require.NotEmpty(t, group.ID)

	related, err := RelatedUserIDs("alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bob", "carol", "dave"}, related)

	// eve shares nothing with alice
	assert.NotContains(t, related, "eve")
	assert.NotContains(t, related, "alice")
}
