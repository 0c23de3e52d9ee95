package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmoji(t *testing.T) {
	valid := []string{"👍", "🎉", "❤️", "👍🏽", "🇩🇪", "☕", "🧑‍💻", "⭐"}
	for _, emoji := range valid {
		assert.True(t, ValidEmoji(emoji), "expected %q to be valid", emoji)
	}

	invalid := []string{"", "thumbs-up", "a", ":)", "not an emoji", "👍 nice"}
	for _, emoji := range invalid {
		assert.False(t, ValidEmoji(emoji), "expected %q to be invalid", emoji)
	}
}

func TestAddReactionIsIdempotentPerUser(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob")

	message, err := SaveDirectMessage("alice", "bob", "react to me", "text", nil)
	require.NoError(t, err)

	added, err := AddReaction(message.ID, "bob", "👍")
	require.NoError(t, err)
	assert.True(t, added)

	// Same triple again: no new entry, no broadcast.
	added, err = AddReaction(message.ID, "bob", "👍")
	require.NoError(t, err)
	assert.False(t, added)

	reactions, err := MessageReactions(message.ID)
	require.NoError(t, err)
	assert.Len(t, reactions, 1)
}

func TestDistinctReactionsCoexist(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob", "carol")

	message, err := SaveDirectMessage("alice", "bob", "popular", "text", nil)
	require.NoError(t, err)

	for _, reaction := range []struct{ user, emoji string }{
		{"bob", "👍"},
		{"bob", "🎉"},
		{"carol", "👍"},
	} {
		added, err := AddReaction(message.ID, reaction.user, reaction.emoji)
		require.NoError(t, err)
		assert.True(t, added)
	}

	reactions, err := MessageReactions(message.ID)
	require.NoError(t, err)
	assert.Len(t, reactions, 3)
}

func TestRemoveThenReAddIsANewEvent(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob")

	message, err := SaveDirectMessage("alice", "bob", "flip flop", "text", nil)
	require.NoError(t, err)

	added, err := AddReaction(message.ID, "bob", "🔥")
	require.NoError(t, err)
	assert.True(t, added)

	require.NoError(t, RemoveReaction(message.ID, "bob", "🔥"))

	reactions, err := MessageReactions(message.ID)
	require.NoError(t, err)
	assert.Empty(t, reactions)

	added, err = AddReaction(message.ID, "bob", "🔥")
	require.NoError(t, err)
	assert.True(t, added)
}

func TestReactionRejectsInvalidEmoji(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob")

	message, err := SaveDirectMessage("alice", "bob", "strict", "text", nil)
	require.NoError(t, err)

	_, err = AddReaction(message.ID, "bob", "not-an-emoji")
	assert.ErrorIs(t, err, ErrInvalidEmoji)

	err = RemoveReaction(message.ID, "bob", "still not one")
	assert.ErrorIs(t, err, ErrInvalidEmoji)
}
