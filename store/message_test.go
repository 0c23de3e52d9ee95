package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDirectMessageRejectsEmptyContent(t *testing.T) {
	setupDB(t)
	seedUsers(t, "sender-123", "receiver-456")

	_, err := SaveDirectMessage("sender-123", "receiver-456", "", "text", nil)
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = SaveDirectMessage("sender-123", "receiver-456", "   ", "text", nil)
	assert.ErrorIs(t, err, ErrEmptyContent)

	// A rejected message never persists.
	messages, err := DirectHistory(ConversationID("sender-123", "receiver-456"), 10)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSaveDirectMessageRejectsUnknownRecipient(t *testing.T) {
	setupDB(t)
	seedUsers(t, "sender-123")

	_, err := SaveDirectMessage("sender-123", "nobody-999", "hello", "text", nil)
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestDirectMessageContentRoundTrips(t *testing.T) {
	setupDB(t)
	seedUsers(t, "sender-123", "receiver-456")

	samples := []string{
		"Hello, this is a test message!",
		"emoji: 🎉🔥👍🏽",
		"combining: é → é",
		"rtl: مرحبا بالعالم",
		"mixed 中文 and ελληνικά",
	}
	for _, content := range samples {
		message, err := SaveDirectMessage("sender-123", "receiver-456", content, "text", nil)
		require.NoError(t, err)

		stored, err := GetMessage(message.ID)
		require.NoError(t, err)
		assert.Equal(t, content, stored.Content)
	}
}

func TestSaveDirectMessageFields(t *testing.T) {
	setupDB(t)
	seedUsers(t, "sender-123", "receiver-456")

	message, err := SaveDirectMessage("sender-123", "receiver-456", "Hello, this is a test message!", "text", []string{"receiver-456"})
	require.NoError(t, err)

	assert.Equal(t, "sender-123", message.SenderID)
	assert.Equal(t, "receiver-456", message.RecipientID)
	assert.Equal(t, "text", message.Type)
	assert.Equal(t, ConversationID("sender-123", "receiver-456"), message.ConversationID)
	assert.Equal(t, []string{"receiver-456"}, message.Mentions)
	assert.False(t, message.Edited)
}

func TestEditMessage(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob")

	message, err := SaveDirectMessage("alice", "bob", "first draft", "text", nil)
	require.NoError(t, err)

	edited, err := EditMessage(message.ID, "final version")
	require.NoError(t, err)
	assert.True(t, edited.Edited)
	assert.Equal(t, "final version", edited.Content)
	require.NotNil(t, edited.EditedAt)

	stored, err := GetMessage(message.ID)
	require.NoError(t, err)
	assert.True(t, stored.Edited)
	assert.Equal(t, "final version", stored.Content)

	_, err = EditMessage(message.ID, "")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestDeleteMessageIsSoft(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob")

	message, err := SaveDirectMessage("alice", "bob", "to be removed", "text", nil)
	require.NoError(t, err)

	require.NoError(t, DeleteMessage(message.ID))

	_, err = GetMessage(message.ID)
	assert.ErrorIs(t, err, ErrMessageNotFound)

	messages, err := DirectHistory(message.ConversationID, 10)
	require.NoError(t, err)
	assert.Empty(t, messages)

	assert.ErrorIs(t, DeleteMessage("missing"), ErrMessageNotFound)
}

func TestForwardMessage(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob", "carol")

	original, err := SaveDirectMessage("alice", "bob", "worth sharing", "text", nil)
	require.NoError(t, err)

	forwarded, err := ForwardMessage(original.ID, "bob", "carol", "")
	require.NoError(t, err)
	assert.Equal(t, "worth sharing", forwarded.Content)
	assert.Equal(t, "bob", forwarded.SenderID)
	assert.Equal(t, "carol", forwarded.RecipientID)
	assert.Equal(t, ConversationID("bob", "carol"), forwarded.ConversationID)

	_, err = ForwardMessage(original.ID, "bob", "nobody", "")
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestPinUnpinMessage(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob")

	message, err := SaveDirectMessage("alice", "bob", "pin me", "text", nil)
	require.NoError(t, err)

	pinned, err := SetPinned(message.ID, true)
	require.NoError(t, err)
	assert.True(t, pinned.Pinned)

	list, err := PinnedMessages(message.ConversationID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, message.ID, list[0].ID)

	unpinned, err := SetPinned(message.ID, false)
	require.NoError(t, err)
	assert.False(t, unpinned.Pinned)

	list, err = PinnedMessages(message.ConversationID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDirectHistoryLimitAndOrder(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob")

	for i := 0; i < 8; i++ {
		_, err := SaveDirectMessage("alice", "bob", fmt.Sprintf("message %d", i), "text", nil)
		require.NoError(t, err)
	}

	messages, err := DirectHistory("dm_bob_alice", 5)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(messages), 5)

	// Chronological order
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].CreatedAt.Before(messages[i-1].CreatedAt))
	}
}

func TestSearchMessages(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob")

	_, err := SaveDirectMessage("alice", "bob", "let's grab Coffee tomorrow", "text", nil)
	require.NoError(t, err)
	_, err = SaveDirectMessage("bob", "alice", "tea instead?", "text", nil)
	require.NoError(t, err)

	results, err := SearchMessages(ConversationID("alice", "bob"), "coffee", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Content, "Coffee")

	results, err = SearchMessages(ConversationID("alice", "bob"), "pizza", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSaveGroupMessageAuthorization(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice", "bob", "mallory")

	group, err := CreateGroup("devs", "", "alice", []string{"bob"}, true)
	require.NoError(t, err)

	// Non-member
	_, err = SaveGroupMessage(group.ID, "general", "mallory", "let me in", "text", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Unknown group looks exactly the same from the outside.
	_, err = SaveGroupMessage("no-such-group", "general", "mallory", "hello", "text", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	message, err := SaveGroupMessage(group.ID, "general", "alice", "welcome @bob", "text", []string{"bob"})
	require.NoError(t, err)
	assert.Equal(t, group.ID, message.GroupID)
	assert.Equal(t, "general", message.ChannelID)
	assert.Equal(t, []string{"bob"}, message.Mentions)
}

func TestChannelHistoryPaging(t *testing.T) {
	setupDB(t)
	seedUsers(t, "alice")

	group, err := CreateGroup("archive", "", "alice", nil, false)
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		_, err := SaveGroupMessage(group.ID, "general", "alice", fmt.Sprintf("entry %d", i), "text", nil)
		require.NoError(t, err)
	}

	page, err := ChannelHistory("general", 3, 0)
	require.NoError(t, err)
	assert.Len(t, page, 3)

	next, err := ChannelHistory("general", 3, 3)
	require.NoError(t, err)
	assert.Len(t, next, 3)
	assert.NotEqual(t, page[0].ID, next[0].ID)

	tail, err := ChannelHistory("general", 3, 6)
	require.NoError(t, err)
	assert.Len(t, tail, 1)
}
