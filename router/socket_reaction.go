package router

import (
	"log"
	"time"

	"chathub-service/store"

	"github.com/zishang520/socket.io/v2/socket"
)

type reactionInput struct {
	MessageID      string `json:"messageId"`
	ConversationID string `json:"conversationId"`
	GroupID        string `json:"groupId"`
	Emoji          string `json:"emoji"`
	UserID         string `json:"userId"`
}

type readInput struct {
	MessageID      string `json:"messageId"`
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
	ReadAt         int64  `json:"readAt"`
}

func reactionEvents(client *socket.Socket) {
	client.On("add_reaction", func(args ...interface{}) {
		input := reactionInput{}
		if !bind(args, &input) {
			return
		}
		userID := input.UserID
		if id := currentUserID(client); id != "" {
			userID = id
		}
		added, err := store.AddReaction(input.MessageID, userID, input.Emoji)
		if err != nil {
			emitError(client, "reaction_error", err.Error(), "reaction rejected")
			return
		}
		// Re-adding the same reaction is idempotent, peers see no
		// duplicate broadcast for unchanged state.
		if !added {
			return
		}
		broadcastToConversation(input.ConversationID, "reaction_added", map[string]interface{}{
			"messageId":      input.MessageID,
			"conversationId": input.ConversationID,
			"emoji":          input.Emoji,
			"userId":         userID,
			"action":         "add",
		})
	})

	client.On("remove_reaction", func(args ...interface{}) {
		input := reactionInput{}
		if !bind(args, &input) {
			return
		}
		userID := input.UserID
		if id := currentUserID(client); id != "" {
			userID = id
		}
		if err := store.RemoveReaction(input.MessageID, userID, input.Emoji); err != nil {
			emitError(client, "reaction_error", err.Error(), "reaction rejected")
			return
		}
		broadcastToConversation(input.ConversationID, "reaction_removed", map[string]interface{}{
			"messageId":      input.MessageID,
			"conversationId": input.ConversationID,
			"emoji":          input.Emoji,
			"userId":         userID,
			"action":         "remove",
		})
	})

	client.On("add_group_reaction", func(args ...interface{}) {
		input := reactionInput{}
		if !bind(args, &input) {
			return
		}
		userID := input.UserID
		if id := currentUserID(client); id != "" {
			userID = id
		}
		added, err := store.AddReaction(input.MessageID, userID, input.Emoji)
		if err != nil {
			emitError(client, "reaction_error", err.Error(), "reaction rejected")
			return
		}
		if !added {
			return
		}
		payload := map[string]interface{}{
			"messageId": input.MessageID,
			"groupId":   input.GroupID,
			"emoji":     input.Emoji,
			"userId":    userID,
			"action":    "add",
		}
		client.Emit("group_reaction_added", payload)
		broadcastToGroup(input.GroupID, userID, "group_reaction_added", payload)
	})

	client.On("message_read", func(args ...interface{}) {
		handleRead(client, args)
	})
	client.On("mark_as_read", func(args ...interface{}) {
		handleRead(client, args)
	})

	client.On("fetch_unread_counts", func(args ...interface{}) {
		input := readInput{}
		bind(args, &input)
		userID := input.UserID
		if id := currentUserID(client); id != "" {
			userID = id
		}
		total, perConversation, err := store.UnreadCounts(userID)
		if err != nil {
			log.Printf("fetch_unread_counts: %v", err)
			return
		}
		client.Emit("unread_counts", map[string]interface{}{
			"userId":             userID,
			"totalUnread":        total,
			"conversationCounts": perConversation,
		})
	})
}

func handleRead(client *socket.Socket, args []interface{}) {
	input := readInput{}
	if !bind(args, &input) {
		return
	}
	userID := input.UserID
	if id := currentUserID(client); id != "" {
		userID = id
	}

	// Per-message receipt: persist and notify the other parties. Every
	// distinct reader produces its own broadcast.
	if input.MessageID != "" {
		readAt := time.UnixMilli(input.ReadAt)
		if input.ReadAt == 0 {
			readAt = time.Now()
		}
		receipt, err := store.MarkMessageRead(input.MessageID, userID, readAt)
		if err != nil {
			log.Printf("message_read %s: %v", input.MessageID, err)
			return
		}
		broadcastToConversation(receipt.ConversationID, "message_read_receipt", map[string]interface{}{
			"messageId": receipt.MessageID,
			"readBy":    receipt.UserID,
			"readAt":    receipt.ReadAt.UnixMilli(),
		})
		return
	}

	// Conversation-level bulk marking.
	if _, err := store.MarkConversationRead(input.ConversationID, userID); err != nil {
		log.Printf("message_read conversation %s: %v", input.ConversationID, err)
		return
	}
	client.Emit("messages_marked_read", map[string]interface{}{
		"conversationId": input.ConversationID,
		"userId":         userID,
		"success":        true,
	})
}
