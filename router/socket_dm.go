package router

import (
	"log"
	"time"

	"chathub-service/model"
	"chathub-service/socketio"
	"chathub-service/store"

	"github.com/zishang520/socket.io/v2/socket"
)

type dmInput struct {
	ConversationID string   `json:"conversationId"`
	RecipientID    string   `json:"recipientId"`
	Content        string   `json:"content"`
	MessageType    string   `json:"messageType"`
	Mentions       []string `json:"mentions"`
	Timestamp      int64    `json:"timestamp"`
}

type messageRefInput struct {
	MessageID      string `json:"messageId"`
	ConversationID string `json:"conversationId"`
	Content        string `json:"content"`
	Pin            bool   `json:"pin"`
}

type forwardInput struct {
	MessageID        string `json:"messageId"`
	OriginalSenderID string `json:"originalSenderId"`
	ForwardToUserID  string `json:"forwardToUserId"`
	Content          string `json:"content"`
	ConversationID   string `json:"conversationId"`
}

type historyInput struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
	ParticipantID  string `json:"participantId"`
	ChannelID      string `json:"channelId"`
	Query          string `json:"query"`
	Limit          int    `json:"limit"`
	Offset         int    `json:"offset"`
}

func dmEvents(client *socket.Socket) {
	client.On("send_dm", func(args ...interface{}) {
		input := dmInput{}
		if !bind(args, &input) {
			return
		}
		senderID := currentUserID(client)

		message, err := store.SaveDirectMessage(senderID, input.RecipientID, input.Content, input.MessageType, input.Mentions)
		if err != nil {
			emitError(client, "dm_error", err.Error(), "direct message rejected")
			return
		}

		timestamp := input.Timestamp
		if timestamp == 0 {
			timestamp = message.CreatedAt.UnixMilli()
		}
		payload := map[string]interface{}{
			"messageId":      message.ID,
			"conversationId": message.ConversationID,
			"senderId":       message.SenderID,
			"recipientId":    message.RecipientID,
			"content":        message.Content,
			"messageType":    message.Type,
			"mentions":       message.Mentions,
			"timestamp":      timestamp,
		}
		// Exact wire constant, clients depend on this spelling.
		deliver(input.RecipientID, "recived_dm", payload)
		publish("dm_sent", payload)
	})

	client.On("edit_dm", func(args ...interface{}) {
		input := messageRefInput{}
		if !bind(args, &input) {
			return
		}
		message, err := store.EditMessage(input.MessageID, input.Content)
		if err != nil {
			emitError(client, "dm_error", err.Error(), "edit rejected")
			return
		}
		broadcastToConversation(message.ConversationID, "message_edited", map[string]interface{}{
			"messageId":      message.ID,
			"conversationId": message.ConversationID,
			"content":        message.Content,
			"edited":         true,
		})
	})

	client.On("delete_dm", func(args ...interface{}) {
		input := messageRefInput{}
		if !bind(args, &input) {
			return
		}
		if err := store.DeleteMessage(input.MessageID); err != nil {
			log.Printf("delete_dm %s: %v", input.MessageID, err)
			return
		}
		broadcastToConversation(input.ConversationID, "message_deleted", map[string]interface{}{
			"messageId":      input.MessageID,
			"conversationId": input.ConversationID,
			"success":        true,
		})
	})

	client.On("forward_dm", func(args ...interface{}) {
		input := forwardInput{}
		if !bind(args, &input) {
			return
		}
		forwarderID := currentUserID(client)
		message, err := store.ForwardMessage(input.MessageID, forwarderID, input.ForwardToUserID, input.Content)
		if err != nil {
			emitError(client, "dm_error", err.Error(), "forward rejected")
			return
		}
		deliver(input.ForwardToUserID, "recived_dm", map[string]interface{}{
			"messageId":      message.ID,
			"conversationId": message.ConversationID,
			"senderId":       message.SenderID,
			"recipientId":    message.RecipientID,
			"content":        message.Content,
			"messageType":    message.Type,
			"timestamp":      message.CreatedAt.UnixMilli(),
			"forwarded":      true,
		})
		client.Emit("message_forwarded", map[string]interface{}{
			"success":          true,
			"originalSenderId": input.OriginalSenderID,
			"forwardedTo":      input.ForwardToUserID,
		})
	})

	client.On("join_dm", func(args ...interface{}) {
		input := historyInput{}
		if !bind(args, &input) {
			return
		}
		userID := input.UserID
		if userID == "" {
			userID = currentUserID(client)
		}
		if input.ParticipantID != "" {
			if _, err := store.EnsureConversation(userID, input.ParticipantID); err != nil {
				log.Printf("join_dm: %v", err)
				return
			}
		}
		client.Emit("joined_dm", map[string]interface{}{
			"conversationId": input.ConversationID,
			"success":        true,
		})
	})

	client.On("leave_dm", func(args ...interface{}) {
		input := historyInput{}
		if !bind(args, &input) {
			return
		}
		client.Emit("left_dm", map[string]interface{}{
			"conversationId": input.ConversationID,
			"success":        true,
		})
	})

	client.On("get_private_message_history", func(args ...interface{}) {
		input := historyInput{}
		if !bind(args, &input) {
			return
		}
		messages, err := store.DirectHistory(input.ConversationID, input.Limit)
		if err != nil {
			log.Printf("get_private_message_history: %v", err)
			messages = []model.Message{}
		}
		client.Emit("private_message_history", map[string]interface{}{
			"conversationId": input.ConversationID,
			"messages":       messages,
		})
	})

	client.On("search_messages", func(args ...interface{}) {
		input := historyInput{}
		if !bind(args, &input) {
			return
		}
		messages, err := store.SearchMessages(input.ConversationID, input.Query, input.Limit)
		if err != nil {
			log.Printf("search_messages: %v", err)
			messages = []model.Message{}
		}
		client.Emit("message_search_results", map[string]interface{}{
			"conversationId": input.ConversationID,
			"query":          input.Query,
			"messages":       messages,
		})
	})

	client.On("pin_message", func(args ...interface{}) {
		input := messageRefInput{}
		if !bind(args, &input) {
			return
		}
		message, err := store.SetPinned(input.MessageID, true)
		if err != nil {
			log.Printf("pin_message %s: %v", input.MessageID, err)
			return
		}
		client.Emit("message_pinned", map[string]interface{}{
			"messageId":      message.ID,
			"conversationId": input.ConversationID,
			"pinned":         true,
			"success":        true,
		})
	})

	client.On("unpin_message", func(args ...interface{}) {
		input := messageRefInput{}
		if !bind(args, &input) {
			return
		}
		message, err := store.SetPinned(input.MessageID, false)
		if err != nil {
			log.Printf("unpin_message %s: %v", input.MessageID, err)
			return
		}
		client.Emit("message_unpinned", map[string]interface{}{
			"messageId":      message.ID,
			"conversationId": input.ConversationID,
			"pinned":         false,
			"success":        true,
		})
	})

	client.On("get_conversation_list", func(args ...interface{}) {
		userID := currentUserID(client)
		conversations, err := store.ConversationList(userID)
		if err != nil {
			log.Printf("get_conversation_list: %v", err)
			conversations = []model.Conversation{}
		}
		client.Emit("conversation_list", map[string]interface{}{
			"userId":        userID,
			"conversations": conversations,
		})
	})

	// Live preview of a message still being typed, relayed without
	// persistence.
	client.On("send_live_message", func(args ...interface{}) {
		input := dmInput{}
		if !bind(args, &input) {
			return
		}
		socketio.Emit(input.RecipientID, "live_message_update", map[string]interface{}{
			"conversationId": input.ConversationID,
			"senderId":       currentUserID(client),
			"content":        input.Content,
			"timestamp":      time.Now().UnixMilli(),
		})
	})
}

// broadcastToConversation fans an event out to both participants of a
// direct conversation, every device included.
func broadcastToConversation(conversationID, eventName string, payload interface{}) {
	conversation, err := store.GetConversation(conversationID)
	if err != nil {
		return
	}
	socketio.Emit(conversation.UserA, eventName, payload)
	socketio.Emit(conversation.UserB, eventName, payload)
}
