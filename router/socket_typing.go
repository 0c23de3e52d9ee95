package router

import (
	"chathub-service/socketio"

	"github.com/zishang520/socket.io/v2/socket"
)

type typingInput struct {
	UserID         string `json:"userId"`
	ConversationID string `json:"conversationId"`
	RecipientID    string `json:"recipientId"`
	GroupID        string `json:"groupId"`
	ChannelID      string `json:"channelId"`
	IsTyping       bool   `json:"isTyping"`
}

func typingEvents(client *socket.Socket) {
	client.On("typing", func(args ...interface{}) {
		input := typingInput{}
		if !bind(args, &input) {
			return
		}
		userID := input.UserID
		if id := currentUserID(client); id != "" {
			userID = id
		}

		if !input.IsTyping {
			stopTyping(input, userID)
			return
		}

		payload := map[string]interface{}{
			"userId":         userID,
			"conversationId": input.ConversationID,
			"isTyping":       true,
		}
		expire := func() {
			socketio.Emit(input.RecipientID, "stop_typing", map[string]interface{}{
				"userId":         userID,
				"conversationId": input.ConversationID,
				"isTyping":       false,
			})
		}
		// The coordinator swallows bursts, peers see at most one
		// broadcast per throttle window.
		if typing.Start(input.ConversationID, userID, expire) {
			socketio.Emit(input.RecipientID, "typing", payload)
		}
	})

	client.On("typing_in_group", func(args ...interface{}) {
		input := typingInput{}
		if !bind(args, &input) {
			return
		}
		userID := input.UserID
		if id := currentUserID(client); id != "" {
			userID = id
		}

		scope := input.GroupID + "/" + input.ChannelID
		payload := map[string]interface{}{
			"userId":    userID,
			"groupId":   input.GroupID,
			"channelId": input.ChannelID,
			"isTyping":  true,
		}
		expire := func() {
			broadcastToGroup(input.GroupID, userID, "stop_typing", map[string]interface{}{
				"userId":    userID,
				"groupId":   input.GroupID,
				"channelId": input.ChannelID,
				"isTyping":  false,
			})
		}
		if typing.Start(scope, userID, expire) {
			broadcastToGroup(input.GroupID, userID, "user_typing_in_group", payload)
		}
	})

	client.On("stop_typing", func(args ...interface{}) {
		input := typingInput{}
		if !bind(args, &input) {
			return
		}
		userID := input.UserID
		if id := currentUserID(client); id != "" {
			userID = id
		}
		stopTyping(input, userID)
	})
}

func stopTyping(input typingInput, userID string) {
	payload := map[string]interface{}{
		"userId":         userID,
		"conversationId": input.ConversationID,
		"isTyping":       false,
	}
	if input.GroupID != "" {
		if typing.Stop(input.GroupID+"/"+input.ChannelID, userID) {
			payload["groupId"] = input.GroupID
			payload["channelId"] = input.ChannelID
			broadcastToGroup(input.GroupID, userID, "stop_typing", payload)
		}
		return
	}
	if typing.Stop(input.ConversationID, userID) {
		socketio.Emit(input.RecipientID, "stop_typing", payload)
	}
}
