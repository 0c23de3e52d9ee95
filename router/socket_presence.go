package router

import (
	"log"
	"time"

	"chathub-service/model"
	"chathub-service/socketio"
	"chathub-service/store"

	"github.com/zishang520/socket.io/v2/socket"
)

type presenceInput struct {
	UserID        string `json:"userId"`
	CustomMessage string `json:"customMessage"`
	Query         string `json:"query"`
	Limit         int    `json:"limit"`
	Timestamp     int64  `json:"timestamp"`
}

func presenceEvents(client *socket.Socket) {
	client.On("user_online", func(args ...interface{}) {
		setStatus(client, args, "online")
	})
	client.On("user_away", func(args ...interface{}) {
		setStatus(client, args, "away")
	})
	client.On("user_offline", func(args ...interface{}) {
		setStatus(client, args, "offline")
	})

	client.On("update_custom_status", func(args ...interface{}) {
		input := presenceInput{}
		if !bind(args, &input) {
			return
		}
		userID := presenceUser(client, input)
		presence, err := store.SetCustomStatus(userID, input.CustomMessage)
		if err != nil {
			emitError(client, "presence_error", err.Error(), "unknown user")
			return
		}
		client.Emit("user_status_changed", presencePayload(presence))
		broadcastPresence(userID, presence)
	})

	client.On("get_all_presence", func(args ...interface{}) {
		records, err := store.AllPresence()
		if err != nil {
			log.Printf("get_all_presence: %v", err)
			records = []model.Presence{}
		}
		client.Emit("all_users_presence", map[string]interface{}{
			"presence": records,
		})
	})

	client.On("get_user_presence", func(args ...interface{}) {
		input := presenceInput{}
		if !bind(args, &input) {
			return
		}
		presence, err := store.GetPresence(input.UserID)
		if err != nil {
			client.Emit("presence_error", map[string]interface{}{
				"type":    "user_not_found",
				"userId":  input.UserID,
				"message": "no presence record for user",
			})
			return
		}
		client.Emit("user_presence", presencePayload(presence))
	})

	client.On("search_users", func(args ...interface{}) {
		input := presenceInput{}
		bind(args, &input)
		users, err := store.SearchUsers(input.Query, input.Limit)
		if err != nil {
			log.Printf("search_users: %v", err)
			users = []model.User{}
		}
		client.Emit("user_search_results", map[string]interface{}{
			"query": input.Query,
			"users": users,
		})
	})

	client.On("check_connection_quality", func(args ...interface{}) {
		input := presenceInput{}
		bind(args, &input)
		latency := int64(0)
		if input.Timestamp > 0 {
			latency = time.Now().UnixMilli() - input.Timestamp
			if latency < 0 {
				latency = 0
			}
		}
		status := "good"
		switch {
		case latency > 1000:
			status = "poor"
		case latency > 250:
			status = "fair"
		}
		client.Emit("connection_quality", map[string]interface{}{
			"status":  status,
			"latency": latency,
		})
	})
}

func setStatus(client *socket.Socket, args []interface{}, status string) {
	input := presenceInput{}
	bind(args, &input)
	userID := presenceUser(client, input)
	if userID == "" {
		return
	}
	presence, err := store.SetPresence(userID, status, input.CustomMessage)
	if err != nil {
		log.Printf("presence %s -> %s: %v", userID, status, err)
		return
	}
	client.Emit("user_status_changed", presencePayload(presence))
	broadcastPresence(userID, presence)
}

func presenceUser(client *socket.Socket, input presenceInput) string {
	if id := currentUserID(client); id != "" {
		return id
	}
	return input.UserID
}

// broadcastPresence notifies every peer that shares a conversation or a
// group with the user.
func broadcastPresence(userID string, presence *model.Presence) {
	peers, err := store.RelatedUserIDs(userID)
	if err != nil {
		log.Printf("broadcastPresence %s: %v", userID, err)
		return
	}
	payload := presencePayload(presence)
	for _, peer := range peers {
		socketio.Emit(peer, "user_status_changed", payload)
	}
}

func presencePayload(presence *model.Presence) map[string]interface{} {
	return map[string]interface{}{
		"userId":        presence.UserID,
		"status":        presence.Status,
		"lastSeen":      presence.LastSeen.UnixMilli(),
		"customMessage": presence.CustomMessage,
	}
}
