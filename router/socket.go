package router

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"chathub-service/bot"
	"chathub-service/config"
	"chathub-service/event"
	"chathub-service/hub"
	"chathub-service/socketio"
	"chathub-service/store"
	"chathub-service/utils"

	"github.com/zishang520/socket.io/v2/socket"
)

var (
	connections = hub.NewRegistry()
	typing      = hub.NewTypingCoordinator()
	bots        = bot.DefaultFleet()

	emit         = socketio.Emit
	remoteActive = socketio.RoomActive
)

// session is attached to a socket once register_user succeeds. Sockets
// authenticated through the JWT handshake carry *utils.TokenMetadata
// instead; currentUserID understands both.
type session struct {
	UserID string
}

func Socket(server *socket.Server) {
	if window := config.Config("TYPING_STOP_AFTER_MS"); window != "" {
		if ms, err := strconv.Atoi(window); err == nil && ms > 0 {
			typing.StopAfter = time.Duration(ms) * time.Millisecond
		}
	}
	if grace := config.Config("RECONNECT_GRACE_MS"); grace != "" {
		if ms, err := strconv.Atoi(grace); err == nil && ms > 0 {
			connections.Grace = time.Duration(ms) * time.Millisecond
		}
	}

	server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Sockets that authenticated on the handshake are registered
		// immediately, explicit register_user covers the rest.
		if claims, ok := client.Data().(*utils.TokenMetadata); ok {
			registerConnection(client, claims.Id)
		}

		client.On("register_user", func(args ...interface{}) {
			input := struct {
				UserID string `json:"userId"`
				Name   string `json:"name"`
				Email  string `json:"email"`
			}{}
			if !bind(args, &input) || input.UserID == "" {
				return
			}
			if _, err := store.UpsertUser(input.UserID, input.Name, input.Email); err != nil {
				log.Printf("register_user: upsert %s: %v", input.UserID, err)
				return
			}
			client.SetData(&session{UserID: input.UserID})
			registerConnection(client, input.UserID)
		})

		client.On("disconnect", func(args ...interface{}) {
			userID := currentUserID(client)
			if userID == "" {
				return
			}
			if last := connections.Disconnect(userID, string(client.Id())); last {
				typing.ClearUser(userID)
				if presence, err := store.SetPresence(userID, "offline", ""); err == nil {
					broadcastPresence(userID, presence)
				}
			}
		})

		dmEvents(client)
		groupEvents(client)
		typingEvents(client)
		reactionEvents(client)
		presenceEvents(client)
		botEvents(client)
	})
}

func registerConnection(client *socket.Socket, userID string) {
	client.Join(socket.Room(userID))

	pending, first := connections.Register(userID, string(client.Id()))
	for _, queued := range pending {
		client.Emit(queued.Event, queued.Payload)
	}
	if first {
		if presence, err := store.SetPresence(userID, "online", ""); err == nil {
			broadcastPresence(userID, presence)
		}
	}
}

// currentUserID resolves the identity bound to a socket, empty when the
// socket never registered.
func currentUserID(client *socket.Socket) string {
	switch data := client.Data().(type) {
	case *session:
		return data.UserID
	case *utils.TokenMetadata:
		return data.Id
	default:
		return ""
	}
}

// deliver emits to every connection of a user, or queues the event for
// the reconnect window when none is live. The registry only knows this
// instance, so the room is checked through the adapter before queueing:
// a recipient connected to a peer instance gets the emit, not a queue
// entry that peer would never drain.
func deliver(userID, eventName string, payload interface{}) {
	if !connections.Online(userID) && !remoteActive(userID) {
		if connections.QueueIfOffline(userID, eventName, payload) {
			return
		}
	}
	emit(userID, eventName, payload)
}

// bind decodes the first event argument into a typed payload.
func bind(args []interface{}, out interface{}) bool {
	if len(args) == 0 {
		return false
	}
	raw, err := json.Marshal(args[0])
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// emitError reports a rejected action to the requesting socket only,
// with the protocol's type discriminator.
func emitError(client *socket.Socket, eventName, errType, message string) {
	client.Emit(eventName, map[string]interface{}{
		"type":    errType,
		"message": message,
	})
}

// publish forwards a domain action to the analytics queue, best effort.
func publish(action string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	event.Emit("analytics", action, raw, true)
}
