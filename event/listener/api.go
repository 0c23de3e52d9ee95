package listener

import (
	"encoding/json"
	"log"

	"chathub-service/event"
	"chathub-service/socketio"
	"chathub-service/store"
)

var (
	ApiChannel = make(chan event.EventChannelData)
)

type accountEvent struct {
	UserID string `json:"userId"`
	Reason string `json:"reason"`
}

// Api consumes inbound platform events from the api queue and applies
// them to the hub's state.
func Api() {
	for data := range ApiChannel {
		switch data.Action {
		case "user_deactivated":
			account := accountEvent{}
			if err := json.Unmarshal(data.Data, &account); err != nil || account.UserID == "" {
				log.Printf("listener: bad user_deactivated payload: %v", err)
				continue
			}
			presence, err := store.SetPresence(account.UserID, "offline", "")
			if err != nil {
				log.Printf("listener: deactivate %s: %v", account.UserID, err)
				continue
			}
			if data.Out.Send {
				peers, err := store.RelatedUserIDs(account.UserID)
				if err != nil {
					continue
				}
				for _, peer := range peers {
					socketio.Emit(peer, "user_status_changed", map[string]interface{}{
						"userId":   presence.UserID,
						"status":   presence.Status,
						"lastSeen": presence.LastSeen.UnixMilli(),
					})
				}
			}
		default:
			log.Printf("listener: unhandled action %q", data.Action)
		}
	}
}
