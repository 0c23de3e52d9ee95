package router

import (
	"log"

	"chathub-service/store"

	"github.com/zishang520/socket.io/v2/socket"
)

type botInput struct {
	GroupID    string                 `json:"groupId"`
	BotID      string                 `json:"botId"`
	AddedBy    string                 `json:"addedBy"`
	RemovedBy  string                 `json:"removedBy"`
	SenderID   string                 `json:"senderId"`
	Command    string                 `json:"command"`
	Parameters map[string]interface{} `json:"parameters"`
}

type cryptoInput struct {
	ConversationID string  `json:"conversationId"`
	RecipientID    string  `json:"recipientId"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
}

func botEvents(client *socket.Socket) {
	client.On("get_available_bots", func(args ...interface{}) {
		input := botInput{}
		if !bind(args, &input) {
			return
		}
		botIDs, err := store.GroupBotIDs(input.GroupID)
		if err != nil {
			log.Printf("get_available_bots: %v", err)
		}
		client.Emit("available_bots", map[string]interface{}{
			"groupId": input.GroupID,
			"bots":    bots.Describe(botIDs),
		})
	})

	client.On("add_bot_to_group", func(args ...interface{}) {
		input := botInput{}
		if !bind(args, &input) {
			return
		}
		addedBy := input.AddedBy
		if id := currentUserID(client); id != "" {
			addedBy = id
		}
		if err := store.AddBotToGroup(input.GroupID, input.BotID, addedBy); err != nil {
			emitError(client, "group_error", err.Error(), "cannot add bot")
			return
		}
		client.Emit("bot_added_to_group", map[string]interface{}{
			"groupId": input.GroupID,
			"botId":   input.BotID,
			"success": true,
		})
	})

	client.On("remove_bot_from_group", func(args ...interface{}) {
		input := botInput{}
		if !bind(args, &input) {
			return
		}
		removedBy := input.RemovedBy
		if id := currentUserID(client); id != "" {
			removedBy = id
		}
		if err := store.RemoveBotFromGroup(input.GroupID, input.BotID, removedBy); err != nil {
			emitError(client, "group_error", err.Error(), "cannot remove bot")
			return
		}
		client.Emit("bot_removed_from_group", map[string]interface{}{
			"groupId": input.GroupID,
			"botId":   input.BotID,
			"success": true,
		})
	})

	client.On("send_bot_command", func(args ...interface{}) {
		input := botInput{}
		if !bind(args, &input) {
			return
		}
		senderID := input.SenderID
		if id := currentUserID(client); id != "" {
			senderID = id
		}
		// Bot execution is fire-and-forget from the event loop's point
		// of view, a slow handler never blocks unrelated delivery.
		go func() {
			response := bots.Dispatch(input.BotID, input.Command, input.Parameters, senderID)
			client.Emit("bot_response", map[string]interface{}{
				"botId":    input.BotID,
				"command":  input.Command,
				"response": response,
			})
		}()
	})

	client.On("get_bot_capabilities", func(args ...interface{}) {
		input := botInput{}
		if !bind(args, &input) {
			return
		}
		capabilities := bots.Capabilities(input.BotID)
		if capabilities == nil {
			client.Emit("bot_capabilities", map[string]interface{}{
				"botId":       input.BotID,
				"commands":    []string{},
				"description": "unknown bot",
			})
			return
		}
		client.Emit("bot_capabilities", map[string]interface{}{
			"botId":       capabilities.BotID,
			"commands":    capabilities.Commands,
			"description": capabilities.Description,
		})
	})

	client.On("initiate_crypto_transaction", func(args ...interface{}) {
		input := cryptoInput{}
		if !bind(args, &input) {
			return
		}
		senderID := currentUserID(client)
		transaction, err := store.InitiateCryptoTransaction(senderID, input.RecipientID, input.Amount, input.Currency)
		if err != nil {
			emitError(client, "crypto_transaction_error", err.Error(), "transaction rejected")
			return
		}

		client.Emit("crypto_transaction_initiated", map[string]interface{}{
			"transactionId":  transaction.ID,
			"conversationId": transaction.ConversationID,
			"recipientId":    transaction.RecipientID,
			"amount":         transaction.Amount,
			"currency":       transaction.Currency,
			"status":         transaction.Status,
		})

		// The transfer also lands in the conversation as a message.
		message, err := store.SaveDirectMessage(senderID, transaction.RecipientID, transaction.ID, "crypto_transaction", nil)
		if err != nil {
			log.Printf("crypto message: %v", err)
			return
		}
		deliver(transaction.RecipientID, "recived_dm", map[string]interface{}{
			"messageId":      message.ID,
			"conversationId": message.ConversationID,
			"senderId":       message.SenderID,
			"recipientId":    message.RecipientID,
			"content":        message.Content,
			"messageType":    message.Type,
			"timestamp":      message.CreatedAt.UnixMilli(),
		})
		publish("crypto_initiated", transaction)
	})
}
