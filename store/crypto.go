package store

import (
	"chathub-service/model"

	"github.com/google/uuid"
)

// InitiateCryptoTransaction validates and records a transfer between two
// users. Amount must be positive and the recipient must be known;
// execution itself happens on an external backend.
func InitiateCryptoTransaction(senderID, recipientID string, amount float64, currency string) (*model.CryptoTransaction, error) {
	if amount <= 0 || recipientID == "" || !UserExists(recipientID) {
		return nil, ErrInvalidTransaction
	}
	if currency == "" {
		currency = "ETH"
	}

	conversation, err := EnsureConversation(senderID, recipientID)
	if err != nil {
		return nil, err
	}
	transaction := &model.CryptoTransaction{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		SenderID:       senderID,
		RecipientID:    recipientID,
		Amount:         amount,
		Currency:       currency,
		Status:         "initiated",
	}
	if err := db().Create(transaction).Error; err != nil {
		return nil, err
	}
	return transaction, nil
}
