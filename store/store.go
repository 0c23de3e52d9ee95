// Package store is the persistence layer for the chat hub: conversations,
// groups, messages, reactions, read receipts, presence and crypto
// transactions. All mutations for a given key go through single statements
// or transactions on the shared database handle, which is the serialization
// authority for concurrent socket handlers.
package store

import (
	"errors"

	"chathub-service/database"

	"gorm.io/gorm"
)

// Sentinel errors. The error string doubles as the protocol error type
// discriminator emitted back to the client.
var (
	ErrEmptyContent       = errors.New("empty_content")
	ErrInvalidRecipient   = errors.New("invalid_recipient")
	ErrInvalidGroupData   = errors.New("invalid_group_data")
	ErrGroupNotFound      = errors.New("group_not_found")
	ErrUnauthorized       = errors.New("unauthorized_access")
	ErrInvalidEmoji       = errors.New("invalid_emoji")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrInvalidTransaction = errors.New("invalid_transaction")
	ErrMessageNotFound    = errors.New("message_not_found")
)

func db() *gorm.DB {
	return database.Postgres
}
