package model

import (
	"time"

	"gorm.io/gorm"
)

// Message types carried on the wire.
const (
	MessageTypeText   = "text"
	MessageTypeImage  = "image"
	MessageTypeFile   = "file"
	MessageTypeCrypto = "crypto_transaction"
)

// Conversation is a direct thread between exactly two users. The id is
// the canonical dm_{a}_{b} composite, participant ids sorted.
type Conversation struct {
	ID            string    `gorm:"primaryKey" json:"conversationId"`
	UserA         string    `gorm:"not null; index" json:"userA"`
	UserB         string    `gorm:"not null; index" json:"userB"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Group struct {
	ID          string    `gorm:"primaryKey" json:"groupId"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `gorm:"not null" json:"createdBy"`
	IsPrivate   bool      `json:"isPrivate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`
}

type GroupMember struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	GroupID  string    `gorm:"not null; uniqueIndex:idx_group_member" json:"groupId"`
	UserID   string    `gorm:"not null; uniqueIndex:idx_group_member" json:"userId"`
	Role     string    `gorm:"not null; default:member" json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Channel partitions messages inside a group. Channel rows are created
// lazily on first join or first message.
type Channel struct {
	ID        string    `gorm:"primaryKey" json:"channelId"`
	GroupID   string    `gorm:"not null; index" json:"groupId"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChannelMember struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ChannelID string    `gorm:"not null; uniqueIndex:idx_channel_member" json:"channelId"`
	UserID    string    `gorm:"not null; uniqueIndex:idx_channel_member" json:"userId"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// Message belongs either to a direct conversation (ConversationID set)
// or to a group channel (GroupID + ChannelID set). Deletion is soft.
type Message struct {
	ID             string         `gorm:"primaryKey" json:"messageId"`
	ConversationID string         `gorm:"index" json:"conversationId,omitempty"`
	GroupID        string         `gorm:"index" json:"groupId,omitempty"`
	ChannelID      string         `gorm:"index" json:"channelId,omitempty"`
	SenderID       string         `gorm:"not null; index" json:"senderId"`
	RecipientID    string         `gorm:"index" json:"recipientId,omitempty"`
	Content        string         `json:"content"`
	Type           string         `gorm:"not null; default:text" json:"messageType"`
	Mentions       []string       `gorm:"serializer:json" json:"mentions,omitempty"`
	Pinned         bool           `json:"pinned"`
	Edited         bool           `json:"edited"`
	EditedAt       *time.Time     `json:"editedAt,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Reaction is a set entry, one row per distinct (message, user, emoji).
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	MessageID string    `gorm:"not null; uniqueIndex:idx_reaction" json:"messageId"`
	UserID    string    `gorm:"not null; uniqueIndex:idx_reaction" json:"userId"`
	Emoji     string    `gorm:"not null; uniqueIndex:idx_reaction" json:"emoji"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReadReceipt is one row per (message, user), re-marking only bumps ReadAt.
type ReadReceipt struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	MessageID      string    `gorm:"not null; uniqueIndex:idx_receipt" json:"messageId"`
	UserID         string    `gorm:"not null; uniqueIndex:idx_receipt" json:"userId"`
	ConversationID string    `gorm:"index" json:"conversationId,omitempty"`
	ReadAt         time.Time `json:"readAt"`
}

// GroupBot attaches a registered bot to a group.
type GroupBot struct {
	ID      uint      `gorm:"primaryKey" json:"-"`
	GroupID string    `gorm:"not null; uniqueIndex:idx_group_bot" json:"groupId"`
	BotID   string    `gorm:"not null; uniqueIndex:idx_group_bot" json:"botId"`
	AddedBy string    `json:"addedBy"`
	AddedAt time.Time `json:"addedAt"`
}

// CryptoTransaction records an initiated transfer, execution happens
// outside this service.
type CryptoTransaction struct {
	ID             string    `gorm:"primaryKey" json:"transactionId"`
	ConversationID string    `gorm:"index" json:"conversationId,omitempty"`
	SenderID       string    `gorm:"not null" json:"senderId"`
	RecipientID    string    `gorm:"not null" json:"recipientId"`
	Amount         float64   `gorm:"not null" json:"amount"`
	Currency       string    `gorm:"not null; default:ETH" json:"currency"`
	Status         string    `gorm:"not null; default:initiated" json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Image holds uploaded image payloads referenced by image messages.
type Image struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Data      string    `gorm:"not null" json:"data"`
	CreatedAt time.Time `json:"-"`
}
