package store

import (
	"time"

	"chathub-service/model"

	"gorm.io/gorm/clause"
)

// MarkMessageRead upserts the (message, user) receipt. Re-marking only
// bumps ReadAt, it never duplicates the row.
func MarkMessageRead(messageID, userID string, readAt time.Time) (*model.ReadReceipt, error) {
	if readAt.IsZero() {
		readAt = time.Now()
	}
	message, err := GetMessage(messageID)
	if err != nil {
		return nil, err
	}
	receipt := &model.ReadReceipt{
		MessageID:      messageID,
		UserID:         userID,
		ConversationID: message.ConversationID,
		ReadAt:         readAt,
	}
	err = db().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"read_at"}),
	}).Create(receipt).Error
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// MarkConversationRead receipts every message the user has not read yet
// in one conversation. Own messages are skipped.
func MarkConversationRead(conversationID, userID string) (int, error) {
	conversationID = CanonicalConversationID(conversationID)
	unread, err := unreadMessages(conversationID, userID)
	if err != nil {
		return 0, err
	}
	now := time.Now()
	for _, message := range unread {
		receipt := &model.ReadReceipt{
			MessageID:      message.ID,
			UserID:         userID,
			ConversationID: conversationID,
			ReadAt:         now,
		}
		if err := db().Clauses(clause.OnConflict{DoNothing: true}).Create(receipt).Error; err != nil {
			return 0, err
		}
	}
	return len(unread), nil
}

func unreadMessages(conversationID, userID string) ([]model.Message, error) {
	messages := []model.Message{}
	err := db().
		Where("conversation_id = ? AND sender_id <> ?", conversationID, userID).
		Where("id NOT IN (SELECT message_id FROM read_receipts WHERE user_id = ?)", userID).
		Find(&messages).Error
	return messages, err
}

// ConversationUnread is the unread aggregate for one conversation.
type ConversationUnread struct {
	ConversationID string `json:"conversationId"`
	Unread         int64  `json:"unread"`
}

// UnreadCounts aggregates unread message counts per conversation plus
// the global total for a user.
func UnreadCounts(userID string) (int64, []ConversationUnread, error) {
	conversations, err := ConversationList(userID)
	if err != nil {
		return 0, nil, err
	}

	var total int64
	counts := []ConversationUnread{}
	for _, conversation := range conversations {
		var unread int64
		err := db().Model(&model.Message{}).
			Where("conversation_id = ? AND sender_id <> ?", conversation.ID, userID).
			Where("id NOT IN (SELECT message_id FROM read_receipts WHERE user_id = ?)", userID).
			Count(&unread).Error
		if err != nil {
			return 0, nil, err
		}
		total += unread
		counts = append(counts, ConversationUnread{ConversationID: conversation.ID, Unread: unread})
	}
	return total, counts, nil
}
