package store

import (
	"strings"
	"time"

	"chathub-service/model"

	"github.com/google/uuid"
)

// SaveDirectMessage validates and persists a direct message. A rejected
// message is never persisted, the caller reports the error to the sender
// only. Content is stored verbatim, multi-byte sequences included.
func SaveDirectMessage(senderID, recipientID, content, messageType string, mentions []string) (*model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if !UserExists(recipientID) {
		return nil, ErrInvalidRecipient
	}

	conversation, err := EnsureConversation(senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if messageType == "" {
		messageType = model.MessageTypeText
	}

	message := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		SenderID:       senderID,
		RecipientID:    recipientID,
		Content:        content,
		Type:           messageType,
		Mentions:       mentions,
	}
	if err := db().Create(message).Error; err != nil {
		return nil, err
	}
	touchConversation(conversation.ID)
	return message, nil
}

// SaveGroupMessage persists a channel message. Unknown groups and
// non-members both surface as unauthorized, the sender learns nothing
// about whether a private group exists.
func SaveGroupMessage(groupID, channelID, senderID, content, messageType string, mentions []string) (*model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if !IsGroupMember(groupID, senderID) {
		return nil, ErrUnauthorized
	}
	if messageType == "" {
		messageType = model.MessageTypeText
	}

	ensureChannel(channelID, groupID)
	message := &model.Message{
		ID:        uuid.NewString(),
		GroupID:   groupID,
		ChannelID: channelID,
		SenderID:  senderID,
		Content:   content,
		Type:      messageType,
		Mentions:  mentions,
	}
	if err := db().Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

func GetMessage(messageID string) (*model.Message, error) {
	message := new(model.Message)
	if err := db().First(message, "id = ?", messageID).Error; err != nil {
		return nil, ErrMessageNotFound
	}
	return message, nil
}

// EditMessage replaces the content and marks the message edited.
func EditMessage(messageID, content string) (*model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	message, err := GetMessage(messageID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	message.Content = content
	message.Edited = true
	message.EditedAt = &now
	if err := db().Model(message).Updates(map[string]interface{}{
		"content":   content,
		"edited":    true,
		"edited_at": now,
	}).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// DeleteMessage soft-deletes, the row keeps its id and deleted_at.
func DeleteMessage(messageID string) error {
	result := db().Delete(&model.Message{}, "id = ?", messageID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// ForwardMessage copies a message into the forwarder's conversation with
// the target user. Empty content falls back to the original body.
func ForwardMessage(messageID, forwarderID, forwardToUserID, content string) (*model.Message, error) {
	if !UserExists(forwardToUserID) {
		return nil, ErrInvalidRecipient
	}
	if strings.TrimSpace(content) == "" {
		original, err := GetMessage(messageID)
		if err != nil {
			return nil, err
		}
		content = original.Content
	}
	return SaveDirectMessage(forwarderID, forwardToUserID, content, model.MessageTypeText, nil)
}

// SetPinned toggles the pin flag, orthogonal to edit and delete state.
func SetPinned(messageID string, pinned bool) (*model.Message, error) {
	message, err := GetMessage(messageID)
	if err != nil {
		return nil, err
	}
	if err := db().Model(message).Update("pinned", pinned).Error; err != nil {
		return nil, err
	}
	message.Pinned = pinned
	return message, nil
}

// DirectHistory returns up to limit messages of a conversation in
// chronological order. When the thread is longer than limit the newest
// messages win.
func DirectHistory(conversationID string, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	messages := []model.Message{}
	err := db().
		Where("conversation_id = ?", CanonicalConversationID(conversationID)).
		Order("created_at desc").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	reverse(messages)
	return messages, nil
}

// ChannelHistory pages through a channel, chronological order.
func ChannelHistory(channelID string, limit, offset int) ([]model.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	messages := []model.Message{}
	err := db().
		Where("channel_id = ?", channelID).
		Order("created_at asc").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

// SearchMessages does a case-insensitive substring match inside one
// conversation. Soft-deleted messages never match.
func SearchMessages(conversationID, query string, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = 20
	}
	messages := []model.Message{}
	err := db().
		Where("conversation_id = ?", CanonicalConversationID(conversationID)).
		Where("lower(content) LIKE ?", "%"+strings.ToLower(query)+"%").
		Order("created_at desc").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// PinnedMessages lists the pinned messages of a conversation.
func PinnedMessages(conversationID string) ([]model.Message, error) {
	messages := []model.Message{}
	err := db().
		Where("conversation_id = ? AND pinned = ?", CanonicalConversationID(conversationID), true).
		Order("created_at asc").
		Find(&messages).Error
	return messages, err
}

func reverse(messages []model.Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
