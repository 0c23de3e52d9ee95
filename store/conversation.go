package store

import (
	"sort"
	"strings"
	"time"

	"chathub-service/model"

	"gorm.io/gorm/clause"
)

// ConversationID builds the canonical direct conversation id for a pair
// of users. Participant ids are sorted first so both call orders resolve
// to the same conversation.
func ConversationID(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return "dm_" + pair[0] + "_" + pair[1]
}

// CanonicalConversationID re-canonicalizes a client-supplied id of the
// form dm_{a}_{b}. Clients concatenate participant ids in call order, so
// the reverse direction arrives as a different string; both map to one
// row here. Ids that do not parse are kept as-is.
func CanonicalConversationID(id string) string {
	trimmed := strings.TrimPrefix(id, "dm_")
	if trimmed == id {
		return id
	}
	parts := strings.SplitN(trimmed, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return id
	}
	return ConversationID(parts[0], parts[1])
}

// EnsureConversation creates the conversation row if absent and returns it.
func EnsureConversation(a, b string) (*model.Conversation, error) {
	pair := []string{a, b}
	sort.Strings(pair)
	conversation := &model.Conversation{
		ID:    "dm_" + pair[0] + "_" + pair[1],
		UserA: pair[0],
		UserB: pair[1],
	}
	err := db().Clauses(clause.OnConflict{DoNothing: true}).Create(conversation).Error
	if err != nil {
		return nil, err
	}
	if err := db().First(conversation, "id = ?", conversation.ID).Error; err != nil {
		return nil, err
	}
	return conversation, nil
}

func GetConversation(id string) (*model.Conversation, error) {
	conversation := new(model.Conversation)
	err := db().First(conversation, "id = ?", CanonicalConversationID(id)).Error
	if err != nil {
		return nil, err
	}
	return conversation, nil
}

func touchConversation(id string) {
	db().Model(&model.Conversation{}).Where("id = ?", id).Update("last_message_at", time.Now())
}

// ConversationList returns the user's direct conversations, most recent
// activity first.
func ConversationList(userID string) ([]model.Conversation, error) {
	conversations := []model.Conversation{}
	err := db().
		Where("user_a = ? OR user_b = ?", userID, userID).
		Order("last_message_at desc").
		Find(&conversations).Error
	return conversations, err
}

// ConversationPeer returns the other participant of a direct conversation.
func ConversationPeer(conversationID, userID string) (string, error) {
	conversation, err := GetConversation(conversationID)
	if err != nil {
		return "", err
	}
	if conversation.UserA == userID {
		return conversation.UserB, nil
	}
	return conversation.UserA, nil
}

// RelatedUserIDs returns the distinct set of users who share a
// conversation or a group with the given user. Presence changes fan out
// to exactly this set.
func RelatedUserIDs(userID string) ([]string, error) {
	related := map[string]bool{}

	conversations, err := ConversationList(userID)
	if err != nil {
		return nil, err
	}
	for _, conversation := range conversations {
		related[conversation.UserA] = true
		related[conversation.UserB] = true
	}

	groupIDs := []string{}
	if err := db().Model(&model.GroupMember{}).Where("user_id = ?", userID).Pluck("group_id", &groupIDs).Error; err != nil {
		return nil, err
	}
	if len(groupIDs) > 0 {
		memberIDs := []string{}
		if err := db().Model(&model.GroupMember{}).Where("group_id IN ?", groupIDs).Pluck("user_id", &memberIDs).Error; err != nil {
			return nil, err
		}
		for _, id := range memberIDs {
			related[id] = true
		}
	}

	delete(related, userID)
	ids := make([]string, 0, len(related))
	for id := range related {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
