package store

import (
	"time"

	"chathub-service/model"

	"gorm.io/gorm/clause"
)

// AddBotToGroup attaches a bot, the actor must be a group member.
func AddBotToGroup(groupID, botID, addedBy string) error {
	if _, err := GetGroup(groupID); err != nil {
		return err
	}
	if !IsGroupMember(groupID, addedBy) {
		return ErrUnauthorized
	}
	return db().Clauses(clause.OnConflict{DoNothing: true}).Create(&model.GroupBot{
		GroupID: groupID,
		BotID:   botID,
		AddedBy: addedBy,
		AddedAt: time.Now(),
	}).Error
}

func RemoveBotFromGroup(groupID, botID, removedBy string) error {
	if _, err := GetGroup(groupID); err != nil {
		return err
	}
	if !IsGroupMember(groupID, removedBy) {
		return ErrUnauthorized
	}
	return db().
		Where("group_id = ? AND bot_id = ?", groupID, botID).
		Delete(&model.GroupBot{}).Error
}

// GroupBotIDs lists the bots attached to a group.
func GroupBotIDs(groupID string) ([]string, error) {
	ids := []string{}
	err := db().Model(&model.GroupBot{}).Where("group_id = ?", groupID).Pluck("bot_id", &ids).Error
	return ids, err
}
