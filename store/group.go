package store

import (
	"strings"
	"time"

	"chathub-service/model"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// CreateGroup creates a group with its initial member set. The creator
// always becomes an admin member, listed members join as regular members.
func CreateGroup(name, description, createdBy string, members []string, isPrivate bool) (*model.Group, error) {
	if strings.TrimSpace(name) == "" || createdBy == "" {
		return nil, ErrInvalidGroupData
	}

	group := &model.Group{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
		IsPrivate:   isPrivate,
	}
	if err := db().Create(group).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	rows := []model.GroupMember{{GroupID: group.ID, UserID: createdBy, Role: "admin", JoinedAt: now}}
	for _, member := range members {
		if member == createdBy {
			continue
		}
		rows = append(rows, model.GroupMember{GroupID: group.ID, UserID: member, Role: "member", JoinedAt: now})
	}
	if err := db().Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return nil, err
	}
	return group, nil
}

func GetGroup(groupID string) (*model.Group, error) {
	group := new(model.Group)
	if err := db().First(group, "id = ?", groupID).Error; err != nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

func IsGroupMember(groupID, userID string) bool {
	var count int64
	db().Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count)
	return count > 0
}

// UserGroups lists the groups a user belongs to.
func UserGroups(userID string) ([]model.Group, error) {
	groups := []model.Group{}
	err := db().
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at asc").
		Find(&groups).Error
	return groups, err
}

// AddGroupMembers adds users to a group. The actor must already be a
// member, membership is the only authority consulted here.
func AddGroupMembers(groupID string, membersToAdd []string, addedBy string) error {
	if _, err := GetGroup(groupID); err != nil {
		return err
	}
	if !IsGroupMember(groupID, addedBy) {
		return ErrUnauthorized
	}
	now := time.Now()
	rows := make([]model.GroupMember, 0, len(membersToAdd))
	for _, member := range membersToAdd {
		rows = append(rows, model.GroupMember{GroupID: groupID, UserID: member, Role: "member", JoinedAt: now})
	}
	if len(rows) == 0 {
		return nil
	}
	return db().Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// RemoveGroupMember removes a user, only members may remove.
func RemoveGroupMember(groupID, userID, removedBy string) error {
	if _, err := GetGroup(groupID); err != nil {
		return err
	}
	if !IsGroupMember(groupID, removedBy) {
		return ErrUnauthorized
	}
	return db().
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.GroupMember{}).Error
}

// GroupMembers lists members of the group, unknown group is an error.
func GroupMembers(groupID string) ([]model.GroupMember, error) {
	if _, err := GetGroup(groupID); err != nil {
		return nil, err
	}
	members := []model.GroupMember{}
	err := db().Where("group_id = ?", groupID).Order("joined_at asc").Find(&members).Error
	return members, err
}

// GroupMemberIDs returns just the user ids, the fan-out set for group
// events.
func GroupMemberIDs(groupID string) ([]string, error) {
	ids := []string{}
	err := db().Model(&model.GroupMember{}).Where("group_id = ?", groupID).Pluck("user_id", &ids).Error
	return ids, err
}

func ensureChannel(channelID, groupID string) {
	db().Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Channel{ID: channelID, GroupID: groupID})
}

// JoinChannel subscribes a group member to a channel. Channel membership
// requires group membership first.
func JoinChannel(channelID, groupID, userID string) error {
	if !IsGroupMember(groupID, userID) {
		return ErrUnauthorized
	}
	ensureChannel(channelID, groupID)
	return db().Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.ChannelMember{ChannelID: channelID, UserID: userID, JoinedAt: time.Now()}).Error
}

func LeaveChannel(channelID, userID string) error {
	return db().
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Delete(&model.ChannelMember{}).Error
}

// ChannelMemberIDs lists subscribers of a channel. A channel nobody
// joined explicitly falls back to the whole group.
func ChannelMemberIDs(channelID, groupID string) ([]string, error) {
	ids := []string{}
	err := db().Model(&model.ChannelMember{}).Where("channel_id = ?", channelID).Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return GroupMemberIDs(groupID)
	}
	return ids, nil
}
