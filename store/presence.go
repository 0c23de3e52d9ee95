package store

import (
	"time"

	"chathub-service/model"

	"gorm.io/gorm/clause"
)

// SetPresence upserts the presence record. Empty customMessage keeps the
// previous one on away/online flips, pass clearCustom to drop it.
func SetPresence(userID, status, customMessage string) (*model.Presence, error) {
	presence := &model.Presence{
		UserID:        userID,
		Status:        status,
		LastSeen:      time.Now(),
		CustomMessage: customMessage,
	}
	assignments := []string{"status", "last_seen"}
	if customMessage != "" || status == "offline" {
		assignments = append(assignments, "custom_message")
		if status == "offline" {
			presence.CustomMessage = ""
		}
	}
	err := db().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(assignments),
	}).Create(presence).Error
	if err != nil {
		return nil, err
	}
	return GetPresence(userID)
}

// SetCustomStatus updates only the custom message, keeping the status.
func SetCustomStatus(userID, customMessage string) (*model.Presence, error) {
	presence, err := GetPresence(userID)
	if err != nil {
		return nil, err
	}
	if err := db().Model(&model.Presence{}).
		Where("user_id = ?", userID).
		Update("custom_message", customMessage).Error; err != nil {
		return nil, err
	}
	presence.CustomMessage = customMessage
	return presence, nil
}

// GetPresence fails with user_not_found for identities that never
// registered.
func GetPresence(userID string) (*model.Presence, error) {
	presence := new(model.Presence)
	if err := db().First(presence, "user_id = ?", userID).Error; err != nil {
		if UserExists(userID) {
			return SetPresence(userID, "offline", "")
		}
		return nil, ErrUserNotFound
	}
	return presence, nil
}

// AllPresence returns the snapshot of every known presence record.
func AllPresence() ([]model.Presence, error) {
	records := []model.Presence{}
	err := db().Order("user_id asc").Find(&records).Error
	return records, err
}
