package store

import (
	"strings"
	"time"

	"chathub-service/model"

	"gorm.io/gorm/clause"
)

// UpsertUser records the identity a connection registered with. Repeat
// registrations (second device, reconnect) refresh name and email only;
// a bare re-registration without profile fields keeps the stored ones.
func UpsertUser(id, name, email string) (*model.User, error) {
	if name == "" && email == "" {
		if existing, err := GetUser(id); err == nil {
			TouchUser(id)
			return existing, nil
		}
	}
	user := &model.User{
		ID:    id,
		Name:  name,
		Email: email,
	}
	err := db().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func UserExists(id string) bool {
	var count int64
	db().Model(&model.User{}).Where("id = ?", id).Count(&count)
	return count > 0
}

func GetUser(id string) (*model.User, error) {
	user := new(model.User)
	if err := db().First(user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// SearchUsers matches the query against id, name and email,
// case-insensitive substring.
func SearchUsers(query string, limit int) ([]model.User, error) {
	if limit <= 0 {
		limit = 20
	}
	users := []model.User{}
	pattern := "%" + strings.ToLower(query) + "%"
	err := db().
		Where("lower(id) LIKE ? OR lower(name) LIKE ? OR lower(email) LIKE ?", pattern, pattern, pattern).
		Order("id asc").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// TouchUser bumps updated_at, used when a known user re-registers
// without profile fields.
func TouchUser(id string) {
	db().Model(&model.User{}).Where("id = ?", id).Update("updated_at", time.Now())
}
