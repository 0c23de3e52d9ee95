package model

import "time"

// User struct. Chat identities registered over the socket carry no
// username or password; uniqueness of signup credentials is enforced in
// the auth controller, not the schema, so socket upserts with empty
// profile fields never collide.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Otp_enabled bool   `gorm:"default:false;" json:"-"`
	Otp_secret  string `json:"-"`
}

// Presence holds a user connectivity record, status is one of
// online, offline or away.
type Presence struct {
	UserID        string    `gorm:"primaryKey" json:"userId"`
	Status        string    `gorm:"not null; default:offline" json:"status"`
	LastSeen      time.Time `json:"lastSeen"`
	CustomMessage string    `json:"customMessage,omitempty"`
	UpdatedAt     time.Time `json:"-"`
}
