package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnknownUserName is shown when a post's owner has no users row.
const UnknownUserName = "unknown user"

// User is the local mirror of an identity-provider account.
type User struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	ClerkID   string    `json:"clerk_id" gorm:"column:clerk_id;uniqueIndex;not null"` // provider user id
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UnknownUser is the placeholder merged into a post whose owner is missing.
func UnknownUser(id string) User {
	return User{
		ID:        id,
		ClerkID:   "unknown",
		Name:      UnknownUserName,
		CreatedAt: time.Now().UTC(),
	}
}

// SyncUserResponse is returned by POST /sync-user.
type SyncUserResponse struct {
	Success bool  `json:"success"`
	Created bool  `json:"created"`
	User    *User `json:"user"`
}
