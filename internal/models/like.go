package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like is a (post, user) relationship. The pair is unique and rows are hard-deleted,
// so re-liking after an unlike inserts a fresh row.
type Like struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	PostID    string    `json:"post_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_post_user"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_post_user;index"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// LikeRequest defines the request body for POST and DELETE /likes
type LikeRequest struct {
	PostID string `json:"post_id" validate:"required,uuidstr"`
}

// MutationResponse is the success body of like/unlike.
type MutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
