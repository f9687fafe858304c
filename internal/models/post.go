package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is an image post owned by a user.
type Post struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:uuid;index;not null"`
	ImageURL  string    `json:"image_url" gorm:"not null"`
	Caption   *string   `json:"caption"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PostStats is a row of the post_stats view: a post plus its derived counters.
type PostStats struct {
	ID            string    `json:"id"`
	PostID        string    `json:"post_id"`
	UserID        string    `json:"user_id"`
	ImageURL      string    `json:"image_url"`
	Caption       *string   `json:"caption"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
}

// TableName binds PostStats to the read-only view.
func (PostStats) TableName() string {
	return "post_stats"
}

// PostStatsSummary is the counter-only projection returned after seeding.
type PostStatsSummary struct {
	PostID        string `json:"post_id"`
	LikesCount    int64  `json:"likes_count"`
	CommentsCount int64  `json:"comments_count"`
}

// PostWithUser is the render-ready post: owner, counters, viewer flag and comment previews.
type PostWithUser struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"`
	ImageURL      string           `json:"image_url"`
	Caption       *string          `json:"caption"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	LikesCount    int64            `json:"likes_count"`
	CommentsCount int64            `json:"comments_count"`
	IsLiked       bool             `json:"is_liked"`
	User          *User            `json:"user"`
	Comments      []CommentPreview `json:"comments"`
}

// FeedPage is the response body of GET /posts.
type FeedPage struct {
	Posts   []PostWithUser `json:"posts"`
	HasMore bool           `json:"hasMore"`
	Total   int64          `json:"total"`
}

// PostResponse is the response body of GET /posts/:id.
type PostResponse struct {
	Post *PostWithUser `json:"post"`
}

// SeedResult is the response body of POST /admin/seed-posts.
type SeedResult struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Posts   []Post             `json:"posts"`
	Stats   []PostStatsSummary `json:"stats"`
}
