package repositories

import (
	"context"

	"github.com/anonto42/snapfeed/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
// Reads that need counters go through the post_stats view.
type PostRepository interface {
	CreatePosts(ctx context.Context, posts []models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostStatsPage(ctx context.Context, offset, limit int) ([]models.PostStats, error)
	GetPostStatsByID(ctx context.Context, id string) (*models.PostStats, error)
	GetStatsByPostIDs(ctx context.Context, ids []string) ([]models.PostStatsSummary, error)
	CountPosts(ctx context.Context) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePosts inserts posts in one statement
func (r *PostgresPostRepository) CreatePosts(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).Create(&posts).Error)
}

// GetPostByID retrieves a post row by ID
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

// GetPostStatsPage returns the window [offset, offset+limit) of the feed, newest first
func (r *PostgresPostRepository) GetPostStatsPage(ctx context.Context, offset, limit int) ([]models.PostStats, error) {
	posts := []models.PostStats{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, translateError(err)
	}
	return posts, nil
}

// GetPostStatsByID retrieves one post with its counters
func (r *PostgresPostRepository) GetPostStatsByID(ctx context.Context, id string) (*models.PostStats, error) {
	var post models.PostStats
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

// GetStatsByPostIDs returns only the counters for the given posts
func (r *PostgresPostRepository) GetStatsByPostIDs(ctx context.Context, ids []string) ([]models.PostStatsSummary, error) {
	stats := []models.PostStatsSummary{}
	if len(ids) == 0 {
		return stats, nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.PostStats{}).
		Select("post_id, likes_count, comments_count").
		Where("post_id IN ?", ids).
		Scan(&stats).Error
	if err != nil {
		return nil, translateError(err)
	}
	return stats, nil
}

// CountPosts returns the exact number of posts visible in the feed
func (r *PostgresPostRepository) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PostStats{}).Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}
