package repositories

import (
	"context"

	"github.com/anonto42/snapfeed/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	GetLike(ctx context.Context, postID, userID string) (*models.Like, error)
	DeleteLikeByID(ctx context.Context, id string) error
	GetLikedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts a like. A second like for the same (post, user) pair
// fails with ErrDuplicate from the unique index.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	return translateError(r.db.WithContext(ctx).Create(like).Error)
}

// GetLike retrieves a specific like by postID and userID
func (r *PostgresLikeRepository) GetLike(ctx context.Context, postID, userID string) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error; err != nil {
		return nil, translateError(err)
	}
	return &like, nil
}

// DeleteLikeByID hard-deletes a like row
func (r *PostgresLikeRepository) DeleteLikeByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Like{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetLikedPostIDs returns the subset of postIDs the user has liked
func (r *PostgresLikeRepository) GetLikedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error) {
	liked := []string{}
	if len(postIDs) == 0 {
		return liked, nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &liked).Error
	if err != nil {
		return nil, translateError(err)
	}
	return liked, nil
}
