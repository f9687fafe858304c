package repositories

import (
	"context"

	"github.com/anonto42/snapfeed/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	GetRecentCommentsByPostIDs(ctx context.Context, postIDs []string, perPost int) ([]models.Comment, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

const recentCommentsQuery = `
	SELECT id, post_id, user_id, content, created_at, updated_at
	FROM (
		SELECT c.*, ROW_NUMBER() OVER (PARTITION BY c.post_id ORDER BY c.created_at DESC, c.id DESC) AS rn
		FROM comments c
		WHERE c.post_id IN ?
	) ranked
	WHERE rn <= ?
	ORDER BY post_id, created_at DESC`

// GetRecentCommentsByPostIDs returns at most perPost newest comments for each post
func (r *PostgresCommentRepository) GetRecentCommentsByPostIDs(ctx context.Context, postIDs []string, perPost int) ([]models.Comment, error) {
	comments := []models.Comment{}
	if len(postIDs) == 0 || perPost <= 0 {
		return comments, nil
	}
	if err := r.db.WithContext(ctx).Raw(recentCommentsQuery, postIDs, perPost).Scan(&comments).Error; err != nil {
		return nil, translateError(err)
	}
	return comments, nil
}
