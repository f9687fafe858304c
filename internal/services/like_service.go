package services

import (
	"context"
	"errors"

	"github.com/anonto42/snapfeed/backend/internal/apperr"
	"github.com/anonto42/snapfeed/backend/internal/models"
	"github.com/anonto42/snapfeed/backend/internal/repositories"
	"github.com/anonto42/snapfeed/backend/pkg/identity"
	"github.com/anonto42/snapfeed/backend/validators"
	"go.uber.org/zap"
)

// LikeService creates and removes (post, user) likes. Uniqueness is enforced by
// the datastore; the service only translates its outcome.
type LikeService struct {
	likes  repositories.LikeRepository
	posts  repositories.PostRepository
	users  repositories.UserRepository
	logger *zap.Logger
}

func NewLikeService(likes repositories.LikeRepository, posts repositories.PostRepository, users repositories.UserRepository, logger *zap.Logger) *LikeService {
	return &LikeService{likes: likes, posts: posts, users: users, logger: logger}
}

func (s *LikeService) Like(ctx context.Context, viewer identity.Identity, postID string) error {
	user, err := s.resolve(ctx, viewer, postID)
	if err != nil {
		return err
	}

	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.NotFound("Post not found")
		}
		return apperr.Upstream("Failed to fetch post", err)
	}

	err = s.likes.CreateLike(ctx, &models.Like{PostID: postID, UserID: user.ID})
	if errors.Is(err, repositories.ErrDuplicate) {
		return apperr.Conflict("Post already liked")
	}
	if err != nil {
		return apperr.Upstream("Failed to like post", err)
	}

	s.logger.Debug("post liked", zap.String("post_id", postID), zap.String("user_id", user.ID))
	return nil
}

func (s *LikeService) Unlike(ctx context.Context, viewer identity.Identity, postID string) error {
	user, err := s.resolve(ctx, viewer, postID)
	if err != nil {
		return err
	}

	like, err := s.likes.GetLike(ctx, postID, user.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.NotFound("Like not found")
	}
	if err != nil {
		return apperr.Upstream("Failed to fetch like", err)
	}

	err = s.likes.DeleteLikeByID(ctx, like.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.NotFound("Like not found")
	}
	if err != nil {
		return apperr.Upstream("Failed to unlike post", err)
	}

	s.logger.Debug("post unliked", zap.String("post_id", postID), zap.String("user_id", user.ID))
	return nil
}

func (s *LikeService) resolve(ctx context.Context, viewer identity.Identity, postID string) (*models.User, error) {
	if !validators.IsUUID(postID) {
		return nil, apperr.Validation("Invalid post ID format")
	}

	user, err := s.users.GetUserByClerkID(ctx, viewer.ProviderID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Upstream("Failed to fetch user", err)
	}
	return user, nil
}
