package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/snapfeed/backend/internal/apperr"
	"github.com/anonto42/snapfeed/backend/internal/models"
	"github.com/anonto42/snapfeed/backend/internal/repositories"
	"go.uber.org/zap"
)

type fixturePost struct {
	imageURL string
	caption  string
	age      time.Duration
}

var fixturePosts = []fixturePost{
	{"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800", "Sunrise over the mountains this morning", 2 * time.Hour},
	{"https://images.unsplash.com/photo-1470071459604-3b5ec3a7fe05?w=800", "Foggy forest walk, perfect weekend", 5 * time.Hour},
	{"https://images.unsplash.com/photo-1501785888041-af3ef285b470?w=800", "Lake views never get old", 24 * time.Hour},
	{"https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=800", "Into the woods", 48 * time.Hour},
	{"https://images.unsplash.com/photo-1472214103451-9374bd1c798e?w=800", "Golden hour in the valley", 72 * time.Hour},
}

// SeedService inserts fixture posts for local development.
type SeedService struct {
	posts  repositories.PostRepository
	users  repositories.UserRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewSeedService(posts repositories.PostRepository, users repositories.UserRepository, logger *zap.Logger) *SeedService {
	return &SeedService{posts: posts, users: users, logger: logger, now: time.Now}
}

// SeedPosts attaches the fixture posts to the oldest user.
func (s *SeedService) SeedPosts(ctx context.Context) (*models.SeedResult, error) {
	owner, err := s.users.GetFirstUser(ctx)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.NotFound("No users found. Please sign in first.")
	}
	if err != nil {
		return nil, apperr.Upstream("Failed to fetch users", err)
	}

	now := s.now().UTC()
	posts := make([]models.Post, len(fixturePosts))
	for i, f := range fixturePosts {
		caption := f.caption
		created := now.Add(-f.age)
		posts[i] = models.Post{
			UserID:    owner.ID,
			ImageURL:  f.imageURL,
			Caption:   &caption,
			CreatedAt: created,
			UpdatedAt: created,
		}
	}

	if err := s.posts.CreatePosts(ctx, posts); err != nil {
		return nil, apperr.Upstream("Failed to insert posts", err)
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	stats, err := s.posts.GetStatsByPostIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("seeded post stats unavailable", zap.Error(err))
		stats = []models.PostStatsSummary{}
	}

	s.logger.Info("seeded posts", zap.Int("count", len(posts)), zap.String("user_id", owner.ID))
	return &models.SeedResult{
		Success: true,
		Message: fmt.Sprintf("Created %d posts", len(posts)),
		Posts:   posts,
		Stats:   stats,
	}, nil
}
