package services

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/anonto42/snapfeed/backend/internal/apperr"
	"github.com/anonto42/snapfeed/backend/internal/models"
	"github.com/anonto42/snapfeed/backend/internal/repositories"
	"github.com/anonto42/snapfeed/backend/pkg/identity"
	"github.com/anonto42/snapfeed/backend/validators"
	"go.uber.org/zap"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Page is a normalized feed window.
type Page struct {
	Limit  int
	Offset int
}

// NormalizePage parses raw query values. Missing or unparsable values fall back
// to the defaults; out-of-range values are clamped.
func NormalizePage(limitRaw, offsetRaw string) Page {
	p := Page{Limit: DefaultLimit, Offset: 0}
	if n, err := strconv.Atoi(limitRaw); err == nil {
		p.Limit = n
	}
	if n, err := strconv.Atoi(offsetRaw); err == nil {
		p.Offset = n
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// FeedService assembles render-ready posts from the post_stats view and its
// auxiliary tables.
type FeedService struct {
	posts    repositories.PostRepository
	users    repositories.UserRepository
	likes    repositories.LikeRepository
	comments repositories.CommentRepository
	logger   *zap.Logger
}

func NewFeedService(
	posts repositories.PostRepository,
	users repositories.UserRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{posts: posts, users: users, likes: likes, comments: comments, logger: logger}
}

// GetFeed returns one page of the reverse-chronological feed for viewer.
func (s *FeedService) GetFeed(ctx context.Context, viewer identity.Identity, page Page) (*models.FeedPage, error) {
	rows, err := s.posts.GetPostStatsPage(ctx, page.Offset, page.Limit)
	if err != nil {
		return nil, apperr.Upstream("Failed to fetch posts", err)
	}
	if len(rows) == 0 {
		return &models.FeedPage{Posts: []models.PostWithUser{}, HasMore: false, Total: 0}, nil
	}

	posts, err := s.assemble(ctx, viewer, rows)
	if err != nil {
		return nil, err
	}

	total, err := s.posts.CountPosts(ctx)
	if err != nil {
		s.logger.Warn("post count unavailable", zap.Error(err))
		total = 0
	}

	return &models.FeedPage{
		Posts:   posts,
		HasMore: int64(page.Offset+page.Limit) < total,
		Total:   total,
	}, nil
}

// GetPost returns a single post enriched exactly like a feed entry.
func (s *FeedService) GetPost(ctx context.Context, viewer identity.Identity, postID string) (*models.PostWithUser, error) {
	if !validators.IsUUID(postID) {
		return nil, apperr.Validation("Invalid post ID format")
	}

	row, err := s.posts.GetPostStatsByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.NotFound("Post not found")
	}
	if err != nil {
		return nil, apperr.Upstream("Failed to fetch post", err)
	}

	posts, err := s.assemble(ctx, viewer, []models.PostStats{*row})
	if err != nil {
		return nil, err
	}
	return &posts[0], nil
}

func (s *FeedService) assemble(ctx context.Context, viewer identity.Identity, rows []models.PostStats) ([]models.PostWithUser, error) {
	postIDs := make([]string, len(rows))
	for i, row := range rows {
		postIDs[i] = row.ID
	}

	previews := s.commentsByPost(ctx, postIDs)

	userIDs := make([]string, 0, len(rows))
	seen := make(map[string]struct{})
	addUser := func(id string) {
		if _, ok := seen[id]; ok || id == "" {
			return
		}
		seen[id] = struct{}{}
		userIDs = append(userIDs, id)
	}
	for _, row := range rows {
		addUser(row.UserID)
	}
	for _, comments := range previews {
		for _, c := range comments {
			addUser(c.UserID)
		}
	}

	users, err := s.users.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, apperr.Upstream("Failed to fetch users", err)
	}
	userByID := make(map[string]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	liked := s.likedSet(ctx, viewer, postIDs)

	out := make([]models.PostWithUser, 0, len(rows))
	for _, row := range rows {
		owner, ok := userByID[row.UserID]
		if !ok {
			owner = models.UnknownUser(row.UserID)
		}

		comments := make([]models.CommentPreview, 0, len(previews[row.ID]))
		for _, c := range previews[row.ID] {
			name := models.UnknownUserName
			if author, ok := userByID[c.UserID]; ok {
				name = author.Name
			}
			comments = append(comments, models.CommentPreview{
				ID:        c.ID,
				UserID:    c.UserID,
				UserName:  name,
				Content:   c.Content,
				CreatedAt: c.CreatedAt,
			})
		}

		_, isLiked := liked[row.ID]
		out = append(out, models.PostWithUser{
			ID:            row.ID,
			UserID:        row.UserID,
			ImageURL:      row.ImageURL,
			Caption:       row.Caption,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
			LikesCount:    row.LikesCount,
			CommentsCount: row.CommentsCount,
			IsLiked:       isLiked,
			User:          &owner,
			Comments:      comments,
		})
	}
	return out, nil
}

// commentsByPost groups the newest comments per post, newest first.
func (s *FeedService) commentsByPost(ctx context.Context, postIDs []string) map[string][]models.Comment {
	comments, err := s.comments.GetRecentCommentsByPostIDs(ctx, postIDs, models.MaxCommentPreviews)
	if err != nil {
		s.logger.Warn("comment previews unavailable", zap.Error(err))
		return map[string][]models.Comment{}
	}

	grouped := make(map[string][]models.Comment, len(postIDs))
	for _, c := range comments {
		grouped[c.PostID] = append(grouped[c.PostID], c)
	}
	for id, list := range grouped {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		})
		if len(list) > models.MaxCommentPreviews {
			list = list[:models.MaxCommentPreviews]
		}
		grouped[id] = list
	}
	return grouped
}

// likedSet returns the subset of postIDs the viewer has liked. Any failure
// degrades to an empty set.
func (s *FeedService) likedSet(ctx context.Context, viewer identity.Identity, postIDs []string) map[string]struct{} {
	liked := make(map[string]struct{})

	user, err := s.users.GetUserByClerkID(ctx, viewer.ProviderID)
	if errors.Is(err, repositories.ErrNotFound) {
		return liked
	}
	if err != nil {
		s.logger.Warn("viewer lookup failed", zap.String("provider_id", viewer.ProviderID), zap.Error(err))
		return liked
	}

	ids, err := s.likes.GetLikedPostIDs(ctx, user.ID, postIDs)
	if err != nil {
		s.logger.Warn("liked posts unavailable", zap.String("user_id", user.ID), zap.Error(err))
		return liked
	}
	for _, id := range ids {
		liked[id] = struct{}{}
	}
	return liked
}
