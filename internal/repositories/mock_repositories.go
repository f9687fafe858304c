package repositories

import (
	"context"

	"github.com/anonto42/snapfeed/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByClerkID(ctx context.Context, clerkID string) (*models.User, error) {
	args := m.Called(ctx, clerkID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) GetFirstUser(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePosts(ctx context.Context, posts []models.Post) error {
	args := m.Called(ctx, posts)
	return args.Error(0)
}

func (m *MockPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *MockPostRepository) GetPostStatsPage(ctx context.Context, offset, limit int) ([]models.PostStats, error) {
	args := m.Called(ctx, offset, limit)
	posts, _ := args.Get(0).([]models.PostStats)
	return posts, args.Error(1)
}

func (m *MockPostRepository) GetPostStatsByID(ctx context.Context, id string) (*models.PostStats, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*models.PostStats)
	return post, args.Error(1)
}

func (m *MockPostRepository) GetStatsByPostIDs(ctx context.Context, ids []string) ([]models.PostStatsSummary, error) {
	args := m.Called(ctx, ids)
	stats, _ := args.Get(0).([]models.PostStatsSummary)
	return stats, args.Error(1)
}

func (m *MockPostRepository) CountPosts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockLikeRepository) GetLike(ctx context.Context, postID, userID string) (*models.Like, error) {
	args := m.Called(ctx, postID, userID)
	like, _ := args.Get(0).(*models.Like)
	return like, args.Error(1)
}

func (m *MockLikeRepository) DeleteLikeByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLikeRepository) GetLikedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error) {
	args := m.Called(ctx, userID, postIDs)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) GetRecentCommentsByPostIDs(ctx context.Context, postIDs []string, perPost int) ([]models.Comment, error) {
	args := m.Called(ctx, postIDs, perPost)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Error(1)
}
