//go:build integration

// Run against a disposable database:
//
//	SNAPFEED_TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repositories/
package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/anonto42/snapfeed/backend/internal/models"
	"github.com/anonto42/snapfeed/backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	url := os.Getenv("SNAPFEED_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("SNAPFEED_TEST_DATABASE_URL not set")
	}

	db, err := config.InitDB(&config.Config{DatabaseURL: url, Env: "test"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.CloseDB)
	require.NoError(t, db.Migrate("../../migrations"))
	require.NoError(t, db.Postgres.Exec("TRUNCATE likes, comments, posts, users").Error)
	return db.Postgres
}

func TestPostgres_FeedQueries(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewPostgresUserRepository(db)
	posts := NewPostgresPostRepository(db)
	likes := NewPostgresLikeRepository(db)
	comments := NewPostgresCommentRepository(db)

	ada := &models.User{ClerkID: "user_ada", Name: "Ada"}
	bob := &models.User{ClerkID: "user_bob", Name: "Bob"}
	require.NoError(t, users.CreateUser(ctx, ada))
	require.NoError(t, users.CreateUser(ctx, bob))

	base := time.Now().UTC().Truncate(time.Second)
	seeded := []models.Post{
		{UserID: ada.ID, ImageURL: "https://img/1", CreatedAt: base.Add(-1 * time.Hour)},
		{UserID: ada.ID, ImageURL: "https://img/2", CreatedAt: base.Add(-2 * time.Hour)},
		{UserID: bob.ID, ImageURL: "https://img/3", CreatedAt: base.Add(-3 * time.Hour)},
	}
	require.NoError(t, posts.CreatePosts(ctx, seeded))
	newest := seeded[0].ID

	for i, content := range []string{"first", "second", "third"} {
		c := models.Comment{PostID: newest, UserID: bob.ID, Content: content, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, db.Create(&c).Error)
	}

	require.NoError(t, likes.CreateLike(ctx, &models.Like{PostID: newest, UserID: bob.ID}))
	err := likes.CreateLike(ctx, &models.Like{PostID: newest, UserID: bob.ID})
	assert.True(t, errors.Is(err, ErrDuplicate), "got %v", err)

	page, err := posts.GetPostStatsPage(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, newest, page[0].ID)
	assert.Equal(t, newest, page[0].PostID)
	assert.Equal(t, int64(1), page[0].LikesCount)
	assert.Equal(t, int64(3), page[0].CommentsCount)

	total, err := posts.CountPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	stats, err := posts.GetStatsByPostIDs(ctx, []string{newest})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, models.PostStatsSummary{PostID: newest, LikesCount: 1, CommentsCount: 3}, stats[0])

	recent, err := comments.GetRecentCommentsByPostIDs(ctx, []string{newest, seeded[1].ID}, models.MaxCommentPreviews)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Content)
	assert.Equal(t, "second", recent[1].Content)

	liked, err := likes.GetLikedPostIDs(ctx, bob.ID, []string{newest, seeded[1].ID})
	require.NoError(t, err)
	assert.Equal(t, []string{newest}, liked)

	like, err := likes.GetLike(ctx, newest, bob.ID)
	require.NoError(t, err)
	require.NoError(t, likes.DeleteLikeByID(ctx, like.ID))
	assert.ErrorIs(t, likes.DeleteLikeByID(ctx, like.ID), ErrNotFound)

	first, err := users.GetFirstUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, ada.ID, first.ID)
}
