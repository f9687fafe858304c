package services

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/snapfeed/backend/internal/apperr"
	"github.com/anonto42/snapfeed/backend/internal/models"
	"github.com/anonto42/snapfeed/backend/internal/repositories"
	"github.com/anonto42/snapfeed/backend/pkg/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSync_CreatesUser(t *testing.T) {
	users := new(repositories.MockUserRepository)
	svc := NewUserService(users, zap.NewNop())
	id := identity.Identity{ProviderID: "user_1", Email: "ada@example.com"}

	users.On("GetUserByClerkID", mock.Anything, "user_1").Return(nil, repositories.ErrNotFound)
	users.On("CreateUser", mock.Anything, mock.Anything).Return(nil)

	user, created, err := svc.Sync(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "user_1", user.ClerkID)
	assert.Equal(t, "ada", user.Name)
}

func TestSync_RefreshesName(t *testing.T) {
	users := new(repositories.MockUserRepository)
	svc := NewUserService(users, zap.NewNop())
	existing := &models.User{ID: owner, ClerkID: "user_1", Name: "old"}

	users.On("GetUserByClerkID", mock.Anything, "user_1").Return(existing, nil)
	users.On("UpdateUser", mock.Anything, existing).Return(nil)

	user, created, err := svc.Sync(context.Background(), identity.Identity{ProviderID: "user_1", Name: "Ada"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Ada", user.Name)
	users.AssertExpectations(t)
}

func TestSync_UnchangedSkipsUpdate(t *testing.T) {
	users := new(repositories.MockUserRepository)
	svc := NewUserService(users, zap.NewNop())
	users.On("GetUserByClerkID", mock.Anything, "user_1").Return(&models.User{ID: owner, Name: "Ada"}, nil)

	_, created, err := svc.Sync(context.Background(), identity.Identity{ProviderID: "user_1", Name: "Ada"})
	require.NoError(t, err)
	assert.False(t, created)
	users.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestSync_ConcurrentCreate(t *testing.T) {
	users := new(repositories.MockUserRepository)
	svc := NewUserService(users, zap.NewNop())
	winner := &models.User{ID: owner, ClerkID: "user_1", Name: "Ada"}

	users.On("GetUserByClerkID", mock.Anything, "user_1").Return(nil, repositories.ErrNotFound).Once()
	users.On("CreateUser", mock.Anything, mock.Anything).Return(repositories.ErrDuplicate)
	users.On("GetUserByClerkID", mock.Anything, "user_1").Return(winner, nil).Once()

	user, created, err := svc.Sync(context.Background(), identity.Identity{ProviderID: "user_1", Name: "Ada"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, winner, user)
}

func TestSync_LookupFailure(t *testing.T) {
	users := new(repositories.MockUserRepository)
	svc := NewUserService(users, zap.NewNop())
	users.On("GetUserByClerkID", mock.Anything, "user_1").Return(nil, errors.New("boom"))

	_, _, err := svc.Sync(context.Background(), identity.Identity{ProviderID: "user_1"})
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}
