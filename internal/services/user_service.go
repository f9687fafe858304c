package services

import (
	"context"
	"errors"

	"github.com/anonto42/snapfeed/backend/internal/apperr"
	"github.com/anonto42/snapfeed/backend/internal/models"
	"github.com/anonto42/snapfeed/backend/internal/repositories"
	"github.com/anonto42/snapfeed/backend/pkg/identity"
	"go.uber.org/zap"
)

// UserService mirrors identity-provider accounts into the users table.
type UserService struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

func NewUserService(users repositories.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Sync creates the viewer's users row on first sight and refreshes the display
// name afterwards. created reports whether a row was inserted.
func (s *UserService) Sync(ctx context.Context, viewer identity.Identity) (*models.User, bool, error) {
	name := viewer.DisplayName()

	existing, err := s.users.GetUserByClerkID(ctx, viewer.ProviderID)
	switch {
	case err == nil:
		if existing.Name == name {
			return existing, false, nil
		}
		existing.Name = name
		if err := s.users.UpdateUser(ctx, existing); err != nil {
			return nil, false, apperr.Upstream("Failed to update user", err)
		}
		return existing, false, nil
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, false, apperr.Upstream("Failed to fetch user", err)
	}

	user := &models.User{ClerkID: viewer.ProviderID, Name: name}
	err = s.users.CreateUser(ctx, user)
	if errors.Is(err, repositories.ErrDuplicate) {
		// Lost a race with a concurrent sync for the same account.
		existing, err := s.users.GetUserByClerkID(ctx, viewer.ProviderID)
		if err != nil {
			return nil, false, apperr.Upstream("Failed to fetch user", err)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, apperr.Upstream("Failed to create user", err)
	}

	s.logger.Info("user synced", zap.String("user_id", user.ID), zap.String("provider_id", user.ClerkID))
	return user, true, nil
}
