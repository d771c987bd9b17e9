package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spikeline/tournament-system/models"
	"github.com/spikeline/tournament-system/repositories"
	"github.com/spikeline/tournament-system/utils"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects short passwords", func(t *testing.T) {
		svc := NewAuthService(new(mockUserRepo))

		_, err := svc.Register(ctx, RegisterInput{Email: "sam@example.com", Password: "short"})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects malformed emails", func(t *testing.T) {
		svc := NewAuthService(new(mockUserRepo))

		_, err := svc.Register(ctx, RegisterInput{Email: "not-an-email", Password: "longenough"})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("normalizes email and defaults to player role", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "sam@example.com" && u.Role == models.RolePlayer && u.PasswordHash != ""
		})).Return(nil)

		svc := NewAuthService(userRepo)

		user, err := svc.Register(ctx, RegisterInput{Email: "  Sam@Example.COM ", Password: "longenough"})
		require.NoError(t, err)
		assert.Equal(t, "sam@example.com", user.Email)
		assert.Empty(t, user.PasswordHash)
		userRepo.AssertExpectations(t)
	})

	t.Run("maps email conflicts", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("Create", ctx, mock.Anything).Return(repositories.ErrUserEmailConflict)

		svc := NewAuthService(userRepo)

		_, err := svc.Register(ctx, RegisterInput{Email: "sam@example.com", Password: "longenough"})
		assert.ErrorIs(t, err, ErrAuthEmailTaken)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)
	stored := &models.User{ID: 1, Email: "sam@example.com", PasswordHash: hash, Role: models.RoleAdmin}

	t.Run("success clears the password hash", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("GetByEmail", ctx, "sam@example.com").Return(stored, nil)

		svc := NewAuthService(userRepo)

		user, err := svc.Login(ctx, LoginInput{Email: "sam@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		refreshed := *stored
		refreshed.PasswordHash = hash
		userRepo := new(mockUserRepo)
		userRepo.On("GetByEmail", ctx, "sam@example.com").Return(&refreshed, nil)

		svc := NewAuthService(userRepo)

		_, err := svc.Login(ctx, LoginInput{Email: "sam@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from a bad password", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repositories.ErrUserNotFound)

		svc := NewAuthService(userRepo)

		_, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
	})
}
