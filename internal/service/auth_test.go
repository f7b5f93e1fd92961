package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/forkful-backend/internal/models"
	"github.com/forkful/forkful-backend/internal/types"
)

const testJWTSecret = "test-secret"

func TestAuthService_Register(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTSecret)
	ctx := testContext()

	t.Run("creates the user and returns a valid token", func(t *testing.T) {
		token, err := svc.Register(ctx, types.RegisterRequest{
			Email:    "alice@example.com",
			Username: "alice",
			Password: "hunter2hunter2",
		})
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", claims.Email)

		var user models.User
		require.NoError(t, db.First(&user, "id = ?", claims.UserID).Error)
		assert.Equal(t, "alice", user.Username)
		assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
		assert.NotNil(t, user.SavedRecipes)
		assert.NotNil(t, user.CreatedRecipes)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, types.RegisterRequest{
			Email:    "alice@example.com",
			Username: "alice2",
			Password: "hunter2hunter2",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthService_Login(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTSecret)
	ctx := testContext()

	_, err := svc.Register(ctx, types.RegisterRequest{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login(ctx, "bob@example.com", "correct-horse-battery")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", claims.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTSecret)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewAuthService(db, "other-secret")
		token, err := other.Register(testContext(), types.RegisterRequest{
			Email:    "carol@example.com",
			Username: "carol",
			Password: "carols-password",
		})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}
