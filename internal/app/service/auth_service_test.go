package service

import (
	"testing"
	"time"

	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/internal/db"
	"github.com/karimelh/vitrine-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, "test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_FirstUserBecomesAdmin(t *testing.T) {
	svc := setupAuthServiceTest(t)

	first, tokens, err := svc.Register("owner@example.com", "password123", "Owner", "")
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.Equal(t, model.RoleAdmin, first.Role)

	second, _, err := svc.Register("shopper@example.com", "password123", "Shopper", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, second.Role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, _, err := svc.Register("owner@example.com", "password123", "Owner", "")
	require.NoError(t, err)

	_, _, err = svc.Register("owner@example.com", "differentpass", "Impostor", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	svc := setupAuthServiceTest(t)

	registered, _, err := svc.Register("owner@example.com", "password123", "Owner", "")
	require.NoError(t, err)

	t.Run("Valid credentials", func(t *testing.T) {
		user, tokens, err := svc.Login("owner@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)

		claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, _, err := svc.Login("owner@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, _, err := svc.Login("ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_PasswordNeverStoredPlain(t *testing.T) {
	svc := setupAuthServiceTest(t)

	user, _, err := svc.Register("owner@example.com", "password123", "Owner", "")
	require.NoError(t, err)

	stored, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.True(t, util.VerifyPassword(stored.PasswordHash, "password123"))
}

func TestAuthService_GetUserByID_NotFound(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, err := svc.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
