package service

import (
	"context"
	"testing"
	"time"

	infraRepo "github.com/dquispe/pos-backoffice/internal/infrastructure/repository"
	"github.com/dquispe/pos-backoffice/pkg/apperror"
	"github.com/dquispe/pos-backoffice/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := setupTestDB(t)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(infraRepo.NewUserRepository(db), jwtManager)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &RegisterInput{
		FullName: "Ada Buyer",
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.False(t, result.User.IsStaff)
	// The stored password is hashed, never the plaintext
	assert.NotEqual(t, "correct-horse", result.User.Password)

	login, err := svc.Login(ctx, "ada@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)

	_, err = svc.Login(ctx, "ada@example.com", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, 401, apperror.GetAppError(err).Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{
		FullName: "Ada Buyer",
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterInput{
		FullName: "Other Ada",
		Email:    "ada@example.com",
		Password: "another-pass",
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(context.Background(), &RegisterInput{
		FullName: "",
		Email:    "",
		Password: "short",
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Len(t, appErr.Errors, 3)
}

func TestRefreshIssuesNewTokens(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &RegisterInput{
		FullName: "Ada Buyer",
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, result.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.Tokens.AccessToken)

	_, err = svc.Refresh(ctx, "not-a-token")
	require.Error(t, err)
	assert.Equal(t, 401, apperror.GetAppError(err).Code)
}
