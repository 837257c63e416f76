package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealdeck/backend/internal/model"
	"github.com/pageza/mealdeck/backend/internal/service"
	"github.com/pageza/mealdeck/backend/internal/testhelpers"
	"github.com/pageza/mealdeck/backend/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	auth := service.NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	reg, err := auth.Register(ctx, &types.RegisterRequest{Name: "Ada", Email: "Ada@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, reg.UserID)
	assert.False(t, reg.Anonymous)

	var profile model.UserProfile
	require.NoError(t, db.Where("user_id = ?", reg.UserID).First(&profile).Error)
	assert.Equal(t, "Ada", profile.Name)

	login, err := auth.Login(ctx, &types.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, login.UserID)

	claims, err := auth.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, claims.UserID)
	assert.Equal(t, "Ada", claims.Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	auth := service.NewAuthService(db, "test-secret", time.Hour)
	req := &types.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"}

	_, err := auth.Register(context.Background(), req)
	require.NoError(t, err)
	_, err = auth.Register(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	auth := service.NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	_, err := auth.Register(ctx, &types.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, &types.LoginRequest{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = auth.Login(ctx, &types.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestSignInAnonymously(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	auth := service.NewAuthService(db, "test-secret", time.Hour)

	first, err := auth.SignInAnonymously(context.Background())
	require.NoError(t, err)
	second, err := auth.SignInAnonymously(context.Background())
	require.NoError(t, err)

	assert.True(t, first.Anonymous)
	assert.NotEqual(t, first.UserID, second.UserID)

	claims, err := auth.ValidateToken(first.Token)
	require.NoError(t, err)
	assert.True(t, claims.Anonymous)
}

func TestValidateTokenRejectsBadTokens(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	auth := service.NewAuthService(db, "test-secret", time.Hour)
	other := service.NewAuthService(db, "other-secret", time.Hour)

	token, err := other.GenerateToken(uuid.New(), "x", false)
	require.NoError(t, err)
	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = auth.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "mealdeck",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		UserID: uuid.New(),
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = auth.ValidateToken(signed)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}
