package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram-app/backend/internal/types"
)

func registerRequest(username string) *types.RegisterRequest {
	return &types.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "password123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, nil, "test-secret-0123456789")
	ctx := context.Background()

	user, err := svc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "password123", user.PasswordHash)

	token, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegisterDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, nil, "test-secret-0123456789")
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest("alice"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	req := registerRequest("alice")
	req.Email = "alice2@example.com"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, nil, "test-secret-0123456789")
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenBadSignature(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, nil, "test-secret-0123456789")
	other := NewAuthService(db, nil, "another-secret-987654321")
	ctx := context.Background()

	user, err := svc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	token, err := other.GenerateToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.Error(t, err)
}

func TestSetPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, nil, "test-secret-0123456789")
	ctx := context.Background()

	user, err := svc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	err = svc.SetPassword(ctx, user.ID, "wrong", "newpassword123")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, svc.SetPassword(ctx, user.ID, "password123", "newpassword123"))

	_, err = svc.Login(ctx, "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "alice@example.com", "newpassword123")
	assert.NoError(t, err)
}
