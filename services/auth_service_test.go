package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/raulgarrigos/tapiocraft-server/models"
)

func newTestTokenService() *TokenService {
	return NewTokenService("test-secret", time.Hour)
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account and returns a token", func(t *testing.T) {
		users := newFakeUserRepo()
		service := NewAuthService(users, newTestTokenService(), nil, zap.NewNop())

		token, err := service.Register(ctx, "tapiofan", "tapiofan@example.com", "Sup3rSecret")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		user, err := users.FindByEmail(ctx, "tapiofan@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "user", user.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Sup3rSecret")))
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		service := NewAuthService(newFakeUserRepo(), newTestTokenService(), nil, zap.NewNop())

		_, err := service.Register(ctx, "tapiofan", "", "Sup3rSecret")

		var fieldErr *FieldError
		assert.ErrorAs(t, err, &fieldErr)
	})

	t.Run("rejects a weak password", func(t *testing.T) {
		service := NewAuthService(newFakeUserRepo(), newTestTokenService(), nil, zap.NewNop())

		_, err := service.Register(ctx, "tapiofan", "tapiofan@example.com", "alllowercase")

		var fieldErr *FieldError
		assert.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "password", fieldErr.Field)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		users := newFakeUserRepo(&models.User{Username: "tapiofan", Email: "other@example.com"})
		service := NewAuthService(users, newTestTokenService(), nil, zap.NewNop())

		_, err := service.Register(ctx, "tapiofan", "tapiofan@example.com", "Sup3rSecret")

		var fieldErr *FieldError
		assert.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "username", fieldErr.Field)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		users := newFakeUserRepo(&models.User{Username: "someone", Email: "tapiofan@example.com"})
		service := NewAuthService(users, newTestTokenService(), nil, zap.NewNop())

		_, err := service.Register(ctx, "tapiofan", "tapiofan@example.com", "Sup3rSecret")

		var fieldErr *FieldError
		assert.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "email", fieldErr.Field)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	registeredUsers := func(t *testing.T) *fakeUserRepo {
		t.Helper()
		hash, err := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcrypt.MinCost)
		assert.NoError(t, err)
		return newFakeUserRepo(&models.User{
			Username: "tapiofan",
			Email:    "tapiofan@example.com",
			Password: string(hash),
			Role:     "user",
		})
	}

	t.Run("returns a token for valid credentials", func(t *testing.T) {
		service := NewAuthService(registeredUsers(t), newTestTokenService(), nil, zap.NewNop())

		token, err := service.Login(ctx, "tapiofan@example.com", "Sup3rSecret")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		service := NewAuthService(registeredUsers(t), newTestTokenService(), nil, zap.NewNop())

		_, err := service.Login(ctx, "tapiofan@example.com", "WrongPass1")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects an unknown email with the same error", func(t *testing.T) {
		service := NewAuthService(registeredUsers(t), newTestTokenService(), nil, zap.NewNop())

		_, err := service.Login(ctx, "nobody@example.com", "Sup3rSecret")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestTokenServiceRoundTrip(t *testing.T) {
	tokens := newTestTokenService()
	user := &models.User{
		Username: "tapiofan",
		Email:    "tapiofan@example.com",
		Role:     "user",
	}
	signed, err := tokens.Generate(user)
	assert.NoError(t, err)

	claims, err := tokens.Validate(signed)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims["_id"])
	assert.Equal(t, "tapiofan", claims["username"])
	assert.Equal(t, "user", claims["role"])
}

func TestTokenServiceRejectsForeignSignature(t *testing.T) {
	signed, err := NewTokenService("other-secret", time.Hour).Generate(&models.User{Username: "x"})
	assert.NoError(t, err)

	_, err = newTestTokenService().Validate(signed)
	assert.Error(t, err)
}

func TestTokenServiceRejectsExpiredToken(t *testing.T) {
	signed, err := NewTokenService("test-secret", -time.Minute).Generate(&models.User{Username: "x"})
	assert.NoError(t, err)

	_, err = newTestTokenService().Validate(signed)
	assert.Error(t, err)
}
