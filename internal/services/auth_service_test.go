package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/metlabs/backend/internal/models"
	"github.com/metlabs/backend/internal/store"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	viper.Set("argon2.salt_length", 16)
	viper.Set("argon2.time", 1)
	viper.Set("argon2.memory", 64*1024)
	viper.Set("argon2.threads", 4)
	viper.Set("argon2.key_length", 32)
	viper.Set("jwt.secret_key", "test-secret")
	viper.Set("jwt.expiry_hours", 1)
	viper.Set("google.client_id", "test-client-id")
}

func newTestAuthService(t *testing.T) (*AuthService, *store.FileStore[models.User], *MockGoogleVerifier) {
	t.Helper()
	setTestConfig(t)
	users := store.NewFileStore[models.User](filepath.Join(t.TempDir(), "users.json"))
	google := new(MockGoogleVerifier)
	return NewAuthService(users, google), users, google
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	service, users, _ := newTestAuthService(t)

	t.Run("successful registration", func(t *testing.T) {
		result, err := service.Register(ctx, "alice@example.com", "secret1")
		assert.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.NotEmpty(t, result.User.ID)
		assert.Equal(t, "alice@example.com", result.User.Email)

		stored, err := users.Load(ctx)
		assert.NoError(t, err)
		assert.Len(t, stored, 1)
		assert.NotEmpty(t, stored[0].PasswordHash)
		assert.NotEqual(t, "secret1", stored[0].PasswordHash)
	})

	t.Run("duplicate email rejected regardless of password", func(t *testing.T) {
		_, err := service.Register(ctx, "alice@example.com", "differentpass")
		assert.ErrorIs(t, err, ErrDuplicateEmail)

		stored, _ := users.Load(ctx)
		assert.Len(t, stored, 1)
	})

	t.Run("email matching is case-sensitive", func(t *testing.T) {
		_, err := service.Register(ctx, "Alice@example.com", "secret1")
		assert.NoError(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestAuthService(t)

	registered, err := service.Register(ctx, "alice@example.com", "secret1")
	assert.NoError(t, err)

	t.Run("register then login returns the same account id", func(t *testing.T) {
		result, err := service.Login(ctx, "alice@example.com", "secret1")
		assert.NoError(t, err)
		assert.Equal(t, registered.User.ID, result.User.ID)

		claims, err := VerifyToken(result.Token)
		assert.NoError(t, err)
		assert.Equal(t, registered.User.ID, claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
	})

	t.Run("wrong password and unknown email return the identical error", func(t *testing.T) {
		_, wrongPassErr := service.Login(ctx, "alice@example.com", "wrongpass")
		_, unknownErr := service.Login(ctx, "nobody@example.com", "secret1")

		assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
		assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		assert.Equal(t, wrongPassErr.Error(), unknownErr.Error())
	})
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("missing client id fails before verification", func(t *testing.T) {
		service, _, google := newTestAuthService(t)
		viper.Set("google.client_id", "")

		_, err := service.LoginWithGoogle(ctx, "some-token")
		assert.ErrorIs(t, err, ErrServerMisconfigured)
		google.AssertNotCalled(t, "Verify")
	})

	t.Run("invalid token", func(t *testing.T) {
		service, _, google := newTestAuthService(t)
		google.On("Verify", mock.Anything, "bad-token", "test-client-id").
			Return(nil, ErrInvalidGoogleToken)

		_, err := service.LoginWithGoogle(ctx, "bad-token")
		assert.ErrorIs(t, err, ErrInvalidGoogleToken)
	})

	t.Run("payload without subject or email is rejected", func(t *testing.T) {
		service, _, google := newTestAuthService(t)
		google.On("Verify", mock.Anything, "token", "test-client-id").
			Return(&GoogleClaims{Subject: "G1"}, nil)

		_, err := service.LoginWithGoogle(ctx, "token")
		assert.ErrorIs(t, err, ErrInvalidGoogleToken)
	})

	t.Run("creates a new user and is idempotent on the second login", func(t *testing.T) {
		service, users, google := newTestAuthService(t)
		google.On("Verify", mock.Anything, "token", "test-client-id").
			Return(&GoogleClaims{Subject: "G1", Email: "bob@example.com"}, nil)

		first, err := service.LoginWithGoogle(ctx, "token")
		assert.NoError(t, err)
		assert.Equal(t, "bob@example.com", first.User.Email)

		stored, _ := users.Load(ctx)
		assert.Len(t, stored, 1)
		assert.Equal(t, "G1", stored[0].GoogleID)
		assert.NotEmpty(t, stored[0].PasswordHash)

		second, err := service.LoginWithGoogle(ctx, "token")
		assert.NoError(t, err)
		assert.Equal(t, first.User.ID, second.User.ID)

		stored, _ = users.Load(ctx)
		assert.Len(t, stored, 1)
	})

	t.Run("links an existing password account by email", func(t *testing.T) {
		service, users, google := newTestAuthService(t)
		registered, err := service.Register(ctx, "carol@example.com", "secret1")
		assert.NoError(t, err)

		google.On("Verify", mock.Anything, "token", "test-client-id").
			Return(&GoogleClaims{Subject: "G2", Email: "carol@example.com"}, nil)

		result, err := service.LoginWithGoogle(ctx, "token")
		assert.NoError(t, err)
		assert.Equal(t, registered.User.ID, result.User.ID)

		stored, _ := users.Load(ctx)
		assert.Len(t, stored, 1)
		assert.Equal(t, "G2", stored[0].GoogleID)
	})
}

func TestAuthService_ListUsers(t *testing.T) {
	ctx := context.Background()
	service, _, google := newTestAuthService(t)

	_, err := service.Register(ctx, "alice@example.com", "secret1")
	assert.NoError(t, err)

	google.On("Verify", mock.Anything, "token", "test-client-id").
		Return(&GoogleClaims{Subject: "G1", Email: "bob@example.com"}, nil)
	_, err = service.LoginWithGoogle(ctx, "token")
	assert.NoError(t, err)

	public, err := service.ListUsers(ctx)
	assert.NoError(t, err)
	assert.Len(t, public, 2)

	// The projection must never leak credentials or the Google identity.
	data, err := json.Marshal(public)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "passwordHash")
	assert.NotContains(t, string(data), "googleId")
}

func TestAuthService_GetUserByID(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestAuthService(t)

	registered, err := service.Register(ctx, "alice@example.com", "secret1")
	assert.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		user, err := service.GetUserByID(ctx, registered.User.ID)
		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := service.GetUserByID(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAuthService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	service, users, _ := newTestAuthService(t)

	registered, err := service.Register(ctx, "alice@example.com", "secret1")
	assert.NoError(t, err)

	t.Run("updates the wallet address only", func(t *testing.T) {
		before, _ := users.Load(ctx)

		wallet := "0xWALLET1"
		updated, err := service.UpdateUser(ctx, registered.User.ID, UpdateUserRequest{WalletAddress: &wallet})
		assert.NoError(t, err)
		assert.Equal(t, wallet, updated.WalletAddress)

		after, _ := users.Load(ctx)
		assert.Equal(t, before[0].ID, after[0].ID)
		assert.Equal(t, before[0].Email, after[0].Email)
		assert.Equal(t, before[0].PasswordHash, after[0].PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		wallet := "0xWALLET1"
		_, err := service.UpdateUser(ctx, "nope", UpdateUserRequest{WalletAddress: &wallet})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPasswordHashing(t *testing.T) {
	setTestConfig(t)

	password := "testpassword"

	hashed, err := hashPassword(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hashed)

	assert.True(t, verifyPassword(password, hashed))
	assert.False(t, verifyPassword("wrongpassword", hashed))
	assert.False(t, verifyPassword(password, "not-a-valid-hash"))
}

func TestTokens(t *testing.T) {
	setTestConfig(t)

	t.Run("round trip", func(t *testing.T) {
		token, err := GenerateToken("user-1", "alice@example.com")
		assert.NoError(t, err)

		claims, err := VerifyToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := VerifyToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken("user-1", "alice@example.com")
		assert.NoError(t, err)

		viper.Set("jwt.secret_key", "another-secret")
		_, verifyErr := VerifyToken(token)
		viper.Set("jwt.secret_key", "test-secret")

		assert.ErrorIs(t, verifyErr, ErrInvalidToken)
	})
}
