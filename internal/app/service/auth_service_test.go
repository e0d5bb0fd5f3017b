package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/config"
	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/internal/db"
)

const testSignupToken = "test-signup-token"

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(
		userRepo,
		&config.JWTConfig{
			Secret:             "test-jwt-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
		&config.AdminConfig{SignupToken: testSignupToken},
	)

	return authService, testDB
}

func validSignup() SignupInput {
	return SignupInput{
		Email:       "admin@example.com",
		Password:    "password123",
		FullName:    "Admin User",
		Username:    "admin",
		SignupToken: testSignupToken,
	}
}

func TestAuthService_AdminSignup(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	tests := []struct {
		name    string
		mutate  func(*SignupInput)
		wantErr error
	}{
		{
			name:    "Valid signup",
			mutate:  func(input *SignupInput) {},
			wantErr: nil,
		},
		{
			name: "Duplicate email",
			mutate: func(input *SignupInput) {
				input.Username = "admin2"
			},
			wantErr: ErrEmailAlreadyExists,
		},
		{
			name: "Bad signup token",
			mutate: func(input *SignupInput) {
				input.Email = "other@example.com"
				input.SignupToken = "wrong"
			},
			wantErr: ErrBadSignupToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validSignup()
			tt.mutate(&input)

			result, err := authService.AdminSignup(input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.User.IsAdmin, "signup always mints admins")
			assert.NotEqual(t, input.Password, result.User.PasswordHash)
			assert.NotEmpty(t, result.Tokens.AccessToken)
			assert.NotEmpty(t, result.Tokens.RefreshToken)
		})
	}
}

func TestAuthService_SignupDisabled(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(
		userRepo,
		&config.JWTConfig{Secret: "s", AccessTokenExpiry: time.Minute, RefreshTokenExpiry: time.Hour},
		&config.AdminConfig{SignupToken: ""},
	)

	_, err = authService.AdminSignup(validSignup())
	assert.ErrorIs(t, err, ErrSignupDisabled)
}

func TestAuthService_Login(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.AdminSignup(validSignup())
	require.NoError(t, err)

	t.Run("Valid login", func(t *testing.T) {
		result, err := authService.Login(LoginInput{Email: "admin@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Tokens.AccessToken)
	})

	t.Run("Email is case-insensitive", func(t *testing.T) {
		_, err := authService.Login(LoginInput{Email: "Admin@Example.com", Password: "password123"})
		assert.NoError(t, err)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := authService.Login(LoginInput{Email: "admin@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, err := authService.Login(LoginInput{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	result, err := authService.AdminSignup(validSignup())
	require.NoError(t, err)

	tokens, err := authService.Refresh(result.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	_, err = authService.Refresh("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestAuthService_Logout(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	// Without a Redis client logout is a no-op rather than an error
	assert.NoError(t, authService.Logout(context.Background(), "some-token"))
	assert.NoError(t, authService.Logout(context.Background(), ""))
}

func TestAuthService_GetUserByID(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	result, err := authService.AdminSignup(validSignup())
	require.NoError(t, err)

	user, err := authService.GetUserByID(result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)

	_, err = authService.GetUserByID("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
