package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/config"
	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/pkg/logger"
	"github.com/addispot/addispot-backend/pkg/redis"
	"github.com/addispot/addispot-backend/pkg/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrBadSignupToken     = errors.New("invalid signup token")
	ErrSignupDisabled     = errors.New("admin signup is disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

type SignupInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"full_name" binding:"required"`
	Username    string `json:"username" binding:"required,min=2"`
	SignupToken string `json:"signup_token" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	User   *model.User    `json:"user"`
	Tokens util.TokenPair `json:"tokens"`
}

type AuthService interface {
	AdminSignup(input SignupInput) (*AuthResult, error)
	Login(input LoginInput) (*AuthResult, error)
	Refresh(refreshToken string) (*util.TokenPair, error)
	Logout(ctx context.Context, token string) error
	GetUserByID(id string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtCfg   *config.JWTConfig
	adminCfg *config.AdminConfig
}

func NewAuthService(userRepo repository.UserRepository, jwtCfg *config.JWTConfig, adminCfg *config.AdminConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		adminCfg: adminCfg,
	}
}

// AdminSignup creates a dashboard account. Every account minted here is an
// admin, so the endpoint only works when the deployment configured a
// signup token and the caller presented it.
func (s *authService) AdminSignup(input SignupInput) (*AuthResult, error) {
	if s.adminCfg.SignupToken == "" {
		return nil, ErrSignupDisabled
	}
	if subtle.ConstantTimeCompare([]byte(input.SignupToken), []byte(s.adminCfg.SignupToken)) != 1 {
		logger.Warn("Admin signup with bad token", map[string]interface{}{
			"email": input.Email,
		})
		return nil, ErrBadSignupToken
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if existing, err := s.userRepo.FindByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailAlreadyExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, nil)
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Username:     strings.TrimSpace(input.Username),
		IsAdmin:      true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	tokens, err := util.GenerateTokenPair(user.ID, user.Email, user.IsAdmin, s.jwtCfg.Secret, s.jwtCfg.AccessTokenExpiry, s.jwtCfg.RefreshTokenExpiry)
	if err != nil {
		return nil, err
	}

	logger.Info("Admin account created", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return &AuthResult{User: user, Tokens: *tokens}, nil
}

func (s *authService) Login(input LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, input.Password) {
		logger.Warn("Failed login attempt", map[string]interface{}{
			"email": email,
		})
		return nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(user.ID, user.Email, user.IsAdmin, s.jwtCfg.Secret, s.jwtCfg.AccessTokenExpiry, s.jwtCfg.RefreshTokenExpiry)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
	})
	return &AuthResult{User: user, Tokens: *tokens}, nil
}

// Refresh trades a valid refresh token for a new pair. The user row is
// re-read so a revoked admin flag takes effect on the next refresh.
func (s *authService) Refresh(refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtCfg.Secret)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	return util.GenerateTokenPair(user.ID, user.Email, user.IsAdmin, s.jwtCfg.Secret, s.jwtCfg.AccessTokenExpiry, s.jwtCfg.RefreshTokenExpiry)
}

// Logout blacklists the presented access token for its remaining lifetime.
// Without Redis this is a no-op and the token simply expires.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return redis.BlacklistToken(ctx, token, s.jwtCfg.AccessTokenExpiry)
}

func (s *authService) GetUserByID(id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
