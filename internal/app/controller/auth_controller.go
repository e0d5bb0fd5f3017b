package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/addispot/addispot-backend/internal/app/service"
	apperrors "github.com/addispot/addispot-backend/internal/errors"
	"github.com/addispot/addispot-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Signup registers a new dashboard admin. Gated by the deployment's
// signup token.
func (ctrl *AuthController) Signup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	result, err := ctrl.authService.AdminSignup(input)
	if err != nil {
		switch err {
		case service.ErrSignupDisabled:
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthBadSignupToken, "Admin signup is disabled")
		case service.ErrBadSignupToken:
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthBadSignupToken, "Invalid signup token")
		case service.ErrEmailAlreadyExists:
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "Email already registered")
		default:
			log.Error("Signup failed", err, nil)
			apperrors.InternalError(c, "Failed to create account")
		}
		return
	}

	log.Info("Admin signed up", map[string]interface{}{
		"user_id": result.User.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user":   sanitizeUser(result),
		"tokens": result.Tokens,
	})
}

func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	result, err := ctrl.authService.Login(input)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid email or password")
			return
		}
		log.Error("Login failed", err, nil)
		apperrors.InternalError(c, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   sanitizeUser(result),
		"tokens": result.Tokens,
	})
}

func (ctrl *AuthController) Refresh(c *gin.Context) {
	var input refreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	tokens, err := ctrl.authService.Refresh(input.RefreshToken)
	if err != nil {
		if err == service.ErrInvalidRefresh {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Invalid refresh token")
			return
		}
		apperrors.InternalError(c, "Failed to refresh tokens")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// Logout revokes the caller's access token for its remaining lifetime.
func (ctrl *AuthController) Logout(c *gin.Context) {
	token, _ := middleware.GetToken(c)

	if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
		log := middleware.GetLoggerFromContext(c)
		log.Error("Logout failed", err, nil)
		apperrors.InternalError(c, "Failed to log out")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user's profile.
func (ctrl *AuthController) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if err == service.ErrUserNotFound {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		apperrors.InternalError(c, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
		"username":  user.Username,
		"is_admin":  user.IsAdmin,
	})
}

// sanitizeUser strips the password hash before a user row leaves the API.
func sanitizeUser(result *service.AuthResult) gin.H {
	return gin.H{
		"id":        result.User.ID,
		"email":     result.User.Email,
		"full_name": result.User.FullName,
		"username":  result.User.Username,
		"is_admin":  result.User.IsAdmin,
	}
}
