package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"qcars.backend/internal/domain/entities"
	domainerrors "qcars.backend/internal/domain/errors"
	"qcars.backend/internal/interfaces/http/middleware"
	"qcars.backend/internal/interfaces/http/response"
	"qcars.backend/internal/usecases"
	"qcars.backend/pkg/redis"
	"qcars.backend/pkg/utils"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase  *usecases.AuthUsecase
	sessionStore *redis.SessionStore
	sessionTTL   time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase, sessionStore *redis.SessionStore, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

func userPayload(user *entities.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"name":          user.Name,
		"contactNumber": user.ContactNumber,
		"language":      user.Language,
		"role":          user.Role,
		"status":        user.Status,
	}
}

// Register handles showroom registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.CreateUserInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		if err == domainerrors.ErrAlreadyExists {
			response.Error(c, domainerrors.Conflict("Email already registered"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": registrationMessage(user),
		"user":    userPayload(user),
	})
}

// registrationMessage tells the new account what happens next
func registrationMessage(user *entities.User) string {
	if user.Status == entities.AccountStatusPaymentPending {
		return "Registration successful. Your account will be activated once payment is verified."
	}
	return "Registration successful."
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		if err == domainerrors.ErrInvalidCredentials {
			response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "Invalid email or password", domainerrors.ErrInvalidCredentials))
			return
		}
		response.Error(c, err)
		return
	}

	if input.UseSession && h.sessionStore != nil {
		sessionID := utils.GenerateUUIDv7().String()
		err := h.sessionStore.CreateSession(c.Request.Context(), sessionID, &redis.SessionData{
			AccessToken:  authResponse.AccessToken,
			RefreshToken: authResponse.RefreshToken,
		}, h.sessionTTL)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Success(c, http.StatusOK, gin.H{
			"sessionId": sessionID,
			"user":      userPayload(authResponse.User),
		})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  authResponse.AccessToken,
		"refreshToken": authResponse.RefreshToken,
		"user":         userPayload(authResponse.User),
	})
}

// RefreshToken handles token refresh
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Refresh token is required"))
		return
	}

	tokenPair, err := h.authUsecase.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Invalid or expired refresh token", err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  tokenPair.AccessToken,
		"refreshToken": tokenPair.RefreshToken,
	})
}

// GetMe returns current authenticated user details
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": userPayload(user)})
}

// GetSessionExpiry reports when the session's access token expires so
// browser clients can refresh proactively
// GET /api/v1/auth/session-expiry
func (h *AuthHandler) GetSessionExpiry(c *gin.Context) {
	sessionID := c.GetHeader(middleware.SessionIDHeader)
	if sessionID == "" || h.sessionStore == nil {
		response.Error(c, domainerrors.Unauthorized("Session ID is required"))
		return
	}

	data, err := h.sessionStore.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, domainerrors.Unauthorized("Invalid or expired session"))
		return
	}

	expiresAt, err := h.authUsecase.GetTokenExpiry(data.AccessToken)
	if err != nil {
		response.Error(c, domainerrors.Unauthorized("Invalid or expired session"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"expiresAt": expiresAt})
}

// Logout invalidates the caller's session, if any
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetHeader(middleware.SessionIDHeader)
	if sessionID != "" && h.sessionStore != nil {
		if err := h.sessionStore.DeleteSession(c.Request.Context(), sessionID); err != nil {
			response.Error(c, err)
			return
		}
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// ForgotPassword issues a password recovery token
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input entities.ForgotPasswordInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	token, err := h.authUsecase.ForgotPassword(c.Request.Context(), input.Email)
	if err != nil {
		// Do not reveal whether the email exists.
		if err == domainerrors.ErrNotFound {
			response.Success(c, http.StatusOK, gin.H{
				"message": "If the email is registered, a recovery token has been issued.",
			})
			return
		}
		response.Error(c, err)
		return
	}

	// Email delivery is out of scope; the token is returned directly.
	response.Success(c, http.StatusOK, gin.H{
		"message":       "If the email is registered, a recovery token has been issued.",
		"recoveryToken": token,
	})
}

// ResetPassword consumes a recovery token and sets a new password
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), &input); err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.BadRequest("Invalid or expired recovery token"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password updated successfully"})
}
