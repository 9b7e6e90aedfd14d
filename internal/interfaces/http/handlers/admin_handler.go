package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"qcars.backend/internal/domain/entities"
	domainerrors "qcars.backend/internal/domain/errors"
	"qcars.backend/internal/interfaces/http/response"
	"qcars.backend/internal/usecases"
)

// AdminHandler handles the admin panel endpoints
type AdminHandler struct {
	accountUsecase *usecases.AccountUsecase
	authUsecase    *usecases.AuthUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(accountUsecase *usecases.AccountUsecase, authUsecase *usecases.AuthUsecase) *AdminHandler {
	return &AdminHandler{
		accountUsecase: accountUsecase,
		authUsecase:    authUsecase,
	}
}

// ListUsers lists all accounts, optionally filtered by search
// GET /api/v1/admin/users?search=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	acting, err := currentUser(c, h.authUsecase)
	if err != nil {
		response.Error(c, err)
		return
	}

	users, err := h.accountUsecase.ListAccounts(c.Request.Context(), acting, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := make([]gin.H, 0, len(users))
	for _, user := range users {
		entry := userPayload(user)
		entry["joinedAt"] = user.JoinedAt
		entry["activatedAt"] = user.ActivatedAt.Ptr()
		payload = append(payload, entry)
	}

	response.Success(c, http.StatusOK, gin.H{"users": payload})
}

// SetUserStatus flips an account between active and payment_pending
// PATCH /api/v1/admin/users/:id/status
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	acting, err := currentUser(c, h.authUsecase)
	if err != nil {
		response.Error(c, err)
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input struct {
		Status string `json:"status" binding:"required,oneof=active payment_pending"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	updated, err := h.accountUsecase.SetAccountStatus(c.Request.Context(), acting, targetID, entities.AccountStatus(input.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": userPayload(updated)})
}

// SetUserRole changes an account's role
// PATCH /api/v1/admin/users/:id/role
func (h *AdminHandler) SetUserRole(c *gin.Context) {
	acting, err := currentUser(c, h.authUsecase)
	if err != nil {
		response.Error(c, err)
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input struct {
		Role string `json:"role" binding:"required,oneof=admin user"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	updated, err := h.accountUsecase.SetRole(c.Request.Context(), acting, targetID, entities.UserRole(input.Role))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": userPayload(updated)})
}

// GetStats returns account and listing counts for the admin dashboard
// GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	acting, err := currentUser(c, h.authUsecase)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := h.accountUsecase.GetStats(c.Request.Context(), acting)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// GetPaymentsRequired reads the global payment gate
// GET /api/v1/admin/settings/payments-required
func (h *AdminHandler) GetPaymentsRequired(c *gin.Context) {
	acting, err := currentUser(c, h.authUsecase)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !acting.IsAdmin() {
		response.Error(c, domainerrors.Forbidden("Admin access required"))
		return
	}

	required, err := h.accountUsecase.PaymentsRequired(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"paymentsRequired": required})
}

// SetPaymentsRequired toggles the global payment gate
// PUT /api/v1/admin/settings/payments-required
func (h *AdminHandler) SetPaymentsRequired(c *gin.Context) {
	acting, err := currentUser(c, h.authUsecase)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input struct {
		PaymentsRequired *bool `json:"paymentsRequired" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.accountUsecase.SetPaymentsRequired(c.Request.Context(), acting, *input.PaymentsRequired); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"paymentsRequired": *input.PaymentsRequired})
}
