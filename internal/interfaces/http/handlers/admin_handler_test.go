package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"qcars.backend/internal/domain/entities"
	"qcars.backend/internal/interfaces/http/middleware"
)

func (e *handlerEnv) adminRouter(acting *entities.User) *gin.Engine {
	r := gin.New()
	asUser := func(h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set(middleware.UserIDKey, acting.ID)
			h(c)
		}
	}
	r.GET("/admin/stats", asUser(e.admin.GetStats))
	r.GET("/admin/users", asUser(e.admin.ListUsers))
	r.PATCH("/admin/users/:id/status", asUser(e.admin.SetUserStatus))
	r.PATCH("/admin/users/:id/role", asUser(e.admin.SetUserRole))
	r.GET("/admin/settings/payments-required", asUser(e.admin.GetPaymentsRequired))
	r.PUT("/admin/settings/payments-required", asUser(e.admin.SetPaymentsRequired))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminHandler_SetUserStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := newHandlerEnv(true)
	admin := env.addUser(entities.UserRoleAdmin, entities.AccountStatusActive)
	pending := env.addUser(entities.UserRoleUser, entities.AccountStatusPaymentPending)
	r := env.adminRouter(admin)

	w := doJSON(t, r, http.MethodPatch, "/admin/users/"+pending.ID.String()+"/status", `{"status":"active"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"active"`)

	w = doJSON(t, r, http.MethodPatch, "/admin/users/"+pending.ID.String()+"/status", `{"status":"payment_pending"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"payment_pending"`)

	t.Run("invalid status rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/admin/users/"+pending.ID.String()+"/status", `{"status":"banned"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid target id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/admin/users/nope/status", `{"status":"active"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminHandler_NonAdminForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := newHandlerEnv(true)
	user := env.addUser(entities.UserRoleUser, entities.AccountStatusActive)
	target := env.addUser(entities.UserRoleUser, entities.AccountStatusPaymentPending)
	r := env.adminRouter(user)

	w := doJSON(t, r, http.MethodPatch, "/admin/users/"+target.ID.String()+"/status", `{"status":"active"}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/admin/users/"+target.ID.String()+"/role", `{"role":"admin"}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	w = doJSON(t, r, http.MethodPut, "/admin/settings/payments-required", `{"paymentsRequired":false}`)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminHandler_SetUserRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := newHandlerEnv(false)
	admin := env.addUser(entities.UserRoleAdmin, entities.AccountStatusActive)
	target := env.addUser(entities.UserRoleUser, entities.AccountStatusActive)
	r := env.adminRouter(admin)

	w := doJSON(t, r, http.MethodPatch, "/admin/users/"+target.ID.String()+"/role", `{"role":"admin"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"role":"admin"`)

	w = doJSON(t, r, http.MethodPatch, "/admin/users/"+target.ID.String()+"/role", `{"role":"user"}`)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("self demotion rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/admin/users/"+admin.ID.String()+"/role", `{"role":"user"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/admin/users/"+target.ID.String()+"/role", `{"role":"owner"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminHandler_PaymentsRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := newHandlerEnv(true)
	admin := env.addUser(entities.UserRoleAdmin, entities.AccountStatusActive)
	r := env.adminRouter(admin)

	req := httptest.NewRequest(http.MethodGet, "/admin/settings/payments-required", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"paymentsRequired":true`)

	rec := doJSON(t, r, http.MethodPut, "/admin/settings/payments-required", `{"paymentsRequired":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, env.settingsRepo.paymentsRequired)

	t.Run("missing value rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/admin/settings/payments-required", `{}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminHandler_Stats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := newHandlerEnv(true)
	admin := env.addUser(entities.UserRoleAdmin, entities.AccountStatusActive)
	seller := env.addUser(entities.UserRoleUser, entities.AccountStatusActive)
	env.addUser(entities.UserRoleUser, entities.AccountStatusPaymentPending)

	sold := &entities.CarPost{ID: uuid.New(), OwnerID: seller.ID, Title: "Corolla", Model: "GLi", Sold: true}
	live := &entities.CarPost{ID: uuid.New(), OwnerID: seller.ID, Title: "Civic", Model: "Oriel"}
	env.postRepo.posts[sold.ID] = sold
	env.postRepo.posts[live.ID] = live

	r := env.adminRouter(admin)
	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"totalAccounts":3`)
	require.Contains(t, w.Body.String(), `"pendingAccounts":1`)
	require.Contains(t, w.Body.String(), `"totalListings":2`)
	require.Contains(t, w.Body.String(), `"soldListings":1`)

	t.Run("non-admin forbidden", func(t *testing.T) {
		rr := env.adminRouter(seller)
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		w := httptest.NewRecorder()
		rr.ServeHTTP(w, req)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAdminHandler_ListUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := newHandlerEnv(false)
	admin := env.addUser(entities.UserRoleAdmin, entities.AccountStatusActive)
	env.addUser(entities.UserRoleUser, entities.AccountStatusPaymentPending)
	r := env.adminRouter(admin)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), admin.Email)
	require.Contains(t, w.Body.String(), "payment_pending")
}
