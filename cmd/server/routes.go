package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"qcars.backend/internal/interfaces/http/handlers"
	"qcars.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	postHandler    *handlers.PostHandler
	adminHandler   *handlers.AdminHandler
	fileHandler    *handlers.FileHandler
	authMiddleware gin.HandlerFunc
}

// applyCORSMiddleware reflects the request origin so browser clients on any
// host can talk to the API with credentials.
func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Session-ID, X-Request-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "qcars-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/forgot-password", d.authHandler.ForgotPassword)
			auth.POST("/reset-password", d.authHandler.ResetPassword)
			auth.GET("/session-expiry", d.authHandler.GetSessionExpiry)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
			auth.POST("/logout", d.authMiddleware, d.authHandler.Logout)
		}

		// Listing routes (protected; capability checks happen per account
		// status inside the usecases)
		posts := v1.Group("/posts")
		posts.Use(d.authMiddleware)
		{
			posts.POST("", d.postHandler.CreatePost)
			posts.GET("", d.postHandler.ListPosts)
			posts.GET("/mine", d.postHandler.MyPosts)
			posts.GET("/:id", d.postHandler.GetPost)
			posts.POST("/:id/images", d.postHandler.AttachImages)
			posts.POST("/:id/sold", d.postHandler.MarkSold)
		}

		// Stored images (public; URLs are only discoverable via listings)
		v1.GET("/files/:id", d.fileHandler.GetFile)

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/stats", d.adminHandler.GetStats)
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PATCH("/users/:id/status", d.adminHandler.SetUserStatus)
			admin.PATCH("/users/:id/role", d.adminHandler.SetUserRole)
			admin.GET("/settings/payments-required", d.adminHandler.GetPaymentsRequired)
			admin.PUT("/settings/payments-required", d.adminHandler.SetPaymentsRequired)
		}
	}
}
