// internal/api/routes.go
// Central route registration for all API endpoints

package api

import (
	"bracketpool/internal/middleware"
	"bracketpool/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers authentication-related routes
func RegisterAuthRoutes(router *gin.RouterGroup, services *services.Container) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", HandleRegister(services.Auth))
		auth.POST("/login", HandleLogin(services.Auth))
		auth.POST("/logout", middleware.RequireAuth(services.Auth), HandleLogout(services.Auth))
		auth.POST("/refresh", HandleRefreshToken(services.Auth))
		auth.POST("/forgot-password", HandleForgotPassword(services.Auth))
		auth.POST("/reset-password", HandleResetPassword(services.Auth))
		auth.POST("/verify-email", HandleVerifyEmail(services.Auth))
	}
}

// RegisterUserRoutes registers user-related routes
func RegisterUserRoutes(router *gin.RouterGroup, services *services.Container) {
	users := router.Group("/users")
	users.Use(middleware.RequireAuth(services.Auth))
	{
		users.GET("/me", HandleGetCurrentUser(services.User))
		users.PUT("/me", HandleUpdateProfile(services.User))
		users.PUT("/me/password", HandleChangePassword(services.Auth))
		users.GET("/me/preferences", HandleGetPreferences(services.User))
		users.PUT("/me/preferences", HandleUpdatePreferences(services.User))
	}
}

// RegisterBracketRoutes registers bracket submission and retrieval routes
func RegisterBracketRoutes(router *gin.RouterGroup, services *services.Container) {
	brackets := router.Group("/brackets")
	{
		// Public routes
		brackets.GET("", HandleListBrackets(services.Bracket))
		brackets.GET("/:id", HandleGetBracket(services.Bracket))
		brackets.POST("", HandleSubmitBracket(services.Bracket))
		brackets.PUT("/:id", HandleUpdateBracket(services.Bracket))

		// Operator-only
		brackets.POST("/:id/lock", middleware.RequireAuth(services.Auth), middleware.RequireOperator(), HandleLockBracket(services.Bracket))
	}
}

// RegisterAnalysisRoutes registers the applyResult, analyze, and
// recalculateAllScores routes for a tournament year
func RegisterAnalysisRoutes(router *gin.RouterGroup, services *services.Container) {
	analysis := router.Group("/tournaments/:year")
	{
		analysis.GET("/analyze", HandleAnalyze(services.Analysis))

		analysis.Use(middleware.RequireAuth(services.Auth))
		analysis.POST("/results", middleware.RequireOperator(), HandleApplyResult(services.Analysis))
		analysis.POST("/recalculate", middleware.RequireOperator(), HandleRecalculateAllScores(services.Analysis))
	}
}

// RegisterAdminRoutes registers admin-only routes
func RegisterAdminRoutes(router *gin.RouterGroup, services *services.Container) {
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAuth(services.Auth))
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.GET("/stats", HandleGetPlatformStats(services.Analytics))
		admin.PUT("/users/:id/operator", HandleUpgradeToOperator(services.User))
	}
}
