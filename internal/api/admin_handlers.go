// internal/api/admin_handlers.go
// Admin-only HTTP handlers

package api

import (
	"net/http"

	"bracketpool/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleGetPlatformStats retrieves platform-wide statistics
func HandleGetPlatformStats(analyticsService *services.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := analyticsService.GetPlatformStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statistics"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"statistics": stats,
		})
	}
}

// HandleUpgradeToOperator grants a participant operator access, the role
// required to call applyResult and recalculateAllScores.
func HandleUpgradeToOperator(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")

		if err := userService.UpgradeToOperator(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User upgraded to operator"})
	}
}
