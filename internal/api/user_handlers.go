// internal/api/user_handlers.go
// User profile and notification-preferences HTTP handlers

package api

import (
	"net/http"

	"bracketpool/internal/repositories"
	"bracketpool/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleGetCurrentUser retrieves the current user's profile
func HandleGetCurrentUser(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		user, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user": user,
		})
	}
}

// HandleUpdateProfile updates user profile
func HandleUpdateProfile(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		user, err := userService.UpdateProfile(c.Request.Context(), userID, updates)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user": user,
		})
	}
}

// HandleGetPreferences retrieves the current user's notification
// preferences
func HandleGetPreferences(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		user, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
			return
		}

		preferences, err := userService.GetNotificationPreferences(c.Request.Context(), user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve preferences"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"preferences": preferences,
		})
	}
}

// HandleUpdatePreferences updates the current user's notification
// preferences
func HandleUpdatePreferences(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		user, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
			return
		}

		var req struct {
			RareCorrectPicks bool `json:"rareCorrectPicks"`
			AnalysisReady    bool `json:"analysisReady"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		prefs := repositories.NotificationPreferences{
			UserEmail:        user.Email,
			RareCorrectPicks: req.RareCorrectPicks,
			AnalysisReady:    req.AnalysisReady,
		}
		if err := userService.UpdateNotificationPreferences(c.Request.Context(), prefs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Preferences updated successfully"})
	}
}
