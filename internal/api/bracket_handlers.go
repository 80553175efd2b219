// internal/api/bracket_handlers.go
// Bracket submission and retrieval HTTP handlers

package api

import (
	"net/http"

	"bracketpool/internal/models"
	"bracketpool/internal/services"

	"github.com/gin-gonic/gin"
)

// SubmitBracketRequest is the body of a new bracket submission.
type SubmitBracketRequest struct {
	ParticipantName string                       `json:"participantName" binding:"required"`
	EntryNumber     int                          `json:"entryNumber"`
	UserEmail       string                       `json:"userEmail" binding:"required,email"`
	Picks           map[int][]models.MatchupPick `json:"picks" binding:"required"`
}

// HandleSubmitBracket creates a new participant bracket. The edit token
// is generated server-side and returned once in the response.
func HandleSubmitBracket(bracketService *services.BracketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitBracketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		b, editToken, err := bracketService.Submit(c.Request.Context(), req.ParticipantName, req.EntryNumber, req.UserEmail, req.Picks)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit bracket"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"bracket":   b,
			"editToken": editToken,
		})
	}
}

// HandleGetBracket retrieves a single bracket by id.
func HandleGetBracket(bracketService *services.BracketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		b, err := bracketService.Get(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bracket"})
			return
		}
		if b == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bracket not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"bracket": b})
	}
}

// HandleListBrackets lists every submitted bracket, used to render pool
// standings.
func HandleListBrackets(bracketService *services.BracketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		brackets, err := bracketService.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list brackets"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"brackets": brackets})
	}
}

// UpdateBracketRequest is the body of a pre-lock bracket edit.
type UpdateBracketRequest struct {
	EditToken string                       `json:"editToken" binding:"required"`
	Picks     map[int][]models.MatchupPick `json:"picks" binding:"required"`
}

// HandleUpdateBracket replaces a bracket's picks, provided the caller
// presents the matching edit token and the bracket has not yet locked.
func HandleUpdateBracket(bracketService *services.BracketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req UpdateBracketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		b, err := bracketService.Update(c.Request.Context(), id, req.EditToken, req.Picks)
		if err != nil {
			switch err {
			case services.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "Bracket not found"})
			case services.ErrBracketLocked:
				c.JSON(http.StatusForbidden, gin.H{"error": "Bracket is locked and can no longer be edited"})
			case services.ErrInvalidCredentials:
				c.JSON(http.StatusForbidden, gin.H{"error": "Invalid edit token"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bracket"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"bracket": b})
	}
}

// HandleLockBracket locks a single bracket against further edits, called
// once the tournament begins.
func HandleLockBracket(bracketService *services.BracketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		if err := bracketService.Lock(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock bracket"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Bracket locked"})
	}
}
