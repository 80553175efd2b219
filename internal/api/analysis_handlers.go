// internal/api/analysis_handlers.go
// Handlers for the three outbound operations of the analysis pipeline:
// applyResult, analyze, and recalculateAllScores (§6).

package api

import (
	"net/http"
	"strconv"

	"bracketpool/internal/bracket"
	"bracketpool/internal/core"
	"bracketpool/internal/services"

	"github.com/gin-gonic/gin"
)

func parseYear(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament year"})
		return 0, false
	}
	return year, true
}

// ApplyResultRequest is the body of an applyResult call.
type ApplyResultRequest struct {
	MatchupID int                 `json:"matchupId" binding:"required"`
	Winner    bracket.Team        `json:"winner" binding:"required"`
	Score     *bracket.MatchScore `json:"score,omitempty"`
	Completed bool                `json:"completed"`
}

// HandleApplyResult records a completed or amended matchup result.
// Restricted to operator and admin roles via RequireOperator.
func HandleApplyResult(analysisService *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, ok := parseYear(c)
		if !ok {
			return
		}

		var req ApplyResultRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		state, err := analysisService.ApplyResult(c.Request.Context(), year, req.MatchupID, req.Winner, req.Score, req.Completed)
		if err != nil {
			if err == services.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"state": state})
	}
}

// HandleAnalyze runs the full enumerate/score/reduce pipeline and returns
// the assembled AnalysisReport.
func HandleAnalyze(analysisService *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, ok := parseYear(c)
		if !ok {
			return
		}

		report, err := analysisService.Analyze(c.Request.Context(), year, nil)
		if err != nil {
			if _, cancelled := err.(*core.CancelledError); cancelled {
				c.JSON(http.StatusOK, gin.H{"report": report, "cancelled": true})
				return
			}
			if precondition, ok := err.(*core.PreconditionError); ok {
				c.JSON(http.StatusConflict, gin.H{"error": "needsSweet16", "activeTeams": precondition.ActiveTeams, "message": precondition.Error()})
				return
			}
			if err == services.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run analysis"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"report": report})
	}
}

// HandleRecalculateAllScores recomputes and persists every bracket's score
// for a tournament year. Restricted to operator and admin roles.
func HandleRecalculateAllScores(analysisService *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, ok := parseYear(c)
		if !ok {
			return
		}

		changes, err := analysisService.RecalculateAllScores(c.Request.Context(), year)
		if err != nil {
			if err == services.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recalculate scores"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"changes": changes})
	}
}
