package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetRuns returns the scope's recent roadmap run ledger with totals
func (h *Handler) GetRuns(c *gin.Context) {
	scopeID := c.Param("scope_id")

	runs, err := h.Runs.ListRuns(c.Request.Context(), scopeID, 30)
	if err != nil {
		h.Log.Error("failed to list runs", "scope_id", scopeID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch run history"})
		return
	}

	var totalRuns, totalProjects, totalItems int64
	for _, r := range runs {
		totalRuns += int64(r.RunCount)
		totalProjects += int64(r.TotalProjects)
		totalItems += int64(r.TotalItems)
	}

	c.JSON(http.StatusOK, gin.H{
		"scope_id":    scopeID,
		"run_history": runs,
		"totals": gin.H{
			"runs":     totalRuns,
			"projects": totalProjects,
			"items":    totalItems,
		},
	})
}
