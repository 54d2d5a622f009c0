package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/burndown/roadmap-api/pkg/models"
	"github.com/burndown/roadmap-api/pkg/planner"
)

// ValidateInput applies strict checks to a planning payload without planning it
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.RoadmapInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	err := models.Validate(input)
	if err == nil {
		err = planner.CheckHorizon(h.build(input.Projects, input.TeamMembers, input.Today))
	}
	if err != nil {
		var invalid *models.InvalidInputError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusOK, gin.H{"valid": false, "field": invalid.Field, "error": invalid.Reason})
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	schedulable := 0
	for _, p := range input.Projects {
		if planner.RemainingMandays(p) > 0 {
			schedulable++
		}
	}
	capacity := planner.TeamCapacity(input.TeamMembers)

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"project_count":     len(input.Projects),
			"schedulable_count": schedulable,
			"member_count":      len(input.TeamMembers),
			"team_fte":          capacity.Baseline,
			"fallback_fte_used": capacity.Fallback,
		},
	})
}
