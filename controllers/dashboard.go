package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tech-invent-api/services"
)

// DashboardController serves the admin dashboard aggregates.
type DashboardController struct {
	svc *services.ProposalService
}

func NewDashboardController(svc *services.ProposalService) *DashboardController {
	return &DashboardController{svc: svc}
}

// Stats returns counts, financial rollups and the top submitters.
func (d *DashboardController) Stats(c *gin.Context) {
	stats, err := d.svc.DashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
