package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tech-invent-api/models"
	"tech-invent-api/services"
)

// AdminProposalController is the review-portal surface over proposals:
// filtered listing, detail view, status transitions and content edits.
type AdminProposalController struct {
	svc *services.ProposalService
}

func NewAdminProposalController(svc *services.ProposalService) *AdminProposalController {
	return &AdminProposalController{svc: svc}
}

// List returns the flat, filtered, sorted proposal listing with owners
// populated. Resubmissions whose root fell outside the filter are counted
// in the orphans figure.
func (a *AdminProposalController) List(c *gin.Context) {
	filter, err := services.ParseProposalFilter(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposals, orphans, err := a.svc.Query(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch proposals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposals": proposals,
		"orphans":   orphans,
	})
}

// Get returns a single proposal with its owner populated.
func (a *AdminProposalController) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid proposal id"})
		return
	}

	proposal, err := a.svc.GetProposal(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// adminPatchRequest carries either a status transition (action
// "update_status" with status + remarks) or a full content edit (any other
// action, whole descriptive payload).
type adminPatchRequest struct {
	Action string `json:"action"`
	models.Proposal
}

// Patch applies a status update or a content edit to a proposal.
func (a *AdminProposalController) Patch(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid proposal id"})
		return
	}

	var req adminPatchRequest
	if err := bindStrictJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if req.Action == "update_status" {
		updated, notified, err := a.svc.UpdateStatus(id, req.Status, req.Remarks)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"proposal": updated,
			"notified": notified,
		})
		return
	}

	updated, err := a.svc.UpdateContent(id, &req.Proposal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": updated})
}
