package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tech-invent-api/models"
	"tech-invent-api/services"
)

// ProposalController is the site-portal surface: submitting proposals and
// viewing them as resubmission threads.
type ProposalController struct {
	svc *services.ProposalService
}

func NewProposalController(svc *services.ProposalService) *ProposalController {
	return &ProposalController{svc: svc}
}

// submitRequest is the full proposal payload. Status, remarks, ids and
// dates may appear (resubmission forms post the previous version
// verbatim) but the engine discards them; anything outside the known
// field set is rejected.
type submitRequest struct {
	models.Proposal
	ResubmittedFromID *int `json:"resubmittedFromId"`
}

// bindStrictJSON decodes the body rejecting unknown fields.
func bindStrictJSON(c *gin.Context, dst interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// Submit creates a new proposal, optionally as a resubmission of an
// earlier one.
func (p *ProposalController) Submit(c *gin.Context) {
	userID := c.GetInt("userID")

	var req submitRequest
	if err := bindStrictJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	created, err := p.svc.Submit(userID, &req.Proposal, req.ResubmittedFromID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Proposal submitted successfully",
		"proposal": created,
	})
}

// ListThreads returns the caller's proposals grouped into threads, each
// root carrying its history.
func (p *ProposalController) ListThreads(c *gin.Context) {
	userID := c.GetInt("userID")

	roots, err := p.svc.ListThreads(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch proposals"})
		return
	}

	c.JSON(http.StatusOK, roots)
}

// Get returns one proposal owned by the caller.
func (p *ProposalController) Get(c *gin.Context) {
	userID := c.GetInt("userID")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid proposal id"})
		return
	}

	proposal, err := p.svc.GetProposalForUser(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// GetThread returns the full version history of the thread the given
// proposal belongs to, most recent first.
func (p *ProposalController) GetThread(c *gin.Context) {
	userID := c.GetInt("userID")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid proposal id"})
		return
	}

	thread, err := p.svc.GetThreadForUser(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, thread)
}

// respondServiceError maps engine errors onto the API error taxonomy.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrProposalNotFound), errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &verr),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrRemarksRequired),
		errors.Is(err, services.ErrContentEditNotAllowed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
