package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tech-invent-api/export"
	"tech-invent-api/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportController serves the review portal's spreadsheet downloads.
type ExportController struct {
	svc *services.ProposalService
}

func NewExportController(svc *services.ProposalService) *ExportController {
	return &ExportController{svc: svc}
}

// Download renders a single proposal as a review sheet.
func (e *ExportController) Download(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid proposal id"})
		return
	}

	proposal, err := e.svc.GetProposal(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	buf, err := export.ProposalSheet(proposal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate document"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(proposal.EventName, ".xlsx")+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportList renders the currently filtered listing as a spreadsheet.
func (e *ExportController) ExportList(c *gin.Context) {
	filter, err := services.ParseProposalFilter(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposals, _, err := e.svc.Query(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch proposals"})
		return
	}

	buf, err := export.ProposalList(proposals)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate document"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="proposals.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
