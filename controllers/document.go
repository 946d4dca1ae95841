package controllers

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"tech-invent-api/storage"
)

// DocumentController issues upload signatures for proposal attachments.
// Files go straight from the browser to the object store; only the
// resulting URLs come back through the proposal payload.
type DocumentController struct {
	store *storage.Client
}

func NewDocumentController(store *storage.Client) *DocumentController {
	return &DocumentController{store: store}
}

var folderPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

type signUploadRequest struct {
	Folder string `json:"folder" binding:"required"`
}

// SignUpload returns a presigned PUT URL and the final object URL for one
// document.
func (d *DocumentController) SignUpload(c *gin.Context) {
	var req signUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !folderPattern.MatchString(req.Folder) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder name"})
		return
	}

	signed, err := d.store.SignUpload(c.Request.Context(), req.Folder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign upload"})
		return
	}

	c.JSON(http.StatusOK, signed)
}
