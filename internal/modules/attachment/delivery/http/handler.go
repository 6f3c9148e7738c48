package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	attachment "github.com/stepup-fit/stepup-server/internal/modules/attachment/service"
	"github.com/stepup-fit/stepup-server/pkg/response"
)

type AttachmentHandler struct {
	service attachment.AttachmentService
}

func NewAttachmentHandler(service attachment.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

// Upload handles POST /api/upload (multipart form, field "file").
func (h *AttachmentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer file.Close()

	url, err := h.service.Upload(c.Request.Context(), file, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Delete handles DELETE /api/upload with a JSON body holding the URL.
func (h *AttachmentHandler) Delete(c *gin.Context) {
	var body struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), body.URL); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}
