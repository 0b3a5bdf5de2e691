package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aipromptweb_backend/internal/services"
	"aipromptweb_backend/internal/services/dto"
	"aipromptweb_backend/pkg/apperrors"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

// Upload accepts a multipart form with a single "file" part and stores
// it under a fresh key.
func (h *UploadHandler) Upload(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("file is required"))
		return
	}

	key, err := h.uploadService.Upload(c.Request.Context(), principal, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{Path: key})
}
