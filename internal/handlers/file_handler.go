package handlers

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"aipromptweb_backend/internal/storage"
	"aipromptweb_backend/pkg/apperrors"
)

type FileHandler struct {
	*BaseHandler
	store storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		store:       store,
	}
}

// Serve streams a stored object. Objects are keyed by random UUID and
// never rewritten, so responses are cacheable forever.
func (h *FileHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || strings.Contains(key, "..") {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid object key"))
		return
	}

	reader, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("object not found"))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Cache-Control", storage.ImmutableCacheControl)
	c.DataFromReader(http.StatusOK, -1, contentType, reader, nil)
}
