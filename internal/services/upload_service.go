package services

import (
	"context"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"aipromptweb_backend/internal/services/dto"
	"aipromptweb_backend/internal/storage"
	"aipromptweb_backend/pkg/apperrors"
)

// defaultUploadExt is assumed when the client filename carries no
// extension; uploads are webp in practice.
const defaultUploadExt = ".webp"

type UploadService interface {
	// Upload stores the file under a fresh random key and returns that
	// key. Admin only.
	Upload(ctx context.Context, principal dto.Principal, file *multipart.FileHeader) (string, error)
}

type UploadServiceImpl struct {
	store storage.Storage
}

func NewUploadService(store storage.Storage) UploadService {
	return &UploadServiceImpl{store: store}
}

func (s *UploadServiceImpl) Upload(ctx context.Context, principal dto.Principal, file *multipart.FileHeader) (string, error) {
	if !principal.IsAdmin() {
		return "", apperrors.ErrInsufficientRole
	}
	if file == nil {
		return "", apperrors.NewBadRequestError("file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = defaultUploadExt
	}
	key := uuid.NewString() + ext

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.NewBadRequestError("failed to read uploaded file")
	}
	defer src.Close()

	if err := s.store.Save(ctx, key, src, contentType, storage.ImmutableCacheControl); err != nil {
		return "", apperrors.UpstreamError(err, "object_storage")
	}
	return key, nil
}
