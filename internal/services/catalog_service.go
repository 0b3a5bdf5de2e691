package services

import (
	"context"
	"strings"
	"time"

	"aipromptweb_backend/internal/logger"
	"aipromptweb_backend/internal/models"
	"aipromptweb_backend/internal/repositories"
	"aipromptweb_backend/internal/services/dto"
	"aipromptweb_backend/internal/storage"
	"aipromptweb_backend/pkg/apperrors"
)

const (
	defaultPage     = 1
	defaultPageSize = 7
)

type CatalogService interface {
	// List returns one catalog page with image URLs grouped per
	// description, newest descriptions first.
	List(page, pageSize int) (*dto.CatalogPage, error)
	Create(principal dto.Principal, req *dto.CreateDescriptionRequest) (*dto.CreateDescriptionResponse, error)
	UpdateDetails(principal dto.Principal, req *dto.UpdateDescriptionRequest) error
	RegisterImageURL(principal dto.Principal, req *dto.RegisterImageURLRequest) error
	// Delete removes the stored objects for a description's images, then
	// its image rows and the description itself in one transaction.
	// Object store failures are logged and do not abort the delete.
	Delete(ctx context.Context, principal dto.Principal, descriptionID string) error
}

type CatalogServiceImpl struct {
	descRepo repositories.DescriptionRepository
	store    storage.Storage
}

func NewCatalogService(descRepo repositories.DescriptionRepository, store storage.Storage) CatalogService {
	return &CatalogServiceImpl{
		descRepo: descRepo,
		store:    store,
	}
}

func (s *CatalogServiceImpl) List(page, pageSize int) (*dto.CatalogPage, error) {
	if page <= 0 {
		page = defaultPage
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	total, err := s.descRepo.Count()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	offset := (page - 1) * pageSize
	rows, err := s.descRepo.FindPage(pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := s.groupRows(rows)

	var totalPages int64
	if total > 0 {
		totalPages = (total + int64(pageSize) - 1) / int64(pageSize)
	}

	return &dto.CatalogPage{
		Data: items,
		Pagination: dto.Pagination{
			Page:         page,
			PageSize:     pageSize,
			TotalRecords: total,
			TotalPages:   totalPages,
		},
	}, nil
}

// groupRows folds the joined rows into one item per description, keeping
// the row order from the query: descriptions newest first, URLs oldest
// first within each description.
func (s *CatalogServiceImpl) groupRows(rows []repositories.DescriptionImageRow) []dto.CatalogItem {
	items := make([]dto.CatalogItem, 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		i, seen := index[row.ID]
		if !seen {
			items = append(items, dto.CatalogItem{
				ID:                 row.ID,
				ImageName:          row.ImageName,
				ImageType:          row.ImageType,
				DescriptionDetails: row.DescriptionDetails,
				Priority:           row.Priority,
				CreatedOn:          row.CreatedOn,
				ImageURLs:          []dto.ImageURLEntry{},
			})
			i = len(items) - 1
			index[row.ID] = i
		}
		if row.ImageURL.Valid && row.ImageURL.String != "" {
			items[i].ImageURLs = append(items[i].ImageURLs, dto.ImageURLEntry{
				ImageURL: s.publicURL(row.ImageURL.String),
			})
		}
	}
	return items
}

func (s *CatalogServiceImpl) Create(principal dto.Principal, req *dto.CreateDescriptionRequest) (*dto.CreateDescriptionResponse, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.ErrInsufficientRole
	}

	desc := &models.Description{
		ImageName:          req.ImageName,
		ImageType:          req.ImageType,
		DescriptionDetails: req.DescriptionDetails,
		Priority:           req.PriorityValue(),
		CreatedOn:          time.Now().UnixMilli(),
	}

	if err := s.descRepo.Create(desc); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.CreateDescriptionResponse{ID: desc.ID}, nil
}

func (s *CatalogServiceImpl) UpdateDetails(principal dto.Principal, req *dto.UpdateDescriptionRequest) error {
	if !principal.IsAdmin() {
		return apperrors.ErrInsufficientRole
	}
	if strings.TrimSpace(req.DescriptionDetails) == "" {
		return apperrors.NewBadRequestError("description details must not be empty")
	}

	if err := s.descRepo.UpdateDetails(req.ID, req.DescriptionDetails); err != nil {
		if apperrors.Is(err, repositories.ErrDescriptionNotFound) {
			return apperrors.NewNotFoundError("description not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CatalogServiceImpl) RegisterImageURL(principal dto.Principal, req *dto.RegisterImageURLRequest) error {
	if !principal.IsAdmin() {
		return apperrors.ErrInsufficientRole
	}

	img := &models.ImageURL{
		DescriptionID: req.DescriptionID,
		ImageURL:      req.ImageURL,
		CreatedOn:     time.Now().UnixMilli(),
	}

	if err := s.descRepo.CreateImageURL(img); err != nil {
		if apperrors.Is(err, repositories.ErrDescriptionNotFound) {
			return apperrors.NewNotFoundError("description not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CatalogServiceImpl) Delete(ctx context.Context, principal dto.Principal, descriptionID string) error {
	if !principal.IsAdmin() {
		return apperrors.ErrInsufficientRole
	}

	images, err := s.descRepo.FindImageURLs(descriptionID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	for _, img := range images {
		key, ok := s.objectKey(img.ImageURL)
		if !ok {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			logger.CtxWarn(ctx, "failed to delete stored object, continuing",
				"key", key,
				"description_id", descriptionID,
				"error", err.Error(),
			)
		}
	}

	if err := s.descRepo.DeleteWithImages(descriptionID); err != nil {
		if apperrors.Is(err, repositories.ErrDescriptionNotFound) {
			return apperrors.NewNotFoundError("description not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// publicURL leaves already-qualified URLs untouched and resolves bare
// object keys against the store's public base.
func (s *CatalogServiceImpl) publicURL(value string) string {
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return s.store.PublicURL(value)
}

// objectKey recovers the store key from a stored value, which may be a
// bare key or a fully qualified public URL. URLs outside the store's
// public base carry no deletable object.
func (s *CatalogServiceImpl) objectKey(value string) (string, bool) {
	if prefix := s.store.PublicURL(""); prefix != "" {
		value = strings.TrimPrefix(value, prefix)
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return "", false
	}
	key := strings.TrimPrefix(value, "/")
	return key, key != ""
}
