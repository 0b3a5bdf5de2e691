package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aipromptweb_backend/internal/services"
	"aipromptweb_backend/internal/services/dto"
)

type CatalogHandler struct {
	*BaseHandler
	catalogService services.CatalogService
}

func NewCatalogHandler(base *BaseHandler, catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    base,
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) List(c *gin.Context) {
	page := ParseQueryInt(c, "page", 0)
	pageSize := ParseQueryInt(c, "pageSize", 0)

	result, err := h.catalogService.List(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}

	var req dto.CreateDescriptionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.catalogService.Create(principal, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *CatalogHandler) UpdateDetails(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}

	var req dto.UpdateDescriptionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.catalogService.UpdateDetails(principal, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Description updated"})
}

func (h *CatalogHandler) RegisterImageURL(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}

	var req dto.RegisterImageURLRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.catalogService.RegisterImageURL(principal, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Image URL registered"})
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}

	var req dto.DeleteDescriptionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), principal, req.DescriptionID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Description deleted"})
}
