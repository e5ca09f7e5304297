package handler

import (
	"context"

	catalogapp "github.com/custompos/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoadCacheInvalidator drops cached register load payloads after catalog
// writes so the next load sees fresh data.
type LoadCacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// BrandHandler handles brand-related API endpoints
type BrandHandler struct {
	BaseHandler
	brandService *catalogapp.BrandService
	logoService  *catalogapp.BrandLogoService
	invalidator  LoadCacheInvalidator
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(
	brandService *catalogapp.BrandService,
	logoService *catalogapp.BrandLogoService,
	invalidator LoadCacheInvalidator,
) *BrandHandler {
	return &BrandHandler{
		brandService: brandService,
		logoService:  logoService,
		invalidator:  invalidator,
	}
}

func (h *BrandHandler) invalidateLoadCache(c *gin.Context) {
	if h.invalidator == nil {
		return
	}
	// Best effort. A stale cache entry expires on its own TTL.
	_ = h.invalidator.Invalidate(c.Request.Context())
}

// Create creates a new brand
func (h *BrandHandler) Create(c *gin.Context) {
	var req catalogapp.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	brand, err := h.brandService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.invalidateLoadCache(c)
	h.Created(c, brand)
}

// GetByID retrieves a brand by its ID
func (h *BrandHandler) GetByID(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	brand, err := h.brandService.GetByID(c.Request.Context(), brandID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, brand)
}

// List retrieves a paginated list of brands
func (h *BrandHandler) List(c *gin.Context) {
	var filter catalogapp.BrandListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	brands, total, err := h.brandService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, brands, total, filter.Page, filter.PageSize)
}

// Update updates an existing brand
func (h *BrandHandler) Update(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	var req catalogapp.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	brand, err := h.brandService.Update(c.Request.Context(), brandID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.invalidateLoadCache(c)
	h.Success(c, brand)
}

// Activate activates an inactive brand
func (h *BrandHandler) Activate(c *gin.Context) {
	h.setStatus(c, h.brandService.Activate)
}

// Deactivate deactivates an active brand
func (h *BrandHandler) Deactivate(c *gin.Context) {
	h.setStatus(c, h.brandService.Deactivate)
}

func (h *BrandHandler) setStatus(c *gin.Context, transition func(context.Context, uuid.UUID) error) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	if err := transition(c.Request.Context(), brandID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.invalidateLoadCache(c)

	brand, err := h.brandService.GetByID(c.Request.Context(), brandID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brand)
}

// Delete deletes a brand that no product references
func (h *BrandHandler) Delete(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	if err := h.brandService.Delete(c.Request.Context(), brandID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.invalidateLoadCache(c)
	h.NoContent(c)
}

// InitiateLogoUpload returns a presigned URL for uploading a brand logo
func (h *BrandHandler) InitiateLogoUpload(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	var req catalogapp.InitiateLogoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.logoService.InitiateUpload(c.Request.Context(), brandID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ConfirmLogoUpload records an uploaded logo on the brand
func (h *BrandHandler) ConfirmLogoUpload(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	var req catalogapp.ConfirmLogoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	brand, err := h.logoService.ConfirmUpload(c.Request.Context(), brandID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.invalidateLoadCache(c)
	h.Success(c, brand)
}

// GetLogoDownloadURL returns a presigned URL for downloading a brand logo
func (h *BrandHandler) GetLogoDownloadURL(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	resp, err := h.logoService.GetDownloadURL(c.Request.Context(), brandID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveLogo removes the logo from a brand
func (h *BrandHandler) RemoveLogo(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	if err := h.logoService.RemoveLogo(c.Request.Context(), brandID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.invalidateLoadCache(c)
	h.NoContent(c)
}
