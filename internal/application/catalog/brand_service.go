package catalog

import (
	"context"
	"errors"

	"github.com/custompos/backend/internal/domain/catalog"
	"github.com/custompos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BrandService handles brand-related business operations
type BrandService struct {
	brandRepo   catalog.BrandRepository
	productRepo catalog.ProductRepository
}

// NewBrandService creates a new BrandService
func NewBrandService(brandRepo catalog.BrandRepository, productRepo catalog.ProductRepository) *BrandService {
	return &BrandService{
		brandRepo:   brandRepo,
		productRepo: productRepo,
	}
}

// Create creates a new brand
func (s *BrandService) Create(ctx context.Context, req CreateBrandRequest) (*BrandResponse, error) {
	brand, err := catalog.NewBrand(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	// Uniqueness is checked on the trimmed name the aggregate settled on
	exists, err := s.brandRepo.ExistsByName(ctx, brand.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Brand with this name already exists")
	}

	if req.SortOrder != nil {
		brand.SetSortOrder(*req.SortOrder)
	}

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// Update updates an existing brand
func (s *BrandService) Update(ctx context.Context, id uuid.UUID, req UpdateBrandRequest) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Brand not found")
		}
		return nil, err
	}

	name := brand.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := brand.Description
	if req.Description != nil {
		description = *req.Description
	}

	if err := brand.Update(name, description); err != nil {
		return nil, err
	}

	if req.Name != nil {
		other, err := s.brandRepo.FindByName(ctx, brand.Name)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if other != nil && other.ID != brand.ID {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Brand with this name already exists")
		}
	}

	if req.SortOrder != nil {
		brand.SetSortOrder(*req.SortOrder)
	}

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// GetByID retrieves a brand by ID
func (s *BrandService) GetByID(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Brand not found")
		}
		return nil, err
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// List retrieves brands with filtering and pagination
func (s *BrandService) List(ctx context.Context, filter BrandListFilter) ([]BrandResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	f.OrderBy = filter.OrderBy
	f.OrderDir = filter.OrderDir
	if filter.Status != "" {
		f.Filters = map[string]interface{}{"status": filter.Status}
	}

	brands, err := s.brandRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.brandRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	return ToBrandResponses(brands), total, nil
}

// Activate activates a brand
func (s *BrandService) Activate(ctx context.Context, id uuid.UUID) error {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Brand not found")
		}
		return err
	}

	if err := brand.Activate(); err != nil {
		return err
	}

	return s.brandRepo.Save(ctx, brand)
}

// Deactivate deactivates a brand
func (s *BrandService) Deactivate(ctx context.Context, id uuid.UUID) error {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Brand not found")
		}
		return err
	}

	if err := brand.Deactivate(); err != nil {
		return err
	}

	return s.brandRepo.Save(ctx, brand)
}

// Delete deletes a brand. Brands referenced by products cannot be deleted.
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Brand not found")
		}
		return err
	}

	count, err := s.productRepo.CountByBrand(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("BRAND_IN_USE", "Cannot delete a brand that is assigned to products")
	}

	return s.brandRepo.Delete(ctx, id)
}
