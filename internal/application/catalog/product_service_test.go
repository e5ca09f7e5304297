package catalog

import (
	"context"
	"testing"

	"github.com/custompos/backend/internal/domain/catalog"
	"github.com/custompos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product without brand", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		brandRepo := new(MockBrandRepository)
		service := NewProductService(productRepo, brandRepo)

		productRepo.On("ExistsByCode", ctx, "SKU-001").Return(false, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, CreateProductRequest{Code: "SKU-001", Name: "Espresso", Unit: "cup"})
		require.NoError(t, err)

		assert.Equal(t, "SKU-001", resp.Code)
		assert.Nil(t, resp.BrandID)
		brandRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("creates product with existing brand", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		brandRepo := new(MockBrandRepository)
		service := NewProductService(productRepo, brandRepo)

		brand, _ := catalog.NewBrand("Acme", "")

		productRepo.On("ExistsByCode", ctx, "SKU-001").Return(false, nil)
		brandRepo.On("FindByID", ctx, brand.ID).Return(brand, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, CreateProductRequest{Code: "SKU-001", Name: "Espresso", Unit: "cup", BrandID: &brand.ID})
		require.NoError(t, err)
		require.NotNil(t, resp.BrandID)
		assert.Equal(t, brand.ID, *resp.BrandID)
	})

	t.Run("rejects unknown brand", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		brandRepo := new(MockBrandRepository)
		service := NewProductService(productRepo, brandRepo)

		brandID := uuid.New()
		productRepo.On("ExistsByCode", ctx, "SKU-001").Return(false, nil)
		brandRepo.On("FindByID", ctx, brandID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateProductRequest{Code: "SKU-001", Name: "Espresso", Unit: "cup", BrandID: &brandID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Brand not found")
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		brandRepo := new(MockBrandRepository)
		service := NewProductService(productRepo, brandRepo)

		productRepo.On("ExistsByCode", ctx, "SKU-001").Return(true, nil)

		_, err := service.Create(ctx, CreateProductRequest{Code: "SKU-001", Name: "Espresso", Unit: "cup"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestProductService_SetBrand(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns brand to product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		brandRepo := new(MockBrandRepository)
		service := NewProductService(productRepo, brandRepo)

		product, _ := catalog.NewProduct("SKU-001", "Espresso", "cup")
		brand, _ := catalog.NewBrand("Acme", "")

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		brandRepo.On("FindByID", ctx, brand.ID).Return(brand, nil)
		productRepo.On("Save", ctx, product).Return(nil)

		resp, err := service.SetBrand(ctx, product.ID, SetProductBrandRequest{BrandID: &brand.ID})
		require.NoError(t, err)
		require.NotNil(t, resp.BrandID)
		assert.Equal(t, brand.ID, *resp.BrandID)
	})

	t.Run("clears brand with nil", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		brandRepo := new(MockBrandRepository)
		service := NewProductService(productRepo, brandRepo)

		product, _ := catalog.NewProduct("SKU-001", "Espresso", "cup")
		brandID := uuid.New()
		product.SetBrand(&brandID)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)

		resp, err := service.SetBrand(ctx, product.ID, SetProductBrandRequest{BrandID: nil})
		require.NoError(t, err)
		assert.Nil(t, resp.BrandID)
		brandRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown brand", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		brandRepo := new(MockBrandRepository)
		service := NewProductService(productRepo, brandRepo)

		product, _ := catalog.NewProduct("SKU-001", "Espresso", "cup")
		brandID := uuid.New()

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		brandRepo.On("FindByID", ctx, brandID).Return(nil, shared.ErrNotFound)

		_, err := service.SetBrand(ctx, product.ID, SetProductBrandRequest{BrandID: &brandID})
		require.Error(t, err)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("passes brand filter through", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		brandRepo := new(MockBrandRepository)
		service := NewProductService(productRepo, brandRepo)

		brandID := uuid.New()
		product, _ := catalog.NewProduct("SKU-001", "Espresso", "cup")

		productRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters != nil && f.Filters["brand_id"] == brandID
		})).Return([]catalog.Product{*product}, nil)
		productRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

		products, total, err := service.List(ctx, ProductListFilter{Page: 1, PageSize: 20, BrandID: &brandID})
		require.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, int64(1), total)
	})
}
