package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/custompos/backend/internal/application/catalog"
	"github.com/custompos/backend/internal/domain/catalog"
	"github.com/custompos/backend/internal/domain/shared"
	"github.com/custompos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type brandTestEnv struct {
	brandRepo   *MockBrandRepository
	productRepo *MockProductRepository
	invalidator *countingInvalidator
	router      *gin.Engine
}

func newBrandTestEnv() *brandTestEnv {
	env := &brandTestEnv{
		brandRepo:   new(MockBrandRepository),
		productRepo: new(MockProductRepository),
		invalidator: &countingInvalidator{},
	}

	brandService := catalogapp.NewBrandService(env.brandRepo, env.productRepo)
	h := NewBrandHandler(brandService, nil, env.invalidator)

	env.router = gin.New()
	env.router.POST("/brands", h.Create)
	env.router.GET("/brands", h.List)
	env.router.GET("/brands/:id", h.GetByID)
	env.router.PUT("/brands/:id", h.Update)
	env.router.DELETE("/brands/:id", h.Delete)
	return env
}

func TestBrandHandlerCreate(t *testing.T) {
	t.Run("creates brand and drops load cache", func(t *testing.T) {
		env := newBrandTestEnv()
		env.brandRepo.On("ExistsByName", mock.Anything, "Acme").Return(false, nil)
		env.brandRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Brand")).Return(nil)

		body, _ := json.Marshal(map[string]any{
			"name":        "Acme",
			"description": "House brand",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/brands", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, int64(1), env.invalidator.calls.Load())

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		env.brandRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		env := newBrandTestEnv()
		env.brandRepo.On("ExistsByName", mock.Anything, "Acme").Return(true, nil)

		body, _ := json.Marshal(map[string]any{"name": "Acme"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/brands", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, int64(0), env.invalidator.calls.Load())
	})

	t.Run("rejects missing name", func(t *testing.T) {
		env := newBrandTestEnv()

		body, _ := json.Marshal(map[string]any{"description": "no name"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/brands", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBrandHandlerGetByID(t *testing.T) {
	t.Run("returns brand", func(t *testing.T) {
		env := newBrandTestEnv()
		brand, err := catalog.NewBrand("Acme", "")
		require.NoError(t, err)
		env.brandRepo.On("FindByID", mock.Anything, brand.ID).Return(brand, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/brands/"+brand.ID.String(), nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Acme")
	})

	t.Run("returns 404 for unknown brand", func(t *testing.T) {
		env := newBrandTestEnv()
		env.brandRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/brands/"+uuid.NewString(), nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeNotFound)
	})

	t.Run("returns 400 for malformed id", func(t *testing.T) {
		env := newBrandTestEnv()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/brands/not-a-uuid", nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBrandHandlerList(t *testing.T) {
	t.Run("lists with explicit pagination", func(t *testing.T) {
		env := newBrandTestEnv()
		a, _ := catalog.NewBrand("Acme", "")
		b, _ := catalog.NewBrand("Globex", "")
		env.brandRepo.On("FindAll", mock.Anything, mock.Anything).Return([]catalog.Brand{*a, *b}, nil)
		env.brandRepo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/brands?page=1&page_size=20", nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(2), resp.Meta.Total)
	})

	t.Run("applies default pagination without query parameters", func(t *testing.T) {
		env := newBrandTestEnv()
		a, _ := catalog.NewBrand("Acme", "")
		env.brandRepo.On("FindAll", mock.Anything, mock.Anything).Return([]catalog.Brand{*a}, nil)
		env.brandRepo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/brands", nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 1, resp.Meta.Page)
		assert.Equal(t, 20, resp.Meta.PageSize)
	})
}

func TestBrandHandlerDelete(t *testing.T) {
	t.Run("refuses delete while products reference the brand", func(t *testing.T) {
		env := newBrandTestEnv()
		brand, err := catalog.NewBrand("Acme", "")
		require.NoError(t, err)
		env.brandRepo.On("FindByID", mock.Anything, brand.ID).Return(brand, nil)
		env.productRepo.On("CountByBrand", mock.Anything, brand.ID).Return(int64(3), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/brands/"+brand.ID.String(), nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, int64(0), env.invalidator.calls.Load())
	})

	t.Run("deletes unreferenced brand", func(t *testing.T) {
		env := newBrandTestEnv()
		brand, err := catalog.NewBrand("Acme", "")
		require.NoError(t, err)
		env.brandRepo.On("FindByID", mock.Anything, brand.ID).Return(brand, nil)
		env.productRepo.On("CountByBrand", mock.Anything, brand.ID).Return(int64(0), nil)
		env.brandRepo.On("Delete", mock.Anything, brand.ID).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/brands/"+brand.ID.String(), nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, int64(1), env.invalidator.calls.Load())
	})
}
