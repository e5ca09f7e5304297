package pos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custompos/backend/internal/domain/catalog"
	"github.com/custompos/backend/internal/domain/pos"
	"github.com/custompos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Model names served by the session loader
const (
	ModelProduct = "product.product"
	ModelBrand   = "product.brand"
)

// LoadCacheKey is the cache key for the assembled load payload
const LoadCacheKey = "pos:load:v1"

// DefaultLoadCacheTTL bounds staleness of the cached payload
const DefaultLoadCacheTTL = 5 * time.Minute

// LoaderParams describes what the loader fetches for one model: which
// fields end up in each record, and whether inactive rows are included.
type LoaderParams struct {
	Model      string   `json:"model"`
	Fields     []string `json:"fields"`
	ActiveOnly bool     `json:"active_only"`
}

// HasField reports whether the params include the given field
func (p LoaderParams) HasField(name string) bool {
	for _, f := range p.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// LoaderRegistry holds the per-model loader parameters. Defaults are
// registered at construction; callers may extend a model's field list
// before the first load.
type LoaderRegistry struct {
	mu     sync.RWMutex
	params map[string]LoaderParams
}

// NewLoaderRegistry creates a registry with the default model parameters
func NewLoaderRegistry() *LoaderRegistry {
	r := &LoaderRegistry{params: make(map[string]LoaderParams)}
	r.Register(LoaderParams{
		Model:      ModelProduct,
		Fields:     []string{"display_name", "code", "barcode", "list_price", "unit", "brand_id"},
		ActiveOnly: true,
	})
	r.Register(LoaderParams{
		Model:      ModelBrand,
		Fields:     []string{"name", "description", "logo"},
		ActiveOnly: false,
	})
	return r
}

// Register sets the parameters for a model, replacing any existing entry
func (r *LoaderRegistry) Register(params LoaderParams) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.params[params.Model] = params
}

// ExtendFields appends fields to a model's parameter list, skipping duplicates
func (r *LoaderRegistry) ExtendFields(model string, fields ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	params, ok := r.params[model]
	if !ok {
		return shared.NewDomainError("UNKNOWN_MODEL", fmt.Sprintf("No loader parameters registered for model '%s'", model))
	}
	for _, field := range fields {
		if !params.HasField(field) {
			params.Fields = append(params.Fields, field)
		}
	}
	r.params[model] = params
	return nil
}

// Params returns the parameters for a model
func (r *LoaderRegistry) Params(model string) (LoaderParams, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	params, ok := r.params[model]
	return params, ok
}

// Models returns the registered model names in stable order
func (r *LoaderRegistry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	models := make([]string, 0, len(r.params))
	for model := range r.params {
		models = append(models, model)
	}
	sort.Strings(models)
	return models
}

// Record is one row of reference data shipped to the register
type Record map[string]interface{}

// LoadDataResponse is the full reference payload a register needs
// when its session starts
type LoadDataResponse struct {
	SessionID string              `json:"session_id"`
	LoadedAt  time.Time           `json:"loaded_at"`
	Models    map[string][]Record `json:"models"`
}

// LoadCache caches the assembled load payload between session starts.
// Implemented by the infrastructure cache layer.
type LoadCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// LogoURLProvider hands out short-lived download URLs for stored logos
type LogoURLProvider interface {
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// LoaderService assembles the reference data payload a register loads at
// session start: every sellable product plus the full brand list.
type LoaderService struct {
	registry    *LoaderRegistry
	sessionRepo pos.SessionRepository
	productRepo catalog.ProductRepository
	brandRepo   catalog.BrandRepository
	logoURLs    LogoURLProvider
	cache       LoadCache
	cacheTTL    time.Duration
	logoExpiry  time.Duration
	maxRecords  int
}

// LoaderServiceOption configures a LoaderService
type LoaderServiceOption func(*LoaderService)

// WithCacheTTL overrides how long the assembled payload stays cached
func WithCacheTTL(ttl time.Duration) LoaderServiceOption {
	return func(s *LoaderService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithLogoURLExpiry overrides the lifetime of presigned logo URLs
func WithLogoURLExpiry(expiry time.Duration) LoaderServiceOption {
	return func(s *LoaderService) {
		if expiry > 0 {
			s.logoExpiry = expiry
		}
	}
}

// WithMaxRecordCount caps how many rows a single model may contribute
func WithMaxRecordCount(max int) LoaderServiceOption {
	return func(s *LoaderService) {
		if max > 0 {
			s.maxRecords = max
		}
	}
}

// NewLoaderService creates a new LoaderService
func NewLoaderService(
	registry *LoaderRegistry,
	sessionRepo pos.SessionRepository,
	productRepo catalog.ProductRepository,
	brandRepo catalog.BrandRepository,
	logoURLs LogoURLProvider,
	cache LoadCache,
	opts ...LoaderServiceOption,
) *LoaderService {
	s := &LoaderService{
		registry:    registry,
		sessionRepo: sessionRepo,
		productRepo: productRepo,
		brandRepo:   brandRepo,
		logoURLs:    logoURLs,
		cache:       cache,
		cacheTTL:    DefaultLoadCacheTTL,
		logoExpiry:  1 * time.Hour,
		maxRecords:  10000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry exposes the loader registry for inspection endpoints
func (s *LoaderService) Registry() *LoaderRegistry {
	return s.registry
}

// LoadData returns the reference payload for a session. The model data is
// cached across sessions; only an open session may load it.
func (s *LoaderService) LoadData(ctx context.Context, sessionID uuid.UUID) (*LoadDataResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SESSION_NOT_FOUND", "Session not found")
		}
		return nil, err
	}
	if !session.IsOpen() {
		return nil, shared.NewDomainError("SESSION_CLOSED", "Reference data can only be loaded for an opened session")
	}

	models, err := s.loadModels(ctx)
	if err != nil {
		return nil, err
	}

	return &LoadDataResponse{
		SessionID: session.ID.String(),
		LoadedAt:  time.Now(),
		Models:    models,
	}, nil
}

// Invalidate drops the cached payload. Called after brand or product mutations.
func (s *LoaderService) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, LoadCacheKey)
}

func (s *LoaderService) loadModels(ctx context.Context) (map[string][]Record, error) {
	if cached, ok, err := s.cache.Get(ctx, LoadCacheKey); err == nil && ok {
		var models map[string][]Record
		if err := json.Unmarshal(cached, &models); err == nil {
			return models, nil
		}
		// A corrupt entry is dropped and rebuilt
		_ = s.cache.Delete(ctx, LoadCacheKey)
	}

	models := make(map[string][]Record)
	for _, model := range s.registry.Models() {
		params, _ := s.registry.Params(model)

		var (
			records []Record
			err     error
		)
		switch model {
		case ModelProduct:
			records, err = s.loadProducts(ctx, params)
		case ModelBrand:
			records, err = s.loadBrands(ctx, params)
		default:
			err = shared.NewDomainError("UNKNOWN_MODEL", fmt.Sprintf("No loader implemented for model '%s'", model))
		}
		if err != nil {
			return nil, err
		}
		models[model] = records
	}

	if payload, err := json.Marshal(models); err == nil {
		_ = s.cache.Set(ctx, LoadCacheKey, payload, s.cacheTTL)
	}

	return models, nil
}

func (s *LoaderService) loadProducts(ctx context.Context, params LoaderParams) ([]Record, error) {
	var (
		products []catalog.Product
		err      error
	)
	if params.ActiveOnly {
		products, err = s.productRepo.FindActive(ctx)
	} else {
		products, err = s.productRepo.FindAll(ctx, s.allRowsFilter())
	}
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(products))
	for i := range products {
		p := &products[i]
		record := Record{"id": p.ID.String()}
		if params.HasField("display_name") {
			record["display_name"] = p.Name
		}
		if params.HasField("code") {
			record["code"] = p.Code
		}
		if params.HasField("barcode") {
			record["barcode"] = p.Barcode
		}
		if params.HasField("list_price") {
			record["list_price"] = p.SellingPrice
		}
		if params.HasField("unit") {
			record["unit"] = p.Unit
		}
		if params.HasField("brand_id") {
			if p.BrandID != nil {
				record["brand_id"] = p.BrandID.String()
			} else {
				record["brand_id"] = nil
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// loadBrands returns every brand regardless of status so the register can
// render brand info on historical receipts.
func (s *LoaderService) loadBrands(ctx context.Context, params LoaderParams) ([]Record, error) {
	brands, err := s.brandRepo.FindAll(ctx, s.allRowsFilter())
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(brands))
	for i := range brands {
		b := &brands[i]
		record := Record{"id": b.ID.String()}
		if params.HasField("name") {
			record["name"] = b.Name
		}
		if params.HasField("description") {
			record["description"] = b.Description
		}
		if params.HasField("logo") {
			record["logo"] = s.logoURL(ctx, b)
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *LoaderService) logoURL(ctx context.Context, b *catalog.Brand) interface{} {
	if !b.HasLogo() || s.logoURLs == nil {
		return nil
	}
	url, _, err := s.logoURLs.GenerateDownloadURL(ctx, b.LogoKey, s.logoExpiry)
	if err != nil {
		return nil
	}
	return url
}

func (s *LoaderService) allRowsFilter() shared.Filter {
	f := shared.DefaultFilter()
	f.PageSize = s.maxRecords
	return f
}
