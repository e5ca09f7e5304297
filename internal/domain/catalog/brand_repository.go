package catalog

import (
	"context"

	"github.com/custompos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BrandRepository defines the interface for brand persistence
type BrandRepository interface {
	// FindByID finds a brand by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)

	// FindByName finds a brand by its exact name
	FindByName(ctx context.Context, name string) (*Brand, error)

	// FindAll finds all brands matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Brand, error)

	// FindActive finds all active brands ordered for display
	FindActive(ctx context.Context) ([]Brand, error)

	// Save creates or updates a brand
	Save(ctx context.Context, brand *Brand) error

	// Delete deletes a brand
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts brands matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks if a brand with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
}
