package catalog

import (
	"strings"
	"time"

	"github.com/custompos/backend/internal/domain/shared"
)

// BrandStatus represents the status of a brand
type BrandStatus string

const (
	BrandStatusActive   BrandStatus = "active"
	BrandStatusInactive BrandStatus = "inactive"
)

// MaxLogoFileSize is the maximum allowed logo size (5MB)
const MaxLogoFileSize = 5 * 1024 * 1024

// Brand represents a product brand in the catalog.
// Products reference a brand; the point-of-sale client loads all brands
// (name, description, logo) as part of its session reference data.
type Brand struct {
	shared.BaseAggregateRoot
	Name            string      `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description     string      `gorm:"type:text"`
	LogoKey         string      `gorm:"type:varchar(512)"` // object storage key, empty when no logo
	LogoContentType string      `gorm:"type:varchar(100)"`
	Status          BrandStatus `gorm:"type:varchar(20);not null;default:'active'"`
	SortOrder       int         `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// NewBrand creates a new brand
func NewBrand(name, description string) (*Brand, error) {
	name = strings.TrimSpace(name)
	if err := validateBrandName(name); err != nil {
		return nil, err
	}

	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Status:            BrandStatusActive,
	}, nil
}

// Update updates the brand's name and description.
// An empty or whitespace-only name is rejected, matching the create rule.
func (b *Brand) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateBrandName(name); err != nil {
		return err
	}

	b.Name = name
	b.Description = description
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// SetLogo records the storage key and content type of the uploaded logo
func (b *Brand) SetLogo(storageKey, contentType string) error {
	if storageKey == "" {
		return shared.NewDomainError("INVALID_LOGO", "Logo storage key cannot be empty")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return shared.NewDomainError("INVALID_LOGO", "Logo must be an image")
	}

	b.LogoKey = storageKey
	b.LogoContentType = contentType
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// ClearLogo removes the logo reference
func (b *Brand) ClearLogo() {
	b.LogoKey = ""
	b.LogoContentType = ""
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// SetSortOrder sets the display order of the brand
func (b *Brand) SetSortOrder(order int) {
	b.SortOrder = order
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// Activate activates the brand
func (b *Brand) Activate() error {
	if b.Status == BrandStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Brand is already active")
	}

	b.Status = BrandStatusActive
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Deactivate deactivates the brand
func (b *Brand) Deactivate() error {
	if b.Status == BrandStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Brand is already inactive")
	}

	b.Status = BrandStatusInactive
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// HasLogo returns true if the brand has a logo stored
func (b *Brand) HasLogo() bool {
	return b.LogoKey != ""
}

// IsActive returns true if the brand is active
func (b *Brand) IsActive() bool {
	return b.Status == BrandStatusActive
}

// validateBrandName validates the brand name.
// The caller is expected to have trimmed the name already.
func validateBrandName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Brand name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Brand name cannot exceed 100 characters")
	}
	return nil
}
