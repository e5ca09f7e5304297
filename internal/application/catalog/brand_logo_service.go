package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/custompos/backend/internal/domain/catalog"
	"github.com/custompos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AllowedLogoContentTypes is the whitelist of content types accepted for
// brand logos. SVG is excluded because it can carry embedded scripts.
var AllowedLogoContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ObjectStorageService defines the interface for object storage operations.
// It is implemented by the infrastructure layer.
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// BrandLogoServiceConfig holds configuration for the logo service
type BrandLogoServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultBrandLogoServiceConfig returns the default configuration
func DefaultBrandLogoServiceConfig() BrandLogoServiceConfig {
	return BrandLogoServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// BrandLogoService manages brand logo uploads and downloads through
// presigned object storage URLs. The client uploads directly to storage;
// the server only hands out URLs and records the storage key.
type BrandLogoService struct {
	brandRepo      catalog.BrandRepository
	storageService ObjectStorageService
	config         BrandLogoServiceConfig
}

// NewBrandLogoService creates a new BrandLogoService
func NewBrandLogoService(brandRepo catalog.BrandRepository, storageService ObjectStorageService) *BrandLogoService {
	return &BrandLogoService{
		brandRepo:      brandRepo,
		storageService: storageService,
		config:         DefaultBrandLogoServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *BrandLogoService) SetConfig(config BrandLogoServiceConfig) {
	s.config = config
}

// InitiateUpload validates the upload request and returns a presigned upload URL
func (s *BrandLogoService) InitiateUpload(ctx context.Context, brandID uuid.UUID, req InitiateLogoUploadRequest) (*InitiateLogoUploadResponse, error) {
	_, err := s.brandRepo.FindByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Brand not found")
		}
		return nil, err
	}

	if !AllowedLogoContentTypes[req.ContentType] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed for logos", req.ContentType))
	}
	if req.FileSize > catalog.MaxLogoFileSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("Logo cannot exceed %d bytes", catalog.MaxLogoFileSize))
	}

	storageKey := buildLogoStorageKey(brandID, req.FileName)

	uploadURL, expiresAt, err := s.storageService.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}

	return &InitiateLogoUploadResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload verifies the object landed in storage and records it on the brand
func (s *BrandLogoService) ConfirmUpload(ctx context.Context, brandID uuid.UUID, req ConfirmLogoUploadRequest) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Brand not found")
		}
		return nil, err
	}

	// Only keys issued for this brand are acceptable
	if !strings.HasPrefix(req.StorageKey, logoKeyPrefix(brandID)) {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key does not belong to this brand")
	}

	exists, err := s.storageService.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("check object: %w", err)
	}
	if !exists {
		return nil, shared.NewDomainError("OBJECT_NOT_FOUND", "Uploaded logo not found in storage")
	}

	previousKey := brand.LogoKey

	if err := brand.SetLogo(req.StorageKey, contentTypeForKey(req.StorageKey)); err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	// Best effort cleanup of the replaced logo
	if previousKey != "" && previousKey != req.StorageKey {
		_ = s.storageService.DeleteObject(ctx, previousKey)
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// GetDownloadURL returns a presigned download URL for the brand's logo
func (s *BrandLogoService) GetDownloadURL(ctx context.Context, brandID uuid.UUID) (*LogoDownloadResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Brand not found")
		}
		return nil, err
	}

	if !brand.HasLogo() {
		return nil, shared.NewDomainError("NO_LOGO", "Brand has no logo")
	}

	downloadURL, expiresAt, err := s.storageService.GenerateDownloadURL(ctx, brand.LogoKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate download url: %w", err)
	}

	return &LogoDownloadResponse{
		DownloadURL: downloadURL,
		ExpiresAt:   expiresAt,
	}, nil
}

// RemoveLogo clears the logo from the brand and deletes the stored object
func (s *BrandLogoService) RemoveLogo(ctx context.Context, brandID uuid.UUID) error {
	brand, err := s.brandRepo.FindByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Brand not found")
		}
		return err
	}

	if !brand.HasLogo() {
		return nil
	}

	storageKey := brand.LogoKey
	brand.ClearLogo()
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return err
	}

	_ = s.storageService.DeleteObject(ctx, storageKey)
	return nil
}

func logoKeyPrefix(brandID uuid.UUID) string {
	return fmt.Sprintf("brands/%s/logo/", brandID)
}

func buildLogoStorageKey(brandID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s%s%s", logoKeyPrefix(brandID), uuid.New(), ext)
}

func contentTypeForKey(storageKey string) string {
	switch strings.ToLower(filepath.Ext(storageKey)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
