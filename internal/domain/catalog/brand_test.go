package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBrand(t *testing.T) {
	t.Run("creates brand with valid inputs", func(t *testing.T) {
		brand, err := NewBrand("Acme", "Acme products")
		require.NoError(t, err)
		require.NotNil(t, brand)

		assert.Equal(t, "Acme", brand.Name)
		assert.Equal(t, "Acme products", brand.Description)
		assert.Equal(t, BrandStatusActive, brand.Status)
		assert.Empty(t, brand.LogoKey)
		assert.NotEmpty(t, brand.ID)
		assert.Equal(t, 1, brand.GetVersion())
	})

	t.Run("trims surrounding whitespace from name", func(t *testing.T) {
		brand, err := NewBrand("  Acme  ", "")
		require.NoError(t, err)
		assert.Equal(t, "Acme", brand.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewBrand("", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with whitespace-only name", func(t *testing.T) {
		_, err := NewBrand("   \t ", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewBrand(strings.Repeat("a", 101), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 100 characters")
	})
}

func TestBrand_Update(t *testing.T) {
	t.Run("updates name and description", func(t *testing.T) {
		brand, _ := NewBrand("Acme", "old")
		err := brand.Update("Globex", "new")
		require.NoError(t, err)

		assert.Equal(t, "Globex", brand.Name)
		assert.Equal(t, "new", brand.Description)
		assert.Equal(t, 2, brand.GetVersion())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		brand, _ := NewBrand("Acme", "old")
		err := brand.Update("", "new")
		require.Error(t, err)

		assert.Equal(t, "Acme", brand.Name)
		assert.Equal(t, "old", brand.Description)
	})

	t.Run("rejects whitespace-only name", func(t *testing.T) {
		brand, _ := NewBrand("Acme", "old")
		err := brand.Update("   ", "new")
		require.Error(t, err)
		assert.Equal(t, "Acme", brand.Name)
	})

	t.Run("trims the new name", func(t *testing.T) {
		brand, _ := NewBrand("Acme", "")
		err := brand.Update(" Globex ", "")
		require.NoError(t, err)
		assert.Equal(t, "Globex", brand.Name)
	})
}

func TestBrand_Logo(t *testing.T) {
	t.Run("sets logo key and content type", func(t *testing.T) {
		brand, _ := NewBrand("Acme", "")
		err := brand.SetLogo("brands/acme/logo.png", "image/png")
		require.NoError(t, err)

		assert.True(t, brand.HasLogo())
		assert.Equal(t, "brands/acme/logo.png", brand.LogoKey)
		assert.Equal(t, "image/png", brand.LogoContentType)
	})

	t.Run("rejects empty storage key", func(t *testing.T) {
		brand, _ := NewBrand("Acme", "")
		err := brand.SetLogo("", "image/png")
		require.Error(t, err)
		assert.False(t, brand.HasLogo())
	})

	t.Run("rejects non-image content type", func(t *testing.T) {
		brand, _ := NewBrand("Acme", "")
		err := brand.SetLogo("brands/acme/logo.pdf", "application/pdf")
		require.Error(t, err)
	})

	t.Run("clears logo", func(t *testing.T) {
		brand, _ := NewBrand("Acme", "")
		require.NoError(t, brand.SetLogo("brands/acme/logo.png", "image/png"))

		brand.ClearLogo()
		assert.False(t, brand.HasLogo())
		assert.Empty(t, brand.LogoContentType)
	})
}

func TestBrand_StatusTransitions(t *testing.T) {
	t.Run("deactivate then activate", func(t *testing.T) {
		brand, _ := NewBrand("Acme", "")

		require.NoError(t, brand.Deactivate())
		assert.False(t, brand.IsActive())

		require.NoError(t, brand.Activate())
		assert.True(t, brand.IsActive())
	})

	t.Run("activate when already active fails", func(t *testing.T) {
		brand, _ := NewBrand("Acme", "")
		err := brand.Activate()
		require.Error(t, err)
	})

	t.Run("deactivate when already inactive fails", func(t *testing.T) {
		brand, _ := NewBrand("Acme", "")
		require.NoError(t, brand.Deactivate())
		err := brand.Deactivate()
		require.Error(t, err)
	})
}
