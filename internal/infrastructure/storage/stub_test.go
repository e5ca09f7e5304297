package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()

	t.Run("upload URL embeds key", func(t *testing.T) {
		url, expiresAt, err := s.GenerateUploadURL(ctx, "brands/x/logo/a.png", "image/png", time.Minute)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "https://storage.example.com/upload/brands/x/logo/a.png"))
		assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, time.Second)
	})

	t.Run("download URL embeds key", func(t *testing.T) {
		url, _, err := s.GenerateDownloadURL(ctx, "brands/x/logo/a.png", time.Minute)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "https://storage.example.com/download/brands/x/logo/a.png"))
	})

	t.Run("object always exists", func(t *testing.T) {
		exists, err := s.ObjectExists(ctx, "anything")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("delete succeeds", func(t *testing.T) {
		assert.NoError(t, s.DeleteObject(ctx, "anything"))
	})

	t.Run("empty key rejected everywhere", func(t *testing.T) {
		_, _, err := s.GenerateUploadURL(ctx, "", "image/png", time.Minute)
		assert.Error(t, err)
		_, _, err = s.GenerateDownloadURL(ctx, "", time.Minute)
		assert.Error(t, err)
		_, err = s.ObjectExists(ctx, "")
		assert.Error(t, err)
		assert.Error(t, s.DeleteObject(ctx, ""))
	})
}
