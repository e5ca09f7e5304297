package pos

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/custompos/backend/internal/domain/pos"
	"github.com/custompos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("opens session and issues token", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		issuer := new(MockTokenIssuer)
		service := NewSessionService(sessionRepo, issuer)

		expiresAt := time.Now().Add(12 * time.Hour)
		sessionRepo.On("Save", ctx, mock.AnythingOfType("*pos.Session")).Return(nil)
		issuer.On("Issue", mock.AnythingOfType("uuid.UUID"), "Alice").Return("token-123", expiresAt, nil)

		resp, err := service.Open(ctx, OpenSessionRequest{CashierName: "Alice"})
		require.NoError(t, err)

		assert.Equal(t, "opened", resp.Session.Status)
		assert.Equal(t, "Alice", resp.Session.CashierName)
		assert.True(t, strings.HasPrefix(resp.Session.Name, "POS/"))
		assert.Equal(t, "token-123", resp.Token)
		assert.Equal(t, expiresAt, resp.ExpiresAt)
	})

	t.Run("rejects empty cashier name", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		issuer := new(MockTokenIssuer)
		service := NewSessionService(sessionRepo, issuer)

		_, err := service.Open(ctx, OpenSessionRequest{CashierName: "  "})
		require.Error(t, err)
		sessionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSessionService_Close(t *testing.T) {
	ctx := context.Background()

	t.Run("closes opened session", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		service := NewSessionService(sessionRepo, new(MockTokenIssuer))

		session, _ := pos.NewSession("POS/001", "Alice")
		require.NoError(t, session.Open())

		sessionRepo.On("FindByID", ctx, session.ID).Return(session, nil)
		sessionRepo.On("Save", ctx, session).Return(nil)

		resp, err := service.Close(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, "closed", resp.Status)
		require.NotNil(t, resp.ClosedAt)
	})

	t.Run("cannot close twice", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		service := NewSessionService(sessionRepo, new(MockTokenIssuer))

		session, _ := pos.NewSession("POS/001", "Alice")
		require.NoError(t, session.Open())
		require.NoError(t, session.Close())

		sessionRepo.On("FindByID", ctx, session.ID).Return(session, nil)

		_, err := service.Close(ctx, session.ID)
		require.Error(t, err)
	})

	t.Run("fails for unknown session", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		service := NewSessionService(sessionRepo, new(MockTokenIssuer))

		id := uuid.New()
		sessionRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Close(ctx, id)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
