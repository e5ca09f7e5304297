package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	t.Run("creates session in opening state", func(t *testing.T) {
		session, err := NewSession("POS/2026/08/001", "Alice")
		require.NoError(t, err)
		require.NotNil(t, session)

		assert.Equal(t, "POS/2026/08/001", session.Name)
		assert.Equal(t, "Alice", session.CashierName)
		assert.Equal(t, SessionStatusOpening, session.Status)
		assert.Nil(t, session.OpenedAt)
		assert.False(t, session.IsOpen())
	})

	t.Run("trims name and cashier", func(t *testing.T) {
		session, err := NewSession("  POS/001  ", "  Alice  ")
		require.NoError(t, err)
		assert.Equal(t, "POS/001", session.Name)
		assert.Equal(t, "Alice", session.CashierName)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewSession("   ", "Alice")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with empty cashier", func(t *testing.T) {
		_, err := NewSession("POS/001", " ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cashier name cannot be empty")
	})
}

func TestSession_OpenClose(t *testing.T) {
	t.Run("open then close", func(t *testing.T) {
		session, _ := NewSession("POS/001", "Alice")

		require.NoError(t, session.Open())
		assert.True(t, session.IsOpen())
		require.NotNil(t, session.OpenedAt)

		require.NoError(t, session.Close())
		assert.Equal(t, SessionStatusClosed, session.Status)
		require.NotNil(t, session.ClosedAt)
		assert.False(t, session.IsOpen())
	})

	t.Run("cannot open twice", func(t *testing.T) {
		session, _ := NewSession("POS/001", "Alice")
		require.NoError(t, session.Open())
		require.Error(t, session.Open())
	})

	t.Run("cannot close an opening session", func(t *testing.T) {
		session, _ := NewSession("POS/001", "Alice")
		require.Error(t, session.Close())
	})

	t.Run("cannot close twice", func(t *testing.T) {
		session, _ := NewSession("POS/001", "Alice")
		require.NoError(t, session.Open())
		require.NoError(t, session.Close())
		require.Error(t, session.Close())
	})
}
