package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/custompos/backend/internal/infrastructure/auth"
	"github.com/custompos/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionTokenService(expiration time.Duration) *auth.SessionTokenService {
	return auth.NewSessionTokenService(config.JWTConfig{
		Secret:          "test-secret-key-for-middleware-tests",
		TokenExpiration: expiration,
		Issuer:          "pos-backend-test",
	})
}

func newAuthTestRouter(tokens *auth.SessionTokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionAuth(tokens))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"session_id":   GetSessionID(c),
			"cashier_name": GetCashierName(c),
		})
	})
	return r
}

func TestSessionAuth(t *testing.T) {
	tokens := newSessionTokenService(time.Hour)
	router := newAuthTestRouter(tokens)

	t.Run("accepts valid token and exposes claims", func(t *testing.T) {
		sessionID := uuid.New()
		token, _, err := tokens.Issue(sessionID, "Alice")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), sessionID.String())
		assert.Contains(t, w.Body.String(), "Alice")
	})

	t.Run("rejects missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})

	t.Run("rejects malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expiredTokens := newSessionTokenService(-time.Minute)
		token, _, err := expiredTokens.Issue(uuid.New(), "Alice")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})
}
