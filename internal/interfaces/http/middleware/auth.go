package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/custompos/backend/internal/infrastructure/auth"
	"github.com/custompos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const (
	// SessionClaimsKey is the gin context key for the validated session claims
	SessionClaimsKey = "session_claims"
	// SessionIDKey is the gin context key for the session ID string
	SessionIDKey = "session_id"
	// CashierNameKey is the gin context key for the cashier name
	CashierNameKey = "cashier_name"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// SessionAuth validates the session token issued when a register session was
// opened and stores the claims in the request context.
func SessionAuth(tokens *auth.SessionTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Missing token")
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrCodeTokenExpired, "Session token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid session token")
			return
		}

		c.Set(SessionClaimsKey, claims)
		c.Set(SessionIDKey, claims.SessionID)
		c.Set(CashierNameKey, claims.CashierName)
		c.Next()
	}
}

// GetSessionClaims retrieves the validated session claims from the context
func GetSessionClaims(c *gin.Context) *auth.SessionClaims {
	if v, ok := c.Get(SessionClaimsKey); ok {
		if claims, ok := v.(*auth.SessionClaims); ok {
			return claims
		}
	}
	return nil
}

// GetSessionID retrieves the authenticated session ID from the context
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// GetCashierName retrieves the authenticated cashier name from the context
func GetCashierName(c *gin.Context) string {
	return c.GetString(CashierNameKey)
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := GetRequestID(c)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, requestID))
}
