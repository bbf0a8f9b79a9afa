package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fxgate/internal/auth"
)

// TokenHeader is the request header carrying the raw signed credential.
// The API uses a bare "token" header rather than the standard
// Authorization bearer convention; existing clients depend on it.
const TokenHeader = "token"

// IdentityKey is the gin context key under which the authenticated
// identity is stored.
const IdentityKey = "identity"

// TokenVerifier checks a raw credential and returns the identity it asserts.
// Satisfied by *auth.TokenService.
type TokenVerifier interface {
	Verify(raw string) (*auth.Identity, error)
}

// AuthenticateToken gates a route group on a valid signed credential.
//
// Behavior:
//   - No token header: 401, "no token provided".
//   - Token present but unverifiable: 403, "invalid token".
//   - Valid: decoded identity stored under IdentityKey, request proceeds.
//
// There are no roles or permissions; any valid signature grants access to
// every protected endpoint.
func AuthenticateToken(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(TokenHeader)
		if raw == "" {
			AbortWithError(c, http.StatusUnauthorized, "no token provided", nil)
			return
		}

		identity, err := verifier.Verify(raw)
		if err != nil {
			AbortWithError(c, http.StatusForbidden, "invalid token", nil)
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity attached by
// AuthenticateToken, or false if the request was not authenticated.
func IdentityFrom(c *gin.Context) (*auth.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*auth.Identity)
	return id, ok
}

// RequireQuote rejects requests that lack the quote query parameter.
//
// Endpoint-specific parameters (start, end, date, amount) are checked by
// each handler itself; only the one parameter every rate endpoint shares
// is enforced here.
func RequireQuote() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("quote") == "" {
			AbortWithError(c, http.StatusBadRequest, "parameters missing", nil)
			return
		}
		c.Next()
	}
}
