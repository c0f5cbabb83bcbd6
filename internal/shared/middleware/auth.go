package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared"
	"library-catalog/internal/shared/response"
)

// Authenticator resolves credentials to a principal. Failures unwrap to
// shared.ErrUnauthorized or shared.ErrTooManyAttempts.
type Authenticator interface {
	Authenticate(ctx context.Context, login, password string) (*shared.Principal, error)
	ParseToken(token string) (*shared.Principal, error)
}

// AuthMiddleware accepts "Authorization: Basic" and "Authorization: Bearer"
// and stores the principal on the context.
func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Header("WWW-Authenticate", `Basic realm="library-catalog"`)
			response.Unauthorized(c, "Missing authorization header")
			return
		}

		var (
			principal *shared.Principal
			err       error
		)
		scheme, credentials, _ := strings.Cut(header, " ")
		switch {
		case strings.EqualFold(scheme, "Basic"):
			login, password, ok := c.Request.BasicAuth()
			if !ok {
				response.Unauthorized(c, "Malformed basic credentials")
				return
			}
			principal, err = authn.Authenticate(c.Request.Context(), login, password)
		case strings.EqualFold(scheme, "Bearer"):
			principal, err = authn.ParseToken(strings.TrimSpace(credentials))
		default:
			response.Unauthorized(c, "Unsupported authorization scheme")
			return
		}

		if err != nil {
			switch {
			case errors.Is(err, shared.ErrTooManyAttempts):
				response.TooManyRequests(c, err.Error())
			case errors.Is(err, shared.ErrUnauthorized):
				response.Unauthorized(c, "Invalid credentials")
			default:
				log.Error().Err(err).Str("request_id", c.GetString(shared.ContextKeyRequestID)).Msg("Authentication failed")
				response.InternalServerError(c, "Internal server error")
			}
			return
		}

		c.Set(shared.ContextKeyPrincipal, principal)
		c.Next()
	}
}

// GetPrincipal returns the principal set by AuthMiddleware.
func GetPrincipal(c *gin.Context) (*shared.Principal, bool) {
	v, exists := c.Get(shared.ContextKeyPrincipal)
	if !exists {
		return nil, false
	}
	p, ok := v.(*shared.Principal)
	return p, ok
}

// RequireRole rejects principals that lack role with 403.
// It must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			response.Unauthorized(c, "Authentication required")
			return
		}

		if !p.HasRole(role) {
			log.Warn().
				Str("login", p.Login).
				Str("required_role", role).
				Str("path", c.Request.URL.Path).
				Msg("Access denied")
			response.Forbidden(c, "Access denied: "+role+" role required")
			return
		}

		c.Next()
	}
}
