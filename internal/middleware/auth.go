package middleware

import (
	"context"
	"strings"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// ClaimsKey is the context key for JWT claims
	ClaimsKey contextKey = "claims"
	// UserIDKey is the context key for the authenticated user ID
	UserIDKey contextKey = "user_id"
)

// TokenValidator validates a bearer token and returns the user it was issued for
type TokenValidator interface {
	Validate(ctx context.Context, token string) (int32, *validator.ValidatedClaims, error)
}

// ActivityRecorder is notified of every authenticated request
type ActivityRecorder interface {
	RecordActivity(userID int32)
}

// AuthMiddleware provides JWT validation middleware
type AuthMiddleware struct {
	tokens   TokenValidator
	activity ActivityRecorder
}

// NewAuthMiddleware creates a new AuthMiddleware. activity may be nil.
func NewAuthMiddleware(tokens TokenValidator, activity ActivityRecorder) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, activity: activity}
}

// Authenticate returns an Echo middleware that validates bearer tokens
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorizedError(c, "Missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return unauthorizedError(c, "Invalid authorization header format")
			}

			userID, claims, err := m.tokens.Validate(c.Request().Context(), parts[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				return unauthorizedError(c, "Invalid or expired token")
			}

			ctx := context.WithValue(c.Request().Context(), ClaimsKey, claims)
			ctx = context.WithValue(ctx, UserIDKey, userID)
			c.SetRequest(c.Request().WithContext(ctx))

			if m.activity != nil {
				m.activity.RecordActivity(userID)
			}

			return next(c)
		}
	}
}

// GetClaims extracts the validated claims from the context
func GetClaims(c echo.Context) *validator.ValidatedClaims {
	if claims, ok := c.Request().Context().Value(ClaimsKey).(*validator.ValidatedClaims); ok {
		return claims
	}
	return nil
}

// GetUserID extracts the authenticated user ID from the context
func GetUserID(c echo.Context) int32 {
	if id, ok := c.Request().Context().Value(UserIDKey).(int32); ok {
		return id
	}
	return 0
}
