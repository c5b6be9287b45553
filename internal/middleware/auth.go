// Package middleware provides authentication, logging, metrics, tracing and
// rate limiting middleware for the HTTP surface.
package middleware

import (
	"context"
	"strings"

	"elfatih/internal/auth"
	"elfatih/internal/models"

	"github.com/gofiber/fiber/v2"
)

const claimsLocalKey = "claims"

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authenticator resolves the caller from the Authorization header.
type Authenticator struct {
	tokens      TokenVerifier
	revocations auth.RevocationStore
}

// NewAuthenticator returns an Authenticator. revocations may be nil when
// Redis is not configured.
func NewAuthenticator(tokens TokenVerifier, revocations auth.RevocationStore) *Authenticator {
	return &Authenticator{tokens: tokens, revocations: revocations}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func (a *Authenticator) resolve(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := a.tokens.Verify(token)
	if err != nil {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}
	if a.revocations != nil && claims.ID != "" {
		revoked, err := a.revocations.IsRevoked(ctx, claims.ID)
		if err == nil && revoked {
			return nil, models.NewUnauthorizedError("Token has been revoked")
		}
	}
	return claims, nil
}

func setClaims(c *fiber.Ctx, claims *auth.Claims) {
	c.Locals(claimsLocalKey, claims)
	if info, ok := RequestInfoFrom(c.UserContext()); ok {
		info.UserID = claims.UserID
		return
	}
	c.SetUserContext(WithRequestInfo(c.UserContext(), &RequestInfo{UserID: claims.UserID}))
}

// Required rejects requests without a valid, unrevoked bearer token (401).
func (a *Authenticator) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Not authenticated"))
		}
		claims, err := a.resolve(c.UserContext(), token)
		if err != nil {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
		setClaims(c, claims)
		return c.Next()
	}
}

// Optional attaches claims when a valid token is present and otherwise lets
// the request through anonymously.
func (a *Authenticator) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if claims, err := a.resolve(c.UserContext(), token); err == nil {
				setClaims(c, claims)
			}
		}
		return c.Next()
	}
}

// WebSocket authenticates upgrade requests, which cannot carry custom
// headers from browsers, using the token query parameter.
func (a *Authenticator) WebSocket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("token")
		if token == "" {
			token = bearerToken(c)
		}
		if token == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Token required"))
		}
		claims, err := a.resolve(c.UserContext(), token)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
		setClaims(c, claims)
		return c.Next()
	}
}

// ActiveRequired rejects tokens issued to deactivated users. Must run after
// Required.
func ActiveRequired(c *fiber.Ctx) error {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Not authenticated"))
	}
	if !claims.IsActive {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Inactive user"))
	}
	return c.Next()
}

// AdminRequired rejects callers without the ADMIN role. Must run after
// ActiveRequired.
func AdminRequired(c *fiber.Ctx) error {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Not authenticated"))
	}
	if !claims.IsAdmin() {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Not enough permissions"))
	}
	return c.Next()
}

// ClaimsFrom returns the claims attached by the Authenticator.
func ClaimsFrom(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(claimsLocalKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// BearerToken exposes the raw token of the current request.
func BearerToken(c *fiber.Ctx) string {
	return bearerToken(c)
}
