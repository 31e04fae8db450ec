package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "auth_identity"

// IdentityResolver turns a bearer token into the caller's identity. A session
// store that cannot answer yet returns a loading identity rather than guessing.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) Identity
}

// AuthMiddleware attaches the caller's identity to every request.
type AuthMiddleware struct {
	resolver IdentityResolver
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(resolver IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Handle resolves the bearer token, if any. It never rejects a request; tier
// checks are left to RequireTier.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	identity := Anonymous()
	if token, ok := bearerToken(c.Get(fiber.HeaderAuthorization)); ok {
		identity = m.resolver.Resolve(c.UserContext(), token)
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the caller identity, anonymous when none was attached.
func IdentityFromContext(c *fiber.Ctx) Identity {
	if identity, ok := c.Locals(identityKey).(Identity); ok {
		return identity
	}
	return Anonymous()
}

// BearerToken returns the raw token of the current request.
func BearerToken(c *fiber.Ctx) string {
	token, _ := bearerToken(c.Get(fiber.HeaderAuthorization))
	return token
}

// RequireTier guards a route. Denied callers are redirected to the tier's
// fallback route without an error body; a loading session yields 503 so the
// client waits instead of being redirected.
func RequireTier(tier Tier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := Authorize(tier, IdentityFromContext(c))
		switch decision.Outcome {
		case Allow:
			return c.Next()
		case Pending:
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": decision.Outcome.String()})
		default:
			return c.Redirect(decision.Redirect, fiber.StatusSeeOther)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
