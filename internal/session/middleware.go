package session

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/connect-inmobiliaria/crm-service/pkg/util"
)

const sessionIDKey = "session_id"

// Middleware enforces an unlocked admin session for protected routes.
type Middleware struct {
	manager *Manager
}

// NewMiddleware constructs the middleware.
func NewMiddleware(manager *Manager) *Middleware {
	return &Middleware{manager: manager}
}

// RequireUnlocked validates the bearer token and the backing session state.
func (m *Middleware) RequireUnlocked(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	sessionID, err := m.manager.Authorize(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired session")
	}

	c.Locals(sessionIDKey, sessionID)
	return c.Next()
}

// IDFromContext returns the authorized session id set by RequireUnlocked.
func IDFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(sessionIDKey)
	if val == nil {
		return "", false
	}
	id, ok := val.(string)
	return id, ok
}
