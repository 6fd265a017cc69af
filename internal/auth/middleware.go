package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/samadhi-app/record-service/internal/domain"
	"github.com/samadhi-app/record-service/internal/repository"
	apperrors "github.com/samadhi-app/record-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for one request. It is never
// persisted and is always passed explicitly, not read from globals.
type Principal struct {
	User *domain.User
	Role domain.Role
}

// SessionMiddleware resolves session tokens into principals.
type SessionMiddleware struct {
	tokens    *TokenManager
	transport TokenTransport
	users     repository.UserRepository
}

// NewSessionMiddleware constructs middleware bound to the configured transport.
func NewSessionMiddleware(tokens *TokenManager, transport TokenTransport, users repository.UserRepository) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, transport: transport, users: users}
}

// Handle enforces authentication for protected routes. Missing, expired and
// tampered tokens all produce the same generic 401 so a caller learns nothing
// about which check failed. A valid token whose subject no longer exists is
// rejected the same way.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	raw, ok := m.transport.Extract(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	claims, err := m.tokens.ParseToken(raw)
	if err != nil {
		return apperrors.NewUnauthorized("login required")
	}

	user, err := m.users.GetByID(c.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("login required")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user, Role: claims.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
