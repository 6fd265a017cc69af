package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/samadhi-app/record-service/internal/config"
)

// CookieName is the session cookie carried by browser clients.
const CookieName = "User-Token"

const bearerPrefix = "Bearer "

// TokenTransport moves session tokens between client and server. The same
// transport handles both issuance and extraction so the two can never
// disagree.
type TokenTransport interface {
	// Extract returns the raw token from the request, or false when none is
	// present.
	Extract(c *fiber.Ctx) (string, bool)
	// Attach places the token on the response.
	Attach(c *fiber.Ctx, token string, expiresAt time.Time)
}

// NewTransport builds the transport selected by configuration.
func NewTransport(kind config.TokenTransportKind, prod bool) (TokenTransport, error) {
	switch kind {
	case config.TransportCookie:
		return &CookieTransport{prod: prod}, nil
	case config.TransportHeader:
		return &HeaderTransport{}, nil
	default:
		return nil, fmt.Errorf("unknown token transport %q", kind)
	}
}

// CookieTransport carries the token in an HttpOnly cookie. Production
// deployments get Secure + SameSite=None for cross-site frontends; everywhere
// else SameSite=Lax without Secure so local setups work over plain HTTP.
type CookieTransport struct {
	prod bool
}

func (t *CookieTransport) Extract(c *fiber.Ctx) (string, bool) {
	val := c.Cookies(CookieName)
	if val == "" {
		return "", false
	}
	return val, true
}

func (t *CookieTransport) Attach(c *fiber.Ctx, token string, expiresAt time.Time) {
	cookie := &fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HTTPOnly: true,
	}
	if t.prod {
		cookie.Secure = true
		cookie.SameSite = fiber.CookieSameSiteNoneMode
	} else {
		cookie.SameSite = fiber.CookieSameSiteLaxMode
	}
	c.Cookie(cookie)
}

// HeaderTransport carries the token in the Authorization header. Attach echoes
// the token back in the response header; clients resend it as a bearer token.
type HeaderTransport struct{}

func (t *HeaderTransport) Extract(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	return header[len(bearerPrefix):], true
}

func (t *HeaderTransport) Attach(c *fiber.Ctx, token string, _ time.Time) {
	c.Set(fiber.HeaderAuthorization, bearerPrefix+token)
}
