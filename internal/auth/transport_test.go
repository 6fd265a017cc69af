package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samadhi-app/record-service/internal/config"
)

func TestNewTransport(t *testing.T) {
	cookie, err := NewTransport(config.TransportCookie, false)
	require.NoError(t, err)
	assert.IsType(t, &CookieTransport{}, cookie)

	header, err := NewTransport(config.TransportHeader, false)
	require.NoError(t, err)
	assert.IsType(t, &HeaderTransport{}, header)

	_, err = NewTransport("carrier-pigeon", false)
	assert.Error(t, err)
}

func attachAndRecord(t *testing.T, transport TokenTransport) *http.Response {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		transport.Attach(c, "tok-123", time.Now().Add(time.Hour))
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	return resp
}

func TestCookieTransportAttachDev(t *testing.T) {
	resp := attachAndRecord(t, &CookieTransport{prod: false})

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, "tok-123", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.InDelta(t, 3600, cookie.MaxAge, 5)
}

func TestCookieTransportAttachProd(t *testing.T) {
	resp := attachAndRecord(t, &CookieTransport{prod: true})

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func extractWith(t *testing.T, transport TokenTransport, mutate func(*http.Request)) (string, bool) {
	t.Helper()
	var gotToken string
	var gotOK bool

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		gotToken, gotOK = transport.Extract(c)
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	mutate(req)
	_, err := app.Test(req)
	require.NoError(t, err)
	return gotToken, gotOK
}

func TestCookieTransportExtract(t *testing.T) {
	transport := &CookieTransport{}

	token, ok := extractWith(t, transport, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "tok-456"})
	})
	assert.True(t, ok)
	assert.Equal(t, "tok-456", token)

	_, ok = extractWith(t, transport, func(*http.Request) {})
	assert.False(t, ok)
}

func TestHeaderTransportExtract(t *testing.T) {
	transport := &HeaderTransport{}

	token, ok := extractWith(t, transport, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer tok-789")
	})
	assert.True(t, ok)
	assert.Equal(t, "tok-789", token)

	_, ok = extractWith(t, transport, func(req *http.Request) {
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	})
	assert.False(t, ok)

	_, ok = extractWith(t, transport, func(*http.Request) {})
	assert.False(t, ok)
}
