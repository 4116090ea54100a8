package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/*", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestAuth(t *testing.T) {
	app := newApp(Config{ApiKey: "secret", PublicPrefixes: []string{"/swagger"}})

	tests := []struct {
		name   string
		path   string
		header map[string]string
		want   int
	}{
		{"Missing", "/users", nil, fiber.StatusUnauthorized},
		{"Wrong", "/users", map[string]string{HeaderName: "nope"}, fiber.StatusUnauthorized},
		{"Header", "/users", map[string]string{HeaderName: "secret"}, fiber.StatusOK},
		{"Bearer", "/users", map[string]string{"Authorization": "Bearer secret"}, fiber.StatusOK},
		{"Public", "/swagger/index.html", nil, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuthDisabled(t *testing.T) {
	resp, err := newApp(Config{}).Test(httptest.NewRequest("GET", "/users", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
