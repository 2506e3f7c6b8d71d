package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"swiftparcel/internal/adapters/http/middleware"
	"swiftparcel/internal/config"
	"swiftparcel/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T, cfg *config.Config, extra ...fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New()

	handlers := []fiber.Handler{middleware.AuthMiddleware(cfg)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		email, role := middleware.Principal(c)
		return c.JSON(fiber.Map{"email": email, "role": role})
	})

	app.Get("/protected", handlers...)
	return app
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			AccessTokenMins: 15,
		},
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	app := testApp(t, testConfig())

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	app := testApp(t, testConfig())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ValidBearerToken(t *testing.T) {
	cfg := testConfig()
	app := testApp(t, cfg)

	token, err := jwt.GenerateAccessToken(1, "a@example.com", "user", cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	cfg := testConfig()
	app := testApp(t, cfg)

	token, err := jwt.GenerateAccessToken(1, "a@example.com", "user", cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminOnly(t *testing.T) {
	cfg := testConfig()
	app := testApp(t, cfg, middleware.AdminOnly())

	userToken, err := jwt.GenerateAccessToken(1, "u@example.com", "user", cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
	require.NoError(t, err)
	adminToken, err := jwt.GenerateAccessToken(2, "a@example.com", "admin", cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRiderOnly(t *testing.T) {
	cfg := testConfig()
	app := testApp(t, cfg, middleware.RiderOnly())

	riderToken, err := jwt.GenerateAccessToken(3, "r@example.com", "rider", cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+riderToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
