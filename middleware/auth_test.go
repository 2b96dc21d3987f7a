package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"dispatch-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestApp() *fiber.App {
	app := fiber.New()
	api := app.Group("/api", AuthMiddleware(testSecret))
	api.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": CurrentUserID(c), "role": CurrentRole(c)})
	})
	api.Delete("/thing", RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp()

	valid, err := GenerateToken(testSecret, 7, models.RoleOperator, time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken(testSecret, 7, models.RoleOperator, -time.Hour)
	require.NoError(t, err)
	wrongKey, err := GenerateToken("other", 7, models.RoleOperator, time.Hour)
	require.NoError(t, err)
	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7, "role": "root", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7, "role": "operator",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"valid", valid, fiber.StatusOK},
		{"missing", "", fiber.StatusUnauthorized},
		{"expired", expired, fiber.StatusUnauthorized},
		{"wrong key", wrongKey, fiber.StatusUnauthorized},
		{"unknown role", badRole, fiber.StatusUnauthorized},
		{"no expiry", noExp, fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, call(t, app, "GET", "/api/me", tt.token))
		})
	}
}

func TestMalformedHeader(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	app := newTestApp()

	operator, err := GenerateToken(testSecret, 1, models.RoleOperator, time.Hour)
	require.NoError(t, err)
	admin, err := GenerateToken(testSecret, 2, models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	super, err := GenerateToken(testSecret, 3, models.RoleSuperAdmin, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, call(t, app, "DELETE", "/api/thing", operator))
	assert.Equal(t, fiber.StatusNoContent, call(t, app, "DELETE", "/api/thing", admin))
	assert.Equal(t, fiber.StatusNoContent, call(t, app, "DELETE", "/api/thing", super))
}
