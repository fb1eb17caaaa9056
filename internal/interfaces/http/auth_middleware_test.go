package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synaptica/aurea-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func protectedApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protegida", AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"account_id": GetAccountID(c),
			"role":       GetRole(c),
		})
	})
	return app
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := protectedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := protectedApp(t)

	for _, header := range []string{"token-sin-esquema", "Basic abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header: %q", header)
	}
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := protectedApp(t)

	token, err := jwt.Generate("otro-secreto", "acc-1", "a@b.mx", "standard", "aurea-api", 60)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := protectedApp(t)

	token, err := jwt.Generate(testSecret, "acc-1", "a@b.mx", "admin", "aurea-api", 60)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "acc-1", body["account_id"])
	assert.Equal(t, "admin", body["role"])
}
