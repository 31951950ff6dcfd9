package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/encartes-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/encartes-api/pkg/jwt"
	"github.com/jhoicas/encartes-api/pkg/logger"
)

// buildAuthApp construye una aplicación Fiber mínima con AuthMiddleware y
// un handler que devuelve los locals del usuario.
func buildAuthApp(users apphttp.UserResolver) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(true, logger.Nop())})
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, users), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"email":   apphttp.GetEmail(c),
			"role":    apphttp.GetRole(c),
		})
	})
	return app
}

func doAuthRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_ExtraeUsuario(t *testing.T) {
	app := buildAuthApp(newFakeUsers())
	resp := doAuthRequest(t, app, bearer(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testEmail, body["email"])
	assert.Equal(t, "admin", body["role"])
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "admin", testIssuer, -time.Minute)
	require.NoError(t, err)
	otherSecret, err := pkgjwt.Generate("otro-secret-completamente-distinto", testUserID, testEmail, "admin", testIssuer, time.Hour)
	require.NoError(t, err)
	ghost, err := pkgjwt.Generate(testJWTSecret, "00000000-0000-0000-0000-0000000000ff", "x@y.com", "user", testIssuer, time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin esquema Bearer", "Token abc", "INVALID_TOKEN"},
		{"malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"expirado", "Bearer " + expired, "INVALID_TOKEN"},
		{"otro secret", "Bearer " + otherSecret, "INVALID_TOKEN"},
		{"usuario inexistente", "Bearer " + ghost, "UNAUTHORIZED"},
	}
	app := buildAuthApp(newFakeUsers())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doAuthRequest(t, app, tc.header)
			env := decode(t, resp)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestAuthMiddleware_BearerSinDistinguirMayusculas(t *testing.T) {
	app := buildAuthApp(newFakeUsers())
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "admin", testIssuer, time.Hour)
	require.NoError(t, err)

	resp := doAuthRequest(t, app, "bearer "+tok)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_ErrorDelRepositorio(t *testing.T) {
	users := newFakeUsers()
	users.err = errors.New("conexión rechazada")
	app := buildAuthApp(users)

	resp := doAuthRequest(t, app, bearer(t))
	env := decode(t, resp)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", env.Error.Code)
	assert.Empty(t, env.Error.Details, "en producción no se expone la causa")
}
