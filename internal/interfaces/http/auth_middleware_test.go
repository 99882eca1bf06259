package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/access"
	apphttp "github.com/jhoicas/rhu-inventory-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/rhu-inventory-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUnitID    = "unit-rhu"
	testIssuer    = "rhu-inventory-test"
	testExpMin    = 60
)

// buildGuardedApp construye una app mínima con AuthMiddleware + RequireCapability
// y un handler que devuelve 200 si pasa ambos.
func buildGuardedApp(capability access.Capability) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireCapability(capability),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testUnitID, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doGet(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireCapability
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireCapability_RoleWithCapabilityPasses(t *testing.T) {
	app := buildGuardedApp(access.InventoryAdjust)
	resp := doGet(t, app, "/protected", tokenForRole(t, "pharmacist"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "pharmacist", body["role"])
}

func TestRequireCapability_RoleWithoutCapabilityIsForbidden(t *testing.T) {
	cases := map[string]access.Capability{
		"medical_staff": access.InventoryAdjust,
		"storekeeper":   access.TransfersApprove,
		"pharmacist":    access.ProcurementWrite,
		"procurement":   access.PatientsRead,
		"visitor":       access.InventoryRead,
	}
	for role, capability := range cases {
		t.Run(role, func(t *testing.T) {
			resp := doGet(t, buildGuardedApp(capability), "/protected", tokenForRole(t, role))
			defer resp.Body.Close()

			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), "FORBIDDEN")
		})
	}
}

func TestRequireCapability_AdminHasEverything(t *testing.T) {
	for _, capability := range []access.Capability{access.UsersManage, access.ProcurementApprove, access.TransfersApprove} {
		resp := doGet(t, buildGuardedApp(capability), "/protected", tokenForRole(t, "admin"))
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, string(capability))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_RejectsBadHeaders(t *testing.T) {
	app := buildGuardedApp(access.InventoryRead)
	cases := []struct {
		name, header, code string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin esquema", "token-sin-bearer", "INVALID_TOKEN"},
		{"token inválido", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doGet(t, app, "/protected", tc.header)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.code)
		})
	}
}

func TestAuthMiddleware_TokenWithoutRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testUnitID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doGet(t, buildGuardedApp(access.InventoryRead), "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testUnitID, testIssuer, -1)
	require.NoError(t, err)

	resp := doGet(t, buildGuardedApp(access.InventoryRead), "/protected", "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_LoadsSession(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		s, ok := apphttp.GetSession(c)
		return c.JSON(fiber.Map{"ok": ok, "user_id": s.UserID, "role": s.Role, "unit_id": s.UnitID})
	})

	resp := doGet(t, app, "/me", tokenForRole(t, "storekeeper"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "storekeeper", body["role"])
	assert.Equal(t, testUnitID, body["unit_id"])
}
