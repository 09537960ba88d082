package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-core/internal/application/authz"
	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	apphttp "github.com/jhoicas/erp-core/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/erp-core/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testTenantID  = "acme"
	testIssuer    = "erp-core-test"
	testExpMin    = 60
)

// guardedApp monta JWT + tabla de permisos por defecto delante de un handler que responde el scope.
func guardedApp(op authz.Operation) *fiber.App {
	app := fiber.New()
	app.Get("/guarded",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(authz.NewAuthorizer(authz.DefaultPolicy()), op),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":   apphttp.GetUserID(c),
				"tenant_id": apphttp.GetTenantID(c),
				"role":      apphttp.GetRole(c),
			})
		},
	)
	return app
}

func bearer(t *testing.T, tenantID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, tenantID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func callGuarded(t *testing.T, app *fiber.App, authHeader string) (int, dto.ErrorResponse, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	var errBody dto.ErrorResponse
	var okBody map[string]string
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(raw, &okBody))
	} else {
		require.NoError(t, json.Unmarshal(raw, &errBody))
	}
	return resp.StatusCode, errBody, okBody
}

func TestRequirePermission_PoliticaPorDefecto(t *testing.T) {
	cases := []struct {
		name   string
		role   string
		op     authz.Operation
		status int
	}{
		{"bodeguero mueve stock", entity.RoleBodeguero, authz.OpStockMove, http.StatusOK},
		{"financiero liquida", entity.RoleFinanciero, authz.OpFinanceSettlements, http.StatusOK},
		{"comprador crea compras", entity.RoleComprador, authz.OpPurchaseWrite, http.StatusOK},
		{"vendedor consulta catálogo", entity.RoleVendedor, authz.OpCatalogRead, http.StatusOK},
		{"admin registra asientos", entity.RoleAdmin, authz.OpFinanceEntries, http.StatusOK},
		{"vendedor no concilia", entity.RoleVendedor, authz.OpStockReconcile, http.StatusForbidden},
		{"comprador no registra asientos", entity.RoleComprador, authz.OpFinanceEntries, http.StatusForbidden},
		{"financiero no mueve stock", entity.RoleFinanciero, authz.OpStockMove, http.StatusForbidden},
		{"bodeguero no vende", entity.RoleBodeguero, authz.OpSalesWrite, http.StatusForbidden},
		{"rol desconocido", "auditor", authz.OpCatalogRead, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, errBody, body := callGuarded(t, guardedApp(tc.op), bearer(t, testTenantID, tc.role))
			require.Equal(t, tc.status, status)
			if tc.status == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", errBody.Code)
				return
			}
			assert.Equal(t, tc.role, body["role"])
		})
	}
}

func TestRequirePermission_TokenSinRol(t *testing.T) {
	status, errBody, _ := callGuarded(t, guardedApp(authz.OpCatalogRead), bearer(t, testTenantID, ""))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", errBody.Code)
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := guardedApp(authz.OpCatalogRead)

	status, errBody, _ := callGuarded(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", errBody.Code)

	status, errBody, _ = callGuarded(t, app, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", errBody.Code)

	status, errBody, _ = callGuarded(t, app, "Bearer token.invalido.aqui")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", errBody.Code)

	otro, err := pkgjwt.Generate("otro-secreto", testUserID, testTenantID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	status, errBody, _ = callGuarded(t, app, "Bearer "+otro)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", errBody.Code, "firma con otro secreto")

	status, errBody, _ = callGuarded(t, app, bearer(t, "", entity.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TENANT", errBody.Code)
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	status, _, body := callGuarded(t, guardedApp(authz.OpCatalogRead), bearer(t, testTenantID, entity.RoleAdmin))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testTenantID, body["tenant_id"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}
