package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-core/internal/application/authz"
	"github.com/jhoicas/erp-core/internal/application/finance"
	"github.com/jhoicas/erp-core/internal/application/inventory"
	"github.com/jhoicas/erp-core/internal/application/purchasing"
	"github.com/jhoicas/erp-core/internal/application/sales"
	"github.com/jhoicas/erp-core/internal/application/usecase"
	"github.com/jhoicas/erp-core/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/erp-core/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/erp-core/pkg/jwt"
)

// newAPI arma la API completa sobre el store en memoria.
func newAPI() *fiber.App {
	store := memory.NewStore()
	mover := inventory.NewStockLedger()
	poster := finance.NewAccountLedger()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:      usecase.NewProductUseCase(store),
		LocationUC:     usecase.NewLocationUseCase(store),
		CounterpartyUC: usecase.NewCounterpartyUseCase(store),
		Movements:      inventory.NewMovementUseCase(store, mover),
		Reconcile:      inventory.NewReconcileUseCase(store, mover),
		StockQuery:     inventory.NewQueryUseCase(store),
		Replenishment:  inventory.NewReplenishmentUseCase(store),
		PurchaseOrders: purchasing.NewPurchaseOrderUseCase(store, mover),
		SalesOrders:    sales.NewSalesOrderUseCase(store, mover),
		Accounts:       finance.NewAccountUseCase(store),
		Entries:        finance.NewEntryUseCase(store, poster),
		Payables:       finance.NewPayableUseCase(store, poster),
		Receivables:    finance.NewReceivableUseCase(store, poster),
		Authorizer:     authz.NewAuthorizer(authz.DefaultPolicy()),
		JWTSecret:      testJWTSecret,
		ServiceName:    "erp-core-test",
	})
	return app
}

type apiResponse struct {
	status int
	body   []byte
}

func (r apiResponse) object(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(r.body, &m), string(r.body))
	return m
}

func (r apiResponse) array(t *testing.T) []map[string]any {
	t.Helper()
	var list []map[string]any
	require.NoError(t, json.Unmarshal(r.body, &list), string(r.body))
	return list
}

func call(t *testing.T, app *fiber.App, method, path, tenant, role string, body any) apiResponse {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, tenant, role, testIssuer, testExpMin)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return apiResponse{status: resp.StatusCode, body: raw}
}

// seed crea ubicación, producto, proveedor y cliente en el tenant indicado.
func seed(t *testing.T, app *fiber.App, tenant string) (productID, locationID, supplierID, customerID string) {
	t.Helper()
	loc := call(t, app, http.MethodPost, "/api/locations", tenant, "admin", fiber.Map{"code": "DEP-01", "name": "Depósito"})
	require.Equal(t, http.StatusCreated, loc.status, string(loc.body))
	locationID = loc.object(t)["id"].(string)

	prod := call(t, app, http.MethodPost, "/api/products", tenant, "bodeguero", fiber.Map{
		"sku": "SKU-1", "name": "Tornillo", "sale_price": "1.50",
		"thresholds": []fiber.Map{{"location_id": locationID, "reorder_point": 4, "max_quantity": 20}},
	})
	require.Equal(t, http.StatusCreated, prod.status, string(prod.body))
	productID = prod.object(t)["id"].(string)

	sup := call(t, app, http.MethodPost, "/api/counterparties", tenant, "comprador", fiber.Map{
		"kind": "SUPPLIER", "person_type": "LEGAL", "name": "Proveedor SA", "tax_id": "900123",
	})
	require.Equal(t, http.StatusCreated, sup.status, string(sup.body))
	supplierID = sup.object(t)["id"].(string)

	cus := call(t, app, http.MethodPost, "/api/counterparties", tenant, "vendedor", fiber.Map{
		"kind": "CUSTOMER", "person_type": "NATURAL", "name": "Ana Pérez", "tax_id": "1020",
	})
	require.Equal(t, http.StatusCreated, cus.status, string(cus.body))
	customerID = cus.object(t)["id"].(string)
	return productID, locationID, supplierID, customerID
}

func TestHealth_Publico(t *testing.T) {
	app := newAPI()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_PermisosPorOperacion(t *testing.T) {
	app := newAPI()

	resp := call(t, app, http.MethodPost, "/api/products", "acme", "vendedor", fiber.Map{"sku": "X", "name": "X"})
	assert.Equal(t, http.StatusForbidden, resp.status)
	assert.Equal(t, "FORBIDDEN", resp.object(t)["code"])

	resp = call(t, app, http.MethodGet, "/api/finance/accounts", "acme", "bodeguero", nil)
	assert.Equal(t, http.StatusForbidden, resp.status)

	resp = call(t, app, http.MethodGet, "/api/products", "acme", "vendedor", nil)
	assert.Equal(t, http.StatusOK, resp.status)

	resp = call(t, app, http.MethodGet, "/api/products", "acme", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.status)
}

func TestRouter_CompraVentaYSaldos(t *testing.T) {
	app := newAPI()
	productID, locationID, supplierID, customerID := seed(t, app, "acme")

	po := call(t, app, http.MethodPost, "/api/purchase-orders", "acme", "comprador", fiber.Map{
		"supplier_id": supplierID,
		"items":       []fiber.Map{{"product_id": productID, "location_id": locationID, "quantity": 10, "unit_cost": "2"}},
	})
	require.Equal(t, http.StatusCreated, po.status, string(po.body))
	assert.Equal(t, "20", po.object(t)["total"])

	so := call(t, app, http.MethodPost, "/api/sales-orders", "acme", "vendedor", fiber.Map{
		"customer_id": customerID,
		"items":       []fiber.Map{{"product_id": productID, "location_id": locationID, "quantity": 15, "unit_price": "3"}},
	})
	require.Equal(t, http.StatusConflict, so.status, string(so.body))
	errBody := so.object(t)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody["code"])
	details := errBody["details"].(map[string]any)
	assert.EqualValues(t, 10, details["current"])
	assert.EqualValues(t, 15, details["requested"])

	so = call(t, app, http.MethodPost, "/api/sales-orders", "acme", "vendedor", fiber.Map{
		"customer_id": customerID,
		"items":       []fiber.Map{{"product_id": productID, "location_id": locationID, "quantity": 7, "unit_price": "3"}},
	})
	require.Equal(t, http.StatusCreated, so.status, string(so.body))

	balances := call(t, app, http.MethodGet, "/api/inventory/balances?product_id="+productID, "acme", "bodeguero", nil)
	require.Equal(t, http.StatusOK, balances.status)
	list := balances.array(t)
	require.Len(t, list, 1)
	assert.EqualValues(t, 3, list[0]["quantity"])

	repl := call(t, app, http.MethodGet, "/api/inventory/replenishment?location_id="+locationID, "acme", "bodeguero", nil)
	require.Equal(t, http.StatusOK, repl.status, string(repl.body))
	suggestions := repl.array(t)
	require.Len(t, suggestions, 1)
	assert.EqualValues(t, 17, suggestions[0]["suggested_order_qty"])

	movs := call(t, app, http.MethodGet, "/api/inventory/movements?product_id="+productID+"&location_id="+locationID, "acme", "bodeguero", nil)
	require.Equal(t, http.StatusOK, movs.status)
	history := movs.array(t)
	require.Len(t, history, 2)
	assert.Equal(t, "Orden de Compra #1", history[0]["document_ref"])
	assert.Equal(t, "Orden de Venta #1", history[1]["document_ref"])
}

func TestRouter_ErroresDeDominio(t *testing.T) {
	app := newAPI()
	productID, locationID, supplierID, _ := seed(t, app, "acme")

	resp := call(t, app, http.MethodPost, "/api/inventory/movements", "acme", "bodeguero", fiber.Map{"type": "INBOUND_RECEIPT"})
	require.Equal(t, http.StatusBadRequest, resp.status)
	body := resp.object(t)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Contains(t, body["details"], "product_id")

	resp = call(t, app, http.MethodGet, "/api/purchase-orders/"+uuid.NewString(), "acme", "comprador", nil)
	assert.Equal(t, http.StatusNotFound, resp.status)

	po := call(t, app, http.MethodPost, "/api/purchase-orders", "acme", "comprador", fiber.Map{
		"supplier_id": supplierID,
		"items":       []fiber.Map{{"product_id": productID, "location_id": locationID, "quantity": 2, "unit_cost": "1"}},
	})
	require.Equal(t, http.StatusCreated, po.status)
	id := po.object(t)["id"].(string)

	resp = call(t, app, http.MethodPost, "/api/purchase-orders/"+id+"/cancel", "acme", "comprador", nil)
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	assert.Equal(t, "CANCELLED", resp.object(t)["status"])

	resp = call(t, app, http.MethodPost, "/api/purchase-orders/"+id+"/cancel", "acme", "comprador", nil)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "INVALID_STATE", resp.object(t)["code"])

	resp = call(t, app, http.MethodPost, "/api/products", "acme", "admin", fiber.Map{"sku": "SKU-1", "name": "Repetido"})
	assert.Equal(t, http.StatusConflict, resp.status)
	assert.Equal(t, "DUPLICATE", resp.object(t)["code"])
}

func TestRouter_TenantsAislados(t *testing.T) {
	app := newAPI()
	productID, _, _, _ := seed(t, app, "acme")

	resp := call(t, app, http.MethodGet, "/api/products/"+productID, "acme", "vendedor", nil)
	assert.Equal(t, http.StatusOK, resp.status)

	resp = call(t, app, http.MethodGet, "/api/products/"+productID, "globex", "vendedor", nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
}

func TestRouter_LiquidarCuentaPorPagar(t *testing.T) {
	app := newAPI()
	_, _, supplierID, _ := seed(t, app, "acme")

	acc := call(t, app, http.MethodPost, "/api/finance/accounts", "acme", "financiero", fiber.Map{
		"name": "Banco C/C", "type": "BANK", "initial_balance": "500",
	})
	require.Equal(t, http.StatusCreated, acc.status, string(acc.body))
	accountID := acc.object(t)["id"].(string)

	p := call(t, app, http.MethodPost, "/api/finance/payables", "acme", "financiero", fiber.Map{
		"supplier_id": supplierID, "amount": "100", "description": "Insumos",
		"issue_date": "2026-01-10T00:00:00Z", "competency_date": "2026-01-10T00:00:00Z", "due_date": "2026-02-10T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, p.status, string(p.body))
	payableID := p.object(t)["id"].(string)

	s := call(t, app, http.MethodPost, "/api/finance/payables/"+payableID+"/settle", "acme", "financiero", fiber.Map{
		"account_id": accountID, "payment_date": "2026-02-01T00:00:00Z", "payment_method": "TRANSFER", "interest": "5",
	})
	require.Equal(t, http.StatusOK, s.status, string(s.body))
	assert.Equal(t, "SETTLED", s.object(t)["status"])

	got := call(t, app, http.MethodGet, "/api/finance/accounts/"+accountID, "acme", "financiero", nil)
	require.Equal(t, http.StatusOK, got.status)
	assert.Equal(t, "395", got.object(t)["current_balance"])

	entries := call(t, app, http.MethodGet, "/api/finance/entries?account_id="+accountID, "acme", "financiero", nil)
	require.Equal(t, http.StatusOK, entries.status)
	list := entries.array(t)
	require.Len(t, list, 1)
	assert.Equal(t, "OUTFLOW", list[0]["direction"])
	assert.Equal(t, "Pago ref. a: Insumos", list[0]["description"])
}
