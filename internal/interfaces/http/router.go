package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-core/internal/application/authz"
	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/finance"
	"github.com/jhoicas/erp-core/internal/application/inventory"
	"github.com/jhoicas/erp-core/internal/application/purchasing"
	"github.com/jhoicas/erp-core/internal/application/sales"
	"github.com/jhoicas/erp-core/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	LocationUC     *usecase.LocationUseCase
	CounterpartyUC *usecase.CounterpartyUseCase
	Movements      *inventory.MovementUseCase
	Reconcile      *inventory.ReconcileUseCase
	StockQuery     *inventory.QueryUseCase
	Replenishment  *inventory.ReplenishmentUseCase
	PurchaseOrders *purchasing.PurchaseOrderUseCase
	SalesOrders    *sales.SalesOrderUseCase
	Accounts       *finance.AccountUseCase
	Entries        *finance.EntryUseCase
	Payables       *finance.PayableUseCase
	Receivables    *finance.ReceivableUseCase
	Authorizer     *authz.Authorizer
	JWTSecret      string
	ServiceName    string
	// Ping verifica el backend de persistencia en /health; nil = siempre ok.
	Ping func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	can := func(op authz.Operation) fiber.Handler {
		return RequirePermission(deps.Authorizer, op)
	}

	// Catálogo
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Post("/", can(authz.OpProductWrite), productHandler.Create)
	products.Get("/", can(authz.OpCatalogRead), productHandler.List)
	products.Get("/:id", can(authz.OpCatalogRead), productHandler.GetByID)

	locationHandler := NewLocationHandler(deps.LocationUC)
	locations := api.Group("/locations")
	locations.Post("/", can(authz.OpLocationWrite), locationHandler.Create)
	locations.Get("/", can(authz.OpCatalogRead), locationHandler.List)

	counterpartyHandler := NewCounterpartyHandler(deps.CounterpartyUC)
	counterparties := api.Group("/counterparties")
	counterparties.Post("/", can(authz.OpCounterpartyWrite), counterpartyHandler.Create)
	counterparties.Get("/", can(authz.OpCatalogRead), counterpartyHandler.List)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.Movements, deps.Reconcile, deps.StockQuery, deps.Replenishment)
	inv := api.Group("/inventory")
	inv.Post("/movements", can(authz.OpStockMove), inventoryHandler.RegisterMovement)
	inv.Get("/movements", can(authz.OpStockRead), inventoryHandler.ListMovements)
	inv.Post("/adjustments", can(authz.OpStockReconcile), inventoryHandler.Reconcile)
	inv.Get("/balances", can(authz.OpStockRead), inventoryHandler.ListBalances)
	inv.Get("/replenishment", can(authz.OpStockRead), inventoryHandler.GetReplenishmentList)

	// Compras
	purchaseHandler := NewPurchaseOrderHandler(deps.PurchaseOrders)
	purchases := api.Group("/purchase-orders")
	purchases.Post("/", can(authz.OpPurchaseWrite), purchaseHandler.Create)
	purchases.Get("/", can(authz.OpPurchaseRead), purchaseHandler.List)
	purchases.Get("/:id", can(authz.OpPurchaseRead), purchaseHandler.GetByID)
	purchases.Post("/:id/cancel", can(authz.OpPurchaseWrite), purchaseHandler.Cancel)
	purchases.Post("/:id/receive", can(authz.OpPurchaseWrite), purchaseHandler.MarkReceived)

	// Ventas
	salesHandler := NewSalesOrderHandler(deps.SalesOrders)
	salesGroup := api.Group("/sales-orders")
	salesGroup.Post("/", can(authz.OpSalesWrite), salesHandler.Create)
	salesGroup.Get("/", can(authz.OpSalesRead), salesHandler.List)
	salesGroup.Get("/:id", can(authz.OpSalesRead), salesHandler.GetByID)
	salesGroup.Post("/:id/cancel", can(authz.OpSalesWrite), salesHandler.Cancel)
	salesGroup.Post("/:id/invoice", can(authz.OpSalesWrite), salesHandler.MarkInvoiced)

	// Finanzas
	financeHandler := NewFinanceHandler(deps.Accounts, deps.Entries, deps.Payables, deps.Receivables)
	fin := api.Group("/finance")
	fin.Post("/accounts", can(authz.OpFinanceAccounts), financeHandler.CreateAccount)
	fin.Get("/accounts", can(authz.OpFinanceAccounts), financeHandler.ListAccounts)
	fin.Get("/accounts/:id", can(authz.OpFinanceAccounts), financeHandler.GetAccount)
	fin.Post("/entries", can(authz.OpFinanceEntries), financeHandler.CreateEntry)
	fin.Get("/entries", can(authz.OpFinanceEntries), financeHandler.ListEntries)

	fin.Post("/payables", can(authz.OpFinanceSettlements), financeHandler.CreatePayable)
	fin.Get("/payables", can(authz.OpFinanceSettlements), financeHandler.ListPayables)
	fin.Get("/payables/:id", can(authz.OpFinanceSettlements), financeHandler.GetPayable)
	fin.Post("/payables/:id/settle", can(authz.OpFinanceSettlements), financeHandler.SettlePayable)
	fin.Post("/payables/:id/cancel", can(authz.OpFinanceSettlements), financeHandler.CancelPayable)

	fin.Post("/receivables", can(authz.OpFinanceSettlements), financeHandler.CreateReceivable)
	fin.Get("/receivables", can(authz.OpFinanceSettlements), financeHandler.ListReceivables)
	fin.Get("/receivables/:id", can(authz.OpFinanceSettlements), financeHandler.GetReceivable)
	fin.Post("/receivables/:id/settle", can(authz.OpFinanceSettlements), financeHandler.SettleReceivable)
	fin.Post("/receivables/:id/cancel", can(authz.OpFinanceSettlements), financeHandler.CancelReceivable)
}

// healthHandler godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /health [get]
func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Ping != nil {
			if err := deps.Ping(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "base de datos no disponible"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
}
