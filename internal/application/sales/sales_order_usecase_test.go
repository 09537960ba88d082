package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/inventory"
	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/application/sales"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
	"github.com/jhoicas/erp-core/internal/infrastructure/memory"
)

var testScope = domain.Scope{TenantID: "acme", UserID: "u-2", Role: entity.RoleVendedor}

type fixture struct {
	store      *memory.Store
	uc         *sales.SalesOrderUseCase
	products   [2]string
	locationID string
	customerID string
	supplierID string
}

// newFixture crea dos productos con 10 y 2 unidades en la misma ubicación.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ledger := inventory.NewStockLedger()
	f := &fixture{
		store:      store,
		uc:         sales.NewSalesOrderUseCase(store, ledger),
		products:   [2]string{uuid.NewString(), uuid.NewString()},
		locationID: uuid.NewString(),
		customerID: uuid.NewString(),
		supplierID: uuid.NewString(),
	}
	err := store.Run(context.Background(), testScope, func(ctx context.Context, repos repository.TxRepos) error {
		if err := repos.Locations.Create(ctx, &entity.Location{ID: f.locationID, Code: "TIENDA", Name: "Tienda"}); err != nil {
			return err
		}
		if err := repos.Counterparties.Create(ctx, &entity.Counterparty{ID: f.customerID, Kind: entity.CounterpartyCustomer, Name: "Cliente", TaxID: "1"}); err != nil {
			return err
		}
		if err := repos.Counterparties.Create(ctx, &entity.Counterparty{ID: f.supplierID, Kind: entity.CounterpartySupplier, Name: "Proveedor", TaxID: "2"}); err != nil {
			return err
		}
		for i, qty := range []int64{10, 2} {
			if err := repos.Products.Create(ctx, &entity.Product{ID: f.products[i], SKU: f.products[i], Name: "Producto"}); err != nil {
				return err
			}
			if _, err := ledger.ApplyStockDelta(ctx, repos, ports.StockDelta{
				ProductID: f.products[i], LocationID: f.locationID, Delta: qty, Type: entity.MovementOpeningBalance,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) quantities(t *testing.T) [2]int64 {
	t.Helper()
	var out [2]int64
	err := f.store.Run(context.Background(), testScope, func(ctx context.Context, repos repository.TxRepos) error {
		for i, pid := range f.products {
			b, err := repos.Stock.Get(ctx, pid, f.locationID)
			if err != nil {
				return err
			}
			out[i] = b.Quantity
		}
		return nil
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) line(i int, qty int64) dto.SalesOrderItemRequest {
	return dto.SalesOrderItemRequest{ProductID: f.products[i], LocationID: f.locationID, Quantity: qty, UnitPrice: decimal.NewFromInt(4)}
}

func TestSalesOrder_CrearDescuentaYCancelarDevuelve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.uc.Create(ctx, testScope, dto.CreateSalesOrderRequest{
		CustomerID: f.customerID,
		Items:      []dto.SalesOrderItemRequest{f.line(0, 3), f.line(1, 2)},
	})
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, [2]int64{7, 0}, f.quantities(t))

	cancelled, err := f.uc.Cancel(ctx, testScope, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SalesOrderCancelled, cancelled.Status)
	assert.Equal(t, [2]int64{10, 2}, f.quantities(t))

	_, err = f.uc.Cancel(ctx, testScope, order.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.Equal(t, [2]int64{10, 2}, f.quantities(t))
}

func TestSalesOrder_LineaSinStockRevierteTodaLaOrden(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), testScope, dto.CreateSalesOrderRequest{
		CustomerID: f.customerID,
		Items:      []dto.SalesOrderItemRequest{f.line(0, 5), f.line(1, 3)},
	})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(2), stockErr.Current)
	assert.Equal(t, int64(3), stockErr.Requested)

	// la primera línea tampoco debe haberse aplicado
	assert.Equal(t, [2]int64{10, 2}, f.quantities(t))
	list, err := f.uc.List(context.Background(), testScope, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSalesOrder_ClienteQueEsProveedor(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), testScope, dto.CreateSalesOrderRequest{
		CustomerID: f.supplierID,
		Items:      []dto.SalesOrderItemRequest{f.line(0, 1)},
	})
	var refErr *domain.InvalidReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, f.supplierID, refErr.ID)
}

func TestSalesOrder_FacturadaNoSePuedeCancelar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.uc.Create(ctx, testScope, dto.CreateSalesOrderRequest{
		CustomerID: f.customerID,
		Items:      []dto.SalesOrderItemRequest{f.line(0, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, "Orden de Venta #1", mustDocRef(t, f))

	invoiced, err := f.uc.MarkInvoiced(ctx, testScope, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SalesOrderInvoiced, invoiced.Status)

	_, err = f.uc.Cancel(ctx, testScope, order.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.Equal(t, [2]int64{9, 2}, f.quantities(t))
}

func TestSalesOrder_GetInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.GetByID(context.Background(), testScope, uuid.NewString())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// mustDocRef devuelve la referencia del último movimiento del primer producto.
func mustDocRef(t *testing.T, f *fixture) string {
	t.Helper()
	var ref string
	err := f.store.Run(context.Background(), testScope, func(ctx context.Context, repos repository.TxRepos) error {
		movs, err := repos.Movements.ListByBalance(ctx, f.products[0], f.locationID, 0, 0)
		if err != nil {
			return err
		}
		ref = movs[len(movs)-1].DocumentRef
		return nil
	})
	require.NoError(t, err)
	return ref
}
