package inventory_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/inventory"
	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
	"github.com/jhoicas/erp-core/internal/infrastructure/memory"
)

var testScope = domain.Scope{TenantID: "acme", UserID: "u-1", Role: entity.RoleBodeguero}

type fixture struct {
	store      *memory.Store
	productID  string
	locationID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memory.NewStore(), productID: uuid.NewString(), locationID: uuid.NewString()}
	err := f.store.Run(context.Background(), testScope, func(ctx context.Context, repos repository.TxRepos) error {
		if err := repos.Products.Create(ctx, &entity.Product{ID: f.productID, SKU: "SKU-1", Name: "Tornillo"}); err != nil {
			return err
		}
		return repos.Locations.Create(ctx, &entity.Location{ID: f.locationID, Code: "DEP-01", Name: "Depósito"})
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) balance(t *testing.T) *entity.StockBalance {
	t.Helper()
	var b *entity.StockBalance
	err := f.store.Run(context.Background(), testScope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		b, err = repos.Stock.Get(ctx, f.productID, f.locationID)
		return err
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) movements(t *testing.T) []*entity.StockMovement {
	t.Helper()
	var list []*entity.StockMovement
	err := f.store.Run(context.Background(), testScope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		list, err = repos.Movements.ListByBalance(ctx, f.productID, f.locationID, 0, 0)
		return err
	})
	require.NoError(t, err)
	return list
}

func (f *fixture) register(t *testing.T, uc *inventory.MovementUseCase, typ entity.MovementType, qty int64) error {
	t.Helper()
	_, err := uc.Register(context.Background(), testScope, dto.RegisterMovementRequest{
		ProductID:  f.productID,
		LocationID: f.locationID,
		Type:       string(typ),
		Quantity:   qty,
	})
	return err
}

// spyMover cuenta las llamadas al ledger de stock.
type spyMover struct {
	inner  ports.StockMover
	calls  int
	deltas []int64
}

func (s *spyMover) ApplyStockDelta(ctx context.Context, repos repository.TxRepos, in ports.StockDelta) (*entity.StockMovement, error) {
	s.calls++
	s.deltas = append(s.deltas, in.Delta)
	return s.inner.ApplyStockDelta(ctx, repos, in)
}

func TestRegister_HistorialReconstruyeSaldo(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewMovementUseCase(f.store, inventory.NewStockLedger())

	require.NoError(t, f.register(t, uc, entity.MovementOpeningBalance, 10))
	require.NoError(t, f.register(t, uc, entity.MovementOutboundDamage, -4))
	require.NoError(t, f.register(t, uc, entity.MovementInboundReceipt, 7))

	movs := f.movements(t)
	require.Len(t, movs, 3)
	assert.Equal(t, int64(13), f.balance(t).Quantity)
	assert.Equal(t, f.balance(t).Quantity, entity.ReplayQuantity(movs))

	// cada movimiento encadena con el anterior
	for i := 1; i < len(movs); i++ {
		assert.Equal(t, movs[i-1].BalanceAfter(), movs[i].BalanceBefore)
		assert.Greater(t, movs[i].Seq, movs[i-1].Seq)
	}
}

func TestRegister_StockInsuficienteNoDejaEscrituras(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewMovementUseCase(f.store, inventory.NewStockLedger())
	require.NoError(t, f.register(t, uc, entity.MovementInboundReceipt, 5))

	err := f.register(t, uc, entity.MovementOutboundShipment, -8)
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(5), stockErr.Current)
	assert.Equal(t, int64(8), stockErr.Requested)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.Equal(t, int64(5), f.balance(t).Quantity)
	assert.Len(t, f.movements(t), 1)
}

func TestRegister_SalidaSinSaldoNoCreaSaldo(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewMovementUseCase(f.store, inventory.NewStockLedger())

	err := f.register(t, uc, entity.MovementOutboundDamage, -1)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(0), stockErr.Current)
	assert.Nil(t, f.balance(t))
	assert.Empty(t, f.movements(t))
}

func TestRegister_SignoIncompatibleConTipo(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewMovementUseCase(f.store, inventory.NewStockLedger())

	err := f.register(t, uc, entity.MovementOutboundShipment, 3)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Nil(t, f.balance(t))
}

func TestRegister_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewMovementUseCase(f.store, inventory.NewStockLedger())

	_, err := uc.Register(context.Background(), testScope, dto.RegisterMovementRequest{
		ProductID:  uuid.NewString(),
		LocationID: f.locationID,
		Type:       string(entity.MovementInboundReceipt),
		Quantity:   1,
	})
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "producto", nf.Resource)
}

func TestStockLedger_RechazaDeltaCero(t *testing.T) {
	f := newFixture(t)
	ledger := inventory.NewStockLedger()
	err := f.store.Run(context.Background(), testScope, func(ctx context.Context, repos repository.TxRepos) error {
		_, err := ledger.ApplyStockDelta(ctx, repos, ports.StockDelta{
			ProductID:  f.productID,
			LocationID: f.locationID,
			Delta:      0,
			Type:       entity.MovementInventoryAdjustment,
		})
		return err
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestStockLedger_DesbordamientoEsValidacion(t *testing.T) {
	f := newFixture(t)
	mov := inventory.NewMovementUseCase(f.store, inventory.NewStockLedger())
	require.NoError(t, f.register(t, mov, entity.MovementInboundReceipt, 5))

	ledger := inventory.NewStockLedger()
	apply := func(delta int64, typ entity.MovementType) error {
		return f.store.Run(context.Background(), testScope, func(ctx context.Context, repos repository.TxRepos) error {
			_, err := ledger.ApplyStockDelta(ctx, repos, ports.StockDelta{
				ProductID:  f.productID,
				LocationID: f.locationID,
				Delta:      delta,
				Type:       typ,
			})
			return err
		})
	}

	for _, tc := range []struct {
		delta int64
		typ   entity.MovementType
	}{
		{math.MaxInt64, entity.MovementInboundReceipt},
		{math.MinInt64, entity.MovementOutboundShipment},
	} {
		err := apply(tc.delta, tc.typ)
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr), "delta %d", tc.delta)
		assert.Equal(t, "overflow", verr.Fields["quantity"])
		assert.False(t, errors.Is(err, domain.ErrInsufficientStock))
	}

	assert.Equal(t, int64(5), f.balance(t).Quantity)
	assert.Len(t, f.movements(t), 1)
}

func reconcile(t *testing.T, f *fixture, uc *inventory.ReconcileUseCase, counted int64) (*dto.ReconcileResponse, error) {
	t.Helper()
	return uc.Reconcile(context.Background(), testScope, dto.ReconcileRequest{
		ProductID:       f.productID,
		LocationID:      f.locationID,
		CountedQuantity: &counted,
	})
}

func TestReconcile_SinDiferenciaNoLlamaAlLedger(t *testing.T) {
	f := newFixture(t)
	ledger := inventory.NewStockLedger()
	require.NoError(t, f.register(t, inventory.NewMovementUseCase(f.store, ledger), entity.MovementInboundReceipt, 6))

	spy := &spyMover{inner: ledger}
	uc := inventory.NewReconcileUseCase(f.store, spy)

	res, err := reconcile(t, f, uc, 6)
	require.NoError(t, err)
	assert.False(t, res.Adjusted)
	assert.Equal(t, inventory.NoAdjustmentMessage, res.Message)
	assert.Nil(t, res.Movement)
	assert.Equal(t, 0, spy.calls)
	assert.Len(t, f.movements(t), 1)
}

func TestReconcile_AplicaDiferencia(t *testing.T) {
	f := newFixture(t)
	ledger := inventory.NewStockLedger()
	require.NoError(t, f.register(t, inventory.NewMovementUseCase(f.store, ledger), entity.MovementInboundReceipt, 10))

	spy := &spyMover{inner: ledger}
	uc := inventory.NewReconcileUseCase(f.store, spy)

	res, err := reconcile(t, f, uc, 7)
	require.NoError(t, err)
	assert.True(t, res.Adjusted)
	assert.Equal(t, "Ajuste de inventario. Contado: 7, Sistema: 10.", res.Message)
	require.NotNil(t, res.Movement)
	assert.Equal(t, int64(-3), res.Movement.Quantity)
	assert.Equal(t, string(entity.MovementInventoryAdjustment), res.Movement.Type)
	assert.Equal(t, int64(7), f.balance(t).Quantity)

	_, err = reconcile(t, f, uc, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), f.balance(t).Quantity)
	assert.Equal(t, []int64{-3, 5}, spy.deltas)
}

func TestReconcile_SinSaldoPrevio(t *testing.T) {
	f := newFixture(t)
	spy := &spyMover{inner: inventory.NewStockLedger()}
	uc := inventory.NewReconcileUseCase(f.store, spy)

	res, err := reconcile(t, f, uc, 0)
	require.NoError(t, err)
	assert.False(t, res.Adjusted)
	assert.Equal(t, 0, spy.calls)

	res, err = reconcile(t, f, uc, 4)
	require.NoError(t, err)
	assert.True(t, res.Adjusted)
	assert.Equal(t, int64(4), f.balance(t).Quantity)
}

func TestReconcile_ConteoNegativoEsValidacion(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewReconcileUseCase(f.store, inventory.NewStockLedger())

	_, err := reconcile(t, f, uc, -1)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "counted_quantity")
}

func TestReplenishment_OrdenaPorFaltante(t *testing.T) {
	f := newFixture(t)
	other := uuid.NewString()
	reorder, maxQty := int64(10), int64(20)
	err := f.store.Run(context.Background(), testScope, func(ctx context.Context, repos repository.TxRepos) error {
		if err := repos.Products.Create(ctx, &entity.Product{ID: other, SKU: "SKU-2", Name: "Tuerca"}); err != nil {
			return err
		}
		for _, pid := range []string{f.productID, other} {
			b, err := repos.Stock.CreateEmpty(ctx, pid, f.locationID)
			if err != nil {
				return err
			}
			b.ReorderPoint, b.MaxQuantity = &reorder, &maxQty
			if err := repos.Stock.SetThresholds(ctx, b); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	uc := inventory.NewMovementUseCase(f.store, inventory.NewStockLedger())
	_, err = uc.Register(context.Background(), testScope, dto.RegisterMovementRequest{
		ProductID: other, LocationID: f.locationID, Type: string(entity.MovementInboundReceipt), Quantity: 8,
	})
	require.NoError(t, err)

	list, err := inventory.NewReplenishmentUseCase(f.store).GenerateReplenishmentList(context.Background(), testScope, f.locationID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, f.productID, list[0].ProductID)
	assert.Equal(t, int64(20), list[0].SuggestedOrderQty)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, int64(12), list[1].SuggestedOrderQty)
}
