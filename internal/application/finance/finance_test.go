package finance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/finance"
	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
	"github.com/jhoicas/erp-core/internal/infrastructure/memory"
)

var testScope = domain.Scope{TenantID: "acme", UserID: "u-3", Role: entity.RoleFinanciero}

type fixture struct {
	store       *memory.Store
	ledger      *finance.AccountLedger
	accounts    *finance.AccountUseCase
	payables    *finance.PayableUseCase
	receivables *finance.ReceivableUseCase
	entries     *finance.EntryUseCase
	accountID   string
	supplierID  string
	customerID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ledger := finance.NewAccountLedger()
	f := &fixture{
		store:       store,
		ledger:      ledger,
		accounts:    finance.NewAccountUseCase(store),
		payables:    finance.NewPayableUseCase(store, ledger),
		receivables: finance.NewReceivableUseCase(store, ledger),
		entries:     finance.NewEntryUseCase(store, ledger),
		supplierID:  uuid.NewString(),
		customerID:  uuid.NewString(),
	}
	err := store.Run(context.Background(), testScope, func(ctx context.Context, repos repository.TxRepos) error {
		if err := repos.Counterparties.Create(ctx, &entity.Counterparty{ID: f.supplierID, Kind: entity.CounterpartySupplier, Name: "Proveedor", TaxID: "9"}); err != nil {
			return err
		}
		return repos.Counterparties.Create(ctx, &entity.Counterparty{ID: f.customerID, Kind: entity.CounterpartyCustomer, Name: "Cliente", TaxID: "8"})
	})
	require.NoError(t, err)

	acc, err := f.accounts.Create(context.Background(), testScope, dto.CreateAccountRequest{
		Name: "Caja", Type: entity.AccountTypeCash, InitialBalance: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	f.accountID = acc.ID
	return f
}

func (f *fixture) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	acc, err := f.accounts.GetByID(context.Background(), testScope, f.accountID)
	require.NoError(t, err)
	return acc.CurrentBalance
}

func (f *fixture) newPayable(t *testing.T, amount int64) *dto.SettlementResponse {
	t.Helper()
	now := time.Now()
	p, err := f.payables.Create(context.Background(), testScope, dto.CreatePayableRequest{
		SupplierID:     f.supplierID,
		Amount:         decimal.NewFromInt(amount),
		IssueDate:      now,
		CompetencyDate: now,
		DueDate:        now.AddDate(0, 0, 30),
		Description:    "Factura 123",
		Category:       "insumos",
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) settleRequest() dto.SettleRequest {
	return dto.SettleRequest{AccountID: f.accountID, PaymentDate: time.Now(), PaymentMethod: "EFECTIVO"}
}

func TestAccount_SaldoInicial(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(500)))
}

func TestPayable_LiquidarUnaSolaVez(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newPayable(t, 100)

	settled, err := f.payables.Settle(ctx, testScope, p.ID, f.settleRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.SettlementSettled, settled.Status)
	assert.Equal(t, f.accountID, settled.AccountID)
	require.NotEmpty(t, settled.EntryID)
	require.NotNil(t, settled.PaymentDate)

	entries, err := f.entries.List(ctx, testScope, f.accountID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, settled.EntryID, entries[0].ID)
	assert.Equal(t, string(entity.DirectionOutflow), entries[0].Direction)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "Pago ref. a: Factura 123", entries[0].Description)
	assert.Equal(t, f.supplierID, entries[0].CounterpartyID)
	assert.Equal(t, "insumos", entries[0].Category)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(400)))

	_, err = f.payables.Settle(ctx, testScope, p.ID, f.settleRequest())
	var stateErr *domain.InvalidStateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, entity.SettlementSettled, stateErr.Status)

	entries, err = f.entries.List(ctx, testScope, f.accountID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(400)))
}

func TestPayable_InteresYMulta(t *testing.T) {
	f := newFixture(t)
	p := f.newPayable(t, 100)

	in := f.settleRequest()
	interest, penalty := decimal.NewFromFloat(2.5), decimal.NewFromInt(1)
	in.Interest, in.Penalty = &interest, &penalty

	settled, err := f.payables.Settle(context.Background(), testScope, p.ID, in)
	require.NoError(t, err)
	assert.True(t, settled.Interest.Equal(interest))
	assert.True(t, f.balance(t).Equal(decimal.NewFromFloat(396.5)))
}

func TestPayable_MontoDeclarado(t *testing.T) {
	f := newFixture(t)
	p := f.newPayable(t, 100)

	in := f.settleRequest()
	override := decimal.NewFromInt(90)
	in.Amount = &override

	_, err := f.payables.Settle(context.Background(), testScope, p.ID, in)
	require.NoError(t, err)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(410)))
}

func TestPayable_InteresNegativoRechazado(t *testing.T) {
	f := newFixture(t)
	p := f.newPayable(t, 100)

	in := f.settleRequest()
	negative := decimal.NewFromInt(-5)
	in.Interest = &negative

	_, err := f.payables.Settle(context.Background(), testScope, p.ID, in)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(500)))
}

func TestPayable_CanceladaNoSeLiquida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newPayable(t, 100)

	cancelled, err := f.payables.Cancel(ctx, testScope, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SettlementCancelled, cancelled.Status)

	_, err = f.payables.Settle(ctx, testScope, p.ID, f.settleRequest())
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(500)))
}

func TestPayable_CuentaInexistenteRevierte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newPayable(t, 100)

	in := f.settleRequest()
	in.AccountID = uuid.NewString()
	_, err := f.payables.Settle(ctx, testScope, p.ID, in)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	got, err := f.payables.GetByID(ctx, testScope, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SettlementOpen, got.Status)
}

func TestPayable_TerceroDebeSerProveedor(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	_, err := f.payables.Create(context.Background(), testScope, dto.CreatePayableRequest{
		SupplierID: f.customerID, Amount: decimal.NewFromInt(1),
		IssueDate: now, CompetencyDate: now, DueDate: now, Description: "x",
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidReference))
}

func TestReceivable_LiquidarGeneraEntrada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()
	r, err := f.receivables.Create(ctx, testScope, dto.CreateReceivableRequest{
		CustomerID:     f.customerID,
		Amount:         decimal.NewFromInt(250),
		IssueDate:      now,
		CompetencyDate: now,
		DueDate:        now,
		DocumentNumber: "FV-77",
	})
	require.NoError(t, err)

	settled, err := f.receivables.Settle(ctx, testScope, r.ID, f.settleRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.SettlementSettled, settled.Status)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(750)))

	entries, err := f.entries.List(ctx, testScope, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, string(entity.DirectionInflow), entries[0].Direction)
	assert.Equal(t, "Cobro ref. al doc #FV-77", entries[0].Description)

	list, err := f.receivables.List(ctx, testScope, entity.SettlementOpen, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func (f *fixture) newReceivable(t *testing.T, amount int64, doc string) *dto.SettlementResponse {
	t.Helper()
	now := time.Now()
	r, err := f.receivables.Create(context.Background(), testScope, dto.CreateReceivableRequest{
		CustomerID:     f.customerID,
		Amount:         decimal.NewFromInt(amount),
		IssueDate:      now,
		CompetencyDate: now,
		DueDate:        now.AddDate(0, 0, 15),
		DocumentNumber: doc,
	})
	require.NoError(t, err)
	return r
}

func TestReceivable_LiquidarUnaSolaVez(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.newReceivable(t, 120, "FV-1")

	_, err := f.receivables.Settle(ctx, testScope, r.ID, f.settleRequest())
	require.NoError(t, err)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(620)))

	_, err = f.receivables.Settle(ctx, testScope, r.ID, f.settleRequest())
	var stateErr *domain.InvalidStateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, entity.SettlementSettled, stateErr.Status)

	_, err = f.receivables.Cancel(ctx, testScope, r.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidState), "una cuenta liquidada no se cancela")

	entries, err := f.entries.List(ctx, testScope, f.accountID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(620)))
}

func TestReceivable_CanceladaNoSeLiquida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.newReceivable(t, 80, "FV-2")

	cancelled, err := f.receivables.Cancel(ctx, testScope, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SettlementCancelled, cancelled.Status)

	_, err = f.receivables.Settle(ctx, testScope, r.ID, f.settleRequest())
	var stateErr *domain.InvalidStateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, entity.SettlementCancelled, stateErr.Status)

	entries, err := f.entries.List(ctx, testScope, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(500)))
}

func TestAccountLedger_RechazaMontoNoPositivo(t *testing.T) {
	f := newFixture(t)
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		err := f.store.Run(context.Background(), testScope, func(ctx context.Context, repos repository.TxRepos) error {
			_, err := f.ledger.ApplyLedgerDelta(ctx, repos, ports.LedgerDelta{
				AccountID: f.accountID,
				Direction: entity.DirectionInflow,
				Amount:    amount,
			})
			return err
		})
		assert.True(t, errors.Is(err, domain.ErrValidation), "monto %s", amount)
	}
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(500)))
}

func TestAccountLedger_RechazaMasDeDosDecimales(t *testing.T) {
	f := newFixture(t)
	apply := func(amount decimal.Decimal) error {
		return f.store.Run(context.Background(), testScope, func(ctx context.Context, repos repository.TxRepos) error {
			_, err := f.ledger.ApplyLedgerDelta(ctx, repos, ports.LedgerDelta{
				AccountID: f.accountID,
				Direction: entity.DirectionInflow,
				Amount:    amount,
			})
			return err
		})
	}

	for _, amount := range []string{"0.004", "0.005", "10.001"} {
		err := apply(decimal.RequireFromString(amount))
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr), "monto %s", amount)
		assert.Equal(t, "money", verr.Fields["amount"])
	}
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(500)), "ningún asiento rechazado mueve el saldo")

	require.NoError(t, apply(decimal.RequireFromString("1.50")))
	assert.True(t, f.balance(t).Equal(decimal.RequireFromString("501.5")))
}

func TestEntry_MontoConMasDeDosDecimales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.entries.Create(ctx, testScope, dto.CreateEntryRequest{
		AccountID:      f.accountID,
		Direction:      string(entity.DirectionInflow),
		Amount:         decimal.RequireFromString("0.004"),
		Description:    "redondeo",
		CompetencyDate: time.Now(),
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "money", verr.Fields["amount"])

	p := f.newPayable(t, 100)
	in := f.settleRequest()
	override := decimal.RequireFromString("99.999")
	in.Amount = &override
	_, err = f.payables.Settle(ctx, testScope, p.ID, in)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "money", verr.Fields["amount"])

	entries, err := f.entries.List(ctx, testScope, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntry_ManualYSaldoConsistente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, in := range []struct {
		dir    entity.Direction
		amount int64
	}{{entity.DirectionInflow, 70}, {entity.DirectionOutflow, 20}, {entity.DirectionOutflow, 5}} {
		_, err := f.entries.Create(ctx, testScope, dto.CreateEntryRequest{
			AccountID:      f.accountID,
			Direction:      string(in.dir),
			Amount:         decimal.NewFromInt(in.amount),
			Description:    "manual",
			CompetencyDate: time.Now(),
		})
		require.NoError(t, err)
	}

	entries, err := f.entries.List(ctx, testScope, f.accountID, dto.PageRequest{})
	require.NoError(t, err)
	sum := decimal.NewFromInt(500)
	for _, e := range entries {
		le := entity.LedgerEntry{Direction: entity.Direction(e.Direction), Amount: e.Amount}
		sum = sum.Add(le.SignedAmount())
	}
	assert.True(t, f.balance(t).Equal(sum))
	assert.True(t, sum.Equal(decimal.NewFromInt(545)))

	_, err = f.entries.Create(ctx, testScope, dto.CreateEntryRequest{
		AccountID:      f.accountID,
		CounterpartyID: uuid.NewString(),
		Direction:      string(entity.DirectionInflow),
		Amount:         decimal.NewFromInt(1),
		Description:    "tercero inexistente",
		CompetencyDate: time.Now(),
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
