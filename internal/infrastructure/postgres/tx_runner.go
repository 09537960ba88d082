package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

var tracer = otel.Tracer("github.com/jhoicas/erp-core/internal/infrastructure/postgres")

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL ligada al esquema del tenant.
type TxRunner struct {
	pool         *pgxpool.Pool
	schemaPrefix string
}

// NewTxRunner construye el runner con el pool. El esquema de cada tenant es schemaPrefix + tenant_id.
func NewTxRunner(pool *pgxpool.Pool, schemaPrefix string) *TxRunner {
	return &TxRunner{pool: pool, schemaPrefix: schemaPrefix}
}

// Run inicia una transacción, fija el search_path del tenant (local a la tx), ejecuta fn
// con repos atados a la tx y hace Commit o Rollback. El error de fn se devuelve sin envolver.
func (r *TxRunner) Run(ctx context.Context, scope domain.Scope, fn func(ctx context.Context, repos repository.TxRepos) error) (err error) {
	if scope.TenantID == "" {
		return fmt.Errorf("%w: tenant vacío", domain.ErrUnauthorized)
	}
	ctx, span := tracer.Start(ctx, "postgres.tx", trace.WithAttributes(
		attribute.String("tenant_id", scope.TenantID),
		attribute.String("user_id", scope.UserID),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	schema := pgx.Identifier{r.schemaPrefix + scope.TenantID}.Sanitize()
	if _, err := tx.Exec(ctx, "SELECT set_config('search_path', $1, true)", schema); err != nil {
		return fmt.Errorf("set search_path: %w", err)
	}

	if err := fn(ctx, NewTxRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewTxRepos construye todos los repositorios sobre el mismo Querier (pool o tx).
func NewTxRepos(q Querier) repository.TxRepos {
	return repository.TxRepos{
		Products:       NewProductRepository(q),
		Locations:      NewLocationRepository(q),
		Counterparties: NewCounterpartyRepository(q),
		Stock:          NewStockRepository(q),
		Movements:      NewStockMovementRepository(q),
		Accounts:       NewAccountRepository(q),
		Entries:        NewLedgerEntryRepository(q),
		Payables:       NewPayableRepository(q),
		Receivables:    NewReceivableRepository(q),
		PurchaseOrders: NewPurchaseOrderRepository(q),
		SalesOrders:    NewSalesOrderRepository(q),
	}
}
