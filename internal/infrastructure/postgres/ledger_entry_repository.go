package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

var _ repository.LedgerEntryRepository = (*LedgerEntryRepo)(nil)

// LedgerEntryRepo registro append-only de asientos.
type LedgerEntryRepo struct {
	q Querier
}

// NewLedgerEntryRepository construye el adaptador de asientos financieros.
func NewLedgerEntryRepository(q Querier) *LedgerEntryRepo {
	return &LedgerEntryRepo{q: q}
}

const entryColumns = `id, seq, account_id, counterparty_id, direction, amount, description, category, competency_date, created_by, created_at`

func scanEntry(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	var counterpartyID, category, createdBy *string
	err := row.Scan(
		&e.ID, &e.Seq, &e.AccountID, &counterpartyID, &e.Direction, &e.Amount,
		&e.Description, &category, &e.CompetencyDate, &createdBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.CounterpartyID, e.Category, e.CreatedBy = deref(counterpartyID), deref(category), deref(createdBy)
	return &e, nil
}

// Create registra el asiento; seq lo asigna la BD.
func (r *LedgerEntryRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	ensureID(&e.ID)
	ensureTime(&e.CreatedAt)
	query := `
		INSERT INTO ledger_entries (id, account_id, counterparty_id, direction, amount, description, category, competency_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		e.ID, e.AccountID, nullIfEmpty(e.CounterpartyID), string(e.Direction), e.Amount,
		e.Description, nullIfEmpty(e.Category), e.CompetencyDate, nullIfEmpty(e.CreatedBy), e.CreatedAt,
	).Scan(&e.Seq)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

func (r *LedgerEntryRepo) GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE id = $1`
	return scanOne("get ledger entry", r.q.QueryRow(ctx, query, id), scanEntry)
}

// ListByAccount asientos en orden de secuencia; accountID vacío lista todos.
func (r *LedgerEntryRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE ($1::text IS NULL OR account_id = $1)
		ORDER BY seq LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, nullIfEmpty(accountID), limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	return collect("scan ledger entry", rows, scanEntry)
}
