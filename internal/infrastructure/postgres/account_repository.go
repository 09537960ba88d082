package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación del puerto AccountRepository.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de cuentas financieras.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, name, type, initial_balance, current_balance, active, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.FinancialAccount, error) {
	var a entity.FinancialAccount
	err := row.Scan(&a.ID, &a.Name, &a.Type, &a.InitialBalance, &a.CurrentBalance, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) Create(ctx context.Context, a *entity.FinancialAccount) error {
	ensureID(&a.ID)
	ensureTime(&a.CreatedAt)
	a.UpdatedAt = a.CreatedAt
	query := `
		INSERT INTO financial_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Name, a.Type, a.InitialBalance, a.CurrentBalance, a.Active, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert financial account", err)
	}
	return nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.FinancialAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM financial_accounts WHERE id = $1`
	return scanOne("get financial account", r.q.QueryRow(ctx, query, id), scanAccount)
}

// GetForUpdate bloquea la cuenta mientras se registra el asiento.
func (r *AccountRepo) GetForUpdate(ctx context.Context, id string) (*entity.FinancialAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM financial_accounts WHERE id = $1 FOR UPDATE`
	return scanOne("get financial account for update", r.q.QueryRow(ctx, query, id), scanAccount)
}

func (r *AccountRepo) UpdateBalance(ctx context.Context, a *entity.FinancialAccount) error {
	ensureTime(&a.UpdatedAt)
	query := `UPDATE financial_accounts SET current_balance = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.q.Exec(ctx, query, a.CurrentBalance, a.UpdatedAt, a.ID); err != nil {
		return fmt.Errorf("update financial account balance: %w", err)
	}
	return nil
}

func (r *AccountRepo) List(ctx context.Context, limit, offset int) ([]*entity.FinancialAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM financial_accounts ORDER BY created_at, name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list financial accounts: %w", err)
	}
	return collect("scan financial account", rows, scanAccount)
}
