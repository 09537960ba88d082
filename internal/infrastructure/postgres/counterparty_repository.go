package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

var _ repository.CounterpartyRepository = (*CounterpartyRepo)(nil)

// CounterpartyRepo implementación del puerto CounterpartyRepository (clientes y proveedores).
type CounterpartyRepo struct {
	q Querier
}

// NewCounterpartyRepository construye el adaptador de persistencia para terceros.
func NewCounterpartyRepository(q Querier) *CounterpartyRepo {
	return &CounterpartyRepo{q: q}
}

const counterpartyColumns = `id, kind, person_type, name, trade_name, tax_id, email, phone, active, created_at, updated_at`

func scanCounterparty(row pgx.Row) (*entity.Counterparty, error) {
	var c entity.Counterparty
	err := row.Scan(
		&c.ID, &c.Kind, &c.PersonType, &c.Name, &c.TradeName, &c.TaxID,
		&c.Email, &c.Phone, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un tercero. El par (kind, tax_id) es único.
func (r *CounterpartyRepo) Create(ctx context.Context, c *entity.Counterparty) error {
	ensureID(&c.ID)
	ensureTime(&c.CreatedAt)
	c.UpdatedAt = c.CreatedAt
	query := `
		INSERT INTO counterparties (` + counterpartyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Kind, c.PersonType, c.Name, c.TradeName, c.TaxID,
		c.Email, c.Phone, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert counterparty", err)
	}
	return nil
}

// GetByID obtiene un tercero por ID.
func (r *CounterpartyRepo) GetByID(ctx context.Context, id string) (*entity.Counterparty, error) {
	query := `SELECT ` + counterpartyColumns + ` FROM counterparties WHERE id = $1`
	return scanOne("get counterparty", r.q.QueryRow(ctx, query, id), scanCounterparty)
}

// List lista terceros filtrando opcionalmente por tipo.
func (r *CounterpartyRepo) List(ctx context.Context, kind string, limit, offset int) ([]*entity.Counterparty, error) {
	query := `
		SELECT ` + counterpartyColumns + `
		FROM counterparties
		WHERE ($1::text IS NULL OR kind = $1)
		ORDER BY created_at, name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, nullIfEmpty(kind), limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list counterparties: %w", err)
	}
	return collect("scan counterparty", rows, scanCounterparty)
}
