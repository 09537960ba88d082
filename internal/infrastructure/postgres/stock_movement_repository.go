package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación append-only de StockMovementRepository.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var note, docRef, createdBy *string
	err := row.Scan(
		&m.ID, &m.Seq, &m.BalanceID, &m.ProductID, &m.LocationID, &m.Type, &m.Quantity,
		&m.BalanceBefore, &note, &docRef, &createdBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Note, m.DocumentRef, m.CreatedBy = deref(note), deref(docRef), deref(createdBy)
	return &m, nil
}

// Create registra el movimiento; la secuencia la asigna la BD (bigserial).
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.Quantity == 0 {
		return domain.NewValidation("quantity", "ne=0")
	}
	ensureID(&m.ID)
	ensureTime(&m.CreatedAt)
	query := `
		INSERT INTO stock_movements (id, balance_id, product_id, location_id, type, quantity, balance_before, note, document_ref, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.BalanceID, m.ProductID, m.LocationID, string(m.Type), m.Quantity, m.BalanceBefore,
		nullIfEmpty(m.Note), nullIfEmpty(m.DocumentRef), nullIfEmpty(m.CreatedBy), m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByBalance historial del par producto+ubicación en orden de secuencia.
func (r *StockMovementRepo) ListByBalance(ctx context.Context, productID, locationID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, seq, balance_id, product_id, location_id, type, quantity, balance_before, note, document_ref, created_by, created_at
		FROM stock_movements
		WHERE product_id = $1 AND location_id = $2
		ORDER BY seq
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, productID, locationID, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return collect("scan stock movement", rows, scanMovement)
}
