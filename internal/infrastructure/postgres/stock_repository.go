package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const balanceColumns = `id, product_id, location_id, quantity, min_quantity, max_quantity, reorder_point, updated_at`

func scanBalance(row pgx.Row) (*entity.StockBalance, error) {
	var b entity.StockBalance
	err := row.Scan(
		&b.ID, &b.ProductID, &b.LocationID, &b.Quantity,
		&b.MinQuantity, &b.MaxQuantity, &b.ReorderPoint, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Get obtiene el saldo de un producto en una ubicación; nil si nunca tuvo movimiento.
func (r *StockRepo) Get(ctx context.Context, productID, locationID string) (*entity.StockBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM stock_balances WHERE product_id = $1 AND location_id = $2`
	return scanOne("get stock", r.q.QueryRow(ctx, query, productID, locationID), scanBalance)
}

// GetForUpdate obtiene el saldo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM stock_balances WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	return scanOne("get stock for update", r.q.QueryRow(ctx, query, productID, locationID), scanBalance)
}

// CreateEmpty inserta el saldo en cero si no existe y devuelve la fila bloqueada.
// Si otra transacción lo creó en paralelo, ON CONFLICT evita el error y FOR UPDATE espera su commit.
func (r *StockRepo) CreateEmpty(ctx context.Context, productID, locationID string) (*entity.StockBalance, error) {
	insert := `
		INSERT INTO stock_balances (id, product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (product_id, location_id) DO NOTHING`
	var id string
	ensureID(&id)
	if _, err := r.q.Exec(ctx, insert, id, productID, locationID); err != nil {
		return nil, fmt.Errorf("insert stock: %w", err)
	}
	b, err := r.GetForUpdate(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("insert stock: saldo %s/%s no visible tras insertar", productID, locationID)
	}
	return b, nil
}

// UpdateQuantity persiste la nueva cantidad (solo la invoca el ledger de stock).
func (r *StockRepo) UpdateQuantity(ctx context.Context, balance *entity.StockBalance) error {
	ensureTime(&balance.UpdatedAt)
	query := `UPDATE stock_balances SET quantity = $1, updated_at = $2 WHERE id = $3`
	tag, err := r.q.Exec(ctx, query, balance.Quantity, balance.UpdatedAt, balance.ID)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock: saldo %s no existe", balance.ID)
	}
	return nil
}

// SetThresholds actualiza mínimo, máximo y punto de reorden.
func (r *StockRepo) SetThresholds(ctx context.Context, balance *entity.StockBalance) error {
	query := `
		UPDATE stock_balances
		SET min_quantity = $1, max_quantity = $2, reorder_point = $3, updated_at = now()
		WHERE id = $4`
	_, err := r.q.Exec(ctx, query, balance.MinQuantity, balance.MaxQuantity, balance.ReorderPoint, balance.ID)
	if err != nil {
		return fmt.Errorf("set stock thresholds: %w", err)
	}
	return nil
}

// ListByProduct saldos del producto en todas sus ubicaciones.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM stock_balances WHERE product_id = $1 ORDER BY location_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	return collect("scan stock", rows, scanBalance)
}

// ListByLocation saldos de todos los productos en una ubicación.
func (r *StockRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.StockBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM stock_balances WHERE location_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list stock by location: %w", err)
	}
	return collect("scan stock", rows, scanBalance)
}
