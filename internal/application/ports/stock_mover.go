package ports

import (
	"context"

	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

// StockDelta describe una mutación de saldo de stock.
type StockDelta struct {
	ProductID   string
	LocationID  string
	Delta       int64 // positivo entrada, negativo salida
	Type        entity.MovementType
	Note        string
	DocumentRef string
	CreatedBy   string
}

// StockMover es la capacidad que compras y ventas necesitan del inventario.
// Se ejecuta dentro de la transacción del llamador (repos atados a la tx).
type StockMover interface {
	ApplyStockDelta(ctx context.Context, repos repository.TxRepos, in StockDelta) (*entity.StockMovement, error)
}
