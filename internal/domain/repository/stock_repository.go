package repository

import (
	"context"

	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// StockRepository define el puerto para el saldo por producto+ubicación.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve nil, nil si el par no tiene saldo.
	Get(ctx context.Context, productID, locationID string) (*entity.StockBalance, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); nil, nil si no existe.
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockBalance, error)
	// CreateEmpty crea el saldo en cero si no existe y lo devuelve bloqueado.
	CreateEmpty(ctx context.Context, productID, locationID string) (*entity.StockBalance, error)
	UpdateQuantity(ctx context.Context, balance *entity.StockBalance) error
	// SetThresholds actualiza mínimo, máximo y punto de reorden sin tocar la cantidad.
	SetThresholds(ctx context.Context, balance *entity.StockBalance) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockBalance, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.StockBalance, error)
}
