package repository

import (
	"context"

	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// StockMovementRepository registro append-only de movimientos: no existe Update ni Delete.
type StockMovementRepository interface {
	// Create asigna ID, Seq y CreatedAt.
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByBalance devuelve el historial de un producto+ubicación en orden de Seq ascendente.
	ListByBalance(ctx context.Context, productID, locationID string, limit, offset int) ([]*entity.StockMovement, error)
}
