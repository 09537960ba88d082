package repository

import (
	"context"

	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// CounterpartyRepository define el puerto de persistencia para clientes y proveedores.
type CounterpartyRepository interface {
	Create(ctx context.Context, c *entity.Counterparty) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Counterparty, error)
	// List filtra por kind (CUSTOMER/SUPPLIER); vacío = todos.
	List(ctx context.Context, kind string, limit, offset int) ([]*entity.Counterparty, error)
}
