package repository

import (
	"context"

	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	// Create persiste cabecera y líneas; asigna ID y Number (secuencia).
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	// GetByID carga la orden con sus líneas; nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate igual que GetByID bloqueando la cabecera.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, order *entity.PurchaseOrder) error
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error)
}

// SalesOrderRepository define el puerto de persistencia para órdenes de venta.
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error)
	UpdateStatus(ctx context.Context, order *entity.SalesOrder) error
	List(ctx context.Context, limit, offset int) ([]*entity.SalesOrder, error)
}
