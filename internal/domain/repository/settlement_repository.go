package repository

import (
	"context"

	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// PayableRepository define el puerto de persistencia para cuentas por pagar.
type PayableRepository interface {
	Create(ctx context.Context, p *entity.Payable) error
	GetByID(ctx context.Context, id string) (*entity.Payable, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Payable, error)
	Update(ctx context.Context, p *entity.Payable) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Payable, error)
}

// ReceivableRepository define el puerto de persistencia para cuentas por cobrar.
type ReceivableRepository interface {
	Create(ctx context.Context, r *entity.Receivable) error
	GetByID(ctx context.Context, id string) (*entity.Receivable, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Receivable, error)
	Update(ctx context.Context, r *entity.Receivable) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Receivable, error)
}
