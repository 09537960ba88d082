package repository

import (
	"context"

	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para cuentas financieras.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.FinancialAccount) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.FinancialAccount, error)
	// GetForUpdate bloquea la fila de la cuenta; nil, nil si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.FinancialAccount, error)
	UpdateBalance(ctx context.Context, account *entity.FinancialAccount) error
	List(ctx context.Context, limit, offset int) ([]*entity.FinancialAccount, error)
}
