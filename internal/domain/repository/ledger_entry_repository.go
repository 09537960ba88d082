package repository

import (
	"context"

	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// LedgerEntryRepository registro append-only de asientos financieros.
type LedgerEntryRepository interface {
	// Create asigna ID, Seq y CreatedAt.
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error)
	// ListByAccount en orden de Seq ascendente; accountID vacío = todas.
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.LedgerEntry, error)
}
