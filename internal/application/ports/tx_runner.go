package ports

import (
	"context"

	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD ligada al tenant del scope,
// pasando repositorios atados a esa tx. Commit si fn retorna nil, Rollback en cualquier
// otro caso; el error de fn se devuelve sin modificar. Las consultas también
// pasan por Run para que el search_path del tenant aplique.
type TxRunner interface {
	Run(ctx context.Context, scope domain.Scope, fn func(ctx context.Context, repos repository.TxRepos) error) error
}

