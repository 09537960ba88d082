package finance

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

// EntryUseCase asientos manuales y su consulta.
type EntryUseCase struct {
	txRunner ports.TxRunner
	poster   ports.LedgerPoster
}

func NewEntryUseCase(txRunner ports.TxRunner, poster ports.LedgerPoster) *EntryUseCase {
	return &EntryUseCase{txRunner: txRunner, poster: poster}
}

// Create registra un asiento manual en su propia transacción.
func (uc *EntryUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var entry *entity.LedgerEntry
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		entry, err = uc.poster.ApplyLedgerDelta(ctx, repos, ports.LedgerDelta{
			AccountID:      in.AccountID,
			CounterpartyID: in.CounterpartyID,
			Direction:      entity.Direction(in.Direction),
			Amount:         in.Amount,
			Description:    in.Description,
			Category:       in.Category,
			CompetencyDate: in.CompetencyDate,
			CreatedBy:      scope.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().
		Str("account_id", entry.AccountID).
		Str("direction", string(entry.Direction)).
		Str("amount", entry.Amount.String()).
		Msg("asiento manual registrado")
	return toEntryResponse(entry), nil
}

// List lista asientos en orden de registro; accountID vacío devuelve todas las cuentas.
func (uc *EntryUseCase) List(ctx context.Context, scope domain.Scope, accountID string, page dto.PageRequest) ([]*dto.EntryResponse, error) {
	page.DefaultPage()
	var list []*entity.LedgerEntry
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		list, err = repos.Entries.ListByAccount(ctx, accountID, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEntryResponse(e))
	}
	return out, nil
}
