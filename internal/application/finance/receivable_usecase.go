package finance

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

const receivableResource = "cuenta por cobrar"

// ReceivableUseCase cuentas por cobrar a clientes.
type ReceivableUseCase struct {
	txRunner ports.TxRunner
	poster   ports.LedgerPoster
	now      func() time.Time
}

func NewReceivableUseCase(txRunner ports.TxRunner, poster ports.LedgerPoster) *ReceivableUseCase {
	return &ReceivableUseCase{txRunner: txRunner, poster: poster, now: time.Now}
}

// Create registra una cuenta por cobrar; el tercero debe ser cliente.
func (uc *ReceivableUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreateReceivableRequest) (*dto.SettlementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	r := &entity.Receivable{
		CustomerID:     in.CustomerID,
		Amount:         in.Amount,
		IssueDate:      in.IssueDate,
		CompetencyDate: in.CompetencyDate,
		DueDate:        in.DueDate,
		Description:    in.Description,
		DocumentNumber: in.DocumentNumber,
		Category:       in.Category,
		Status:         entity.SettlementOpen,
		Interest:       decimal.Zero,
		Penalty:        decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		if _, err := repository.RequireCustomer(ctx, repos.Counterparties, in.CustomerID); err != nil {
			return err
		}
		return repos.Receivables.Create(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return receivableToResponse(r), nil
}

// Settle liquida la cuenta con un asiento INFLOW por el monto efectivo.
func (uc *ReceivableUseCase) Settle(ctx context.Context, scope domain.Scope, id string, in dto.SettleRequest) (*dto.SettlementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var r *entity.Receivable
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		r, err = uc.lockOpen(ctx, repos, id, "liquidar")
		if err != nil {
			return err
		}

		interest, penalty := decimalOrZero(in.Interest), decimalOrZero(in.Penalty)
		entry, err := uc.poster.ApplyLedgerDelta(ctx, repos, ports.LedgerDelta{
			AccountID:      in.AccountID,
			CounterpartyID: r.CustomerID,
			Direction:      entity.DirectionInflow,
			Amount:         entity.SettledAmount(r.Amount, interest, penalty, in.Amount),
			Description:    "Cobro ref. al doc #" + r.DocumentNumber,
			Category:       r.Category,
			CompetencyDate: in.PaymentDate,
			CreatedBy:      scope.UserID,
		})
		if err != nil {
			return err
		}

		paymentDate := in.PaymentDate
		r.Status = entity.SettlementSettled
		r.PaymentDate = &paymentDate
		r.PaymentMethod = in.PaymentMethod
		r.Interest = interest
		r.Penalty = penalty
		r.AccountID = in.AccountID
		r.EntryID = entry.ID
		r.UpdatedAt = uc.now()
		return repos.Receivables.Update(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("receivable_id", r.ID).Str("entry_id", r.EntryID).Msg("cuenta por cobrar liquidada")
	return receivableToResponse(r), nil
}

// Cancel anula una cuenta OPEN sin efecto en el ledger.
func (uc *ReceivableUseCase) Cancel(ctx context.Context, scope domain.Scope, id string) (*dto.SettlementResponse, error) {
	var r *entity.Receivable
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		r, err = uc.lockOpen(ctx, repos, id, "cancelar")
		if err != nil {
			return err
		}
		r.Status = entity.SettlementCancelled
		r.UpdatedAt = uc.now()
		return repos.Receivables.Update(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return receivableToResponse(r), nil
}

func (uc *ReceivableUseCase) GetByID(ctx context.Context, scope domain.Scope, id string) (*dto.SettlementResponse, error) {
	var r *entity.Receivable
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		r, err = repos.Receivables.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.NewNotFound(receivableResource, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receivableToResponse(r), nil
}

func (uc *ReceivableUseCase) List(ctx context.Context, scope domain.Scope, status string, page dto.PageRequest) ([]*dto.SettlementResponse, error) {
	page.DefaultPage()
	var list []*entity.Receivable
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		list, err = repos.Receivables.List(ctx, status, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SettlementResponse, 0, len(list))
	for _, r := range list {
		out = append(out, receivableToResponse(r))
	}
	return out, nil
}

func (uc *ReceivableUseCase) lockOpen(ctx context.Context, repos repository.TxRepos, id, action string) (*entity.Receivable, error) {
	r, err := repos.Receivables.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.NewNotFound(receivableResource, id)
	}
	if r.Status != entity.SettlementOpen {
		return nil, &domain.InvalidStateError{Resource: receivableResource, ID: id, Status: r.Status, Action: action}
	}
	return r, nil
}
