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

const payableResource = "cuenta por pagar"

// PayableUseCase cuentas por pagar a proveedores.
type PayableUseCase struct {
	txRunner ports.TxRunner
	poster   ports.LedgerPoster
	now      func() time.Time
}

func NewPayableUseCase(txRunner ports.TxRunner, poster ports.LedgerPoster) *PayableUseCase {
	return &PayableUseCase{txRunner: txRunner, poster: poster, now: time.Now}
}

// Create registra una cuenta por pagar; el tercero debe ser proveedor.
func (uc *PayableUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreatePayableRequest) (*dto.SettlementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	p := &entity.Payable{
		SupplierID:     in.SupplierID,
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
		if _, err := repository.RequireSupplier(ctx, repos.Counterparties, in.SupplierID); err != nil {
			return err
		}
		return repos.Payables.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return payableToResponse(p), nil
}

// Settle liquida la cuenta con un asiento OUTFLOW por el monto efectivo.
func (uc *PayableUseCase) Settle(ctx context.Context, scope domain.Scope, id string, in dto.SettleRequest) (*dto.SettlementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var p *entity.Payable
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		p, err = uc.lockOpen(ctx, repos, id, "liquidar")
		if err != nil {
			return err
		}

		interest, penalty := decimalOrZero(in.Interest), decimalOrZero(in.Penalty)
		entry, err := uc.poster.ApplyLedgerDelta(ctx, repos, ports.LedgerDelta{
			AccountID:      in.AccountID,
			CounterpartyID: p.SupplierID,
			Direction:      entity.DirectionOutflow,
			Amount:         entity.SettledAmount(p.Amount, interest, penalty, in.Amount),
			Description:    "Pago ref. a: " + p.Description,
			Category:       p.Category,
			CompetencyDate: in.PaymentDate,
			CreatedBy:      scope.UserID,
		})
		if err != nil {
			return err
		}

		paymentDate := in.PaymentDate
		p.Status = entity.SettlementSettled
		p.PaymentDate = &paymentDate
		p.PaymentMethod = in.PaymentMethod
		p.Interest = interest
		p.Penalty = penalty
		p.AccountID = in.AccountID
		p.EntryID = entry.ID
		p.UpdatedAt = uc.now()
		return repos.Payables.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("payable_id", p.ID).Str("entry_id", p.EntryID).Msg("cuenta por pagar liquidada")
	return payableToResponse(p), nil
}

// Cancel anula una cuenta OPEN sin efecto en el ledger.
func (uc *PayableUseCase) Cancel(ctx context.Context, scope domain.Scope, id string) (*dto.SettlementResponse, error) {
	var p *entity.Payable
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		p, err = uc.lockOpen(ctx, repos, id, "cancelar")
		if err != nil {
			return err
		}
		p.Status = entity.SettlementCancelled
		p.UpdatedAt = uc.now()
		return repos.Payables.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return payableToResponse(p), nil
}

func (uc *PayableUseCase) GetByID(ctx context.Context, scope domain.Scope, id string) (*dto.SettlementResponse, error) {
	var p *entity.Payable
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		p, err = repos.Payables.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound(payableResource, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payableToResponse(p), nil
}

// List filtra por estado si status no es vacío.
func (uc *PayableUseCase) List(ctx context.Context, scope domain.Scope, status string, page dto.PageRequest) ([]*dto.SettlementResponse, error) {
	page.DefaultPage()
	var list []*entity.Payable
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		list, err = repos.Payables.List(ctx, status, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SettlementResponse, 0, len(list))
	for _, p := range list {
		out = append(out, payableToResponse(p))
	}
	return out, nil
}

func (uc *PayableUseCase) lockOpen(ctx context.Context, repos repository.TxRepos, id, action string) (*entity.Payable, error) {
	p, err := repos.Payables.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound(payableResource, id)
	}
	if p.Status != entity.SettlementOpen {
		return nil, &domain.InvalidStateError{Resource: payableResource, ID: id, Status: p.Status, Action: action}
	}
	return p, nil
}
