package finance

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

var tracer = otel.Tracer("github.com/jhoicas/erp-core/internal/application/finance")

var _ ports.LedgerPoster = (*AccountLedger)(nil)

// AccountLedger es la única vía que modifica el saldo de una FinancialAccount.
// Cada cambio de saldo queda acompañado de exactamente un LedgerEntry.
type AccountLedger struct {
	now func() time.Time
}

// NewAccountLedger construye el ledger de cuentas.
func NewAccountLedger() *AccountLedger {
	return &AccountLedger{now: time.Now}
}

// ApplyLedgerDelta bloquea la cuenta, suma el monto con signo al saldo corriente y agrega
// el asiento. Montos <= 0 o con más de dos decimales se rechazan aquí aunque el DTO
// ya los haya filtrado: la BD redondearía el saldo y el asiento por separado.
func (l *AccountLedger) ApplyLedgerDelta(ctx context.Context, repos repository.TxRepos, in ports.LedgerDelta) (*entity.LedgerEntry, error) {
	ctx, span := tracer.Start(ctx, "finance.apply_ledger_delta", trace.WithAttributes(
		attribute.String("account_id", in.AccountID),
		attribute.String("direction", string(in.Direction)),
		attribute.String("amount", in.Amount.String()),
	))
	defer span.End()

	entry, err := l.apply(ctx, repos, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return entry, nil
}

func (l *AccountLedger) apply(ctx context.Context, repos repository.TxRepos, in ports.LedgerDelta) (*entity.LedgerEntry, error) {
	if !in.Direction.Valid() {
		return nil, domain.NewValidation("direction", "oneof")
	}
	if !in.Amount.IsPositive() {
		return nil, domain.NewValidation("amount", "dec_gt0")
	}
	if !entity.HasMoneyScale(in.Amount) {
		return nil, domain.NewValidation("amount", "money")
	}

	account, err := repos.Accounts.GetForUpdate(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.NewNotFound("cuenta financiera", in.AccountID)
	}
	if in.CounterpartyID != "" {
		if _, err := repository.RequireCounterparty(ctx, repos.Counterparties, in.CounterpartyID); err != nil {
			return nil, err
		}
	}

	entry := &entity.LedgerEntry{
		AccountID:      in.AccountID,
		CounterpartyID: in.CounterpartyID,
		Direction:      in.Direction,
		Amount:         in.Amount,
		Description:    in.Description,
		Category:       in.Category,
		CompetencyDate: in.CompetencyDate,
		CreatedBy:      in.CreatedBy,
	}

	now := l.now()
	account.CurrentBalance = account.CurrentBalance.Add(entry.SignedAmount())
	account.UpdatedAt = now
	if err := repos.Accounts.UpdateBalance(ctx, account); err != nil {
		return nil, err
	}

	entry.CreatedAt = now
	if err := repos.Entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
