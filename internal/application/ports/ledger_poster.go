package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

// LedgerDelta describe un asiento sobre una cuenta financiera.
type LedgerDelta struct {
	AccountID      string
	CounterpartyID string
	Direction      entity.Direction
	Amount         decimal.Decimal // siempre > 0; Direction define el signo
	Description    string
	Category       string
	CompetencyDate time.Time
	CreatedBy      string
}

// LedgerPoster aplica asientos dentro de la transacción del llamador.
type LedgerPoster interface {
	ApplyLedgerDelta(ctx context.Context, repos repository.TxRepos, in LedgerDelta) (*entity.LedgerEntry, error)
}
