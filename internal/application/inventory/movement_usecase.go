package inventory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

// MovementUseCase registra un movimiento de stock suelto (entrada, salida, avería, saldo inicial)
// en su propia transacción.
type MovementUseCase struct {
	txRunner ports.TxRunner
	mover    ports.StockMover
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner ports.TxRunner, mover ports.StockMover) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, mover: mover}
}

// Register valida la entrada, abre la transacción, verifica producto y ubicación
// (NotFound antes que cualquier error de saldo) y aplica el delta.
func (uc *MovementUseCase) Register(ctx context.Context, scope domain.Scope, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	movType := entity.MovementType(in.Type)
	if !movType.AllowsDelta(in.Quantity) {
		return nil, domain.NewValidation("quantity", "sign")
	}

	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		if err := repository.RequireProductAndLocation(ctx, repos, in.ProductID, in.LocationID); err != nil {
			return err
		}
		var err error
		mov, err = uc.mover.ApplyStockDelta(ctx, repos, ports.StockDelta{
			ProductID:   in.ProductID,
			LocationID:  in.LocationID,
			Delta:       in.Quantity,
			Type:        movType,
			Note:        in.Note,
			DocumentRef: in.DocumentRef,
			CreatedBy:   scope.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("product_id", mov.ProductID).
		Str("location_id", mov.LocationID).
		Str("type", string(mov.Type)).
		Int64("delta", mov.Quantity).
		Int64("balance_after", mov.BalanceAfter()).
		Msg("movimiento de stock registrado")
	return toMovementResponse(mov), nil
}
