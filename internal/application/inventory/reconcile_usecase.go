package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

// NoAdjustmentMessage respuesta cuando el conteo coincide con el sistema.
const NoAdjustmentMessage = "No se requiere ajuste. El saldo del sistema ya coincide con el conteo."

// ReconcileUseCase concilia un conteo físico contra el saldo del sistema.
type ReconcileUseCase struct {
	txRunner ports.TxRunner
	mover    ports.StockMover
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(txRunner ports.TxRunner, mover ports.StockMover) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, mover: mover}
}

// Reconcile compara el conteo con el saldo (bloqueado); si son iguales no muta nada.
// Si difieren aplica delta = contado - sistema como INVENTORY_ADJUSTMENT.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, scope domain.Scope, in dto.ReconcileRequest) (*dto.ReconcileResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	counted := *in.CountedQuantity

	var (
		system int64
		mov    *entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		if err := repository.RequireProductAndLocation(ctx, repos, in.ProductID, in.LocationID); err != nil {
			return err
		}
		balance, err := repos.Stock.GetForUpdate(ctx, in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		if balance != nil {
			system = balance.Quantity
		}
		delta := counted - system
		if delta == 0 {
			return nil
		}
		note := in.Note
		if note == "" {
			note = fmt.Sprintf("Ajuste de inventario. Contado: %d, Sistema: %d.", counted, system)
		}
		mov, err = uc.mover.ApplyStockDelta(ctx, repos, ports.StockDelta{
			ProductID:  in.ProductID,
			LocationID: in.LocationID,
			Delta:      delta,
			Type:       entity.MovementInventoryAdjustment,
			Note:       note,
			CreatedBy:  scope.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if mov == nil {
		return &dto.ReconcileResponse{Adjusted: false, Message: NoAdjustmentMessage}, nil
	}
	zerolog.Ctx(ctx).Info().
		Str("product_id", in.ProductID).
		Str("location_id", in.LocationID).
		Int64("counted", counted).
		Int64("system", system).
		Msg("ajuste de inventario aplicado")
	return &dto.ReconcileResponse{
		Adjusted: true,
		Message:  mov.Note,
		Movement: toMovementResponse(mov),
	}, nil
}
