package inventory

import (
	"context"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

// QueryUseCase consultas de saldos e historial de movimientos.
type QueryUseCase struct {
	txRunner ports.TxRunner
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(txRunner ports.TxRunner) *QueryUseCase {
	return &QueryUseCase{txRunner: txRunner}
}

// ListBalances lista saldos por producto o por ubicación (uno de los dos es obligatorio).
func (uc *QueryUseCase) ListBalances(ctx context.Context, scope domain.Scope, productID, locationID string) ([]dto.BalanceResponse, error) {
	if productID == "" && locationID == "" {
		return nil, domain.NewValidation("product_id", "required_without=location_id")
	}
	var list []*entity.StockBalance
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		if productID != "" {
			list, err = repos.Stock.ListByProduct(ctx, productID)
		} else {
			list, err = repos.Stock.ListByLocation(ctx, locationID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.BalanceResponse, 0, len(list))
	for _, b := range list {
		if locationID != "" && b.LocationID != locationID {
			continue
		}
		out = append(out, toBalanceResponse(b))
	}
	return out, nil
}

// ListMovements devuelve el historial de un producto+ubicación en orden de secuencia.
func (uc *QueryUseCase) ListMovements(ctx context.Context, scope domain.Scope, q dto.MovementQuery) ([]*dto.MovementResponse, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	q.DefaultPage()
	var list []*entity.StockMovement
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		list, err = repos.Movements.ListByBalance(ctx, q.ProductID, q.LocationID, q.Limit, q.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}
