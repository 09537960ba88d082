package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de una ubicación a partir de los
// puntos de reorden definidos en cada saldo.
type ReplenishmentUseCase struct {
	txRunner ports.TxRunner
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(txRunner ports.TxRunner) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{txRunner: txRunner}
}

// GenerateReplenishmentList devuelve los saldos en o bajo su punto de reorden con la cantidad
// sugerida (hasta el máximo, o 1.5 x punto de reorden si no hay máximo), ordenados por
// faltante relativo.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, scope domain.Scope, locationID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	if locationID == "" {
		return nil, domain.NewValidation("location_id", "required")
	}
	var balances []*entity.StockBalance
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		if _, err := repository.RequireLocation(ctx, repos.Locations, locationID); err != nil {
			return err
		}
		var err error
		balances, err = repos.Stock.ListByLocation(ctx, locationID)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, b := range balances {
		if b.ReorderPoint == nil || b.Quantity > *b.ReorderPoint {
			continue
		}
		target := *b.ReorderPoint * 3 / 2
		if b.MaxQuantity != nil {
			target = *b.MaxQuantity
		}
		suggested := target - b.Quantity
		if suggested <= 0 {
			continue
		}
		out = append(out, dto.ReplenishmentSuggestionDTO{
			ProductID:         b.ProductID,
			LocationID:        b.LocationID,
			CurrentStock:      b.Quantity,
			ReorderPoint:      *b.ReorderPoint,
			TargetStock:       target,
			SuggestedOrderQty: suggested,
		})
	}

	// Prioridad: mayor faltante relativo al objetivo primero
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SuggestedOrderQty*out[j].TargetStock > out[j].SuggestedOrderQty*out[i].TargetStock
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
