package inventory

import (
	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:            m.ID,
		Seq:           m.Seq,
		ProductID:     m.ProductID,
		LocationID:    m.LocationID,
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter(),
		Note:          m.Note,
		DocumentRef:   m.DocumentRef,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func toBalanceResponse(b *entity.StockBalance) dto.BalanceResponse {
	return dto.BalanceResponse{
		ID:           b.ID,
		ProductID:    b.ProductID,
		LocationID:   b.LocationID,
		Quantity:     b.Quantity,
		MinQuantity:  b.MinQuantity,
		MaxQuantity:  b.MaxQuantity,
		ReorderPoint: b.ReorderPoint,
		UpdatedAt:    b.UpdatedAt,
	}
}
