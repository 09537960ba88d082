package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

// PurchaseOrderUseCase crea, recibe y cancela órdenes de compra.
// Depende solo de la capacidad StockMover, no del paquete de inventario.
type PurchaseOrderUseCase struct {
	txRunner ports.TxRunner
	mover    ports.StockMover
	now      func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(txRunner ports.TxRunner, mover ports.StockMover) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{txRunner: txRunner, mover: mover, now: time.Now}
}

// Create registra la orden y da entrada al stock de cada línea (INBOUND_RECEIPT).
// Orden de validación: proveedor, luego producto y ubicación de todas las líneas,
// y solo entonces las mutaciones de stock.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var order *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		if _, err := repository.RequireSupplier(ctx, repos.Counterparties, in.SupplierID); err != nil {
			return err
		}

		now := uc.now()
		order = &entity.PurchaseOrder{
			SupplierID: in.SupplierID,
			Status:     entity.PurchaseOrderOpen,
			Total:      decimal.Zero,
			OrderedAt:  now,
			UpdatedAt:  now,
			Items:      make([]entity.PurchaseOrderItem, 0, len(in.Items)),
		}
		for _, it := range in.Items {
			if err := repository.RequireProductAndLocation(ctx, repos, it.ProductID, it.LocationID); err != nil {
				return err
			}
			lineTotal := entity.LineTotal(it.Quantity, it.UnitCost)
			order.Total = order.Total.Add(lineTotal)
			order.Items = append(order.Items, entity.PurchaseOrderItem{
				ProductID:  it.ProductID,
				LocationID: it.LocationID,
				Quantity:   it.Quantity,
				UnitCost:   it.UnitCost,
				TotalCost:  lineTotal,
			})
		}

		// La cabecera se persiste primero para obtener el número usado en la referencia
		if err := repos.PurchaseOrders.Create(ctx, order); err != nil {
			return err
		}
		docRef := fmt.Sprintf("Orden de Compra #%d", order.Number)
		for _, item := range order.Items {
			if _, err := uc.mover.ApplyStockDelta(ctx, repos, ports.StockDelta{
				ProductID:   item.ProductID,
				LocationID:  item.LocationID,
				Delta:       item.Quantity,
				Type:        entity.MovementInboundReceipt,
				DocumentRef: docRef,
				CreatedBy:   scope.UserID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("number", order.Number).
		Str("supplier_id", order.SupplierID).
		Int("lines", len(order.Items)).
		Str("total", order.Total.String()).
		Msg("orden de compra creada")
	return toPurchaseOrderResponse(order), nil
}

// Cancel revierte la entrada de cada línea (OUTBOUND_PURCHASE_CANCELLATION) y marca la
// orden como cancelada. Solo una orden OPEN puede cancelarse.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, scope domain.Scope, id string) (*dto.PurchaseOrderResponse, error) {
	var order *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		order, err = uc.lockOpen(ctx, repos, id, "cancelar")
		if err != nil {
			return err
		}

		docRef := fmt.Sprintf("Cancelación de la Orden de Compra #%d", order.Number)
		for _, item := range order.Items {
			if _, err := uc.mover.ApplyStockDelta(ctx, repos, ports.StockDelta{
				ProductID:   item.ProductID,
				LocationID:  item.LocationID,
				Delta:       -item.Quantity,
				Type:        entity.MovementOutboundPurchaseCancellation,
				DocumentRef: docRef,
				CreatedBy:   scope.UserID,
			}); err != nil {
				return err
			}
		}

		order.Status = entity.PurchaseOrderCancelled
		order.UpdatedAt = uc.now()
		return repos.PurchaseOrders.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("number", order.Number).Msg("orden de compra cancelada")
	return toPurchaseOrderResponse(order), nil
}

// MarkReceived confirma la recepción de una orden OPEN. No mueve stock: la entrada
// ya se registró al crear la orden.
func (uc *PurchaseOrderUseCase) MarkReceived(ctx context.Context, scope domain.Scope, id string) (*dto.PurchaseOrderResponse, error) {
	var order *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		order, err = uc.lockOpen(ctx, repos, id, "recibir")
		if err != nil {
			return err
		}
		order.Status = entity.PurchaseOrderReceived
		order.UpdatedAt = uc.now()
		return repos.PurchaseOrders.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order), nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, scope domain.Scope, id string) (*dto.PurchaseOrderResponse, error) {
	var order *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		order, err = repos.PurchaseOrders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NewNotFound("orden de compra", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order), nil
}

// List lista órdenes de compra con paginación.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, scope domain.Scope, page dto.PageRequest) ([]*dto.PurchaseOrderResponse, error) {
	page.DefaultPage()
	var list []*entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		list, err = repos.PurchaseOrders.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toPurchaseOrderResponse(o))
	}
	return out, nil
}

// lockOpen carga la orden con bloqueo y exige estado OPEN.
func (uc *PurchaseOrderUseCase) lockOpen(ctx context.Context, repos repository.TxRepos, id, action string) (*entity.PurchaseOrder, error) {
	order, err := repos.PurchaseOrders.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NewNotFound("orden de compra", id)
	}
	if order.Status != entity.PurchaseOrderOpen {
		return nil, &domain.InvalidStateError{Resource: "orden de compra", ID: id, Status: order.Status, Action: action}
	}
	return order, nil
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			LocationID: it.LocationID,
			Quantity:   it.Quantity,
			UnitCost:   it.UnitCost,
			TotalCost:  it.TotalCost,
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:         o.ID,
		Number:     o.Number,
		SupplierID: o.SupplierID,
		Status:     o.Status,
		Total:      o.Total,
		OrderedAt:  o.OrderedAt,
		UpdatedAt:  o.UpdatedAt,
		Items:      items,
	}
}
