package sales

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

// SalesOrderUseCase crea, factura y cancela órdenes de venta.
type SalesOrderUseCase struct {
	txRunner ports.TxRunner
	mover    ports.StockMover
	now      func() time.Time
}

// NewSalesOrderUseCase construye el caso de uso.
func NewSalesOrderUseCase(txRunner ports.TxRunner, mover ports.StockMover) *SalesOrderUseCase {
	return &SalesOrderUseCase{txRunner: txRunner, mover: mover, now: time.Now}
}

// Create registra la orden y descuenta el stock de cada línea (OUTBOUND_SHIPMENT).
// Si alguna línea no tiene saldo suficiente se revierte toda la orden.
func (uc *SalesOrderUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var order *entity.SalesOrder
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		if _, err := repository.RequireCustomer(ctx, repos.Counterparties, in.CustomerID); err != nil {
			return err
		}

		now := uc.now()
		order = &entity.SalesOrder{
			CustomerID: in.CustomerID,
			Status:     entity.SalesOrderOpen,
			Total:      decimal.Zero,
			SoldAt:     now,
			UpdatedAt:  now,
			Items:      make([]entity.SalesOrderItem, 0, len(in.Items)),
		}
		for _, it := range in.Items {
			if err := repository.RequireProductAndLocation(ctx, repos, it.ProductID, it.LocationID); err != nil {
				return err
			}
			lineTotal := entity.LineTotal(it.Quantity, it.UnitPrice)
			order.Total = order.Total.Add(lineTotal)
			order.Items = append(order.Items, entity.SalesOrderItem{
				ProductID:  it.ProductID,
				LocationID: it.LocationID,
				Quantity:   it.Quantity,
				UnitPrice:  it.UnitPrice,
				TotalPrice: lineTotal,
			})
		}

		if err := repos.SalesOrders.Create(ctx, order); err != nil {
			return err
		}
		docRef := fmt.Sprintf("Orden de Venta #%d", order.Number)
		for _, item := range order.Items {
			if _, err := uc.mover.ApplyStockDelta(ctx, repos, ports.StockDelta{
				ProductID:   item.ProductID,
				LocationID:  item.LocationID,
				Delta:       -item.Quantity,
				Type:        entity.MovementOutboundShipment,
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
		Str("customer_id", order.CustomerID).
		Int("lines", len(order.Items)).
		Str("total", order.Total.String()).
		Msg("orden de venta creada")
	return toSalesOrderResponse(order), nil
}

// Cancel devuelve al stock cada línea (INBOUND_SALE_CANCELLATION) y marca la orden
// como cancelada. Solo una orden OPEN puede cancelarse.
func (uc *SalesOrderUseCase) Cancel(ctx context.Context, scope domain.Scope, id string) (*dto.SalesOrderResponse, error) {
	var order *entity.SalesOrder
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		order, err = uc.lockOpen(ctx, repos, id, "cancelar")
		if err != nil {
			return err
		}

		docRef := fmt.Sprintf("Cancelación de la Orden de Venta #%d", order.Number)
		for _, item := range order.Items {
			if _, err := uc.mover.ApplyStockDelta(ctx, repos, ports.StockDelta{
				ProductID:   item.ProductID,
				LocationID:  item.LocationID,
				Delta:       item.Quantity,
				Type:        entity.MovementInboundSaleCancellation,
				DocumentRef: docRef,
				CreatedBy:   scope.UserID,
			}); err != nil {
				return err
			}
		}

		order.Status = entity.SalesOrderCancelled
		order.UpdatedAt = uc.now()
		return repos.SalesOrders.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("number", order.Number).Msg("orden de venta cancelada")
	return toSalesOrderResponse(order), nil
}

// MarkInvoiced marca una orden OPEN como facturada; a partir de ahí no puede cancelarse.
func (uc *SalesOrderUseCase) MarkInvoiced(ctx context.Context, scope domain.Scope, id string) (*dto.SalesOrderResponse, error) {
	var order *entity.SalesOrder
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		order, err = uc.lockOpen(ctx, repos, id, "facturar")
		if err != nil {
			return err
		}
		order.Status = entity.SalesOrderInvoiced
		order.UpdatedAt = uc.now()
		return repos.SalesOrders.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return toSalesOrderResponse(order), nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *SalesOrderUseCase) GetByID(ctx context.Context, scope domain.Scope, id string) (*dto.SalesOrderResponse, error) {
	var order *entity.SalesOrder
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		order, err = repos.SalesOrders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NewNotFound("orden de venta", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSalesOrderResponse(order), nil
}

// List lista órdenes de venta con paginación.
func (uc *SalesOrderUseCase) List(ctx context.Context, scope domain.Scope, page dto.PageRequest) ([]*dto.SalesOrderResponse, error) {
	page.DefaultPage()
	var list []*entity.SalesOrder
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		list, err = repos.SalesOrders.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toSalesOrderResponse(o))
	}
	return out, nil
}

func (uc *SalesOrderUseCase) lockOpen(ctx context.Context, repos repository.TxRepos, id, action string) (*entity.SalesOrder, error) {
	order, err := repos.SalesOrders.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NewNotFound("orden de venta", id)
	}
	if order.Status != entity.SalesOrderOpen {
		return nil, &domain.InvalidStateError{Resource: "orden de venta", ID: id, Status: order.Status, Action: action}
	}
	return order, nil
}

func toSalesOrderResponse(o *entity.SalesOrder) *dto.SalesOrderResponse {
	items := make([]dto.SalesOrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.SalesOrderItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			LocationID: it.LocationID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return &dto.SalesOrderResponse{
		ID:         o.ID,
		Number:     o.Number,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Total:      o.Total,
		SoldAt:     o.SoldAt,
		UpdatedAt:  o.UpdatedAt,
		Items:      items,
	}
}
