package inventory

import (
	"context"
	"math"
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

var tracer = otel.Tracer("github.com/jhoicas/erp-core/internal/application/inventory")

var _ ports.StockMover = (*StockLedger)(nil)

// StockLedger es la única vía que modifica StockBalance. Cada mutación deja exactamente
// un StockMovement con el saldo anterior. Opera con los repos de la tx del llamador.
type StockLedger struct {
	now func() time.Time
}

// NewStockLedger construye el ledger de stock.
func NewStockLedger() *StockLedger {
	return &StockLedger{now: time.Now}
}

// ApplyStockDelta bloquea el saldo (SELECT FOR UPDATE), crea el saldo en cero si no existe
// y el delta es positivo, rechaza cualquier resultado negativo, actualiza la cantidad y
// agrega el movimiento.
func (l *StockLedger) ApplyStockDelta(ctx context.Context, repos repository.TxRepos, in ports.StockDelta) (*entity.StockMovement, error) {
	ctx, span := tracer.Start(ctx, "inventory.apply_stock_delta", trace.WithAttributes(
		attribute.String("product_id", in.ProductID),
		attribute.String("location_id", in.LocationID),
		attribute.Int64("delta", in.Delta),
		attribute.String("type", string(in.Type)),
	))
	defer span.End()

	mov, err := l.apply(ctx, repos, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return mov, nil
}

func (l *StockLedger) apply(ctx context.Context, repos repository.TxRepos, in ports.StockDelta) (*entity.StockMovement, error) {
	if in.Delta == 0 {
		return nil, domain.NewValidation("quantity", "ne=0")
	}
	if !in.Type.Valid() {
		return nil, domain.NewValidation("type", "movement_type")
	}
	if in.Delta == math.MinInt64 {
		return nil, domain.NewValidation("quantity", "overflow")
	}

	// Bloquea la fila en stock_balances para que dos movimientos no lean el mismo saldo anterior
	balance, err := repos.Stock.GetForUpdate(ctx, in.ProductID, in.LocationID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		if in.Delta < 0 {
			return nil, &domain.InsufficientStockError{
				ProductID:  in.ProductID,
				LocationID: in.LocationID,
				Current:    0,
				Requested:  -in.Delta,
			}
		}
		if err := repository.RequireProductAndLocation(ctx, repos, in.ProductID, in.LocationID); err != nil {
			return nil, err
		}
		balance, err = repos.Stock.CreateEmpty(ctx, in.ProductID, in.LocationID)
		if err != nil {
			return nil, err
		}
	}

	before := balance.Quantity
	if in.Delta > 0 && before > math.MaxInt64-in.Delta {
		return nil, domain.NewValidation("quantity", "overflow")
	}
	after := before + in.Delta
	if after < 0 {
		return nil, &domain.InsufficientStockError{
			ProductID:  in.ProductID,
			LocationID: in.LocationID,
			Current:    before,
			Requested:  -in.Delta,
		}
	}

	now := l.now()
	balance.Quantity = after
	balance.UpdatedAt = now
	if err := repos.Stock.UpdateQuantity(ctx, balance); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		BalanceID:     balance.ID,
		ProductID:     in.ProductID,
		LocationID:    in.LocationID,
		Type:          in.Type,
		Quantity:      in.Delta,
		BalanceBefore: before,
		Note:          in.Note,
		DocumentRef:   in.DocumentRef,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     now,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}
