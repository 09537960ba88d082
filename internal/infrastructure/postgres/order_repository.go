package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

var (
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
	_ repository.SalesOrderRepository    = (*SalesOrderRepo)(nil)
)

// PurchaseOrderRepo órdenes de compra con sus líneas.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de órdenes de compra.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	if err := row.Scan(&o.ID, &o.Number, &o.SupplierID, &o.Status, &o.Total, &o.OrderedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func scanPurchaseItem(row pgx.Row) (*entity.PurchaseOrderItem, error) {
	var it entity.PurchaseOrderItem
	err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.LocationID, &it.Quantity, &it.UnitCost, &it.TotalCost)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create inserta cabecera (number por secuencia) y líneas en la misma tx.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	ensureID(&o.ID)
	ensureTime(&o.OrderedAt)
	o.UpdatedAt = o.OrderedAt
	query := `
		INSERT INTO purchase_orders (id, supplier_id, status, total, ordered_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING number`
	err := r.q.QueryRow(ctx, query, o.ID, o.SupplierID, o.Status, o.Total, o.OrderedAt, o.UpdatedAt).Scan(&o.Number)
	if err != nil {
		return wrapWrite("insert purchase order", err)
	}
	itemQuery := `
		INSERT INTO purchase_order_items (id, order_id, line_no, product_id, location_id, quantity, unit_cost, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i := range o.Items {
		it := &o.Items[i]
		ensureID(&it.ID)
		it.OrderID = o.ID
		if _, err := r.q.Exec(ctx, itemQuery, it.ID, it.OrderID, i+1, it.ProductID, it.LocationID, it.Quantity, it.UnitCost, it.TotalCost); err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) get(ctx context.Context, id, suffix string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, number, supplier_id, status, total, ordered_at, updated_at
		FROM purchase_orders WHERE id = $1` + suffix
	o, err := scanOne("get purchase order", r.q.QueryRow(ctx, query, id), scanPurchaseOrder)
	if err != nil || o == nil {
		return o, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, location_id, quantity, unit_cost, total_cost
		FROM purchase_order_items WHERE order_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	items, err := collect("scan purchase order item", rows, scanPurchaseItem)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		o.Items = append(o.Items, *it)
	}
	return o, nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea la cabecera para transiciones de estado.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, o *entity.PurchaseOrder) error {
	ensureTime(&o.UpdatedAt)
	_, err := r.q.Exec(ctx, `UPDATE purchase_orders SET status = $1, updated_at = $2 WHERE id = $3`, o.Status, o.UpdatedAt, o.ID)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// List cabeceras sin líneas, por número.
func (r *PurchaseOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT id, number, supplier_id, status, total, ordered_at, updated_at
		FROM purchase_orders ORDER BY number LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	return collect("scan purchase order", rows, scanPurchaseOrder)
}

// SalesOrderRepo órdenes de venta con sus líneas.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador de órdenes de venta.
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

func scanSalesOrder(row pgx.Row) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	if err := row.Scan(&o.ID, &o.Number, &o.CustomerID, &o.Status, &o.Total, &o.SoldAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func scanSalesItem(row pgx.Row) (*entity.SalesOrderItem, error) {
	var it entity.SalesOrderItem
	err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.LocationID, &it.Quantity, &it.UnitPrice, &it.TotalPrice)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	ensureID(&o.ID)
	ensureTime(&o.SoldAt)
	o.UpdatedAt = o.SoldAt
	query := `
		INSERT INTO sales_orders (id, customer_id, status, total, sold_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING number`
	err := r.q.QueryRow(ctx, query, o.ID, o.CustomerID, o.Status, o.Total, o.SoldAt, o.UpdatedAt).Scan(&o.Number)
	if err != nil {
		return wrapWrite("insert sales order", err)
	}
	itemQuery := `
		INSERT INTO sales_order_items (id, order_id, line_no, product_id, location_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i := range o.Items {
		it := &o.Items[i]
		ensureID(&it.ID)
		it.OrderID = o.ID
		if _, err := r.q.Exec(ctx, itemQuery, it.ID, it.OrderID, i+1, it.ProductID, it.LocationID, it.Quantity, it.UnitPrice, it.TotalPrice); err != nil {
			return fmt.Errorf("insert sales order item: %w", err)
		}
	}
	return nil
}

func (r *SalesOrderRepo) get(ctx context.Context, id, suffix string) (*entity.SalesOrder, error) {
	query := `
		SELECT id, number, customer_id, status, total, sold_at, updated_at
		FROM sales_orders WHERE id = $1` + suffix
	o, err := scanOne("get sales order", r.q.QueryRow(ctx, query, id), scanSalesOrder)
	if err != nil || o == nil {
		return o, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, location_id, quantity, unit_price, total_price
		FROM sales_order_items WHERE order_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}
	items, err := collect("scan sales order item", rows, scanSalesItem)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		o.Items = append(o.Items, *it)
	}
	return o, nil
}

func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, id, "")
}

func (r *SalesOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *SalesOrderRepo) UpdateStatus(ctx context.Context, o *entity.SalesOrder) error {
	ensureTime(&o.UpdatedAt)
	_, err := r.q.Exec(ctx, `UPDATE sales_orders SET status = $1, updated_at = $2 WHERE id = $3`, o.Status, o.UpdatedAt, o.ID)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	return nil
}

func (r *SalesOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.SalesOrder, error) {
	query := `
		SELECT id, number, customer_id, status, total, sold_at, updated_at
		FROM sales_orders ORDER BY number LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	return collect("scan sales order", rows, scanSalesOrder)
}
