package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden de compra.
const (
	PurchaseOrderOpen      = "OPEN"
	PurchaseOrderReceived  = "RECEIVED"
	PurchaseOrderCancelled = "CANCELLED"
)

// Estados de orden de venta.
const (
	SalesOrderOpen      = "OPEN"
	SalesOrderInvoiced  = "INVOICED"
	SalesOrderCancelled = "CANCELLED"
)

// PurchaseOrder cabecera de una orden de compra. Number lo asigna la BD (secuencia).
type PurchaseOrder struct {
	ID         string
	Number     int64
	SupplierID string
	Status     string
	Total      decimal.Decimal
	OrderedAt  time.Time
	UpdatedAt  time.Time
	Items      []PurchaseOrderItem
}

// PurchaseOrderItem línea de una orden de compra.
type PurchaseOrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	LocationID string
	Quantity   int64
	UnitCost   decimal.Decimal
	TotalCost  decimal.Decimal
}

// SalesOrder cabecera de una orden de venta.
type SalesOrder struct {
	ID         string
	Number     int64
	CustomerID string
	Status     string
	Total      decimal.Decimal
	SoldAt     time.Time
	UpdatedAt  time.Time
	Items      []SalesOrderItem
}

// SalesOrderItem línea de una orden de venta.
type SalesOrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	LocationID string
	Quantity   int64
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// LineTotal cantidad x precio unitario.
func LineTotal(quantity int64, unit decimal.Decimal) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(quantity))
}
