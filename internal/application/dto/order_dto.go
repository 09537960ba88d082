package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id" validate:"required,uuid"`
	Items      []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseOrderItemRequest línea de compra.
type PurchaseOrderItemRequest struct {
	ProductID  string          `json:"product_id" validate:"required,uuid"`
	LocationID string          `json:"location_id" validate:"required,uuid"`
	Quantity   int64           `json:"quantity" validate:"gt=0,lte=1000000000"`
	UnitCost   decimal.Decimal `json:"unit_cost" validate:"dec_gte0,money"`
}

// PurchaseOrderResponse orden de compra con líneas.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	Number     int64                       `json:"number"`
	SupplierID string                      `json:"supplier_id"`
	Status     string                      `json:"status"`
	Total      decimal.Decimal             `json:"total"`
	OrderedAt  time.Time                   `json:"ordered_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
	Items      []PurchaseOrderItemResponse `json:"items"`
}

// PurchaseOrderItemResponse línea de compra en respuestas.
type PurchaseOrderItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Quantity   int64           `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	TotalCost  decimal.Decimal `json:"total_cost"`
}

// CreateSalesOrderRequest body para POST /api/sales-orders.
type CreateSalesOrderRequest struct {
	CustomerID string                  `json:"customer_id" validate:"required,uuid"`
	Items      []SalesOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SalesOrderItemRequest línea de venta.
type SalesOrderItemRequest struct {
	ProductID  string          `json:"product_id" validate:"required,uuid"`
	LocationID string          `json:"location_id" validate:"required,uuid"`
	Quantity   int64           `json:"quantity" validate:"gt=0,lte=1000000000"`
	UnitPrice  decimal.Decimal `json:"unit_price" validate:"dec_gte0,money"`
}

// SalesOrderResponse orden de venta con líneas.
type SalesOrderResponse struct {
	ID         string                   `json:"id"`
	Number     int64                    `json:"number"`
	CustomerID string                   `json:"customer_id"`
	Status     string                   `json:"status"`
	Total      decimal.Decimal          `json:"total"`
	SoldAt     time.Time                `json:"sold_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
	Items      []SalesOrderItemResponse `json:"items"`
}

// SalesOrderItemResponse línea de venta en respuestas.
type SalesOrderItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
