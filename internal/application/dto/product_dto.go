package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Thresholds permite definir mínimos/máximos por ubicación al crear el producto.
type CreateProductRequest struct {
	SKU         string                  `json:"sku" validate:"required,max=60"`
	Name        string                  `json:"name" validate:"required,max=200"`
	Description string                  `json:"description,omitempty" validate:"max=2000"`
	Unit        string                  `json:"unit,omitempty" validate:"max=10"`
	SalePrice   decimal.Decimal         `json:"sale_price" validate:"dec_gte0,money"`
	Category    string                  `json:"category,omitempty" validate:"max=100"`
	Brand       string                  `json:"brand,omitempty" validate:"max=100"`
	Thresholds  []StockThresholdRequest `json:"thresholds,omitempty" validate:"dive"`
}

// StockThresholdRequest límites de stock de un producto en una ubicación.
type StockThresholdRequest struct {
	LocationID   string `json:"location_id" validate:"required,uuid"`
	MinQuantity  *int64 `json:"min_quantity,omitempty" validate:"omitempty,gte=0,lte=1000000000"`
	MaxQuantity  *int64 `json:"max_quantity,omitempty" validate:"omitempty,gte=0,lte=1000000000"`
	ReorderPoint *int64 `json:"reorder_point,omitempty" validate:"omitempty,gte=0,lte=1000000000"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Category    string          `json:"category,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Code        string `json:"code" validate:"required,max=30"`
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// LocationResponse ubicación en respuestas.
type LocationResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCounterpartyRequest body para POST /api/counterparties.
type CreateCounterpartyRequest struct {
	Kind       string `json:"kind" validate:"required,oneof=CUSTOMER SUPPLIER"`
	PersonType string `json:"person_type" validate:"required,oneof=NATURAL LEGAL"`
	Name       string `json:"name" validate:"required,max=200"`
	TradeName  string `json:"trade_name,omitempty" validate:"max=200"`
	TaxID      string `json:"tax_id" validate:"required,max=30"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty" validate:"max=30"`
}

// CounterpartyResponse cliente/proveedor en respuestas.
type CounterpartyResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	PersonType string    `json:"person_type"`
	Name       string    `json:"name"`
	TradeName  string    `json:"trade_name,omitempty"`
	TaxID      string    `json:"tax_id"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}
