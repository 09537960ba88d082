package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-ubicación).
// La cantidad disponible se maneja por ubicación en StockBalance.
type Product struct {
	ID          string
	SKU         string // código único por tenant
	Name        string
	Description string
	Unit        string          // UN, KG, CX...
	SalePrice   decimal.Decimal // precio de venta sugerido
	Category    string
	Brand       string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
