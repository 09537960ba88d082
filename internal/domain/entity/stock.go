package entity

import "time"

// StockBalance representa el saldo actual de un producto en una ubicación.
// Solo lo modifica el ledger de stock; nunca se elimina.
type StockBalance struct {
	ID           string
	ProductID    string
	LocationID   string
	Quantity     int64
	MinQuantity  *int64
	MaxQuantity  *int64
	ReorderPoint *int64
	UpdatedAt    time.Time
}
