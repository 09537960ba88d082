package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity con signo: positivo entrada, negativo salida (debe coincidir con Type).
type RegisterMovementRequest struct {
	ProductID   string `json:"product_id" validate:"required,uuid"`
	LocationID  string `json:"location_id" validate:"required,uuid"`
	Type        string `json:"type" validate:"required,movement_type"`
	Quantity    int64  `json:"quantity" validate:"required,min=-1000000000,max=1000000000"`
	Note        string `json:"note,omitempty" validate:"max=500"`
	DocumentRef string `json:"document_ref,omitempty" validate:"max=120"`
}

// ReconcileRequest body para POST /api/inventory/adjustments (conteo físico).
type ReconcileRequest struct {
	ProductID       string `json:"product_id" validate:"required,uuid"`
	LocationID      string `json:"location_id" validate:"required,uuid"`
	CountedQuantity *int64 `json:"counted_quantity" validate:"required,gte=0,lte=1000000000"`
	Note            string `json:"note,omitempty" validate:"max=500"`
}

// ReconcileResponse resultado del ajuste; Movement es nil cuando no hubo diferencia.
type ReconcileResponse struct {
	Adjusted bool              `json:"adjusted"`
	Message  string            `json:"message"`
	Movement *MovementResponse `json:"movement,omitempty"`
}

// MovementResponse movimiento de stock en respuestas.
type MovementResponse struct {
	ID            string    `json:"id"`
	Seq           int64     `json:"seq"`
	ProductID     string    `json:"product_id"`
	LocationID    string    `json:"location_id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	Note          string    `json:"note,omitempty"`
	DocumentRef   string    `json:"document_ref,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// BalanceResponse saldo de un producto en una ubicación.
type BalanceResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	LocationID   string    `json:"location_id"`
	Quantity     int64     `json:"quantity"`
	MinQuantity  *int64    `json:"min_quantity,omitempty"`
	MaxQuantity  *int64    `json:"max_quantity,omitempty"`
	ReorderPoint *int64    `json:"reorder_point,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MovementQuery filtros para GET /api/inventory/movements.
type MovementQuery struct {
	ProductID  string `query:"product_id" validate:"required,uuid"`
	LocationID string `query:"location_id" validate:"required,uuid"`
	PageRequest
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un saldo
// que se encuentra en o por debajo de su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID         string `json:"product_id"`
	LocationID        string `json:"location_id"`
	CurrentStock      int64  `json:"current_stock"`
	ReorderPoint      int64  `json:"reorder_point"`
	TargetStock       int64  `json:"target_stock"`        // máximo o ReorderPoint * 1.5
	SuggestedOrderQty int64  `json:"suggested_order_qty"` // TargetStock - CurrentStock
	Priority          int    `json:"priority"`            // 1 = más urgente
}
