package entity

import "time"

// MovementType tipo de movimiento de stock.
type MovementType string

// Tipos de movimiento de stock.
const (
	MovementInboundReceipt               MovementType = "INBOUND_RECEIPT"                // entrada por recepción
	MovementOutboundShipment             MovementType = "OUTBOUND_SHIPMENT"              // salida por expedición
	MovementOutboundDamage               MovementType = "OUTBOUND_DAMAGE"                // salida por avería
	MovementInventoryAdjustment          MovementType = "INVENTORY_ADJUSTMENT"           // ajuste por conteo
	MovementOpeningBalance               MovementType = "OPENING_BALANCE"                // saldo inicial
	MovementInboundSaleCancellation      MovementType = "INBOUND_SALE_CANCELLATION"      // reversión de venta
	MovementOutboundPurchaseCancellation MovementType = "OUTBOUND_PURCHASE_CANCELLATION" // reversión de compra
)

// Valid indica si el tipo es conocido.
func (t MovementType) Valid() bool {
	switch t {
	case MovementInboundReceipt, MovementOutboundShipment, MovementOutboundDamage,
		MovementInventoryAdjustment, MovementOpeningBalance,
		MovementInboundSaleCancellation, MovementOutboundPurchaseCancellation:
		return true
	}
	return false
}

// Sign devuelve el signo permitido del delta: 1 entradas, -1 salidas, 0 cualquiera (ajuste).
func (t MovementType) Sign() int {
	switch t {
	case MovementInboundReceipt, MovementOpeningBalance, MovementInboundSaleCancellation:
		return 1
	case MovementOutboundShipment, MovementOutboundDamage, MovementOutboundPurchaseCancellation:
		return -1
	}
	return 0
}

// AllowsDelta verifica que el signo del delta sea coherente con el tipo.
func (t MovementType) AllowsDelta(delta int64) bool {
	if delta == 0 {
		return false
	}
	switch t.Sign() {
	case 1:
		return delta > 0
	case -1:
		return delta < 0
	}
	return true
}

// StockMovement registro inmutable de una mutación de StockBalance.
// Seq ordena el historial; BalanceBefore + Quantity = saldo posterior.
type StockMovement struct {
	ID            string
	Seq           int64
	BalanceID     string
	ProductID     string
	LocationID    string
	Type          MovementType
	Quantity      int64 // delta con signo
	BalanceBefore int64
	Note          string
	DocumentRef   string
	CreatedBy     string
	CreatedAt     time.Time
}

// BalanceAfter saldo resultante del movimiento.
func (m *StockMovement) BalanceAfter() int64 {
	return m.BalanceBefore + m.Quantity
}

// ReplayQuantity reconstruye el saldo sumando los deltas desde cero.
func ReplayQuantity(movements []*StockMovement) int64 {
	var total int64
	for _, m := range movements {
		total += m.Quantity
	}
	return total
}
