package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction sentido de un asiento financiero.
type Direction string

// Sentidos de asiento.
const (
	DirectionInflow  Direction = "INFLOW"
	DirectionOutflow Direction = "OUTFLOW"
)

// Valid indica si el sentido es conocido.
func (d Direction) Valid() bool {
	return d == DirectionInflow || d == DirectionOutflow
}

// LedgerEntry asiento inmutable sobre una cuenta financiera. Amount siempre > 0.
type LedgerEntry struct {
	ID             string
	Seq            int64
	AccountID      string
	CounterpartyID string // opcional
	Direction      Direction
	Amount         decimal.Decimal
	Description    string
	Category       string
	CompetencyDate time.Time
	CreatedBy      string
	CreatedAt      time.Time
}

// SignedAmount devuelve el monto positivo para entradas y negativo para salidas.
func (e *LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Direction == DirectionOutflow {
		return e.Amount.Neg()
	}
	return e.Amount
}
