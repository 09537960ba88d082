package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta financiera.
const (
	AccountTypeCash = "CASH"
	AccountTypeBank = "BANK"
)

// FinancialAccount cuenta de caja o banco con saldo corriente.
// CurrentBalance solo cambia al registrar un LedgerEntry.
type FinancialAccount struct {
	ID             string
	Name           string // ej. "Caja tienda", "Banco C/C"
	Type           string
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
