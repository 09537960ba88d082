package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cuentas por pagar y por cobrar.
const (
	SettlementOpen      = "OPEN"
	SettlementSettled   = "SETTLED"
	SettlementCancelled = "CANCELLED"
)

// Payable cuenta por pagar a un proveedor.
type Payable struct {
	ID             string
	SupplierID     string
	Amount         decimal.Decimal
	IssueDate      time.Time
	CompetencyDate time.Time
	DueDate        time.Time
	Description    string
	DocumentNumber string
	Category       string
	Status         string
	PaymentDate    *time.Time
	PaymentMethod  string
	Interest       decimal.Decimal
	Penalty        decimal.Decimal
	AccountID      string // cuenta usada en la liquidación
	EntryID        string // asiento generado en la liquidación
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Receivable cuenta por cobrar a un cliente.
type Receivable struct {
	ID             string
	CustomerID     string
	Amount         decimal.Decimal
	IssueDate      time.Time
	CompetencyDate time.Time
	DueDate        time.Time
	Description    string
	DocumentNumber string
	Category       string
	Status         string
	PaymentDate    *time.Time
	PaymentMethod  string
	Interest       decimal.Decimal
	Penalty        decimal.Decimal
	AccountID      string
	EntryID        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SettledAmount calcula el monto efectivo: override si viene, si no monto + intereses + multa.
func SettledAmount(amount, interest, penalty decimal.Decimal, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return amount.Add(interest).Add(penalty)
}
