package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest body para POST /api/finance/accounts.
type CreateAccountRequest struct {
	Name           string          `json:"name" validate:"required,max=120"`
	Type           string          `json:"type" validate:"required,oneof=CASH BANK"`
	InitialBalance decimal.Decimal `json:"initial_balance" validate:"money"`
}

// AccountResponse cuenta financiera en respuestas.
type AccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateEntryRequest body para POST /api/finance/entries (asiento manual).
type CreateEntryRequest struct {
	AccountID      string          `json:"account_id" validate:"required,uuid"`
	CounterpartyID string          `json:"counterparty_id,omitempty" validate:"omitempty,uuid"`
	Direction      string          `json:"direction" validate:"required,oneof=INFLOW OUTFLOW"`
	Amount         decimal.Decimal `json:"amount" validate:"dec_gt0,money"`
	Description    string          `json:"description" validate:"required,max=300"`
	Category       string          `json:"category,omitempty" validate:"max=100"`
	CompetencyDate time.Time       `json:"competency_date" validate:"required"`
}

// EntryResponse asiento en respuestas.
type EntryResponse struct {
	ID             string          `json:"id"`
	Seq            int64           `json:"seq"`
	AccountID      string          `json:"account_id"`
	CounterpartyID string          `json:"counterparty_id,omitempty"`
	Direction      string          `json:"direction"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Category       string          `json:"category,omitempty"`
	CompetencyDate time.Time       `json:"competency_date"`
	CreatedBy      string          `json:"created_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreatePayableRequest body para POST /api/finance/payables.
type CreatePayableRequest struct {
	SupplierID     string          `json:"supplier_id" validate:"required,uuid"`
	Amount         decimal.Decimal `json:"amount" validate:"dec_gt0,money"`
	IssueDate      time.Time       `json:"issue_date" validate:"required"`
	CompetencyDate time.Time       `json:"competency_date" validate:"required"`
	DueDate        time.Time       `json:"due_date" validate:"required"`
	Description    string          `json:"description" validate:"required,max=300"`
	DocumentNumber string          `json:"document_number,omitempty" validate:"max=60"`
	Category       string          `json:"category,omitempty" validate:"max=100"`
}

// CreateReceivableRequest body para POST /api/finance/receivables.
type CreateReceivableRequest struct {
	CustomerID     string          `json:"customer_id" validate:"required,uuid"`
	Amount         decimal.Decimal `json:"amount" validate:"dec_gt0,money"`
	IssueDate      time.Time       `json:"issue_date" validate:"required"`
	CompetencyDate time.Time       `json:"competency_date" validate:"required"`
	DueDate        time.Time       `json:"due_date" validate:"required"`
	Description    string          `json:"description,omitempty" validate:"max=300"`
	DocumentNumber string          `json:"document_number" validate:"required,max=60"`
	Category       string          `json:"category,omitempty" validate:"max=100"`
}

// SettleRequest body para POST /api/finance/{payables|receivables}/:id/settle.
// Amount es opcional: si va vacío se liquida monto + intereses + multa.
type SettleRequest struct {
	AccountID     string           `json:"account_id" validate:"required,uuid"`
	PaymentDate   time.Time        `json:"payment_date" validate:"required"`
	PaymentMethod string           `json:"payment_method" validate:"required,max=50"`
	Interest      *decimal.Decimal `json:"interest,omitempty" validate:"omitempty,dec_gte0,money"`
	Penalty       *decimal.Decimal `json:"penalty,omitempty" validate:"omitempty,dec_gte0,money"`
	Amount        *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,dec_gt0,money"`
}

// SettlementResponse cuenta por pagar o por cobrar en respuestas.
type SettlementResponse struct {
	ID             string          `json:"id"`
	CounterpartyID string          `json:"counterparty_id"`
	Amount         decimal.Decimal `json:"amount"`
	IssueDate      time.Time       `json:"issue_date"`
	CompetencyDate time.Time       `json:"competency_date"`
	DueDate        time.Time       `json:"due_date"`
	Description    string          `json:"description,omitempty"`
	DocumentNumber string          `json:"document_number,omitempty"`
	Category       string          `json:"category,omitempty"`
	Status         string          `json:"status"`
	PaymentDate    *time.Time      `json:"payment_date,omitempty"`
	PaymentMethod  string          `json:"payment_method,omitempty"`
	Interest       decimal.Decimal `json:"interest"`
	Penalty        decimal.Decimal `json:"penalty"`
	AccountID      string          `json:"account_id,omitempty"`
	EntryID        string          `json:"entry_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
