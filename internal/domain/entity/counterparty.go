package entity

import "time"

// Tipos de registro de un tercero.
const (
	CounterpartyCustomer = "CUSTOMER"
	CounterpartySupplier = "SUPPLIER"
)

// Tipos de persona.
const (
	PersonNatural = "NATURAL"
	PersonLegal   = "LEGAL"
)

// Counterparty representa un cliente o proveedor referenciado por órdenes y cuentas.
type Counterparty struct {
	ID         string
	Kind       string // CUSTOMER | SUPPLIER
	PersonType string // NATURAL | LEGAL
	Name       string // nombre completo o razón social
	TradeName  string
	TaxID      string // documento o NIT
	Email      string
	Phone      string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsSupplier indica si el tercero está registrado como proveedor.
func (c *Counterparty) IsSupplier() bool { return c.Kind == CounterpartySupplier }

// IsCustomer indica si el tercero está registrado como cliente.
func (c *Counterparty) IsCustomer() bool { return c.Kind == CounterpartyCustomer }
