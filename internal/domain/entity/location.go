package entity

import "time"

// Location representa una ubicación física de stock (depósito, tienda, área de averías).
type Location struct {
	ID          string
	Code        string // ej. "DEP-01"
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
}
