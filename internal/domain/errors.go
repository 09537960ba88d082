package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidReference  = errors.New("referencia inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidState      = errors.New("estado inválido para la operación")
	ErrValidation        = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// NotFoundError indica que un id referenciado no existe.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s con ID %s no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound construye un NotFoundError.
func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// InvalidReferenceError indica que la entidad existe pero no cumple el rol esperado
// (ej. un cliente usado como proveedor).
type InvalidReferenceError struct {
	Resource string
	ID       string
	Reason   string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%s con ID %s: %s", e.Resource, e.ID, e.Reason)
}

func (e *InvalidReferenceError) Unwrap() error { return ErrInvalidReference }

// InsufficientStockError reporta el saldo actual y la salida solicitada.
type InsufficientStockError struct {
	ProductID  string
	LocationID string
	Current    int64
	Requested  int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente. Saldo actual: %d, intento de salida: %d", e.Current, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidStateError indica una acción sobre un registro en estado terminal o incompatible.
type InvalidStateError struct {
	Resource string
	ID       string
	Status   string
	Action   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("no se puede %s %s %s en estado %s", e.Action, e.Resource, e.ID, e.Status)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// ValidationError agrupa los campos inválidos de una entrada (campo -> regla).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + " (" + strings.Join(parts, ", ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation construye un ValidationError de un solo campo.
func NewValidation(field, rule string) error {
	return &ValidationError{Fields: map[string]string{field: rule}}
}
