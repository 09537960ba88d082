package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-core/internal/domain"
)

func TestInsufficientStockError_EnvuelveSentinel(t *testing.T) {
	var err error = &domain.InsufficientStockError{ProductID: "p", LocationID: "l", Current: 3, Requested: 5}
	wrapped := fmt.Errorf("aplicar delta: %w", err)

	assert.True(t, errors.Is(wrapped, domain.ErrInsufficientStock))

	var target *domain.InsufficientStockError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, int64(3), target.Current)
	assert.Equal(t, int64(5), target.Requested)
	assert.Contains(t, err.Error(), "Saldo actual: 3")
}

func TestErroresEstructurados_Unwrap(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{domain.NewNotFound("producto", "x"), domain.ErrNotFound},
		{&domain.InvalidReferenceError{Resource: "proveedor", ID: "x", Reason: "no es proveedor"}, domain.ErrInvalidReference},
		{&domain.InvalidStateError{Resource: "orden", ID: "x", Status: "CANCELLED", Action: "cancelar"}, domain.ErrInvalidState},
		{domain.NewValidation("quantity", "gt"), domain.ErrValidation},
	}
	for _, tc := range cases {
		assert.ErrorIs(t, tc.err, tc.sentinel, tc.err.Error())
	}
}

func TestValidationError_MensajeOrdenado(t *testing.T) {
	err := &domain.ValidationError{Fields: map[string]string{"b": "required", "a": "gt"}}
	assert.Equal(t, "entrada inválida (a: gt, b: required)", err.Error())
}
