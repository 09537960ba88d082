package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/erp-core/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// wrapWrite traduce 23505 a domain.ErrDuplicate y envuelve el resto con la operación.
func wrapWrite(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// scanOne ejecuta scan y convierte pgx.ErrNoRows en (nil, nil).
func scanOne[T any](op string, row pgx.Row, scan func(pgx.Row) (*T, error)) (*T, error) {
	v, err := scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// collect recorre rows aplicando scan a cada fila.
func collect[T any](op string, rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()
	out := make([]*T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ensureID asigna un UUID si el ID viene vacío.
func ensureID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}

// ensureTime fija t a la hora actual si viene en cero.
func ensureTime(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// limitArg traduce limit <= 0 a NULL (LIMIT NULL = sin límite en PostgreSQL).
func limitArg(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}
