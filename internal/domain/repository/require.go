package repository

import (
	"context"

	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// RequireProduct devuelve el producto o un *domain.NotFoundError.
func RequireProduct(ctx context.Context, repo ProductRepository, id string) (*entity.Product, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("producto", id)
	}
	return p, nil
}

// RequireLocation devuelve la ubicación o un *domain.NotFoundError.
func RequireLocation(ctx context.Context, repo LocationRepository, id string) (*entity.Location, error) {
	l, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.NewNotFound("ubicación", id)
	}
	return l, nil
}

// RequireCounterparty devuelve el tercero o un *domain.NotFoundError.
func RequireCounterparty(ctx context.Context, repo CounterpartyRepository, id string) (*entity.Counterparty, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFound("tercero", id)
	}
	return c, nil
}

// RequireSupplier exige que el tercero exista y sea proveedor (si no, InvalidReference).
func RequireSupplier(ctx context.Context, repo CounterpartyRepository, id string) (*entity.Counterparty, error) {
	c, err := RequireCounterparty(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if !c.IsSupplier() {
		return nil, &domain.InvalidReferenceError{Resource: "tercero", ID: id, Reason: "no es un proveedor"}
	}
	return c, nil
}

// RequireCustomer exige que el tercero exista y sea cliente (si no, InvalidReference).
func RequireCustomer(ctx context.Context, repo CounterpartyRepository, id string) (*entity.Counterparty, error) {
	c, err := RequireCounterparty(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if !c.IsCustomer() {
		return nil, &domain.InvalidReferenceError{Resource: "tercero", ID: id, Reason: "no es un cliente"}
	}
	return c, nil
}

// RequireProductAndLocation valida ambas referencias de una línea de stock.
func RequireProductAndLocation(ctx context.Context, repos TxRepos, productID, locationID string) error {
	if _, err := RequireProduct(ctx, repos.Products, productID); err != nil {
		return err
	}
	_, err := RequireLocation(ctx, repos.Locations, locationID)
	return err
}
