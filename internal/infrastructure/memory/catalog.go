package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

type productRepo struct{ st *state }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	for _, other := range r.st.products {
		if other.SKU == p.SKU {
			return fmt.Errorf("%w: SKU %s", domain.ErrDuplicate, p.SKU)
		}
	}
	p.ID = newID(p.ID)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
		p.UpdatedAt = p.CreatedAt
	}
	r.st.products[p.ID] = *p
	r.st.productIDs = append(r.st.productIDs, p.ID)
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	ids := page(r.st.productIDs, limit, offset)
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		p := r.st.products[id]
		out = append(out, &p)
	}
	return out, nil
}

type locationRepo struct{ st *state }

func (r locationRepo) Create(_ context.Context, l *entity.Location) error {
	for _, other := range r.st.locations {
		if other.Code == l.Code {
			return fmt.Errorf("%w: ubicación %s", domain.ErrDuplicate, l.Code)
		}
	}
	l.ID = newID(l.ID)
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	r.st.locations[l.ID] = *l
	r.st.locationIDs = append(r.st.locationIDs, l.ID)
	return nil
}

func (r locationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	l, ok := r.st.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r locationRepo) List(_ context.Context, limit, offset int) ([]*entity.Location, error) {
	ids := page(r.st.locationIDs, limit, offset)
	out := make([]*entity.Location, 0, len(ids))
	for _, id := range ids {
		l := r.st.locations[id]
		out = append(out, &l)
	}
	return out, nil
}

type counterpartyRepo struct{ st *state }

func (r counterpartyRepo) Create(_ context.Context, c *entity.Counterparty) error {
	for _, other := range r.st.counterparties {
		if other.Kind == c.Kind && other.TaxID == c.TaxID {
			return fmt.Errorf("%w: tercero %s %s", domain.ErrDuplicate, c.Kind, c.TaxID)
		}
	}
	c.ID = newID(c.ID)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
		c.UpdatedAt = c.CreatedAt
	}
	r.st.counterparties[c.ID] = *c
	r.st.counterpartyIDs = append(r.st.counterpartyIDs, c.ID)
	return nil
}

func (r counterpartyRepo) GetByID(_ context.Context, id string) (*entity.Counterparty, error) {
	c, ok := r.st.counterparties[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r counterpartyRepo) List(_ context.Context, kind string, limit, offset int) ([]*entity.Counterparty, error) {
	ids := r.st.counterpartyIDs
	if kind != "" {
		filtered := make([]string, 0, len(ids))
		for _, id := range ids {
			if r.st.counterparties[id].Kind == kind {
				filtered = append(filtered, id)
			}
		}
		ids = filtered
	}
	ids = page(ids, limit, offset)
	out := make([]*entity.Counterparty, 0, len(ids))
	for _, id := range ids {
		c := r.st.counterparties[id]
		out = append(out, &c)
	}
	return out, nil
}
