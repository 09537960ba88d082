package memory

import (
	"context"
	"time"

	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

func balanceKey(productID, locationID string) string {
	return productID + "|" + locationID
}

type stockRepo struct{ st *state }

func (r stockRepo) Get(_ context.Context, productID, locationID string) (*entity.StockBalance, error) {
	b, ok := r.st.balances[balanceKey(productID, locationID)]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// GetForUpdate no necesita bloqueo: Run ya serializa las transacciones.
func (r stockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockBalance, error) {
	return r.Get(ctx, productID, locationID)
}

func (r stockRepo) CreateEmpty(_ context.Context, productID, locationID string) (*entity.StockBalance, error) {
	key := balanceKey(productID, locationID)
	if b, ok := r.st.balances[key]; ok {
		return &b, nil
	}
	b := entity.StockBalance{
		ID:         newID(""),
		ProductID:  productID,
		LocationID: locationID,
		UpdatedAt:  time.Now(),
	}
	r.st.balances[key] = b
	r.st.balanceIDs = append(r.st.balanceIDs, key)
	return &b, nil
}

func (r stockRepo) UpdateQuantity(_ context.Context, balance *entity.StockBalance) error {
	key := balanceKey(balance.ProductID, balance.LocationID)
	b, ok := r.st.balances[key]
	if !ok {
		return domain.NewNotFound("saldo", balance.ID)
	}
	b.Quantity = balance.Quantity
	b.UpdatedAt = balance.UpdatedAt
	r.st.balances[key] = b
	return nil
}

func (r stockRepo) SetThresholds(_ context.Context, balance *entity.StockBalance) error {
	key := balanceKey(balance.ProductID, balance.LocationID)
	b, ok := r.st.balances[key]
	if !ok {
		return domain.NewNotFound("saldo", balance.ID)
	}
	b.MinQuantity = balance.MinQuantity
	b.MaxQuantity = balance.MaxQuantity
	b.ReorderPoint = balance.ReorderPoint
	b.UpdatedAt = balance.UpdatedAt
	r.st.balances[key] = b
	return nil
}

func (r stockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockBalance, error) {
	return r.filter(func(b entity.StockBalance) bool { return b.ProductID == productID }), nil
}

func (r stockRepo) ListByLocation(_ context.Context, locationID string) ([]*entity.StockBalance, error) {
	return r.filter(func(b entity.StockBalance) bool { return b.LocationID == locationID }), nil
}

func (r stockRepo) filter(keep func(entity.StockBalance) bool) []*entity.StockBalance {
	var out []*entity.StockBalance
	for _, key := range r.st.balanceIDs {
		b := r.st.balances[key]
		if keep(b) {
			out = append(out, &b)
		}
	}
	return out
}

type movementRepo struct{ st *state }

func (r movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if m.Quantity == 0 {
		return domain.NewValidation("quantity", "ne=0")
	}
	r.st.movSeq++
	m.ID = newID(m.ID)
	m.Seq = r.st.movSeq
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.st.movements = append(r.st.movements, *m)
	return nil
}

func (r movementRepo) ListByBalance(_ context.Context, productID, locationID string, limit, offset int) ([]*entity.StockMovement, error) {
	var matched []entity.StockMovement
	for _, m := range r.st.movements {
		if m.ProductID == productID && m.LocationID == locationID {
			matched = append(matched, m)
		}
	}
	if offset >= len(matched) {
		return []*entity.StockMovement{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	out := make([]*entity.StockMovement, 0, len(matched))
	for i := range matched {
		out = append(out, &matched[i])
	}
	return out, nil
}
