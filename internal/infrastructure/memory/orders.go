package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

type purchaseOrderRepo struct{ st *state }

func (r purchaseOrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	r.st.purchaseSeq++
	o.ID = newID(o.ID)
	o.Number = r.st.purchaseSeq
	for i := range o.Items {
		o.Items[i].ID = newID(o.Items[i].ID)
		o.Items[i].OrderID = o.ID
	}
	stored := *o
	stored.Items = slices.Clone(o.Items)
	r.st.purchaseOrders[o.ID] = stored
	r.st.purchaseOrderIDs = append(r.st.purchaseOrderIDs, o.ID)
	return nil
}

func (r purchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	o, ok := r.st.purchaseOrders[id]
	if !ok {
		return nil, nil
	}
	o.Items = slices.Clone(o.Items)
	return &o, nil
}

func (r purchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r purchaseOrderRepo) UpdateStatus(_ context.Context, o *entity.PurchaseOrder) error {
	cur, ok := r.st.purchaseOrders[o.ID]
	if !ok {
		return domain.NewNotFound("orden de compra", o.ID)
	}
	cur.Status = o.Status
	cur.UpdatedAt = o.UpdatedAt
	r.st.purchaseOrders[o.ID] = cur
	return nil
}

func (r purchaseOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	ids := page(r.st.purchaseOrderIDs, limit, offset)
	out := make([]*entity.PurchaseOrder, 0, len(ids))
	for _, id := range ids {
		o, _ := r.GetByID(ctx, id)
		out = append(out, o)
	}
	return out, nil
}

type salesOrderRepo struct{ st *state }

func (r salesOrderRepo) Create(_ context.Context, o *entity.SalesOrder) error {
	r.st.salesSeq++
	o.ID = newID(o.ID)
	o.Number = r.st.salesSeq
	for i := range o.Items {
		o.Items[i].ID = newID(o.Items[i].ID)
		o.Items[i].OrderID = o.ID
	}
	stored := *o
	stored.Items = slices.Clone(o.Items)
	r.st.salesOrders[o.ID] = stored
	r.st.salesOrderIDs = append(r.st.salesOrderIDs, o.ID)
	return nil
}

func (r salesOrderRepo) GetByID(_ context.Context, id string) (*entity.SalesOrder, error) {
	o, ok := r.st.salesOrders[id]
	if !ok {
		return nil, nil
	}
	o.Items = slices.Clone(o.Items)
	return &o, nil
}

func (r salesOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, id)
}

func (r salesOrderRepo) UpdateStatus(_ context.Context, o *entity.SalesOrder) error {
	cur, ok := r.st.salesOrders[o.ID]
	if !ok {
		return domain.NewNotFound("orden de venta", o.ID)
	}
	cur.Status = o.Status
	cur.UpdatedAt = o.UpdatedAt
	r.st.salesOrders[o.ID] = cur
	return nil
}

func (r salesOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.SalesOrder, error) {
	ids := page(r.st.salesOrderIDs, limit, offset)
	out := make([]*entity.SalesOrder, 0, len(ids))
	for _, id := range ids {
		o, _ := r.GetByID(ctx, id)
		out = append(out, o)
	}
	return out, nil
}
