package memory

import (
	"context"
	"time"

	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

type accountRepo struct{ st *state }

func (r accountRepo) Create(_ context.Context, a *entity.FinancialAccount) error {
	a.ID = newID(a.ID)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
		a.UpdatedAt = a.CreatedAt
	}
	r.st.accounts[a.ID] = *a
	r.st.accountIDs = append(r.st.accountIDs, a.ID)
	return nil
}

func (r accountRepo) GetByID(_ context.Context, id string) (*entity.FinancialAccount, error) {
	a, ok := r.st.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r accountRepo) GetForUpdate(ctx context.Context, id string) (*entity.FinancialAccount, error) {
	return r.GetByID(ctx, id)
}

func (r accountRepo) UpdateBalance(_ context.Context, a *entity.FinancialAccount) error {
	cur, ok := r.st.accounts[a.ID]
	if !ok {
		return domain.NewNotFound("cuenta financiera", a.ID)
	}
	cur.CurrentBalance = a.CurrentBalance
	cur.UpdatedAt = a.UpdatedAt
	r.st.accounts[a.ID] = cur
	return nil
}

func (r accountRepo) List(_ context.Context, limit, offset int) ([]*entity.FinancialAccount, error) {
	ids := page(r.st.accountIDs, limit, offset)
	out := make([]*entity.FinancialAccount, 0, len(ids))
	for _, id := range ids {
		a := r.st.accounts[id]
		out = append(out, &a)
	}
	return out, nil
}

type entryRepo struct{ st *state }

func (r entryRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	r.st.entrySeq++
	e.ID = newID(e.ID)
	e.Seq = r.st.entrySeq
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.st.entries = append(r.st.entries, *e)
	return nil
}

func (r entryRepo) GetByID(_ context.Context, id string) (*entity.LedgerEntry, error) {
	for _, e := range r.st.entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, nil
}

func (r entryRepo) ListByAccount(_ context.Context, accountID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	var matched []entity.LedgerEntry
	for _, e := range r.st.entries {
		if accountID == "" || e.AccountID == accountID {
			matched = append(matched, e)
		}
	}
	if offset >= len(matched) {
		return []*entity.LedgerEntry{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	out := make([]*entity.LedgerEntry, 0, len(matched))
	for i := range matched {
		out = append(out, &matched[i])
	}
	return out, nil
}

type payableRepo struct{ st *state }

func (r payableRepo) Create(_ context.Context, p *entity.Payable) error {
	p.ID = newID(p.ID)
	r.st.payables[p.ID] = *p
	r.st.payableIDs = append(r.st.payableIDs, p.ID)
	return nil
}

func (r payableRepo) GetByID(_ context.Context, id string) (*entity.Payable, error) {
	p, ok := r.st.payables[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r payableRepo) GetForUpdate(ctx context.Context, id string) (*entity.Payable, error) {
	return r.GetByID(ctx, id)
}

func (r payableRepo) Update(_ context.Context, p *entity.Payable) error {
	if _, ok := r.st.payables[p.ID]; !ok {
		return domain.NewNotFound("cuenta por pagar", p.ID)
	}
	r.st.payables[p.ID] = *p
	return nil
}

func (r payableRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Payable, error) {
	ids := make([]string, 0, len(r.st.payableIDs))
	for _, id := range r.st.payableIDs {
		if status == "" || r.st.payables[id].Status == status {
			ids = append(ids, id)
		}
	}
	ids = page(ids, limit, offset)
	out := make([]*entity.Payable, 0, len(ids))
	for _, id := range ids {
		p := r.st.payables[id]
		out = append(out, &p)
	}
	return out, nil
}

type receivableRepo struct{ st *state }

func (r receivableRepo) Create(_ context.Context, rc *entity.Receivable) error {
	rc.ID = newID(rc.ID)
	r.st.receivables[rc.ID] = *rc
	r.st.receivableIDs = append(r.st.receivableIDs, rc.ID)
	return nil
}

func (r receivableRepo) GetByID(_ context.Context, id string) (*entity.Receivable, error) {
	rc, ok := r.st.receivables[id]
	if !ok {
		return nil, nil
	}
	return &rc, nil
}

func (r receivableRepo) GetForUpdate(ctx context.Context, id string) (*entity.Receivable, error) {
	return r.GetByID(ctx, id)
}

func (r receivableRepo) Update(_ context.Context, rc *entity.Receivable) error {
	if _, ok := r.st.receivables[rc.ID]; !ok {
		return domain.NewNotFound("cuenta por cobrar", rc.ID)
	}
	r.st.receivables[rc.ID] = *rc
	return nil
}

func (r receivableRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Receivable, error) {
	ids := make([]string, 0, len(r.st.receivableIDs))
	for _, id := range r.st.receivableIDs {
		if status == "" || r.st.receivables[id].Status == status {
			ids = append(ids, id)
		}
	}
	ids = page(ids, limit, offset)
	out := make([]*entity.Receivable, 0, len(ids))
	for _, id := range ids {
		rc := r.st.receivables[id]
		out = append(out, &rc)
	}
	return out, nil
}
