package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

var (
	_ repository.PayableRepository    = (*PayableRepo)(nil)
	_ repository.ReceivableRepository = (*ReceivableRepo)(nil)
)

// Las tablas payables y receivables comparten forma; solo cambia la columna del tercero.
const settlementColumns = `id, %s, amount, issue_date, competency_date, due_date, description, document_number, category,
	status, payment_date, payment_method, interest, penalty, account_id, entry_id, created_at, updated_at`

// settlementRow campos comunes de una cuenta por pagar o por cobrar.
type settlementRow struct {
	entity.Payable
	counterpartyID string
}

func scanSettlement(row pgx.Row) (*settlementRow, error) {
	var s settlementRow
	var docNumber, category, method, accountID, entryID *string
	err := row.Scan(
		&s.ID, &s.counterpartyID, &s.Amount, &s.IssueDate, &s.CompetencyDate, &s.DueDate,
		&s.Description, &docNumber, &category, &s.Status, &s.PaymentDate, &method,
		&s.Interest, &s.Penalty, &accountID, &entryID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.DocumentNumber, s.Category, s.PaymentMethod = deref(docNumber), deref(category), deref(method)
	s.AccountID, s.EntryID = deref(accountID), deref(entryID)
	return &s, nil
}

func insertSettlement(ctx context.Context, q Querier, table, partyColumn string, p *entity.Payable, partyID string) error {
	ensureID(&p.ID)
	ensureTime(&p.CreatedAt)
	p.UpdatedAt = p.CreatedAt
	query := fmt.Sprintf(`
		INSERT INTO %s (`+settlementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		table, partyColumn)
	_, err := q.Exec(ctx, query,
		p.ID, partyID, p.Amount, p.IssueDate, p.CompetencyDate, p.DueDate,
		p.Description, nullIfEmpty(p.DocumentNumber), nullIfEmpty(p.Category), p.Status, p.PaymentDate,
		nullIfEmpty(p.PaymentMethod), p.Interest, p.Penalty, nullIfEmpty(p.AccountID), nullIfEmpty(p.EntryID),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert "+table, err)
	}
	return nil
}

func updateSettlement(ctx context.Context, q Querier, table string, p *entity.Payable) error {
	ensureTime(&p.UpdatedAt)
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, payment_date = $2, payment_method = $3, interest = $4, penalty = $5,
		    account_id = $6, entry_id = $7, updated_at = $8
		WHERE id = $9`, table)
	_, err := q.Exec(ctx, query,
		p.Status, p.PaymentDate, nullIfEmpty(p.PaymentMethod), p.Interest, p.Penalty,
		nullIfEmpty(p.AccountID), nullIfEmpty(p.EntryID), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

func getSettlement(ctx context.Context, q Querier, table, partyColumn, id string, forUpdate bool) (*settlementRow, error) {
	query := fmt.Sprintf(`SELECT `+settlementColumns+` FROM %s WHERE id = $1`, partyColumn, table)
	if forUpdate {
		query += ` FOR UPDATE`
	}
	return scanOne("get "+table, q.QueryRow(ctx, query, id), scanSettlement)
}

func listSettlements(ctx context.Context, q Querier, table, partyColumn, status string, limit, offset int) ([]*settlementRow, error) {
	query := fmt.Sprintf(`
		SELECT `+settlementColumns+`
		FROM %s
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY due_date, created_at LIMIT $2 OFFSET $3`, partyColumn, table)
	rows, err := q.Query(ctx, query, nullIfEmpty(status), limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return collect("scan "+table, rows, scanSettlement)
}

// PayableRepo cuentas por pagar a proveedores.
type PayableRepo struct {
	q Querier
}

// NewPayableRepository construye el adaptador de cuentas por pagar.
func NewPayableRepository(q Querier) *PayableRepo {
	return &PayableRepo{q: q}
}

func toPayable(s *settlementRow) *entity.Payable {
	if s == nil {
		return nil
	}
	p := s.Payable
	p.SupplierID = s.counterpartyID
	return &p
}

func (r *PayableRepo) Create(ctx context.Context, p *entity.Payable) error {
	return insertSettlement(ctx, r.q, "payables", "supplier_id", p, p.SupplierID)
}

func (r *PayableRepo) GetByID(ctx context.Context, id string) (*entity.Payable, error) {
	s, err := getSettlement(ctx, r.q, "payables", "supplier_id", id, false)
	return toPayable(s), err
}

func (r *PayableRepo) GetForUpdate(ctx context.Context, id string) (*entity.Payable, error) {
	s, err := getSettlement(ctx, r.q, "payables", "supplier_id", id, true)
	return toPayable(s), err
}

func (r *PayableRepo) Update(ctx context.Context, p *entity.Payable) error {
	return updateSettlement(ctx, r.q, "payables", p)
}

func (r *PayableRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Payable, error) {
	rows, err := listSettlements(ctx, r.q, "payables", "supplier_id", status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Payable, 0, len(rows))
	for _, s := range rows {
		out = append(out, toPayable(s))
	}
	return out, nil
}

// ReceivableRepo cuentas por cobrar a clientes.
type ReceivableRepo struct {
	q Querier
}

// NewReceivableRepository construye el adaptador de cuentas por cobrar.
func NewReceivableRepository(q Querier) *ReceivableRepo {
	return &ReceivableRepo{q: q}
}

func toReceivable(s *settlementRow) *entity.Receivable {
	if s == nil {
		return nil
	}
	p := s.Payable
	return &entity.Receivable{
		ID: p.ID, CustomerID: s.counterpartyID, Amount: p.Amount,
		IssueDate: p.IssueDate, CompetencyDate: p.CompetencyDate, DueDate: p.DueDate,
		Description: p.Description, DocumentNumber: p.DocumentNumber, Category: p.Category,
		Status: p.Status, PaymentDate: p.PaymentDate, PaymentMethod: p.PaymentMethod,
		Interest: p.Interest, Penalty: p.Penalty, AccountID: p.AccountID, EntryID: p.EntryID,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

// fromReceivable reutiliza la forma de Payable para las consultas compartidas.
func fromReceivable(r *entity.Receivable) *entity.Payable {
	return &entity.Payable{
		ID: r.ID, Amount: r.Amount,
		IssueDate: r.IssueDate, CompetencyDate: r.CompetencyDate, DueDate: r.DueDate,
		Description: r.Description, DocumentNumber: r.DocumentNumber, Category: r.Category,
		Status: r.Status, PaymentDate: r.PaymentDate, PaymentMethod: r.PaymentMethod,
		Interest: r.Interest, Penalty: r.Penalty, AccountID: r.AccountID, EntryID: r.EntryID,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (r *ReceivableRepo) Create(ctx context.Context, rec *entity.Receivable) error {
	p := fromReceivable(rec)
	if err := insertSettlement(ctx, r.q, "receivables", "customer_id", p, rec.CustomerID); err != nil {
		return err
	}
	rec.ID, rec.CreatedAt, rec.UpdatedAt = p.ID, p.CreatedAt, p.UpdatedAt
	return nil
}

func (r *ReceivableRepo) GetByID(ctx context.Context, id string) (*entity.Receivable, error) {
	s, err := getSettlement(ctx, r.q, "receivables", "customer_id", id, false)
	return toReceivable(s), err
}

func (r *ReceivableRepo) GetForUpdate(ctx context.Context, id string) (*entity.Receivable, error) {
	s, err := getSettlement(ctx, r.q, "receivables", "customer_id", id, true)
	return toReceivable(s), err
}

func (r *ReceivableRepo) Update(ctx context.Context, rec *entity.Receivable) error {
	p := fromReceivable(rec)
	if err := updateSettlement(ctx, r.q, "receivables", p); err != nil {
		return err
	}
	rec.UpdatedAt = p.UpdatedAt
	return nil
}

func (r *ReceivableRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Receivable, error) {
	rows, err := listSettlements(ctx, r.q, "receivables", "customer_id", status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Receivable, 0, len(rows))
	for _, s := range rows {
		out = append(out, toReceivable(s))
	}
	return out, nil
}
