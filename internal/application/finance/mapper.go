package finance

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func toAccountResponse(a *entity.FinancialAccount) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Type:           a.Type,
		InitialBalance: a.InitialBalance,
		CurrentBalance: a.CurrentBalance,
		Active:         a.Active,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toEntryResponse(e *entity.LedgerEntry) *dto.EntryResponse {
	return &dto.EntryResponse{
		ID:             e.ID,
		Seq:            e.Seq,
		AccountID:      e.AccountID,
		CounterpartyID: e.CounterpartyID,
		Direction:      string(e.Direction),
		Amount:         e.Amount,
		Description:    e.Description,
		Category:       e.Category,
		CompetencyDate: e.CompetencyDate,
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt,
	}
}

func payableToResponse(p *entity.Payable) *dto.SettlementResponse {
	return &dto.SettlementResponse{
		ID:             p.ID,
		CounterpartyID: p.SupplierID,
		Amount:         p.Amount,
		IssueDate:      p.IssueDate,
		CompetencyDate: p.CompetencyDate,
		DueDate:        p.DueDate,
		Description:    p.Description,
		DocumentNumber: p.DocumentNumber,
		Category:       p.Category,
		Status:         p.Status,
		PaymentDate:    p.PaymentDate,
		PaymentMethod:  p.PaymentMethod,
		Interest:       p.Interest,
		Penalty:        p.Penalty,
		AccountID:      p.AccountID,
		EntryID:        p.EntryID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func receivableToResponse(r *entity.Receivable) *dto.SettlementResponse {
	return &dto.SettlementResponse{
		ID:             r.ID,
		CounterpartyID: r.CustomerID,
		Amount:         r.Amount,
		IssueDate:      r.IssueDate,
		CompetencyDate: r.CompetencyDate,
		DueDate:        r.DueDate,
		Description:    r.Description,
		DocumentNumber: r.DocumentNumber,
		Category:       r.Category,
		Status:         r.Status,
		PaymentDate:    r.PaymentDate,
		PaymentMethod:  r.PaymentMethod,
		Interest:       r.Interest,
		Penalty:        r.Penalty,
		AccountID:      r.AccountID,
		EntryID:        r.EntryID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
