package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

// CounterpartyUseCase alta y consulta de clientes y proveedores.
type CounterpartyUseCase struct {
	txRunner ports.TxRunner
}

// NewCounterpartyUseCase construye el caso de uso.
func NewCounterpartyUseCase(txRunner ports.TxRunner) *CounterpartyUseCase {
	return &CounterpartyUseCase{txRunner: txRunner}
}

// Create registra un tercero. El documento se guarda sin espacios.
func (uc *CounterpartyUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreateCounterpartyRequest) (*dto.CounterpartyResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Counterparty{
		ID:         uuid.New().String(),
		Kind:       in.Kind,
		PersonType: in.PersonType,
		Name:       strings.TrimSpace(in.Name),
		TradeName:  strings.TrimSpace(in.TradeName),
		TaxID:      strings.ReplaceAll(in.TaxID, " ", ""),
		Email:      in.Email,
		Phone:      in.Phone,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		return repos.Counterparties.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return toCounterpartyResponse(c), nil
}

// List filtra por kind (CUSTOMER / SUPPLIER) si viene informado.
func (uc *CounterpartyUseCase) List(ctx context.Context, scope domain.Scope, kind string, page dto.PageRequest) ([]*dto.CounterpartyResponse, error) {
	if kind != "" && kind != entity.CounterpartyCustomer && kind != entity.CounterpartySupplier {
		return nil, domain.NewValidation("kind", "oneof")
	}
	page.DefaultPage()
	var list []*entity.Counterparty
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		list, err = repos.Counterparties.List(ctx, kind, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CounterpartyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCounterpartyResponse(c))
	}
	return out, nil
}

func toCounterpartyResponse(c *entity.Counterparty) *dto.CounterpartyResponse {
	return &dto.CounterpartyResponse{
		ID:         c.ID,
		Kind:       c.Kind,
		PersonType: c.PersonType,
		Name:       c.Name,
		TradeName:  c.TradeName,
		TaxID:      c.TaxID,
		Email:      c.Email,
		Phone:      c.Phone,
		Active:     c.Active,
		CreatedAt:  c.CreatedAt,
	}
}
