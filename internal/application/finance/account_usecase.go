package finance

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

// AccountUseCase alta y consulta de cuentas financieras.
type AccountUseCase struct {
	txRunner ports.TxRunner
	now      func() time.Time
}

func NewAccountUseCase(txRunner ports.TxRunner) *AccountUseCase {
	return &AccountUseCase{txRunner: txRunner, now: time.Now}
}

// Create abre la cuenta con saldo corriente igual al inicial.
func (uc *AccountUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	account := &entity.FinancialAccount{
		Name:           in.Name,
		Type:           in.Type,
		InitialBalance: in.InitialBalance,
		CurrentBalance: in.InitialBalance,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		return repos.Accounts.Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("account_id", account.ID).Str("type", account.Type).Msg("cuenta financiera creada")
	return toAccountResponse(account), nil
}

func (uc *AccountUseCase) GetByID(ctx context.Context, scope domain.Scope, id string) (*dto.AccountResponse, error) {
	var account *entity.FinancialAccount
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		account, err = repos.Accounts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.NewNotFound("cuenta financiera", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

func (uc *AccountUseCase) List(ctx context.Context, scope domain.Scope, page dto.PageRequest) ([]*dto.AccountResponse, error) {
	page.DefaultPage()
	var list []*entity.FinancialAccount
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		list, err = repos.Accounts.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AccountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAccountResponse(a))
	}
	return out, nil
}
