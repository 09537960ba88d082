package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	txRunner ports.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner ports.TxRunner) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner}
}

// Create crea el producto y, si vienen, los límites de stock por ubicación
// (saldo en cero). Todo en una sola transacción.
func (uc *ProductUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Unit == "" {
		in.Unit = "UN"
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Unit:        in.Unit,
		SalePrice:   in.SalePrice,
		Category:    in.Category,
		Brand:       in.Brand,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		for _, th := range in.Thresholds {
			if _, err := repository.RequireLocation(ctx, repos.Locations, th.LocationID); err != nil {
				return err
			}
			balance, err := repos.Stock.CreateEmpty(ctx, product.ID, th.LocationID)
			if err != nil {
				return err
			}
			balance.MinQuantity = th.MinQuantity
			balance.MaxQuantity = th.MaxQuantity
			balance.ReorderPoint = th.ReorderPoint
			balance.UpdatedAt = now
			if err := repos.Stock.SetThresholds(ctx, balance); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("product_id", product.ID).Str("sku", product.SKU).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, scope domain.Scope, id string) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		product, err = repository.RequireProduct(ctx, repos.Products, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, scope domain.Scope, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	var list []*entity.Product
	err := uc.txRunner.Run(ctx, scope, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		list, err = repos.Products.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		SalePrice:   p.SalePrice,
		Category:    p.Category,
		Brand:       p.Brand,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}
