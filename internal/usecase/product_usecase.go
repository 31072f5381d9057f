package usecase

import (
	"context"
	"strings"

	"loja_checkout/internal/domain/entities"
	"loja_checkout/internal/usecase/interfaces"
)

// IProductUseCase exposes the read-only product lookups the storefront needs.

type IProductUseCase interface {
	GetByRef(ctx context.Context, ref string) (entities.Product, error)
}

type ProductUseCase struct {
	repo interfaces.IProductRepository
}

var _ IProductUseCase = (*ProductUseCase)(nil)

func NewProductUseCase(repo interfaces.IProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// GetByRef resolves a product by slug first, then by id.
func (u *ProductUseCase) GetByRef(ctx context.Context, ref string) (entities.Product, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return entities.Product{}, ErrProductNotFound
	}
	if p, err := u.repo.GetBySlug(ctx, ref); err == nil && p.ID != "" {
		return p, nil
	}
	p, err := u.repo.GetByID(ctx, ref)
	if err != nil {
		return entities.Product{}, err
	}
	if p.ID == "" {
		return entities.Product{}, ErrProductNotFound
	}
	return p, nil
}
