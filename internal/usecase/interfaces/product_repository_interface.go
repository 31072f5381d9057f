package interfaces

import (
	"context"
	"loja_checkout/internal/domain/entities"
)

// IProductRepository abstracts read-only product lookups. Catalog writes are
// owned by the admin service, not this one.

type IProductRepository interface {
	GetByID(ctx context.Context, id string) (entities.Product, error)
	GetBySlug(ctx context.Context, slug string) (entities.Product, error)
}
