package repository

import (
	"context"

	"github.com/shopcore/admin-service/internal/domain/entity"
)

// ProductRepository mirrors the backend /cards collection.
type ProductRepository interface {
	List(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Replace(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
