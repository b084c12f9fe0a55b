package restapi

import (
	"context"
	"fmt"
	"time"

	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/repository"
)

const productsCollection = "cards"

type productRepository struct {
	client *Client
}

func NewProductRepository(baseURL string, timeout time.Duration) repository.ProductRepository {
	return &productRepository{
		client: NewClient(baseURL, productsCollection, timeout),
	}
}

func (r *productRepository) List(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.client.List(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	if err := r.client.Get(ctx, id, &product); err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	var saved entity.Product
	if err := r.client.Create(ctx, product, &saved); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &saved, nil
}

func (r *productRepository) Replace(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	var saved entity.Product
	if err := r.client.Replace(ctx, product.ID, product, &saved); err != nil {
		return nil, fmt.Errorf("failed to replace product %s: %w", product.ID, err)
	}
	return &saved, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}
