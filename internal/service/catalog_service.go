package service

import (
	"context"
	"fmt"

	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/platform/logger"
	"github.com/shopcore/admin-service/internal/repository"
)

// ImageStorage stores an uploaded image and returns its public URL.
type ImageStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

type CatalogService interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UploadImage(ctx context.Context, fileName string, data []byte) (string, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	storage     ImageStorage
	log         logger.Logger
}

func NewCatalogService(productRepo repository.ProductRepository, storage ImageStorage, log logger.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		storage:     storage,
		log:         log,
	}
}

func validateProduct(product *entity.Product) error {
	if product == nil {
		return fmt.Errorf("%w: product is required", ErrValidationFailed)
	}
	if product.Title == "" {
		return fmt.Errorf("%w: product title cannot be empty", ErrValidationFailed)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: product price cannot be negative", ErrValidationFailed)
	}
	if product.Quantity < 0 {
		return fmt.Errorf("%w: product quantity cannot be negative", ErrValidationFailed)
	}
	return nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *catalogService) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.ID = newRecordID()

	saved, err := s.productRepo.Create(ctx, product)
	if err != nil {
		s.log.Errorf("CreateProduct: failed to create %q: %v", product.Title, err)
		return nil, err
	}
	s.log.Infof("Product %s (%q) created", saved.ID, saved.Title)
	return saved, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if product.ID == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrValidationFailed)
	}

	saved, err := s.productRepo.Replace(ctx, product)
	if err != nil {
		s.log.Errorf("UpdateProduct: failed to replace product %s: %v", product.ID, err)
		return nil, err
	}
	s.log.Infof("Product %s updated", saved.ID)
	return saved, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.log.Errorf("DeleteProduct: failed to delete product %s: %v", id, err)
		return err
	}
	s.log.Infof("Product %s deleted", id)
	return nil
}

func (s *catalogService) UploadImage(ctx context.Context, fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: image data is empty", ErrValidationFailed)
	}
	url, err := s.storage.Upload(ctx, fileName, data)
	if err != nil {
		s.log.Errorf("UploadImage: failed to upload %s: %v", fileName, err)
		return "", err
	}
	return url, nil
}
