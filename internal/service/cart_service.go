package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/platform/logger"
	"github.com/shopcore/admin-service/internal/repository"
)

const defaultCartTTL = 24 * time.Hour

type CartService interface {
	GetCart(ctx context.Context, userID string) (*entity.Cart, error)
	// AddItem puts quantity units of a product into the cart, capturing the
	// product's current stock as the line's snapshot. The returned bool
	// reports whether the resulting quantity was clamped to the snapshot.
	AddItem(ctx context.Context, userID, productID string, quantity int) (*entity.Cart, bool, error)
	UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*entity.Cart, bool, error)
	RemoveItem(ctx context.Context, userID, productID string) (*entity.Cart, error)
	ClearCart(ctx context.Context, userID string) error
	AckNewItem(ctx context.Context, userID string) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	log         logger.Logger
	cartTTL     time.Duration
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	log logger.Logger,
	cartTTL time.Duration,
) CartService {
	if cartTTL <= 0 {
		cartTTL = defaultCartTTL
	}
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		log:         log,
		cartTTL:     cartTTL,
	}
}

func (s *cartService) GetCart(ctx context.Context, userID string) (*entity.Cart, error) {
	return s.cartRepo.GetByUserID(ctx, userID)
}

func (s *cartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*entity.Cart, bool, error) {
	s.log.Infof("Adding item to cart: UserID=%s ProductID=%s Quantity=%d", userID, productID, quantity)
	if quantity <= 0 {
		return nil, false, fmt.Errorf("%w: cart quantity must be positive", ErrValidationFailed)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.log.Errorf("AddItem: failed to fetch product %s: %v", productID, err)
		return nil, false, err
	}
	if !product.InStock() {
		return nil, false, fmt.Errorf("%w: product %q is out of stock", ErrValidationFailed, product.Title)
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("could not retrieve cart: %w", err)
	}

	item := entity.CartItem{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  quantity,
		Stock:     product.Quantity,
	}
	clamped, err := cart.AddItem(item)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	if err := s.cartRepo.Save(ctx, cart, s.cartTTL); err != nil {
		return nil, false, fmt.Errorf("could not save cart: %w", err)
	}
	if clamped {
		s.log.Warnf("AddItem: quantity for product %s clamped to stock snapshot", productID)
	}
	return cart, clamped, nil
}

func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*entity.Cart, bool, error) {
	s.log.Infof("Updating cart quantity: UserID=%s ProductID=%s Quantity=%d", userID, productID, quantity)
	if quantity <= 0 {
		return nil, false, fmt.Errorf("%w: cart quantity must be positive", ErrValidationFailed)
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("could not retrieve cart: %w", err)
	}
	if item, _ := cart.GetItem(productID); item == nil {
		return nil, false, fmt.Errorf("%w: product %s is not in the cart", repository.ErrNotFound, productID)
	}

	clamped, err := cart.UpdateItemQuantity(productID, quantity)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	if err := s.cartRepo.Save(ctx, cart, s.cartTTL); err != nil {
		return nil, false, fmt.Errorf("could not save cart: %w", err)
	}
	if clamped {
		s.log.Warnf("UpdateItemQuantity: quantity for product %s clamped to stock snapshot", productID)
	}
	return cart, clamped, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID string) (*entity.Cart, error) {
	s.log.Infof("Removing item from cart: UserID=%s ProductID=%s", userID, productID)

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	if err := cart.RemoveItem(productID); err != nil {
		return nil, fmt.Errorf("%w: product %s is not in the cart", repository.ErrNotFound, productID)
	}
	if err := s.cartRepo.Save(ctx, cart, s.cartTTL); err != nil {
		return nil, fmt.Errorf("could not save cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID string) error {
	s.log.Infof("Clearing cart for user %s", userID)
	if err := s.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("could not clear cart: %w", err)
	}
	return nil
}

func (s *cartService) AckNewItem(ctx context.Context, userID string) error {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not retrieve cart: %w", err)
	}
	cart.AckNewItem()
	if err := s.cartRepo.Save(ctx, cart, s.cartTTL); err != nil {
		return fmt.Errorf("could not save cart: %w", err)
	}
	return nil
}
