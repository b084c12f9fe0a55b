package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopcore/admin-service/internal/adapter/nats"
	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/platform/logger"
	"github.com/shopcore/admin-service/internal/repository"
)

const (
	natsSubjectPurchaseCompleted = "purchase.completed"
	natsSubjectCheckoutCompleted = "cart.checkout.completed"
)

type PurchaseParams struct {
	UserID     string
	PostalCode string
	ProductID  string
	Quantity   int
}

type PurchaseResult struct {
	Product *entity.Product `json:"product"`
	User    *entity.User    `json:"user"`
}

// CheckoutLine is the per-line outcome of a checkout. Failed lines carry
// the error; successful ones had their stock decrement persisted.
type CheckoutLine struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	Err       error  `json:"-"`
	Error     string `json:"error,omitempty"`
}

type CheckoutResult struct {
	Lines       []CheckoutLine `json:"lines"`
	TotalAmount float64        `json:"total_amount"`
	Failures    int            `json:"failures"`
}

type purchaseCompletedEvent struct {
	UserID      string  `json:"user_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type PurchaseService interface {
	// ProductsNearPostalCode lists the products whose zip matches the given
	// postal code case-insensitively.
	ProductsNearPostalCode(ctx context.Context, postalCode string) ([]entity.Product, error)
	Purchase(ctx context.Context, params PurchaseParams) (*PurchaseResult, error)
	Checkout(ctx context.Context, userID string) (*CheckoutResult, error)
}

type purchaseService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	session     repository.SessionStore
	publisher   nats.MessagePublisher
	log         logger.Logger
}

func NewPurchaseService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	session repository.SessionStore,
	publisher nats.MessagePublisher,
	log logger.Logger,
) PurchaseService {
	return &purchaseService{
		userRepo:    userRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		session:     session,
		publisher:   publisher,
		log:         log,
	}
}

func (s *purchaseService) ProductsNearPostalCode(ctx context.Context, postalCode string) ([]entity.Product, error) {
	if strings.TrimSpace(postalCode) == "" {
		return []entity.Product{}, nil
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]entity.Product, 0)
	for _, p := range products {
		if strings.EqualFold(p.Zip, postalCode) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Purchase runs the two-step buy workflow: persist the decremented product
// stock, then persist the buyer's merged purchase line. The two writes are
// independent; if the second fails after the first succeeded the
// inconsistency is surfaced as ErrPurchaseIncomplete, never compensated.
func (s *purchaseService) Purchase(ctx context.Context, params PurchaseParams) (*PurchaseResult, error) {
	s.log.Infof("Purchase requested: user=%s product=%s quantity=%d", params.UserID, params.ProductID, params.Quantity)

	if params.UserID == "" || params.ProductID == "" || strings.TrimSpace(params.PostalCode) == "" {
		return nil, fmt.Errorf("%w: user, postal code and product are required", ErrValidationFailed)
	}
	if params.Quantity <= 0 {
		return nil, fmt.Errorf("%w: purchase quantity must be positive", ErrValidationFailed)
	}

	user, err := s.userRepo.GetByID(ctx, params.UserID)
	if err != nil {
		s.log.Errorf("Purchase: failed to fetch user %s: %v", params.UserID, err)
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		s.log.Errorf("Purchase: failed to fetch product %s: %v", params.ProductID, err)
		return nil, err
	}

	if !strings.EqualFold(product.Zip, params.PostalCode) {
		return nil, fmt.Errorf("%w: product %q is not available near postal code %s", ErrValidationFailed, product.Title, params.PostalCode)
	}
	if !product.InStock() {
		s.log.Warnf("Purchase: product %s is out of stock", product.ID)
		return nil, fmt.Errorf("%w: product %q is out of stock", ErrValidationFailed, product.Title)
	}
	if params.Quantity > product.Quantity {
		return nil, fmt.Errorf("%w: only %d of %q in stock", ErrValidationFailed, product.Quantity, product.Title)
	}

	product.Quantity -= params.Quantity
	savedProduct, err := s.productRepo.Replace(ctx, product)
	if err != nil {
		s.log.Errorf("Purchase: failed to persist stock decrement for product %s: %v", product.ID, err)
		return nil, err
	}

	user.RecordPurchase(product.ID, product.Title, params.Quantity, product.Price)
	savedUser, err := s.userRepo.Replace(ctx, user)
	if err != nil {
		s.log.Errorf("Purchase: stock for product %s decremented but user %s update failed: %v", product.ID, user.ID, err)
		return nil, fmt.Errorf("%w: product %s, user %s: %v", ErrPurchaseIncomplete, product.ID, user.ID, err)
	}

	s.refreshSessionIfActive(ctx, savedUser)

	event := purchaseCompletedEvent{
		UserID:      savedUser.ID,
		ProductID:   savedProduct.ID,
		ProductName: savedProduct.Title,
		Quantity:    params.Quantity,
		Price:       savedProduct.Price,
	}
	if err := s.publisher.Publish(ctx, natsSubjectPurchaseCompleted, event); err != nil {
		s.log.Warnf("Purchase: failed to publish completion event: %v", err)
	}

	s.log.Infof("User %s purchased %d x %q (stock now %d)", savedUser.ID, params.Quantity, savedProduct.Title, savedProduct.Quantity)
	return &PurchaseResult{Product: savedProduct, User: savedUser}, nil
}

// Checkout issues an independent stock decrement for every cart line, all
// concurrently. Per-line failures are collected and reported; the cart is
// cleared regardless of the outcome.
func (s *purchaseService) Checkout(ctx context.Context, userID string) (*CheckoutResult, error) {
	s.log.Infof("Checkout requested for user %s", userID)

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidationFailed)
	}

	result := &CheckoutResult{
		Lines:       make([]CheckoutLine, len(cart.Items)),
		TotalAmount: cart.TotalAmount(),
	}

	var wg sync.WaitGroup
	for i, item := range cart.Items {
		wg.Add(1)
		go func(i int, item entity.CartItem) {
			defer wg.Done()
			line := CheckoutLine{ProductID: item.ProductID, Title: item.Title, Quantity: item.Quantity}
			line.Err = s.decrementStock(ctx, item.ProductID, item.Quantity)
			if line.Err != nil {
				line.Error = line.Err.Error()
			}
			result.Lines[i] = line
		}(i, item)
	}
	wg.Wait()

	for _, line := range result.Lines {
		if line.Err != nil {
			result.Failures++
		}
	}

	if err := s.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		s.log.Warnf("Checkout: failed to clear cart for user %s: %v", userID, err)
	}

	event := map[string]interface{}{
		"user_id":      userID,
		"total_amount": result.TotalAmount,
		"line_count":   len(result.Lines),
		"failures":     result.Failures,
	}
	if err := s.publisher.Publish(ctx, natsSubjectCheckoutCompleted, event); err != nil {
		s.log.Warnf("Checkout: failed to publish completion event: %v", err)
	}

	if result.Failures > 0 {
		s.log.Warnf("Checkout for user %s finished with %d of %d lines failed", userID, result.Failures, len(result.Lines))
	} else {
		s.log.Infof("Checkout for user %s completed, %d lines", userID, len(result.Lines))
	}
	return result, nil
}

func (s *purchaseService) decrementStock(ctx context.Context, productID string, quantity int) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}

	newQuantity := product.Quantity - quantity
	if newQuantity < 0 {
		s.log.Warnf("Checkout: decrement of %d exceeds stock %d for product %s, clamping to zero", quantity, product.Quantity, productID)
		newQuantity = 0
	}
	product.Quantity = newQuantity

	if _, err := s.productRepo.Replace(ctx, product); err != nil {
		return fmt.Errorf("failed to persist stock decrement for product %s: %w", productID, err)
	}
	return nil
}

func (s *purchaseService) refreshSessionIfActive(ctx context.Context, user *entity.User) {
	current, err := s.session.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warnf("Failed to load session snapshot: %v", err)
		}
		return
	}
	if current.ID != user.ID {
		return
	}
	if err := s.session.Save(ctx, user); err != nil {
		s.log.Warnf("Failed to refresh session snapshot for user %s: %v", user.ID, err)
	}
}
