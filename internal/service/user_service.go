package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopcore/admin-service/internal/adapter/nats"
	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/platform/logger"
	"github.com/shopcore/admin-service/internal/repository"
)

const (
	natsSubjectPurchaseReversed = "purchase.reversed"
	natsSubjectUserDeleted      = "user.deleted"
)

// Receipt aggregates a user's purchase history for display.
type Receipt struct {
	UserID        string               `json:"user_id"`
	FullName      string               `json:"full_name"`
	Address       string               `json:"address"`
	Lines         []entity.PurchaseLine `json:"lines"`
	TotalQuantity int                  `json:"total_quantity"`
	TotalAmount   float64              `json:"total_amount"`
}

type purchaseReversedEvent struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UserService interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	UpdateUser(ctx context.Context, updated *entity.User) (*entity.User, error)
	RemovePurchaseLine(ctx context.Context, userID, productID string, quantity int) (*entity.User, error)
	DeleteUser(ctx context.Context, id string) error
	Receipt(ctx context.Context, userID string) (*Receipt, error)
}

type userService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	session     repository.SessionStore
	publisher   nats.MessagePublisher
	log         logger.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	session repository.SessionStore,
	publisher nats.MessagePublisher,
	log logger.Logger,
) UserService {
	return &userService{
		userRepo:    userRepo,
		productRepo: productRepo,
		session:     session,
		publisher:   publisher,
		log:         log,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// restoreStock adds quantity back onto the product's stock. A missing
// product is skipped silently; other failures are logged and reported so
// callers can decide whether to continue.
func (s *userService) restoreStock(ctx context.Context, productID string, quantity int) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Debugf("Stock restoration: product %s no longer exists, skipping", productID)
			return nil
		}
		return fmt.Errorf("failed to fetch product %s for stock restoration: %w", productID, err)
	}

	product.Quantity += quantity
	if _, err := s.productRepo.Replace(ctx, product); err != nil {
		return fmt.Errorf("failed to restore %d units onto product %s: %w", quantity, productID, err)
	}
	s.log.Infof("Restored %d units onto product %s (stock now %d)", quantity, productID, product.Quantity)
	return nil
}

// refreshSessionIfActive rewrites the session snapshot when the given user
// is the currently active one, keeping the durable copy in step.
func (s *userService) refreshSessionIfActive(ctx context.Context, user *entity.User) {
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

// UpdateUser persists a full-record user update. Purchase lines present in
// the stored record but absent from the update are treated as purchase
// reversals: their quantity is restored onto the product before the user is
// overwritten. Restoration is best-effort; a failed restoration is logged
// and the user update still proceeds.
func (s *userService) UpdateUser(ctx context.Context, updated *entity.User) (*entity.User, error) {
	if updated == nil || updated.ID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidationFailed)
	}
	s.log.Infof("Updating user %s", updated.ID)

	old, err := s.userRepo.GetByID(ctx, updated.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		s.log.Warnf("UpdateUser: could not fetch stored record for %s, skipping stock reconciliation: %v", updated.ID, err)
		old = nil
	}

	for _, removed := range entity.RemovedPurchaseLines(old, updated) {
		if err := s.restoreStock(ctx, removed.ProductID, removed.Quantity); err != nil {
			s.log.Warnf("UpdateUser: %v", err)
			continue
		}
		s.publishReversal(ctx, updated.ID, removed.ProductID, removed.Quantity)
	}

	updated.Address = updated.JoinAddress()
	saved, err := s.userRepo.Replace(ctx, updated)
	if err != nil {
		s.log.Errorf("UpdateUser: failed to persist user %s: %v", updated.ID, err)
		return nil, err
	}

	s.refreshSessionIfActive(ctx, saved)
	s.log.Infof("User %s updated", saved.ID)
	return saved, nil
}

// RemovePurchaseLine takes quantity units off a user's purchase line and
// restores them onto the product's stock. The line is dropped entirely when
// its quantity reaches zero.
func (s *userService) RemovePurchaseLine(ctx context.Context, userID, productID string, quantity int) (*entity.User, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity to remove must be positive", ErrValidationFailed)
	}
	s.log.Infof("Removing %d units of product %s from user %s purchase history", quantity, productID, userID)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	line := user.PurchaseLineFor(productID)
	if line == nil {
		return nil, fmt.Errorf("%w: user %s has no purchase line for product %s", repository.ErrNotFound, userID, productID)
	}
	if quantity > line.Quantity {
		return nil, fmt.Errorf("%w: only %d units available to remove", ErrValidationFailed, line.Quantity)
	}

	if err := s.restoreStock(ctx, productID, quantity); err != nil {
		s.log.Warnf("RemovePurchaseLine: %v", err)
	}

	user.RemovePurchaseUnits(productID, quantity)
	saved, err := s.userRepo.Replace(ctx, user)
	if err != nil {
		s.log.Errorf("RemovePurchaseLine: failed to persist user %s: %v", userID, err)
		return nil, err
	}

	s.refreshSessionIfActive(ctx, saved)
	s.publishReversal(ctx, userID, productID, quantity)
	return saved, nil
}

// DeleteUser restores the stock of every product in the user's purchase
// history, then deletes the user record. Products that no longer exist are
// skipped silently.
func (s *userService) DeleteUser(ctx context.Context, id string) error {
	s.log.Infof("Deleting user %s", id)

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, line := range user.PurchasedLines {
		if err := s.restoreStock(ctx, line.ProductID, line.Quantity); err != nil {
			s.log.Warnf("DeleteUser: %v", err)
		}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		s.log.Errorf("DeleteUser: failed to delete user %s: %v", id, err)
		return err
	}

	if err := s.publisher.Publish(ctx, natsSubjectUserDeleted, map[string]string{"user_id": id}); err != nil {
		s.log.Warnf("DeleteUser: failed to publish event for user %s: %v", id, err)
	}

	s.log.Infof("User %s deleted, %d purchase lines reconciled", id, len(user.PurchasedLines))
	return nil
}

func (s *userService) Receipt(ctx context.Context, userID string) (*Receipt, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Receipt{
		UserID:        user.ID,
		FullName:      user.FullName,
		Address:       user.JoinAddress(),
		Lines:         user.PurchasedLines,
		TotalQuantity: user.TotalPurchasedQuantity(),
		TotalAmount:   user.TotalPurchasedAmount(),
	}, nil
}

func (s *userService) publishReversal(ctx context.Context, userID, productID string, quantity int) {
	event := purchaseReversedEvent{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := s.publisher.Publish(ctx, natsSubjectPurchaseReversed, event); err != nil {
		s.log.Warnf("Failed to publish purchase reversal for user %s product %s: %v", userID, productID, err)
	}
}
