package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/repository"
)

// cartRepository keeps carts in process memory. Carts are ephemeral and
// reset on restart; the TTL argument is accepted for interface parity but
// ignored.
type cartRepository struct {
	mu    sync.RWMutex
	carts map[string]*entity.Cart
}

func NewCartRepository() repository.CartRepository {
	return &cartRepository{carts: make(map[string]*entity.Cart)}
}

func (r *cartRepository) GetByUserID(_ context.Context, userID string) (*entity.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return entity.NewCart(userID), nil
	}
	copied := *cart
	copied.Items = append([]entity.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (r *cartRepository) Save(_ context.Context, cart *entity.Cart, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *cart
	copied.Items = append([]entity.CartItem(nil), cart.Items...)
	copied.UpdatedAt = time.Now().UTC()
	r.carts[cart.UserID] = &copied
	return nil
}

func (r *cartRepository) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
