package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shopcore/admin-service/internal/domain/entity"
)

func TestCartRepository_RoundTrip(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	// Unknown users get a fresh empty cart, never an error.
	cart, err := repo.GetByUserID(ctx, "u1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = cart.AddItem(entity.CartItem{ProductID: "p1", Title: "Widget", Price: 10, Quantity: 2, Stock: 5})
	assert.NoError(t, err)
	assert.NoError(t, repo.Save(ctx, cart, time.Hour))

	loaded, err := repo.GetByUserID(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.Items[0].Quantity)

	assert.NoError(t, repo.DeleteByUserID(ctx, "u1"))
	cleared, err := repo.GetByUserID(ctx, "u1")
	assert.NoError(t, err)
	assert.Empty(t, cleared.Items)
}

func TestCartRepository_SaveDoesNotMutateInput(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	cart := entity.NewCart("u1")
	_, _ = cart.AddItem(entity.CartItem{ProductID: "p1", Quantity: 1, Stock: 5})
	before := cart.UpdatedAt

	assert.NoError(t, repo.Save(ctx, cart, time.Hour))
	assert.Equal(t, before, cart.UpdatedAt)

	cart.Items[0].Quantity = 99
	loaded, err := repo.GetByUserID(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, 1, loaded.Items[0].Quantity)
}

func TestCartRepository_ReturnsCopies(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	cart := entity.NewCart("u1")
	_, _ = cart.AddItem(entity.CartItem{ProductID: "p1", Quantity: 1, Stock: 5})
	assert.NoError(t, repo.Save(ctx, cart, time.Hour))

	first, _ := repo.GetByUserID(ctx, "u1")
	first.Items[0].Quantity = 99

	second, _ := repo.GetByUserID(ctx, "u1")
	assert.Equal(t, 1, second.Items[0].Quantity)
}
