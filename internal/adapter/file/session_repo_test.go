package file

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/repository"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewSessionStore(path)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	user := &entity.User{ID: "1", Email: "jane@example.com", FullName: "Jane"}
	assert.NoError(t, store.Save(ctx, user))

	loaded, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, loaded.ID)
	assert.Equal(t, user.Email, loaded.Email)

	assert.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Clearing an already empty store is fine.
	assert.NoError(t, store.Clear(ctx))
}

func TestSessionStore_SaveNil(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	assert.Error(t, store.Save(context.Background(), nil))
}
