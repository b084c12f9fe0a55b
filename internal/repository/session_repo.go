package repository

import (
	"context"

	"github.com/shopcore/admin-service/internal/domain/entity"
)

// SessionStore is the durable snapshot of the currently authenticated user.
// It is the single source of truth for the active session: written on login
// and on updates of the active user, cleared on logout. Load returns
// ErrNotFound when no session is stored.
type SessionStore interface {
	Load(ctx context.Context) (*entity.User, error)
	Save(ctx context.Context, user *entity.User) error
	Clear(ctx context.Context) error
}
