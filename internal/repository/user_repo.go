package repository

import (
	"context"

	"github.com/shopcore/admin-service/internal/domain/entity"
)

// UserRepository mirrors the backend /users collection. Replace is a
// full-record overwrite; callers must send the complete merged record.
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) ([]entity.User, error)
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Replace(ctx context.Context, user *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
