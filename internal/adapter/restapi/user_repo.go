package restapi

import (
	"context"
	"fmt"
	"time"

	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/repository"
)

const usersCollection = "users"

type userRepository struct {
	client *Client
}

func NewUserRepository(baseURL string, timeout time.Duration) repository.UserRepository {
	return &userRepository{
		client: NewClient(baseURL, usersCollection, timeout),
	}
}

func (r *userRepository) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.client.List(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.client.Get(ctx, id, &user); err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) ([]entity.User, error) {
	var users []entity.User
	if err := r.client.FilterByField(ctx, "email", email, &users); err != nil {
		return nil, fmt.Errorf("failed to find users by email: %w", err)
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	var saved entity.User
	if err := r.client.Create(ctx, user, &saved); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &saved, nil
}

func (r *userRepository) Replace(ctx context.Context, user *entity.User) (*entity.User, error) {
	var saved entity.User
	if err := r.client.Replace(ctx, user.ID, user, &saved); err != nil {
		return nil, fmt.Errorf("failed to replace user %s: %w", user.ID, err)
	}
	return &saved, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}
