package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/repository"
)

const sessionKey = "session:current_user"

type sessionStore struct {
	client *redis.Client
}

// NewSessionStore keeps the current-user snapshot in redis, for deployments
// where the snapshot must survive process restarts on another host.
func NewSessionStore(client *redis.Client) repository.SessionStore {
	return &sessionStore{client: client}
}

func (s *sessionStore) Load(ctx context.Context) (*entity.User, error) {
	val, err := s.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session from redis: %w", err)
	}

	var user entity.User
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session snapshot: %w", err)
	}
	return &user, nil
}

func (s *sessionStore) Save(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("cannot save nil session user")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

func (s *sessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("failed to clear session in redis: %w", err)
	}
	return nil
}
