package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/repository"
)

// sessionStore persists the current-user snapshot as a single JSON file,
// read at process start and rewritten on login/update, removed on logout.
type sessionStore struct {
	mu   sync.Mutex
	path string
}

func NewSessionStore(path string) repository.SessionStore {
	return &sessionStore{path: path}
}

func (s *sessionStore) Load(_ context.Context) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read session file %s: %w", s.path, err)
	}

	var user entity.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session file %s: %w", s.path, err)
	}
	return &user, nil
}

func (s *sessionStore) Save(_ context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("cannot save nil session user")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session file %s: %w", s.path, err)
	}
	return nil
}

func (s *sessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file %s: %w", s.path, err)
	}
	return nil
}
