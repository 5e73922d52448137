package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cat-photo-album/internal/domain/users"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.s.users[u.ID]; exists {
		return errors.New("user already exists")
	}
	if _, taken := r.s.byUsername[u.Username]; taken {
		return fmt.Errorf("username %q: %w", u.Username, users.ErrConflict)
	}
	if _, taken := r.s.byEmail[u.Email]; taken {
		return fmt.Errorf("email %q: %w", u.Email, users.ErrConflict)
	}

	r.s.users[u.ID] = u
	r.s.byUsername[u.Username] = u.ID
	r.s.byEmail[u.Email] = u.ID
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, fmt.Errorf("user %s: %w", id, users.ErrNotFound)
	}
	return u, nil
}
