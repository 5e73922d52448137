package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cat-photo-album/internal/domain/cats"
)

type catRepo struct {
	s *Store
}

func (r *catRepo) Create(ctx context.Context, c cats.Cat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("cat id required")
	}
	if _, exists := r.s.catsByID[c.ID]; exists {
		return errors.New("cat already exists")
	}
	// FK defensiva: el service ya valida, el store rechaza igual.
	if _, ok := r.s.users[c.UserID]; !ok {
		return fmt.Errorf("user %s: %w", c.UserID, cats.ErrUserNotFound)
	}

	r.s.catsByID[c.ID] = c
	return nil
}

func (r *catRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.catsByID[id]
	if !ok {
		return cats.Cat{}, fmt.Errorf("cat %s: %w", id, cats.ErrNotFound)
	}
	return c, nil
}

func (r *catRepo) ListByUser(ctx context.Context, userID string) ([]cats.Cat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]cats.Cat, 0)
	for _, c := range r.s.catsByID {
		if c.UserID == userID {
			out = append(out, c)
		}
	}

	// created_at desc: el más reciente primero.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *catRepo) Update(ctx context.Context, c cats.Cat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.catsByID[c.ID]
	if !ok {
		return fmt.Errorf("cat %s: %w", c.ID, cats.ErrNotFound)
	}

	// UserID y CreatedAt son inmutables; se conservan los almacenados.
	c.UserID = current.UserID
	c.CreatedAt = current.CreatedAt
	r.s.catsByID[c.ID] = c
	return nil
}

func (r *catRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.catsByID[id]; !ok {
		return fmt.Errorf("cat %s: %w", id, cats.ErrNotFound)
	}

	delete(r.s.catsByID, id)
	// Cascada bajo el mismo lock: ninguna foto sobrevive a su gato.
	for pid, p := range r.s.photosByID {
		if p.CatID == id {
			delete(r.s.photosByID, pid)
		}
	}
	return nil
}
