package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cat-photo-album/internal/domain/photos"
)

type photoRepo struct {
	s *Store
}

func (r *photoRepo) Create(ctx context.Context, p photos.Photo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("photo id required")
	}
	if _, exists := r.s.photosByID[p.ID]; exists {
		return errors.New("photo already exists")
	}
	if _, ok := r.s.catsByID[p.CatID]; !ok {
		return fmt.Errorf("cat %s: %w", p.CatID, photos.ErrCatNotFound)
	}

	if p.IsPrimary {
		r.clearPrimaryLocked(p.CatID, p.ID)
	}
	r.s.photosByID[p.ID] = p
	return nil
}

func (r *photoRepo) GetByID(ctx context.Context, id string) (photos.Photo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.photosByID[id]
	if !ok {
		return photos.Photo{}, fmt.Errorf("photo %s: %w", id, photos.ErrNotFound)
	}
	return p, nil
}

func (r *photoRepo) Update(ctx context.Context, p photos.Photo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.photosByID[p.ID]
	if !ok {
		return fmt.Errorf("photo %s: %w", p.ID, photos.ErrNotFound)
	}

	// Mismo contrato que el adapter de postgres: solo caption e
	// is_primary son mutables, el resto de la fila se conserva.
	current.Caption = p.Caption
	current.IsPrimary = p.IsPrimary

	if current.IsPrimary {
		r.clearPrimaryLocked(current.CatID, current.ID)
	}
	r.s.photosByID[current.ID] = current
	return nil
}

func (r *photoRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.photosByID[id]; !ok {
		return false, nil
	}
	delete(r.s.photosByID, id)
	return true, nil
}

func (r *photoRepo) ListByCat(ctx context.Context, catID string) ([]photos.Photo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]photos.Photo, 0)
	for _, p := range r.s.photosByID {
		if p.CatID == catID {
			out = append(out, p)
		}
	}

	photos.SortForListing(out)
	return out, nil
}

func (r *photoRepo) ListByCats(ctx context.Context, catIDs []string) ([]photos.Photo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	want := make(map[string]struct{}, len(catIDs))
	for _, id := range catIDs {
		want[id] = struct{}{}
	}

	out := make([]photos.Photo, 0)
	for _, p := range r.s.photosByID {
		if _, ok := want[p.CatID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// clearPrimaryLocked desmarca las demás fotos del gato. Requiere el lock
// de escritura tomado: junto con la escritura posterior forma el
// clear-then-set atómico del invariante.
func (r *photoRepo) clearPrimaryLocked(catID, exceptID string) {
	for id, p := range r.s.photosByID {
		if p.CatID == catID && p.IsPrimary && id != exceptID {
			p.IsPrimary = false
			r.s.photosByID[id] = p
		}
	}
}
