package photos

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"cat-photo-album/internal/domain/patch"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("photo not found")
	ErrCatNotFound  = errors.New("cat not found")
)

// CatDirectory valida que el gato referenciado exista. Lo implementa
// cats.Service; es una interfaz local para no crear un ciclo de imports
// (cats ya importa photos por la vista anidada).
type CatDirectory interface {
	Exists(ctx context.Context, catID string) (bool, error)
}

type Service struct {
	repo Repository
	cats CatDirectory
	now  func() time.Time
}

func NewService(repo Repository, cats CatDirectory) *Service {
	return &Service{
		repo: repo,
		cats: cats,
		now:  time.Now,
	}
}

type CreateInput struct {
	CatID     string
	URL       string
	Filename  string
	FileSize  int64
	MimeType  string
	Caption   *string
	IsPrimary bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Photo, error) {
	if strings.TrimSpace(in.CatID) == "" {
		return Photo{}, fmt.Errorf("cat_id: %w", ErrInvalidInput)
	}
	if _, err := url.ParseRequestURI(in.URL); err != nil {
		return Photo{}, fmt.Errorf("url: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Filename) == "" {
		return Photo{}, fmt.Errorf("filename: %w", ErrInvalidInput)
	}
	if in.FileSize <= 0 {
		return Photo{}, fmt.Errorf("file_size must be positive: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(in.MimeType) == "" {
		return Photo{}, fmt.Errorf("mime_type: %w", ErrInvalidInput)
	}
	if err := validCaption(in.Caption); err != nil {
		return Photo{}, err
	}

	ok, err := s.cats.Exists(ctx, in.CatID)
	if err != nil {
		return Photo{}, err
	}
	if !ok {
		return Photo{}, fmt.Errorf("cat %s: %w", in.CatID, ErrCatNotFound)
	}

	p := Photo{
		ID:        uuid.NewString(),
		CatID:     in.CatID,
		URL:       in.URL,
		Filename:  in.Filename,
		FileSize:  in.FileSize,
		MimeType:  in.MimeType,
		Caption:   in.Caption,
		IsPrimary: in.IsPrimary,
		CreatedAt: s.now(),
	}

	// El repo desmarca a las hermanas si IsPrimary viene en true.
	if err := s.repo.Create(ctx, p); err != nil {
		return Photo{}, err
	}
	return p, nil
}

type UpdateInput struct {
	Caption   patch.Field[string]
	IsPrimary patch.Field[bool]
}

// Update aplica un PATCH parcial: solo los campos presentes cambian.
// El cat_id se resuelve desde la foto ya almacenada, nunca del input.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Photo, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Photo{}, err
	}

	if !in.Caption.Present && !in.IsPrimary.Present {
		// Nada que actualizar: devolver la foto tal cual, sin escribir.
		return current, nil
	}

	if in.Caption.Present {
		if err := validCaption(in.Caption.Value); err != nil {
			return Photo{}, err
		}
		current.Caption = in.Caption.Value
	}
	if in.IsPrimary.Present {
		if in.IsPrimary.Value == nil {
			return Photo{}, fmt.Errorf("is_primary cannot be null: %w", ErrInvalidInput)
		}
		current.IsPrimary = *in.IsPrimary.Value
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return Photo{}, err
	}
	return current, nil
}

// Delete devuelve false (sin error) si el id no existía. La asimetría con
// el borrado de gatos es deliberada: borrar un gato inexistente sí falla.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByCat(ctx context.Context, catID string) ([]Photo, error) {
	return s.repo.ListByCat(ctx, catID)
}

func validCaption(c *string) error {
	if c != nil && utf8.RuneCountInString(*c) > 200 {
		return fmt.Errorf("caption must be at most 200 chars: %w", ErrInvalidInput)
	}
	return nil
}
