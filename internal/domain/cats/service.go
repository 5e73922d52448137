package cats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"cat-photo-album/internal/domain/patch"
	"cat-photo-album/internal/domain/photos"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("cat not found")
	ErrUserNotFound = errors.New("user not found")
)

// UserDirectory valida que el dueño exista. Lo implementa users.Service;
// interfaz local para no acoplar módulos.
type UserDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// PhotoSource alimenta las vistas anidadas. Lo satisface photos.Repository.
type PhotoSource interface {
	ListByCat(ctx context.Context, catID string) ([]photos.Photo, error)
	ListByCats(ctx context.Context, catIDs []string) ([]photos.Photo, error)
}

type Service struct {
	repo   Repository
	users  UserDirectory
	photos PhotoSource
	now    func() time.Time
}

func NewService(repo Repository, users UserDirectory, photos PhotoSource) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		photos: photos,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name        string
	Breed       *string
	Age         *int
	Description *string
	UserID      string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Cat, error) {
	name := strings.TrimSpace(in.Name)
	if err := validName(name); err != nil {
		return Cat{}, err
	}
	if err := validAge(in.Age); err != nil {
		return Cat{}, err
	}
	if err := validDescription(in.Description); err != nil {
		return Cat{}, err
	}
	if strings.TrimSpace(in.UserID) == "" {
		return Cat{}, fmt.Errorf("user_id: %w", ErrInvalidInput)
	}

	ok, err := s.users.Exists(ctx, in.UserID)
	if err != nil {
		return Cat{}, err
	}
	if !ok {
		return Cat{}, fmt.Errorf("user %s: %w", in.UserID, ErrUserNotFound)
	}

	c := Cat{
		ID:          uuid.NewString(),
		Name:        name,
		Breed:       in.Breed,
		Age:         in.Age,
		Description: in.Description,
		UserID:      in.UserID,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Cat{}, err
	}
	return c, nil
}

type UpdateInput struct {
	Name        patch.Field[string]
	Breed       patch.Field[string]
	Age         patch.Field[int]
	Description patch.Field[string]
}

// Update aplica un PATCH parcial: un campo ausente conserva su valor,
// null explícito limpia los campos anulables. Sin campos presentes no
// se escribe nada y se devuelve la fila actual.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Cat, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Cat{}, err
	}

	if !in.Name.Present && !in.Breed.Present && !in.Age.Present && !in.Description.Present {
		return current, nil
	}

	if in.Name.Present {
		if in.Name.Value == nil {
			return Cat{}, fmt.Errorf("name cannot be null: %w", ErrInvalidInput)
		}
		name := strings.TrimSpace(*in.Name.Value)
		if err := validName(name); err != nil {
			return Cat{}, err
		}
		current.Name = name
	}
	if in.Breed.Present {
		current.Breed = in.Breed.Value
	}
	if in.Age.Present {
		if err := validAge(in.Age.Value); err != nil {
			return Cat{}, err
		}
		current.Age = in.Age.Value
	}
	if in.Description.Present {
		if err := validDescription(in.Description.Value); err != nil {
			return Cat{}, err
		}
		current.Description = in.Description.Value
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return Cat{}, err
	}
	return current, nil
}

// GetWithPhotos devuelve (nil, nil) si el gato no existe: un miss de
// lectura no es un error para el caller.
func (s *Service) GetWithPhotos(ctx context.Context, id string) (*CatWithPhotos, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ps, err := s.photos.ListByCat(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		ps = make([]photos.Photo, 0)
	}

	return &CatWithPhotos{Cat: c, Photos: ps}, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]CatWithPhotos, error) {
	cs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cs) == 0 {
		return []CatWithPhotos{}, nil
	}

	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
	}
	ps, err := s.photos.ListByCats(ctx, ids)
	if err != nil {
		return nil, err
	}

	return BuildViews(cs, ps), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Exists lo usa el módulo photos para validar cat_id sin ciclo de imports.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func validName(name string) error {
	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		return fmt.Errorf("name must be 1-100 chars: %w", ErrInvalidInput)
	}
	return nil
}

func validAge(age *int) error {
	if age != nil && (*age < 0 || *age > 30) {
		return fmt.Errorf("age must be between 0 and 30: %w", ErrInvalidInput)
	}
	return nil
}

func validDescription(d *string) error {
	if d != nil && utf8.RuneCountInString(*d) > 500 {
		return fmt.Errorf("description must be at most 500 chars: %w", ErrInvalidInput)
	}
	return nil
}
