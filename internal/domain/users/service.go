package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrConflict     = errors.New("already exists")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RegisterInput struct {
	Username    string
	Email       string
	DisplayName *string
	AvatarURL   *string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	username := strings.TrimSpace(in.Username)
	if n := utf8.RuneCountInString(username); n < 3 || n > 50 {
		return User{}, fmt.Errorf("username must be 3-50 chars: %w", ErrInvalidInput)
	}

	email := strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, fmt.Errorf("email: %w", ErrInvalidInput)
	}

	if in.AvatarURL != nil {
		if _, err := url.ParseRequestURI(*in.AvatarURL); err != nil {
			return User{}, fmt.Errorf("avatar_url: %w", ErrInvalidInput)
		}
	}

	u := User{
		ID:          uuid.NewString(),
		Username:    username,
		Email:       email,
		DisplayName: in.DisplayName,
		AvatarURL:   in.AvatarURL,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// Exists lo usa el módulo cats para validar user_id sin crear un ciclo
// de imports entre módulos.
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
