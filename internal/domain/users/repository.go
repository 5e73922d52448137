package users

import "context"

type Repository interface {
	// Create falla con ErrConflict si username o email ya existen.
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
}
