package cats

import "context"

type Repository interface {
	// Create falla con ErrUserNotFound si UserID no existe.
	Create(ctx context.Context, c Cat) error
	GetByID(ctx context.Context, id string) (Cat, error)
	// ListByUser devuelve los gatos del dueño, created_at desc.
	ListByUser(ctx context.Context, userID string) ([]Cat, error)
	// Update reescribe los campos mutables (name, breed, age, description).
	// Falla con ErrNotFound si el gato no existe.
	Update(ctx context.Context, c Cat) error
	// Delete borra el gato y, en la misma operación atómica, todas sus
	// fotos (cascada). Falla con ErrNotFound si el gato no existe.
	Delete(ctx context.Context, id string) error
}
