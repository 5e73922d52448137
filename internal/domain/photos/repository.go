package photos

import "context"

// Repository persiste fotos. El contrato incluye el invariante de foto
// primaria: si Create o Update reciben IsPrimary=true, la implementación
// debe desmarcar las demás fotos del mismo gato dentro de la misma
// operación atómica: ningún lector puede observar dos primarias.
// IsPrimary=false nunca toca a las hermanas.
type Repository interface {
	// Create falla con ErrCatNotFound si CatID no existe.
	Create(ctx context.Context, p Photo) error
	GetByID(ctx context.Context, id string) (Photo, error)
	// Update reescribe los campos mutables (caption, is_primary).
	// Falla con ErrNotFound si la foto no existe.
	Update(ctx context.Context, p Photo) error
	// Delete es idempotente: borrar un id inexistente no es error,
	// devuelve false.
	Delete(ctx context.Context, id string) (bool, error)
	// ListByCat devuelve las fotos ya ordenadas (primaria primero,
	// luego created_at desc).
	ListByCat(ctx context.Context, catID string) ([]Photo, error)
	// ListByCats devuelve las filas planas de todos los gatos pedidos,
	// sin orden garantizado; el agrupado lo hace la proyección de cats.
	ListByCats(ctx context.Context, catIDs []string) ([]Photo, error)
}
