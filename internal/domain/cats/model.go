package cats

import (
	"time"

	"cat-photo-album/internal/domain/photos"
)

// Cat es el perfil de un gato. UserID es una back-reference inmutable:
// un gato no se puede reasignar a otro dueño vía update.
type Cat struct {
	ID   string
	Name string

	// Opcionales (nil = sin valor).
	Breed       *string
	Age         *int
	Description *string

	UserID    string
	CreatedAt time.Time
}

// CatWithPhotos es la vista anidada gato → fotos que consumen las lecturas.
// Photos nunca es nil: un gato sin fotos lleva slice vacío.
type CatWithPhotos struct {
	Cat
	Photos []photos.Photo
}
