package memory

import (
	"sync"

	"cat-photo-album/internal/domain/cats"
	"cat-photo-album/internal/domain/photos"
	"cat-photo-album/internal/domain/users"
)

// Store es el almacén en memoria compartido por los tres repos (dev y tests).
// Un único RWMutex para todo el store: el borrado en cascada y los chequeos
// de FK necesitan atomicidad entre mapas, y el mismo lock serializa el
// clear-then-set de la foto primaria, así que nunca hay ventana con dos
// primarias visibles para el mismo gato.
type Store struct {
	mu sync.RWMutex

	users      map[string]users.User
	byUsername map[string]string // username -> user id
	byEmail    map[string]string // email -> user id
	catsByID   map[string]cats.Cat
	photosByID map[string]photos.Photo
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]users.User),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
		catsByID:   make(map[string]cats.Cat),
		photosByID: make(map[string]photos.Photo),
	}
}

func (s *Store) Users() users.Repository {
	return &userRepo{s: s}
}

func (s *Store) Cats() cats.Repository {
	return &catRepo{s: s}
}

func (s *Store) Photos() photos.Repository {
	return &photoRepo{s: s}
}
