package photos

import (
	"sort"
	"time"
)

// Photo es el registro de una foto adjunta a un gato. Solo se persiste
// la URL y la metadata; los bytes nunca pasan por este servicio.
type Photo struct {
	ID    string
	CatID string

	URL      string
	Filename string
	FileSize int64
	MimeType string
	Caption  *string

	// Como mucho una foto por gato puede tener IsPrimary=true.
	IsPrimary bool

	CreatedAt time.Time
}

// SortForListing ordena fotos para los listados: la primaria primero,
// el resto por created_at desc. Es la regla única de orden para todas
// las lecturas (también la vista anidada de cats usa esta función).
func SortForListing(ps []Photo) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].IsPrimary != ps[j].IsPrimary {
			return ps[i].IsPrimary
		}
		return ps[i].CreatedAt.After(ps[j].CreatedAt)
	})
}
