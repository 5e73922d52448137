package cats

import (
	"sort"

	"cat-photo-album/internal/domain/photos"
)

// BuildViews agrupa filas planas (gatos + las fotos de esos gatos, el
// equivalente a un left join) en vistas anidadas:
//   - cada gato aparece exactamente una vez, con slice vacío si no tiene fotos
//   - gatos ordenados por created_at desc
//   - fotos de cada gato re-ordenadas explícitamente (primaria primero,
//     created_at desc), sin depender del orden de escaneo del store
//
// Fotos cuyo cat_id no esté entre los gatos pedidos se ignoran.
func BuildViews(cs []Cat, ps []photos.Photo) []CatWithPhotos {
	out := make([]CatWithPhotos, 0, len(cs))
	index := make(map[string]int, len(cs))

	for _, c := range cs {
		index[c.ID] = len(out)
		out = append(out, CatWithPhotos{
			Cat:    c,
			Photos: make([]photos.Photo, 0),
		})
	}

	for _, p := range ps {
		i, ok := index[p.CatID]
		if !ok {
			continue
		}
		out[i].Photos = append(out[i].Photos, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	for i := range out {
		photos.SortForListing(out[i].Photos)
	}

	return out
}
