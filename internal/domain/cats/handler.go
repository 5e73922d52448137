package cats

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cat-photo-album/internal/domain/patch"
	"cat-photo-album/internal/domain/photos"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/cats", func(cr chi.Router) {
		cr.Post("/", createCatHandler(svc))
		cr.Get("/{catID}", getCatHandler(svc))
		cr.Patch("/{catID}", updateCatHandler(svc))
		cr.Delete("/{catID}", deleteCatHandler(svc))
	})

	r.Get("/users/{userID}/cats", listCatsByUserHandler(svc))
}

type createCatRequest struct {
	Name        string  `json:"name"`
	Breed       *string `json:"breed"`
	Age         *int    `json:"age"`
	Description *string `json:"description"`
	UserID      string  `json:"user_id"`
}

type catResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Breed       *string   `json:"breed"`
	Age         *int      `json:"age"`
	Description *string   `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type catWithPhotosResponse struct {
	catResponse
	Photos []photoItem `json:"photos"`
}

// photoItem replica la forma JSON de photos.photoResponse; cada módulo
// serializa sus propias respuestas (mismo criterio que writeJSON).
type photoItem struct {
	ID        string    `json:"id"`
	CatID     string    `json:"cat_id"`
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	FileSize  int64     `json:"file_size"`
	MimeType  string    `json:"mime_type"`
	Caption   *string   `json:"caption"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

// createCatHandler godoc
// @Summary  Registrar un gato para un usuario
// @Tags     cats
// @Accept   json
// @Produce  json
// @Param    body body createCatRequest true "Perfil del gato"
// @Success  201 {object} catResponse
// @Failure  400 {string} string "input inválido"
// @Failure  404 {string} string "user_id no existe"
// @Router   /cats [post]
func createCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Age:         req.Age,
			Description: req.Description,
			UserID:      req.UserID,
		})
		if err != nil {
			writeCatError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toCatResponse(c))
	}
}

// getCatHandler godoc
// @Summary  Obtener un gato con sus fotos
// @Tags     cats
// @Produce  json
// @Param    catID path string true "ID del gato"
// @Success  200 {object} catWithPhotosResponse "null si el gato no existe"
// @Router   /cats/{catID} [get]
func getCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.GetWithPhotos(r.Context(), chi.URLParam(r, "catID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Un miss no es error: el body es el literal null, status 200.
		if view == nil {
			writeJSON(w, http.StatusOK, nil)
			return
		}

		writeJSON(w, http.StatusOK, toCatWithPhotosResponse(*view))
	}
}

// updateCatHandler godoc
// @Summary  Actualizar parcialmente un gato
// @Tags     cats
// @Accept   json
// @Produce  json
// @Param    catID path string true "ID del gato"
// @Success  200 {object} catResponse
// @Failure  404 {string} string "gato no existe"
// @Router   /cats/{catID} [patch]
func updateCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Decodificar a map primero para distinguir campo ausente de null.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var in UpdateInput
		var err error
		if in.Name, err = patch.FromRaw[string](raw, "name"); err != nil {
			http.Error(w, "name must be a string", http.StatusBadRequest)
			return
		}
		if in.Breed, err = patch.FromRaw[string](raw, "breed"); err != nil {
			http.Error(w, "breed must be a string or null", http.StatusBadRequest)
			return
		}
		if in.Age, err = patch.FromRaw[int](raw, "age"); err != nil {
			http.Error(w, "age must be an integer or null", http.StatusBadRequest)
			return
		}
		if in.Description, err = patch.FromRaw[string](raw, "description"); err != nil {
			http.Error(w, "description must be a string or null", http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), chi.URLParam(r, "catID"), in)
		if err != nil {
			writeCatError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toCatResponse(c))
	}
}

// deleteCatHandler godoc
// @Summary  Borrar un gato y sus fotos (cascada)
// @Tags     cats
// @Produce  json
// @Param    catID path string true "ID del gato"
// @Success  200 {object} deleteResponse
// @Failure  404 {string} string "gato no existe"
// @Router   /cats/{catID} [delete]
func deleteCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "catID")); err != nil {
			writeCatError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, deleteResponse{Success: true})
	}
}

// listCatsByUserHandler godoc
// @Summary  Listar los gatos de un usuario con sus fotos
// @Tags     cats
// @Produce  json
// @Param    userID path string true "ID del usuario"
// @Success  200 {array} catWithPhotosResponse
// @Router   /users/{userID}/cats [get]
func listCatsByUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.ListByUser(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]catWithPhotosResponse, 0, len(views))
		for _, v := range views {
			out = append(out, toCatWithPhotosResponse(v))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writeCatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toCatResponse(c Cat) catResponse {
	return catResponse{
		ID:          c.ID,
		Name:        c.Name,
		Breed:       c.Breed,
		Age:         c.Age,
		Description: c.Description,
		UserID:      c.UserID,
		CreatedAt:   c.CreatedAt,
	}
}

func toCatWithPhotosResponse(v CatWithPhotos) catWithPhotosResponse {
	out := catWithPhotosResponse{
		catResponse: toCatResponse(v.Cat),
		Photos:      make([]photoItem, 0, len(v.Photos)),
	}
	for _, p := range v.Photos {
		out.Photos = append(out.Photos, toPhotoItem(p))
	}
	return out
}

func toPhotoItem(p photos.Photo) photoItem {
	return photoItem{
		ID:        p.ID,
		CatID:     p.CatID,
		URL:       p.URL,
		Filename:  p.Filename,
		FileSize:  p.FileSize,
		MimeType:  p.MimeType,
		Caption:   p.Caption,
		IsPrimary: p.IsPrimary,
		CreatedAt: p.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en los handlers de cada módulo
// (users/cats/photos) para no crear un paquete de helpers HTTP compartido
// por solo cinco líneas.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
