package photos

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cat-photo-album/internal/domain/patch"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/photos", func(pr chi.Router) {
		pr.Post("/", createPhotoHandler(svc))
		pr.Patch("/{photoID}", updatePhotoHandler(svc))
		pr.Delete("/{photoID}", deletePhotoHandler(svc))
	})

	// Listado por gato; vive aquí porque devuelve fotos, no gatos.
	r.Get("/cats/{catID}/photos", listPhotosByCatHandler(svc))
}

type createPhotoRequest struct {
	CatID     string  `json:"cat_id"`
	URL       string  `json:"url"`
	Filename  string  `json:"filename"`
	FileSize  int64   `json:"file_size"`
	MimeType  string  `json:"mime_type"`
	Caption   *string `json:"caption"`
	IsPrimary bool    `json:"is_primary"`
}

type photoResponse struct {
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

// createPhotoHandler godoc
// @Summary  Adjuntar una foto a un gato
// @Tags     photos
// @Accept   json
// @Produce  json
// @Param    body body createPhotoRequest true "Metadata de la foto"
// @Success  201 {object} photoResponse
// @Failure  400 {string} string "input inválido"
// @Failure  404 {string} string "cat_id no existe"
// @Router   /photos [post]
func createPhotoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPhotoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			CatID:     req.CatID,
			URL:       req.URL,
			Filename:  req.Filename,
			FileSize:  req.FileSize,
			MimeType:  req.MimeType,
			Caption:   req.Caption,
			IsPrimary: req.IsPrimary,
		})
		if err != nil {
			writePhotoError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPhotoResponse(p))
	}
}

// updatePhotoHandler godoc
// @Summary  Actualizar caption o marcar como primaria
// @Tags     photos
// @Accept   json
// @Produce  json
// @Param    photoID path string true "ID de la foto"
// @Success  200 {object} photoResponse
// @Failure  404 {string} string "foto no existe"
// @Router   /photos/{photoID} [patch]
func updatePhotoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Decodificar a map primero para distinguir campo ausente de null.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		caption, err := patch.FromRaw[string](raw, "caption")
		if err != nil {
			http.Error(w, "caption must be a string or null", http.StatusBadRequest)
			return
		}
		isPrimary, err := patch.FromRaw[bool](raw, "is_primary")
		if err != nil {
			http.Error(w, "is_primary must be a boolean", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "photoID"), UpdateInput{
			Caption:   caption,
			IsPrimary: isPrimary,
		})
		if err != nil {
			writePhotoError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPhotoResponse(p))
	}
}

// deletePhotoHandler godoc
// @Summary  Borrar una foto
// @Tags     photos
// @Produce  json
// @Param    photoID path string true "ID de la foto"
// @Success  200 {object} deleteResponse "success=false si el id no existía"
// @Router   /photos/{photoID} [delete]
func deletePhotoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := svc.Delete(r.Context(), chi.URLParam(r, "photoID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Nunca 404: borrar un id inexistente es un no-op reportado como false.
		writeJSON(w, http.StatusOK, deleteResponse{Success: ok})
	}
}

// listPhotosByCatHandler godoc
// @Summary  Listar las fotos de un gato
// @Tags     photos
// @Produce  json
// @Param    catID path string true "ID del gato"
// @Success  200 {array} photoResponse
// @Router   /cats/{catID}/photos [get]
func listPhotosByCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByCat(r.Context(), chi.URLParam(r, "catID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]photoResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPhotoResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writePhotoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrCatNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPhotoResponse(p Photo) photoResponse {
	return photoResponse{
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

// writeJSON está duplicado a propósito en los handlers de cada módulo;
// ver el comentario en cats.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
