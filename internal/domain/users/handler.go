package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/users", createUserHandler(svc))
	r.Get("/users/{userID}", getUserHandler(svc))
}

type createUserRequest struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// createUserHandler godoc
// @Summary  Registrar un usuario
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body createUserRequest true "Datos de registro"
// @Success  201 {object} userResponse
// @Failure  400 {string} string "input inválido"
// @Failure  409 {string} string "username o email ya registrados"
// @Router   /users [post]
func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Username:    req.Username,
			Email:       req.Email,
			DisplayName: req.DisplayName,
			AvatarURL:   req.AvatarURL,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrConflict):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

// getUserHandler godoc
// @Summary  Obtener un usuario
// @Tags     users
// @Produce  json
// @Param    userID path string true "ID del usuario"
// @Success  200 {object} userResponse
// @Failure  404 {string} string "usuario no existe"
// @Router   /users/{userID} [get]
func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (users/cats/photos); ver el comentario equivalente en cats.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
