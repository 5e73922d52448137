package users

import "time"

// User es una cuenta registrada. Se crea una sola vez vía registro;
// este servicio no actualiza ni borra usuarios.
type User struct {
	ID       string
	Username string
	Email    string

	// Opcionales (nil = sin valor).
	DisplayName *string
	AvatarURL   *string

	CreatedAt time.Time
}
