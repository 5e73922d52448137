package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate crea el esquema si no existe. CREATE TABLE IF NOT EXISTS alcanza
// para este servicio; si el esquema empieza a evolucionar conviene pasar a
// golang-migrate con versiones.
//
// Las FK llevan ON DELETE CASCADE: borrar un usuario arrastra sus gatos y
// borrar un gato arrastra sus fotos, en la misma transacción del DELETE.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id           TEXT PRIMARY KEY,
			username     VARCHAR(50) NOT NULL UNIQUE,
			email        VARCHAR(255) NOT NULL UNIQUE,
			display_name VARCHAR(100),
			avatar_url   TEXT,
			created_at   TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cats (
			id          TEXT PRIMARY KEY,
			name        VARCHAR(100) NOT NULL,
			breed       VARCHAR(100),
			age         INTEGER,
			description TEXT,
			user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cats_user_id ON cats(user_id)`,
		`CREATE TABLE IF NOT EXISTS photos (
			id         TEXT PRIMARY KEY,
			cat_id     TEXT NOT NULL REFERENCES cats(id) ON DELETE CASCADE,
			url        TEXT NOT NULL,
			filename   VARCHAR(255) NOT NULL,
			file_size  BIGINT NOT NULL,
			mime_type  VARCHAR(50) NOT NULL,
			caption    TEXT,
			is_primary BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_photos_cat_id ON photos(cat_id)`,
		// Respaldo del invariante de una primaria por gato: aunque una
		// transacción se salte el lock de fila, la segunda primaria no
		// puede commitear.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_photos_one_primary ON photos(cat_id) WHERE is_primary`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: migrate: %w", err)
		}
	}
	return nil
}
