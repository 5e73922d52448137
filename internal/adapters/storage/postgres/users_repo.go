package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"cat-photo-album/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, username, email,
			display_name, avatar_url,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		u.ID,
		u.Username,
		u.Email,
		toNullString(u.DisplayName),
		toNullString(u.AvatarURL),
		u.CreatedAt,
	)
	if pgErr, ok := isUniqueViolation(err); ok {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return fmt.Errorf("email %q: %w", u.Email, users.ErrConflict)
		}
		return fmt.Errorf("username %q: %w", u.Username, users.ErrConflict)
	}
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, fmt.Errorf("user %s: %w", id, users.ErrNotFound)
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, username, email,
			display_name, avatar_url,
			created_at
		FROM users
		WHERE id = $1
	`, id)

	var u users.User
	var displayName, avatarURL sql.NullString
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&displayName,
		&avatarURL,
		&u.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, fmt.Errorf("user %s: %w", id, users.ErrNotFound)
		}
		return users.User{}, err
	}

	u.DisplayName = fromNullString(displayName)
	u.AvatarURL = fromNullString(avatarURL)
	return u, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
