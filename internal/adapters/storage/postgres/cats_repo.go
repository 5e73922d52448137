package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"cat-photo-album/internal/domain/cats"
)

type CatsRepo struct {
	db *sql.DB
}

func NewCatsRepo(db *sql.DB) *CatsRepo {
	return &CatsRepo{db: db}
}

func (r *CatsRepo) Create(ctx context.Context, c cats.Cat) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cats (
			id, name, breed, age, description,
			user_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		c.ID,
		c.Name,
		toNullString(c.Breed),
		toNullInt(c.Age),
		toNullString(c.Description),
		c.UserID,
		c.CreatedAt,
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("user %s: %w", c.UserID, cats.ErrUserNotFound)
	}
	return err
}

func (r *CatsRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return cats.Cat{}, fmt.Errorf("cat %s: %w", id, cats.ErrNotFound)
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, breed, age, description,
			user_id, created_at
		FROM cats
		WHERE id = $1
	`, id)

	c, err := scanCat(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return cats.Cat{}, fmt.Errorf("cat %s: %w", id, cats.ErrNotFound)
		}
		return cats.Cat{}, err
	}
	return c, nil
}

func (r *CatsRepo) ListByUser(ctx context.Context, userID string) ([]cats.Cat, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, breed, age, description,
			user_id, created_at
		FROM cats
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cats.Cat, 0)
	for rows.Next() {
		c, err := scanCat(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *CatsRepo) Update(ctx context.Context, c cats.Cat) error {
	// user_id y created_at no se tocan: back-reference inmutable.
	res, err := r.db.ExecContext(ctx, `
		UPDATE cats
		SET
			name = $2,
			breed = $3,
			age = $4,
			description = $5
		WHERE id = $1
	`,
		c.ID,
		c.Name,
		toNullString(c.Breed),
		toNullInt(c.Age),
		toNullString(c.Description),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("cat %s: %w", c.ID, cats.ErrNotFound)
	}
	return nil
}

func (r *CatsRepo) Delete(ctx context.Context, id string) error {
	// La cascada sobre photos la hace el ON DELETE CASCADE del esquema,
	// dentro de la transacción implícita del DELETE.
	res, err := r.db.ExecContext(ctx, `DELETE FROM cats WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("cat %s: %w", id, cats.ErrNotFound)
	}
	return nil
}

func scanCat(scan func(...any) error) (cats.Cat, error) {
	var c cats.Cat
	var breed, description sql.NullString
	var age sql.NullInt64
	if err := scan(
		&c.ID,
		&c.Name,
		&breed,
		&age,
		&description,
		&c.UserID,
		&c.CreatedAt,
	); err != nil {
		return cats.Cat{}, err
	}

	c.Breed = fromNullString(breed)
	c.Description = fromNullString(description)
	if age.Valid {
		v := int(age.Int64)
		c.Age = &v
	}
	return c, nil
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
