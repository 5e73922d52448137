package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"cat-photo-album/internal/domain/photos"
)

type PhotosRepo struct {
	db *sql.DB
}

func NewPhotosRepo(db *sql.DB) *PhotosRepo {
	return &PhotosRepo{db: db}
}

func (r *PhotosRepo) Create(ctx context.Context, p photos.Photo) error {
	if !p.IsPrimary {
		err := r.insert(ctx, r.db, p)
		if isForeignKeyViolation(err) {
			return fmt.Errorf("cat %s: %w", p.CatID, photos.ErrCatNotFound)
		}
		return err
	}

	// Invariante de primaria: lock de la fila del gato y clear-then-set
	// en una sola transacción, ninguna lectura puede ver dos primarias
	// para el mismo gato.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.lockCat(ctx, tx, p.CatID); err != nil {
		return err
	}
	if err := r.clearPrimary(ctx, tx, p.CatID, p.ID); err != nil {
		return err
	}
	if err := r.insert(ctx, tx, p); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("cat %s: %w", p.CatID, photos.ErrCatNotFound)
		}
		return err
	}

	return tx.Commit()
}

func (r *PhotosRepo) GetByID(ctx context.Context, id string) (photos.Photo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return photos.Photo{}, fmt.Errorf("photo %s: %w", id, photos.ErrNotFound)
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, cat_id, url, filename, file_size,
			mime_type, caption, is_primary, created_at
		FROM photos
		WHERE id = $1
	`, id)

	p, err := scanPhoto(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return photos.Photo{}, fmt.Errorf("photo %s: %w", id, photos.ErrNotFound)
		}
		return photos.Photo{}, err
	}
	return p, nil
}

func (r *PhotosRepo) Update(ctx context.Context, p photos.Photo) error {
	if !p.IsPrimary {
		return r.update(ctx, r.db, p)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.lockCat(ctx, tx, p.CatID); err != nil {
		return err
	}
	if err := r.clearPrimary(ctx, tx, p.CatID, p.ID); err != nil {
		return err
	}
	if err := r.update(ctx, tx, p); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PhotosRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PhotosRepo) ListByCat(ctx context.Context, catID string) ([]photos.Photo, error) {
	catID = strings.TrimSpace(catID)
	if catID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, cat_id, url, filename, file_size,
			mime_type, caption, is_primary, created_at
		FROM photos
		WHERE cat_id = $1
		ORDER BY is_primary DESC, created_at DESC
	`, catID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPhotos(rows)
}

func (r *PhotosRepo) ListByCats(ctx context.Context, catIDs []string) ([]photos.Photo, error) {
	if len(catIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, 0, len(catIDs))
	args := make([]any, 0, len(catIDs))
	for i, id := range catIDs {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, cat_id, url, filename, file_size,
			mime_type, caption, is_primary, created_at
		FROM photos
		WHERE cat_id IN (`+strings.Join(placeholders, ",")+`)
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPhotos(rows)
}

// execer cubre *sql.DB y *sql.Tx para reutilizar insert/update dentro y
// fuera de la transacción del invariante.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *PhotosRepo) insert(ctx context.Context, ex execer, p photos.Photo) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO photos (
			id, cat_id, url, filename, file_size,
			mime_type, caption, is_primary, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		p.ID,
		p.CatID,
		p.URL,
		p.Filename,
		p.FileSize,
		p.MimeType,
		toNullString(p.Caption),
		p.IsPrimary,
		p.CreatedAt,
	)
	return err
}

func (r *PhotosRepo) update(ctx context.Context, ex execer, p photos.Photo) error {
	// Solo caption e is_primary son mutables.
	res, err := ex.ExecContext(ctx, `
		UPDATE photos
		SET
			caption = $2,
			is_primary = $3
		WHERE id = $1
	`,
		p.ID,
		toNullString(p.Caption),
		p.IsPrimary,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("photo %s: %w", p.ID, photos.ErrNotFound)
	}
	return nil
}

// lockCat toma el lock de fila del gato (SELECT ... FOR UPDATE) antes del
// clear-then-set. Sin este lock, bajo READ COMMITTED dos transacciones
// concurrentes marcando fotos distintas del mismo gato no se ven entre sí
// (cada clearPrimary matchea cero filas) y ambas commitean con primaria.
// El índice único parcial del esquema es la segunda barrera.
func (r *PhotosRepo) lockCat(ctx context.Context, tx *sql.Tx, catID string) error {
	var id string
	err := tx.QueryRowContext(ctx, `SELECT id FROM cats WHERE id = $1 FOR UPDATE`, catID).Scan(&id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("cat %s: %w", catID, photos.ErrCatNotFound)
	}
	return err
}

func (r *PhotosRepo) clearPrimary(ctx context.Context, ex execer, catID, exceptID string) error {
	_, err := ex.ExecContext(ctx, `
		UPDATE photos
		SET is_primary = FALSE
		WHERE cat_id = $1 AND is_primary AND id <> $2
	`, catID, exceptID)
	return err
}

func scanPhoto(scan func(...any) error) (photos.Photo, error) {
	var p photos.Photo
	var caption sql.NullString
	if err := scan(
		&p.ID,
		&p.CatID,
		&p.URL,
		&p.Filename,
		&p.FileSize,
		&p.MimeType,
		&caption,
		&p.IsPrimary,
		&p.CreatedAt,
	); err != nil {
		return photos.Photo{}, err
	}

	p.Caption = fromNullString(caption)
	return p, nil
}

func collectPhotos(rows *sql.Rows) ([]photos.Photo, error) {
	out := make([]photos.Photo, 0)
	for rows.Next() {
		p, err := scanPhoto(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
