package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"cat-photo-album/internal/domain/photos"
)

// -------------------------
// Driver de prueba: registra cada statement (y BEGIN/COMMIT) en orden,
// para verificar qué SQL emite el repo y dentro de qué transacción.
// -------------------------

type recorder struct {
	mu    sync.Mutex
	stmts []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stmts = append(r.stmts, s)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.stmts...)
}

type recConnector struct{ rec *recorder }

func (c recConnector) Connect(context.Context) (driver.Conn, error) {
	return &recConn{rec: c.rec}, nil
}

func (c recConnector) Driver() driver.Driver { return recDriver{rec: c.rec} }

type recDriver struct{ rec *recorder }

func (d recDriver) Open(string) (driver.Conn, error) { return &recConn{rec: d.rec}, nil }

type recConn struct{ rec *recorder }

func (c *recConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *recConn) Close() error { return nil }

func (c *recConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *recConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	c.rec.add("BEGIN")
	return recTx{rec: c.rec}, nil
}

func (c *recConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	c.rec.add(query)
	return driver.RowsAffected(1), nil
}

func (c *recConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.rec.add(query)
	return &recRows{}, nil
}

type recTx struct{ rec *recorder }

func (t recTx) Commit() error   { t.rec.add("COMMIT"); return nil }
func (t recTx) Rollback() error { t.rec.add("ROLLBACK"); return nil }

// recRows devuelve una única fila con un id (alcanza para el SELECT FOR UPDATE).
type recRows struct{ done bool }

func (r *recRows) Columns() []string { return []string{"id"} }
func (r *recRows) Close() error      { return nil }

func (r *recRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = "cat-1"
	return nil
}

func newRecordedDB(rec *recorder) *sql.DB {
	db := sql.OpenDB(recConnector{rec: rec})
	db.SetMaxOpenConns(1)
	return db
}

func indexOf(stmts []string, substr string) int {
	for i, s := range stmts {
		if strings.Contains(s, substr) {
			return i
		}
	}
	return -1
}

func testPhoto(primary bool) photos.Photo {
	return photos.Photo{
		ID:        "p1",
		CatID:     "cat-1",
		URL:       "https://cdn.example.com/p1.jpg",
		Filename:  "p1.jpg",
		FileSize:  1024,
		MimeType:  "image/jpeg",
		IsPrimary: primary,
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

// -------------------------
// Tests
// -------------------------

func TestPhotosRepo_UpdatePrimaryLocksCatBeforeClear(t *testing.T) {
	rec := &recorder{}
	repo := NewPhotosRepo(newRecordedDB(rec))

	if err := repo.Update(context.Background(), testPhoto(true)); err != nil {
		t.Fatalf("Update: %v", err)
	}

	stmts := rec.all()
	begin := indexOf(stmts, "BEGIN")
	lock := indexOf(stmts, "FOR UPDATE")
	clear := indexOf(stmts, "SET is_primary = FALSE")
	write := indexOf(stmts, "caption = $2")
	commit := indexOf(stmts, "COMMIT")

	for name, i := range map[string]int{"BEGIN": begin, "lock": lock, "clear": clear, "write": write, "COMMIT": commit} {
		if i < 0 {
			t.Fatalf("missing %s in recorded statements: %q", name, stmts)
		}
	}
	// El lock de la fila del gato va antes del clear-then-set, todo en la tx.
	if !(begin < lock && lock < clear && clear < write && write < commit) {
		t.Fatalf("unexpected statement order: %q", stmts)
	}
}

func TestPhotosRepo_CreatePrimaryLocksCatBeforeClear(t *testing.T) {
	rec := &recorder{}
	repo := NewPhotosRepo(newRecordedDB(rec))

	if err := repo.Create(context.Background(), testPhoto(true)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	stmts := rec.all()
	begin := indexOf(stmts, "BEGIN")
	lock := indexOf(stmts, "FOR UPDATE")
	clear := indexOf(stmts, "SET is_primary = FALSE")
	insert := indexOf(stmts, "INSERT INTO photos")
	commit := indexOf(stmts, "COMMIT")

	if begin < 0 || lock < 0 || clear < 0 || insert < 0 || commit < 0 {
		t.Fatalf("missing statements: %q", stmts)
	}
	if !(begin < lock && lock < clear && clear < insert && insert < commit) {
		t.Fatalf("unexpected statement order: %q", stmts)
	}
}

func TestPhotosRepo_NonPrimaryWritesSkipTransaction(t *testing.T) {
	rec := &recorder{}
	repo := NewPhotosRepo(newRecordedDB(rec))

	if err := repo.Create(context.Background(), testPhoto(false)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Update(context.Background(), testPhoto(false)); err != nil {
		t.Fatalf("Update: %v", err)
	}

	stmts := rec.all()
	if indexOf(stmts, "BEGIN") >= 0 || indexOf(stmts, "FOR UPDATE") >= 0 {
		t.Fatalf("non-primary writes must not open a transaction: %q", stmts)
	}
}

func TestMigrate_DeclaresSinglePrimaryIndex(t *testing.T) {
	rec := &recorder{}
	db := newRecordedDB(rec)

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	stmts := rec.all()
	i := indexOf(stmts, "idx_photos_one_primary")
	if i < 0 {
		t.Fatalf("missing partial unique index in schema: %q", stmts)
	}
	if !strings.Contains(stmts[i], "UNIQUE") || !strings.Contains(stmts[i], "WHERE is_primary") {
		t.Fatalf("index must be unique and partial over is_primary: %q", stmts[i])
	}
}
