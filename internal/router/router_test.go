package router

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cat-photo-album/internal/platform/logger"
)

func newTestApp(t *testing.T) http.Handler {
	t.Helper()
	// Que no agarre un Postgres del ambiente.
	t.Setenv("DB_DSN", "")
	return NewRouter(Options{
		Logger: logger.New(logger.Options{Level: logger.Error}),
	})
}

func do(t *testing.T, app http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func createUser(t *testing.T, app http.Handler, username string) string {
	t.Helper()
	rec := do(t, app, http.MethodPost, "/users",
		`{"username":"`+username+`","email":"`+username+`@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var u struct {
		ID string `json:"id"`
	}
	decode(t, rec, &u)
	return u.ID
}

func createCat(t *testing.T, app http.Handler, userID, name string) string {
	t.Helper()
	rec := do(t, app, http.MethodPost, "/cats",
		`{"name":"`+name+`","user_id":"`+userID+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create cat: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var c struct {
		ID string `json:"id"`
	}
	decode(t, rec, &c)
	return c.ID
}

func createPhoto(t *testing.T, app http.Handler, catID string, primary bool) string {
	t.Helper()
	body := `{"cat_id":"` + catID + `","url":"https://cdn.example.com/x.jpg","filename":"x.jpg","file_size":1024,"mime_type":"image/jpeg"`
	if primary {
		body += `,"is_primary":true`
	}
	body += `}`
	rec := do(t, app, http.MethodPost, "/photos", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create photo: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var p struct {
		ID string `json:"id"`
	}
	decode(t, rec, &p)
	return p.ID
}

// failConnector entrega conexiones que fallan en todo; simula un Postgres
// alcanzable pero sin esquema utilizable.
type failConnector struct{}

func (failConnector) Connect(context.Context) (driver.Conn, error) { return failConn{}, nil }
func (failConnector) Driver() driver.Driver                        { return failDriver{} }

type failDriver struct{}

func (failDriver) Open(string) (driver.Conn, error) { return failConn{}, nil }

type failConn struct{}

func (failConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("no schema") }
func (failConn) Close() error                        { return nil }
func (failConn) Begin() (driver.Tx, error)           { return nil, errors.New("no schema") }

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := do(t, app, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("expected 200 ok, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestFullFlow(t *testing.T) {
	app := newTestApp(t)

	userID := createUser(t, app, "ana")
	catID := createCat(t, app, userID, "Misha")

	// Recién creado: fotos vacías pero presentes.
	rec := do(t, app, http.MethodGet, "/cats/"+catID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get cat: expected 200, got %d", rec.Code)
	}
	var view struct {
		ID     string            `json:"id"`
		Name   string            `json:"name"`
		Breed  *string           `json:"breed"`
		Photos []json.RawMessage `json:"photos"`
	}
	decode(t, rec, &view)
	if view.ID != catID || view.Name != "Misha" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Photos == nil || len(view.Photos) != 0 {
		t.Fatalf("expected empty photos array, got %s", rec.Body.String())
	}

	// Patch parcial con null explícito.
	rec = do(t, app, http.MethodPatch, "/cats/"+catID, `{"name":"Mishka","breed":null}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch cat: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var patched struct {
		Name  string  `json:"name"`
		Breed *string `json:"breed"`
	}
	decode(t, rec, &patched)
	if patched.Name != "Mishka" || patched.Breed != nil {
		t.Fatalf("unexpected patch result: %+v", patched)
	}

	// Borrado con cascada.
	rec = do(t, app, http.MethodDelete, "/cats/"+catID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete cat: expected 200, got %d", rec.Code)
	}
	rec = do(t, app, http.MethodGet, "/cats/"+catID, "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected 200 null after delete, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestGetMissingCatIsNull(t *testing.T) {
	app := newTestApp(t)

	rec := do(t, app, http.MethodGet, "/cats/no-such-id", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected literal null body, got %q", rec.Body.String())
	}
}

func TestCreateCatUnknownUserIs404(t *testing.T) {
	app := newTestApp(t)

	rec := do(t, app, http.MethodPost, "/cats", `{"name":"Misha","user_id":"ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestGetUser(t *testing.T) {
	app := newTestApp(t)

	userID := createUser(t, app, "ana")

	rec := do(t, app, http.MethodGet, "/users/"+userID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var u struct {
		Username string `json:"username"`
	}
	decode(t, rec, &u)
	if u.Username != "ana" {
		t.Fatalf("expected username ana, got %q", u.Username)
	}

	rec = do(t, app, http.MethodGet, "/users/no-such-id", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing user, got %d", rec.Code)
	}
}

func TestMigrateFailureFallsBackToMemory(t *testing.T) {
	t.Setenv("DB_DSN", "")

	app := NewRouter(Options{
		DB:     sql.OpenDB(failConnector{}),
		Logger: logger.New(logger.Options{Level: logger.Error}),
	})

	// Migrate falla contra esa conexión; la app queda sobre el store en
	// memoria y el flujo básico sigue funcionando.
	userID := createUser(t, app, "ana")
	catID := createCat(t, app, userID, "Misha")

	rec := do(t, app, http.MethodGet, "/cats/"+catID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestDuplicateUserIs409(t *testing.T) {
	app := newTestApp(t)

	createUser(t, app, "ana")
	rec := do(t, app, http.MethodPost, "/users",
		`{"username":"ana","email":"otra@example.com"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestPrimaryPhotoFlow(t *testing.T) {
	app := newTestApp(t)

	userID := createUser(t, app, "ana")
	catID := createCat(t, app, userID, "Misha")

	p1 := createPhoto(t, app, catID, true)
	p2 := createPhoto(t, app, catID, true)

	type photoRow struct {
		ID        string `json:"id"`
		IsPrimary bool   `json:"is_primary"`
	}
	list := func() []photoRow {
		rec := do(t, app, http.MethodGet, "/cats/"+catID+"/photos", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("list photos: expected 200, got %d", rec.Code)
		}
		var out []photoRow
		decode(t, rec, &out)
		return out
	}

	// La segunda primaria desplaza a la primera; la primaria lista primero.
	got := list()
	if len(got) != 2 || got[0].ID != p2 || !got[0].IsPrimary || got[1].IsPrimary {
		t.Fatalf("expected [p2(primary) p1], got %+v", got)
	}

	// Volver a marcar la primera vía PATCH invierte la situación.
	rec := do(t, app, http.MethodPatch, "/photos/"+p1, `{"is_primary":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch photo: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	got = list()
	if len(got) != 2 || got[0].ID != p1 || !got[0].IsPrimary || got[1].IsPrimary {
		t.Fatalf("expected [p1(primary) p2], got %+v", got)
	}
}

func TestDeleteAsymmetry(t *testing.T) {
	app := newTestApp(t)

	// Foto inexistente: 200 con success=false, nunca 404.
	rec := do(t, app, http.MethodDelete, "/photos/no-such-id", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete photo: expected 200, got %d", rec.Code)
	}
	var res struct {
		Success bool `json:"success"`
	}
	decode(t, rec, &res)
	if res.Success {
		t.Fatalf("expected success=false for missing photo")
	}

	// Gato inexistente: 404.
	rec = do(t, app, http.MethodDelete, "/cats/no-such-id", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete cat: expected 404, got %d", rec.Code)
	}
}

func TestCascadeDeleteOverHTTP(t *testing.T) {
	app := newTestApp(t)

	userID := createUser(t, app, "ana")
	catID := createCat(t, app, userID, "Misha")
	photoID := createPhoto(t, app, catID, false)

	rec := do(t, app, http.MethodDelete, "/cats/"+catID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete cat: expected 200, got %d", rec.Code)
	}

	// La foto cayó con el gato: el delete reporta false.
	rec = do(t, app, http.MethodDelete, "/photos/"+photoID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete photo: expected 200, got %d", rec.Code)
	}
	var res struct {
		Success bool `json:"success"`
	}
	decode(t, rec, &res)
	if res.Success {
		t.Fatalf("expected success=false after cascade delete")
	}
}

func TestListCatsByUser(t *testing.T) {
	app := newTestApp(t)

	userID := createUser(t, app, "ana")
	c1 := createCat(t, app, userID, "uno")
	c2 := createCat(t, app, userID, "dos")
	createPhoto(t, app, c1, true)

	rec := do(t, app, http.MethodGet, "/users/"+userID+"/cats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var views []struct {
		ID     string `json:"id"`
		Photos []struct {
			IsPrimary bool `json:"is_primary"`
		} `json:"photos"`
	}
	decode(t, rec, &views)
	if len(views) != 2 {
		t.Fatalf("expected 2 cats, got %d", len(views))
	}

	byID := map[string]int{}
	for i, v := range views {
		byID[v.ID] = i
	}
	if _, ok := byID[c1]; !ok {
		t.Fatalf("missing cat %s in listing", c1)
	}
	if _, ok := byID[c2]; !ok {
		t.Fatalf("missing cat %s in listing", c2)
	}
	if got := views[byID[c1]].Photos; len(got) != 1 || !got[0].IsPrimary {
		t.Fatalf("expected one primary photo for %s, got %+v", c1, got)
	}
	if got := views[byID[c2]].Photos; got == nil || len(got) != 0 {
		t.Fatalf("expected empty photos for %s, got %+v", c2, got)
	}
}
