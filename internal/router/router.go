package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	mem "cat-photo-album/internal/adapters/storage/memory"
	pg "cat-photo-album/internal/adapters/storage/postgres"
	"cat-photo-album/internal/domain/cats"
	"cat-photo-album/internal/domain/photos"
	"cat-photo-album/internal/domain/users"
	"cat-photo-album/internal/middleware"
	"cat-photo-album/internal/platform/logger"

	_ "cat-photo-album/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene (o hay DB_DSN en env), usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to in-memory", map[string]any{"error": err.Error()})
			}
		}
	}

	var (
		userRepo  users.Repository
		catRepo   cats.Repository
		photoRepo photos.Repository
	)

	if db != nil {
		// Sin esquema los repos de postgres no pueden operar: se degrada
		// a in-memory, igual que cuando Open falla.
		if err := pg.Migrate(context.Background(), db); err != nil {
			log.Error("migrate failed, falling back to in-memory", map[string]any{"error": err.Error()})
			db = nil
		}
	}

	if db != nil {
		userRepo = pg.NewUsersRepo(db)
		catRepo = pg.NewCatsRepo(db)
		photoRepo = pg.NewPhotosRepo(db)
	} else {
		store := mem.NewStore()
		userRepo = store.Users()
		catRepo = store.Cats()
		photoRepo = store.Photos()
	}

	// Services por módulo. Los cruces entre módulos van por interfaces
	// chicas (UserDirectory, CatDirectory, PhotoSource), no por imports.
	usersSvc := users.NewService(userRepo)
	catsSvc := cats.NewService(catRepo, usersSvc, photoRepo)
	photosSvc := photos.NewService(photoRepo, catsSvc)

	users.RegisterRoutes(r, usersSvc)
	cats.RegisterRoutes(r, catsSvc)
	photos.RegisterRoutes(r, photosSvc)

	return r
}
