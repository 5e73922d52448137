package main

import (
	"net/http"
	"os"
	"time"

	"cat-photo-album/internal/platform/logger"
	"cat-photo-album/internal/router"

	"github.com/joho/godotenv"
)

// @title    Cat Photo Album API
// @version  1.0
// @BasePath /
func main() {
	if err := godotenv.Load(".env.local"); err != nil {
		_ = godotenv.Load() // .env; si tampoco está, quedan las env del proceso
	}

	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := router.NewRouter(router.Options{Logger: log})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
