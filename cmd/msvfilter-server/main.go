// Command msvfilter-server provides a REST API for MSV scoring.
//
// Usage:
//
//	msvfilter-server [options]
//
// Options:
//
//	-port     Port to listen on (default: $MSV_PORT or 8080)
//	-host     Host to bind to (default: $MSV_HOST or localhost)
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aria-lang/msvfilter-go/api/handlers"
	"github.com/aria-lang/msvfilter-go/api/middleware"
	"github.com/aria-lang/msvfilter-go/internal/config"
	"github.com/aria-lang/msvfilter-go/pkg/msvfilter"
)

func newRouter(cfg *config.Config) http.Handler {
	h := handlers.New(cfg)
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(msvfilter.Version()))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/alphabet", h.Alphabet)

		r.Route("/sequence", func(r chi.Router) {
			r.Post("/digitize", h.Digitize)
		})

		r.Route("/msv", func(r chi.Router) {
			r.Post("/score", h.Score)
			r.Post("/matrix", h.Matrix)
			r.Post("/batch", h.Batch)
		})
	})

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load config: %v\n", err)
	}

	flag.IntVar(&cfg.Port, "port", cfg.Port, "Port to listen on")
	flag.StringVar(&cfg.Host, "host", cfg.Host, "Host to bind to")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v\n", err)
	}

	addr := cfg.Addr()
	server := &http.Server{
		Addr:         addr,
		Handler:      newRouter(cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Could not gracefully shutdown: %v\n", err)
		}
		close(done)
	}()

	log.Printf("msvfilter API server starting on http://%s\n", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", addr, err)
	}

	<-done
	log.Println("Server stopped")
}
