// main is the entry point of the students API, the REST collection the
// web front end reads and writes.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Connect to (and set up) the SQLite database
//  4. Register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/students-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-api
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/students-web/internal/config"
	"github.com/aanand-mishra/students-web/internal/http/handlers/student"
	"github.com/aanand-mishra/students-web/internal/logger"
	"github.com/aanand-mishra/students-web/internal/middleware"
	"github.com/aanand-mishra/students-web/internal/storage/sqlite"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting students-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.1.0"),
	)

	storage, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	router := http.NewServeMux()
	student.Register(router, storage)

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: middleware.Logger(log)(router),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ErrServerClosed is the expected result of Shutdown.
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
