// main is the entry point of the students web front end: a page listing
// the students of a remote students API, with one form to add or edit
// them and a delete action per card.
//
// STARTUP SEQUENCE:
//  1. Load configuration (same file format as students-api)
//  2. Initialise the logger
//  3. Build the REST client, page document and controller
//  4. Load the list once, as the page does when it first opens
//  5. Serve the page until an OS signal arrives, then shut down
//
// RUNNING:
//
//	go run ./cmd/students-web --config=config/web.yaml
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

	"github.com/aanand-mishra/students-web/internal/client"
	"github.com/aanand-mishra/students-web/internal/config"
	"github.com/aanand-mishra/students-web/internal/controller"
	"github.com/aanand-mishra/students-web/internal/http/handlers/web"
	"github.com/aanand-mishra/students-web/internal/logger"
	"github.com/aanand-mishra/students-web/internal/view"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting students-web",
		slog.String("env", cfg.Env),
		slog.String("api", cfg.API.BaseURL),
	)

	page := view.NewPage()
	ctrl := controller.New(controller.Config{
		API:          client.New(cfg.API),
		UI:           page,
		Confirm:      web.RequestConfirmer(),
		Logger:       log,
		SuccessDelay: cfg.UI.SuccessBannerDelay,
	})
	defer ctrl.Close()

	ctrl.LoadStudents(context.Background())

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      web.NewHandler(ctrl, page, log).Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error("failed to shutdown server gracefully",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info("server stopped gracefully")
	}
}
