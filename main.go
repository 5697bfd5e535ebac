package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/portfolio-api/internal/admin"
	"github.com/Zachkp/portfolio-api/internal/api"
	"github.com/Zachkp/portfolio-api/internal/config"
	"github.com/Zachkp/portfolio-api/internal/contact"
	"github.com/Zachkp/portfolio-api/internal/content"
	"github.com/Zachkp/portfolio-api/internal/feeds"
	"github.com/Zachkp/portfolio-api/internal/logging"
	"github.com/Zachkp/portfolio-api/internal/server"
	"github.com/Zachkp/portfolio-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatal("Failed to create logger: ", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.Setup(cfg.IsProduction())

	db, err := store.Open(ctx, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	mock, err := feeds.NewMock(nil, nil)
	if err != nil {
		return err
	}
	tracker, err := admin.NewTracker(logger, db)
	if err != nil {
		return err
	}
	adminHandler, err := admin.NewHandler(logger, db, tracker, cfg)
	if err != nil {
		return err
	}

	// Privacy cleanup on start, as visitor rows are only kept for the retention window.
	if _, err := adminHandler.Cleanup(ctx); err != nil {
		logger.Warn("startup visitor cleanup failed", zap.Error(err))
	}

	engine := server.New(server.Deps{
		Logger:  logger,
		Analyze: api.NewAnalyzeHandler(logger, nil, cfg.Analyze.MaxBytes),
		Feeds:   feeds.NewHandler(logger, mock, mock),
		Contact: contact.NewHandler(logger, db, contact.NewSMTPMailer(cfg.SMTP)),
		Admin:   adminHandler,
		Tracker: tracker,
		Site:    content.Default,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("env", string(cfg.App.Env)),
			zap.String("db", cfg.Store.Path),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	tracker.Wait()
	return nil
}
