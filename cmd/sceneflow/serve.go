package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sceneflow/application/flow"
	"sceneflow/application/services"
	"sceneflow/infrastructure/config"
	"sceneflow/infrastructure/persistence/keyvalue"
	"sceneflow/interfaces/http/rest"
	apperrors "sceneflow/pkg/errors"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scene editing session API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	initialNodes, initialEdges := services.DefaultScene()
	flowStore := flow.NewStore(flow.NewState(initialNodes, initialEdges), logger)
	kv := keyvalue.NewFileStore(cfg.DataDir)
	scenes := services.NewSceneService(flowStore, kv, cfg.StorageKey, initialNodes, initialEdges, logger)

	// Restore the previously persisted scene, if any.
	if err := scenes.Load(ctx); err != nil && !apperrors.IsNotFound(err) {
		logger.Warn("stored scene could not be restored", zap.Error(err))
	}

	router := rest.NewRouter(flowStore, scenes, logger, cfg.EnableCORS)

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	// Persist the session's final state so the next serve restores it.
	if err := scenes.Save(context.Background()); err != nil {
		logger.Error("failed to persist scene on shutdown", zap.Error(err))
	}

	if err := logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	return nil
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
