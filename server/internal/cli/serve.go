package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/config"
	"github.com/Aryanthe1/Goal-Sync/server/internal/database"
	logger "github.com/Aryanthe1/Goal-Sync/server/internal/logging"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"
	"github.com/Aryanthe1/Goal-Sync/server/internal/router"
	"github.com/Aryanthe1/Goal-Sync/server/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	goalCatalogFile = "goal_suggestions.yaml"
	shutdownTimeout = 10 * time.Second
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server and reminder scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.Init(cfg.Database, log)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

// bootstrap loads configuration and builds the logger.
func bootstrap(opts *rootOptions) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(opts.configDir)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.Init(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, log, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer log.Sync()
	config.Watch(log)

	if _, err := database.Init(cfg.Database, log); err != nil {
		log.Error("Database initialization failed", zap.Error(err))
		return err
	}

	catalog, err := models.LoadGoalCatalog(filepath.Join(opts.configDir, goalCatalogFile))
	if err != nil {
		log.Warn("Goal suggestions unavailable", zap.Error(err))
		catalog = models.EmptyGoalCatalog()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The scheduler always runs; reminders.enabled is re-read on every tick so
	// a config reload can switch reminders on or off.
	scheduler := services.NewScheduler(log, services.NewEmailService(log))
	scheduler.SetEnabledFunc(config.RemindersEnabled)
	if err := scheduler.Start(ctx, cfg.Reminders.Schedule); err != nil {
		return err
	}
	defer scheduler.Stop()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.Setup(log, cfg.Server, catalog),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening on http://localhost" + srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Failed to run server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
