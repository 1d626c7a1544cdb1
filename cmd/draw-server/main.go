// Package main provides the entry point for the draw odds HTTP service.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/draw-odds/internal/config"
	"github.com/yourusername/draw-odds/internal/database"
	"github.com/yourusername/draw-odds/internal/draw"
	"github.com/yourusername/draw-odds/internal/logger"
	"github.com/yourusername/draw-odds/internal/repository"
	"github.com/yourusername/draw-odds/internal/rowsource"
	"github.com/yourusername/draw-odds/internal/server"
	"github.com/yourusername/draw-odds/internal/snapshot"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	appLog     *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:   "draw-server",
	Short: "Serve housing draw position estimates over HTTP",
	Long: `Loads the configured draw sources, serves estimates over a JSON API with a
TTL result cache, streams result snapshots to WebSocket subscribers, and
refreshes the dataset on a cron schedule.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if loaded.AWS.SecretsEnabled {
		if loaded.AWS.Region == "" || loaded.AWS.SecretName == "" {
			return fmt.Errorf("aws.region and aws.secret_name must be set when aws.secrets_enabled is true")
		}
		if err := config.LoadSecretsFromAWS(loaded, loaded.AWS.Region, loaded.AWS.SecretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}
	if err := config.Validate(loaded); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func runServer() {
	appLog.WithFields(logrus.Fields{
		"version":     Version,
		"git_commit":  GitCommit,
		"build_date":  BuildDate,
		"environment": cfg.App.Environment,
	}).Info("Draw odds server starting")

	policy, err := draw.PolicyFromConfig(cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Invalid draw policy")
	}

	factory := rowsource.NewFactory(cfg, appLog)
	defer func() {
		if err := factory.Close(); err != nil {
			appLog.WithError(err).Error("Failed to close source factory")
		}
	}()

	loader := draw.NewLoader(factory, policy, appLog)
	engine := draw.NewEngine(policy, appLog)

	opts := server.Options{}

	if cfg.Database.Enabled {
		db, err := database.Initialize(context.Background(), cfg)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize database")
		}
		defer db.Close()

		repos, err := repository.NewRepositories(db)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize repositories")
		}
		opts.DB = db
		opts.Repos = repos
		appLog.Info("Estimation history persistence enabled")
	} else {
		appLog.Info("Persistence disabled; estimation history will not be stored")
	}

	if cfg.Snapshot.FileEnabled {
		opts.Writer = snapshot.NewFileWriter(cfg.Snapshot.FilePath, appLog)
	}
	if cfg.Snapshot.PublishEnabled && cfg.Snapshot.PublishURL != "" {
		opts.Publisher = snapshot.NewPublisher(cfg, appLog)
	}

	srv := server.New(cfg, loader, engine, appLog, opts)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(context.Background())
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			appLog.WithError(err).Fatal("Server failed")
		}
		return
	case sig := <-sigChan:
		appLog.WithField("signal", sig).Info("Shutdown signal received")
	}

	shutdownTimeout := cfg.ShutdownTimeout()
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("Error during server shutdown")
	}
	appLog.Info("Draw odds server shut down successfully")
}
