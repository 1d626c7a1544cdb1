// Package main provides the one-shot draw position estimation CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-odds/internal/config"
	"github.com/yourusername/draw-odds/internal/database"
	"github.com/yourusername/draw-odds/internal/draw"
	"github.com/yourusername/draw-odds/internal/logger"
	"github.com/yourusername/draw-odds/internal/models"
	"github.com/yourusername/draw-odds/internal/prompt"
	"github.com/yourusername/draw-odds/internal/repository"
	"github.com/yourusername/draw-odds/internal/rowsource"
	"github.com/yourusername/draw-odds/internal/snapshot"
)

func main() {
	var (
		configPath  = flag.String("config", "config/config.yaml", "Path to config file")
		firstName   = flag.String("first", "", "Target first name")
		lastName    = flag.String("last", "", "Target last name")
		pools       = flag.String("pools", "", "Comma-separated additional pool sources")
		interactive = flag.Bool("interactive", false, "Collect the target interactively even when flags are set")
		output      = flag.String("snapshot", "", "Write a JSON snapshot to this path")
	)
	flag.Parse()

	cfg := loadConfigWithSecrets(*configPath)
	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	policy, err := draw.PolicyFromConfig(cfg)
	if err != nil {
		appLog.Fatalf("Invalid draw policy: %v", err)
	}

	target := resolveTarget(*firstName, *lastName, *pools, *interactive, appLog)

	ctx := context.Background()
	ds := loadDataset(ctx, cfg, policy, target.AuxPools, appLog)

	engine := draw.NewEngine(policy, appLog)
	result, err := engine.Estimate(ds, target.FirstName, target.LastName)
	if err != nil {
		if errors.Is(err, models.ErrTargetNotFound) {
			appLog.Fatalf("Target not found in the primary draw list: %v", err)
		}
		appLog.Fatalf("Estimation failed: %v", err)
	}

	reporter := draw.NewReporter(os.Stdout)
	reporter.Report(result, ds, policy)

	deliverSnapshot(ctx, cfg, *output, result, appLog)
	persistResult(ctx, cfg, result, appLog)
}

func loadConfigWithSecrets(path string) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.AWS.SecretsEnabled {
		if cfg.AWS.Region == "" || cfg.AWS.SecretName == "" {
			log.Fatalf("aws.region and aws.secret_name must be set when aws.secrets_enabled is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, cfg.AWS.Region, cfg.AWS.SecretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// resolveTarget takes the target from flags, or runs the interactive session
// when flags are absent or -interactive is set.
func resolveTarget(first, last, pools string, interactive bool, appLog *logrus.Logger) *prompt.Target {
	if !interactive && first != "" && last != "" {
		return &prompt.Target{
			FirstName: first,
			LastName:  last,
			AuxPools:  splitPools(pools),
		}
	}

	session, err := prompt.NewSession()
	if err != nil {
		appLog.Fatalf("Failed to open interactive prompt: %v", err)
	}
	defer session.Close()

	target, err := session.Collect()
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			appLog.Info("Estimation cancelled")
			os.Exit(0)
		}
		appLog.Fatalf("Interactive prompt failed: %v", err)
	}
	target.AuxPools = append(target.AuxPools, splitPools(pools)...)
	return target
}

func splitPools(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var pools []string
	for _, entry := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			pools = append(pools, trimmed)
		}
	}
	return pools
}

func loadDataset(ctx context.Context, cfg *config.Config, policy draw.Policy, extraPools []string, appLog *logrus.Logger) *draw.Dataset {
	factory := rowsource.NewFactory(cfg, appLog)
	defer func() {
		if err := factory.Close(); err != nil {
			appLog.WithError(err).Warn("Failed to close source factory")
		}
	}()

	req := draw.RequestFromConfig(cfg)
	req.AuxPools = append(req.AuxPools, extraPools...)

	loader := draw.NewLoader(factory, policy, appLog)
	ds, err := loader.Load(ctx, req)
	if err != nil {
		appLog.Fatalf("Failed to load dataset: %v", err)
	}
	return ds
}

// deliverSnapshot writes and publishes the result per config; the -snapshot
// flag forces a file write regardless of snapshot.file_enabled.
func deliverSnapshot(ctx context.Context, cfg *config.Config, override string, result *models.EstimationResult, appLog *logrus.Logger) {
	path := cfg.Snapshot.FilePath
	enabled := cfg.Snapshot.FileEnabled
	if override != "" {
		path = override
		enabled = true
	}
	if enabled {
		writer := snapshot.NewFileWriter(path, appLog)
		if err := writer.Write(result); err != nil {
			appLog.WithError(err).Error("Failed to write snapshot file")
		} else {
			appLog.WithField("path", path).Info("Snapshot written")
		}
	}

	if cfg.Snapshot.PublishEnabled && cfg.Snapshot.PublishURL != "" {
		publisher := snapshot.NewPublisher(cfg, appLog)
		defer publisher.Close()

		publishCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := publisher.Publish(publishCtx, result); err != nil {
			appLog.WithError(err).Error("Failed to publish snapshot")
		} else {
			appLog.WithField("url", cfg.Snapshot.PublishURL).Info("Snapshot published")
		}
	}
}

// persistResult stores the run when persistence is enabled. Failures are
// reported, never fatal; the report already reached the user.
func persistResult(ctx context.Context, cfg *config.Config, result *models.EstimationResult, appLog *logrus.Logger) {
	if !cfg.Database.Enabled {
		return
	}

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Error("Failed to connect to database")
		return
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Error("Failed to initialize repositories")
		return
	}

	createCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := repos.Estimate.Create(createCtx, result); err != nil {
		appLog.WithError(err).Error("Failed to persist estimation result")
		return
	}
	appLog.WithField("run_id", result.RunID).Info("Estimation result persisted")
}
