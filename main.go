package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"CareBridge/Config"
	"CareBridge/Models"
	"CareBridge/Store"
	"CareBridge/Summary"
	"CareBridge/Workflow"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:           "carebridge",
		Short:         "CareBridge Hub shift workflow service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, newExportCmd())
	return root
}

// service is the wired application shared by the subcommands.
type service struct {
	cfg    Config.Config
	logger *zap.Logger
	engine *Workflow.Engine
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	return zc.Build()
}

// openService loads configuration, opens the database and builds the engine.
// The cleanup func closes everything it opened.
func openService(ctx context.Context) (*service, func(), error) {
	cfg, err := Config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	db, err := Models.Connect(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = sqlDB.Close()
		_ = logger.Sync()
	}

	store, err := Store.NewGormStore(db)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if cfg.SeedMockData {
		today := time.Now().In(cfg.Location).Format(Models.DateLayout)
		if err := store.Seed(ctx, today, logger); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	opts := []Workflow.Option{
		Workflow.WithDirectory(Store.NewDirectory(db, logger)),
		Workflow.WithLocation(cfg.Location),
		Workflow.WithSummaryTimeout(cfg.SummaryTimeout),
		Workflow.WithLogger(logger),
	}
	gemini, err := Summary.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Warn("AI summaries disabled", zap.Error(err))
	} else {
		logger.Info("AI summaries enabled", zap.String("model", gemini.Model()))
		opts = append(opts, Workflow.WithSummarizer(gemini))
	}

	return &service{
		cfg:    cfg,
		logger: logger,
		engine: Workflow.NewEngine(store, opts...),
	}, cleanup, nil
}
