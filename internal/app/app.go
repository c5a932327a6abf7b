package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vk/cogroup/internal/config"
	"github.com/vk/cogroup/internal/ctxlog"
	"github.com/vk/cogroup/internal/grouping"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *config.Model
	engine *grouping.Engine
	now    func() time.Time
}

// NewApp is the constructor for the main application. It builds the
// application's own isolated logger, loads the layered configuration
// through loader and validates it.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model := config.Default()
	if len(appConfig.ConfigPaths) > 0 {
		loaded, err := loader.Load(ctx, model, appConfig.ConfigPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		model = loaded
		logger.Debug("Configuration files applied.", "paths", appConfig.ConfigPaths)
	}

	if appConfig.Override != nil {
		if err := appConfig.Override(model); err != nil {
			return nil, fmt.Errorf("failed to apply configuration overrides: %w", err)
		}
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Configuration validated.",
		"similarity_threshold", model.Grouping.SimilarityThreshold,
		"max_group_size", model.Grouping.MaxGroupSize,
		"target_group_size", model.Balance.TargetGroupSize,
		"remainder", model.Balance.Remainder,
	)

	return &App{
		outW:   outW,
		logger: logger,
		config: model,
		engine: grouping.New(model.EngineOptions()),
		now:    time.Now,
	}, nil
}

// Config returns the effective configuration. This is primarily for testing.
func (a *App) Config() *config.Model {
	return a.config
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
