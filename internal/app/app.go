package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/carloslema/lwtnn/internal/config"
	"github.com/carloslema/lwtnn/internal/ctxlog"
	"github.com/carloslema/lwtnn/internal/graph"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	model      *config.Model
	graph      *graph.Graph
	httpServer *http.Server
}

// NewApp loads the configured graph and builds it. Results are written to
// outW, logs to logW.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var cfgModel *config.Model
	if len(appConfig.ConfigPaths) == 0 {
		logger.Info("No configuration given, using the dummy graph.")
		cfgModel = config.Dummy()
	} else {
		var err error
		cfgModel, err = loader.Load(ctx, appConfig.ConfigPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}
	logger.Debug("Configuration loaded into unified model.", "inputs", len(cfgModel.Inputs), "nodes", len(cfgModel.Nodes), "layers", len(cfgModel.Layers))

	g, err := graph.BuildModel(ctx, cfgModel)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		model:  cfgModel,
		graph:  g,
	}, nil
}

// Model returns the loaded configuration. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// Graph returns the built graph. This is primarily for testing.
func (a *App) Graph() *graph.Graph {
	return a.graph
}
