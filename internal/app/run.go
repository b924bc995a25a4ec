package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/carloslema/lwtnn/internal/ctxlog"
	"github.com/carloslema/lwtnn/internal/graph"
	"github.com/carloslema/lwtnn/internal/hclconfig"
	"github.com/carloslema/lwtnn/internal/source"
)

// Run executes the mode selected by the configuration: emit the
// configuration, serve evaluations, or evaluate once against dummy inputs.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "mode", a.mode())
	ctxlog.FromContext(ctx).Debug("App.Run method started.")

	switch {
	case a.config.EmitConfig:
		if err := hclconfig.Encode(a.outW, a.model); err != nil {
			return fmt.Errorf("failed to write configuration: %w", err)
		}
		return nil
	case a.config.ServePort > 0:
		return a.serve(ctx, a.config.ServePort)
	}

	sizes, err := a.model.InputSizes()
	if err != nil {
		return fmt.Errorf("failed to size dummy inputs: %w", err)
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Evaluating with dummy inputs.", "sizes", sizes, "node", a.config.Node)
	out, err := a.compute(source.NewDummySource(sizes), a.config.Node)
	if err != nil {
		return err
	}
	for _, v := range out {
		fmt.Fprintln(a.outW, strconv.FormatFloat(v, 'g', -1, 64))
	}

	logger.Debug("App.Run method finished.", "outputs", len(out))
	return nil
}

// compute evaluates node, or the last built node for NodeLast.
func (a *App) compute(src source.Source, node int) ([]float64, error) {
	if node == NodeLast {
		return a.graph.Compute(src)
	}
	return a.graph.ComputeNode(src, graph.NodeID(node))
}

func (a *App) mode() string {
	switch {
	case a.config.EmitConfig:
		return "emit-config"
	case a.config.ServePort > 0:
		return "serve"
	default:
		return "evaluate"
	}
}
