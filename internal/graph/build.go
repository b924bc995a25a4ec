package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/carloslema/lwtnn/internal/config"
	"github.com/carloslema/lwtnn/internal/ctxlog"
	"github.com/carloslema/lwtnn/internal/fault"
	"github.com/carloslema/lwtnn/internal/stage"
)

// ancestry is the chain of nodes currently being resolved, innermost first.
// Extending it allocates a new link, so sibling branches never see each
// other's entries.
type ancestry struct {
	id     NodeID
	parent *ancestry
}

func (a *ancestry) contains(id NodeID) bool {
	for link := a; link != nil; link = link.parent {
		if link.id == id {
			return true
		}
	}
	return false
}

func (a *ancestry) with(id NodeID) *ancestry {
	return &ancestry{id: id, parent: a}
}

type builder struct {
	logger       *slog.Logger
	nodes        []config.Node
	layers       []config.Layer
	arena        *arena
	order        []NodeID
	stageByLayer map[int]StageID
}

// Build constructs a complete, validated graph from node and layer records.
// On any configuration fault it returns a nil Graph and an error matching
// fault.ErrConfiguration.
func Build(ctx context.Context, nodes []config.Node, layers []config.Layer) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "node_count", len(nodes), "layer_count", len(layers))

	b := &builder{
		logger:       logger,
		nodes:        nodes,
		layers:       layers,
		arena:        &arena{nodes: make([]Node, len(nodes))},
		order:        make([]NodeID, 0, len(nodes)),
		stageByLayer: make(map[int]StageID),
	}
	for i := range nodes {
		if _, err := b.resolve(NodeID(i), nil); err != nil {
			logger.Debug("Build: Graph construction failed.", "error", err)
			return nil, err
		}
	}

	for i, n := range b.arena.nodes {
		if n == nil {
			panic(fmt.Sprintf("graph: node %d unresolved after build", i))
		}
	}

	logger.Debug("Build: Graph construction successful.",
		"node_count", len(b.arena.nodes), "stage_count", len(b.arena.stages))
	return &Graph{arena: b.arena, order: b.order}, nil
}

// BuildModel is Build over a loaded configuration model.
func BuildModel(ctx context.Context, model *config.Model) (*Graph, error) {
	if model == nil {
		return nil, fault.Configf(fault.NoIndex, "missing configuration model")
	}
	return Build(ctx, model.Nodes, model.Layers)
}

func (b *builder) resolve(id NodeID, path *ancestry) (Node, error) {
	i := int(id)
	if i >= 0 && i < len(b.arena.nodes) && b.arena.nodes[i] != nil {
		return b.arena.nodes[i], nil
	}
	if i < 0 || i >= len(b.nodes) {
		if path != nil {
			return nil, fault.Configf(i, "no node index %d, referenced by node %d", i, path.id)
		}
		return nil, fault.Configf(i, "no node index %d", i)
	}

	cfg := &b.nodes[i]
	if cfg.Kind == config.KindInput {
		return b.buildInput(id, cfg)
	}

	if path.contains(id) {
		return nil, fault.Configf(i, "found cycle in graph at node %d", i)
	}
	path = path.with(id)
	for _, src := range cfg.Sources {
		if _, err := b.resolve(NodeID(src), path); err != nil {
			return nil, err
		}
	}

	switch cfg.Kind {
	case config.KindFeedForward:
		return b.buildFeedForward(id, cfg)
	case config.KindConcatenate:
		return b.buildConcatenate(id, cfg)
	default:
		return nil, fault.Configf(i, "unknown node type %s", cfg.Kind)
	}
}

func (b *builder) buildInput(id NodeID, cfg *config.Node) (Node, error) {
	if n := len(cfg.Sources); n != 1 {
		return nil, fault.Configf(int(id), "input node needs one source, got %d", n)
	}
	if cfg.Sources[0] < 0 {
		return nil, fault.Configf(int(id), "input node needs a non-negative slot, got %d", cfg.Sources[0])
	}
	if cfg.Index < 0 {
		return nil, fault.Configf(int(id), "input node needs a non-negative width, got %d", cfg.Index)
	}
	return b.record(id, cfg.Kind, &InputNode{slot: cfg.Sources[0], width: cfg.Index}), nil
}

func (b *builder) buildFeedForward(id NodeID, cfg *config.Node) (Node, error) {
	if n := len(cfg.Sources); n != 1 {
		return nil, fault.Configf(int(id), "feed forward node needs one source, found %d", n)
	}
	upstreamID := NodeID(cfg.Sources[0])
	upstream := b.arena.nodes[upstreamID]

	stageID, err := b.stageFor(id, cfg.Index, upstream.NOutputs())
	if err != nil {
		return nil, err
	}
	return b.record(id, cfg.Kind, &FeedForwardNode{
		arena:    b.arena,
		upstream: upstreamID,
		stage:    stageID,
	}), nil
}

// stageFor returns the stage cached for layer, creating it on first use.
func (b *builder) stageFor(id NodeID, layer, nInputs int) (StageID, error) {
	if layer < 0 {
		return 0, fault.Configf(int(id), "negative layer number %d", layer)
	}
	if layer >= len(b.layers) {
		return 0, fault.Configf(int(id), "no layer number %d", layer)
	}

	if stageID, ok := b.stageByLayer[layer]; ok {
		if want := b.arena.stages[stageID].NInputs(); want != nInputs {
			return 0, fault.Configf(int(id),
				"layer %d is shared with an input width of %d, but this node provides %d", layer, want, nInputs)
		}
		b.logger.Debug("Build: Reusing shared stage.", "node", id, "layer", layer, "stage", stageID)
		return stageID, nil
	}

	st, err := stage.New(nInputs, &b.layers[layer])
	if err != nil {
		var cfgErr *fault.ConfigError
		if errors.As(err, &cfgErr) {
			return 0, fault.Configf(int(id), "layer %d: %s", layer, cfgErr.Msg)
		}
		return 0, fault.Configf(int(id), "layer %d: %v", layer, err)
	}

	stageID := StageID(len(b.arena.stages))
	b.arena.stages = append(b.arena.stages, st)
	b.stageByLayer[layer] = stageID
	b.logger.Debug("Build: Created stage.", "node", id, "layer", layer, "stage", stageID,
		"inputs", nInputs, "outputs", st.NOutputs())
	return stageID, nil
}

func (b *builder) buildConcatenate(id NodeID, cfg *config.Node) (Node, error) {
	if len(cfg.Sources) == 0 {
		return nil, fault.Configf(int(id), "concatenate node needs at least one source")
	}
	upstream := make([]NodeID, len(cfg.Sources))
	width := 0
	for k, src := range cfg.Sources {
		upstream[k] = NodeID(src)
		w := b.arena.nodes[src].NOutputs()
		if width > math.MaxInt-w {
			return nil, fault.Configf(int(id), "concatenate node width overflows at source %d", src)
		}
		width += w
	}
	return b.record(id, cfg.Kind, &ConcatenateNode{
		arena:    b.arena,
		upstream: upstream,
		width:    width,
	}), nil
}

func (b *builder) record(id NodeID, kind config.NodeKind, n Node) Node {
	b.arena.nodes[id] = n
	b.order = append(b.order, id)
	b.logger.Debug("Build: Resolved node.", "node", id, "kind", kind, "width", n.NOutputs())
	return n
}
