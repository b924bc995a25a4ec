package graph

import (
	"context"
	"fmt"
	"slices"

	"github.com/carloslema/lwtnn/internal/config"
	"github.com/carloslema/lwtnn/internal/fault"
	"github.com/carloslema/lwtnn/internal/source"
)

// Graph is an immutable, fully validated inference graph.
type Graph struct {
	arena *arena
	// order lists node ids in the order they were constructed.
	order []NodeID
}

// NewDefault builds the fixed illustrative graph of config.Illustrative: two
// width-2 inputs, their concatenation, and a feed-forward node that reverses
// the concatenated vector. It is meant as a smoke-test fixture.
func NewDefault() *Graph {
	g, err := BuildModel(context.Background(), config.Illustrative())
	if err != nil {
		panic(fmt.Sprintf("graph: illustrative configuration is invalid: %v", err))
	}
	return g
}

// NodeCount is the number of nodes, equal to the number of configuration entries.
func (g *Graph) NodeCount() int { return len(g.arena.nodes) }

// StageCount is the number of distinct stages the graph owns.
func (g *Graph) StageCount() int { return len(g.arena.stages) }

// Node returns the node built from configuration entry id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(g.arena.nodes) {
		return nil, false
	}
	return g.arena.nodes[id], true
}

// NOutputs returns the width of node id.
func (g *Graph) NOutputs(id NodeID) (int, error) {
	n, ok := g.Node(id)
	if !ok {
		return 0, fault.Evalf("graph: no node at %d", id)
	}
	return n.NOutputs(), nil
}

// BuildOrder returns node ids in construction order.
func (g *Graph) BuildOrder() []NodeID { return slices.Clone(g.order) }

// Last is the node constructed last, which Compute evaluates. It is usually,
// but not necessarily, the final configuration entry.
func (g *Graph) Last() (NodeID, bool) {
	if len(g.order) == 0 {
		return 0, false
	}
	return g.order[len(g.order)-1], true
}

// ComputeNode evaluates node id against src.
func (g *Graph) ComputeNode(src source.Source, id NodeID) ([]float64, error) {
	n, ok := g.Node(id)
	if !ok {
		return nil, fault.Evalf("graph: no node at %d", id)
	}
	if src == nil {
		return nil, fault.Evalf("graph: nil source")
	}
	return n.Compute(src)
}

// Compute evaluates the node constructed last. Callers that need a specific
// output should use ComputeNode.
func (g *Graph) Compute(src source.Source) ([]float64, error) {
	id, ok := g.Last()
	if !ok {
		return nil, fault.Evalf("graph: no nodes to compute")
	}
	return g.ComputeNode(src, id)
}
