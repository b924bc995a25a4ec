package graph

import (
	"slices"

	"github.com/carloslema/lwtnn/internal/fault"
	"github.com/carloslema/lwtnn/internal/source"
	"github.com/carloslema/lwtnn/internal/stage"
)

// NodeID is the position of a node in the configuration it was built from.
type NodeID int

// StageID is the position of a stage in a graph's stage arena.
type StageID int

// Node produces a fixed-width vector from a Source.
//
// The set of implementations is closed: *InputNode, *FeedForwardNode and
// *ConcatenateNode.
type Node interface {
	// NOutputs is the width of every vector Compute returns.
	NOutputs() int
	// Compute evaluates the node and everything upstream of it.
	Compute(src source.Source) ([]float64, error)

	sealed()
}

// arena holds everything a graph owns. It is written only while building.
type arena struct {
	nodes  []Node
	stages []stage.Stage
}

// InputNode reads one external input slot.
type InputNode struct {
	slot  int
	width int
}

func (n *InputNode) Slot() int     { return n.slot }
func (n *InputNode) NOutputs() int { return n.width }
func (n *InputNode) sealed()       {}

func (n *InputNode) Compute(src source.Source) ([]float64, error) {
	out, err := src.At(n.slot)
	if err != nil {
		return nil, err
	}
	if len(out) != n.width {
		return nil, fault.Evalf("found vector of length %d, expected %d", len(out), n.width)
	}
	return out, nil
}

// FeedForwardNode applies a (possibly shared) stage to one upstream node.
type FeedForwardNode struct {
	arena    *arena
	upstream NodeID
	stage    StageID
}

func (n *FeedForwardNode) Upstream() NodeID { return n.upstream }
func (n *FeedForwardNode) Stage() StageID   { return n.stage }
func (n *FeedForwardNode) sealed()          {}

func (n *FeedForwardNode) NOutputs() int {
	return n.arena.stages[n.stage].NOutputs()
}

func (n *FeedForwardNode) Compute(src source.Source) ([]float64, error) {
	in, err := n.arena.nodes[n.upstream].Compute(src)
	if err != nil {
		return nil, err
	}
	return n.arena.stages[n.stage].Transform(in)
}

// ConcatenateNode joins the vectors of its upstream nodes in listed order.
type ConcatenateNode struct {
	arena    *arena
	upstream []NodeID
	width    int
}

// Upstream returns a copy of the ordered upstream ids.
func (n *ConcatenateNode) Upstream() []NodeID { return slices.Clone(n.upstream) }
func (n *ConcatenateNode) NOutputs() int      { return n.width }
func (n *ConcatenateNode) sealed()            {}

func (n *ConcatenateNode) Compute(src source.Source) ([]float64, error) {
	out := []float64{}
	for _, id := range n.upstream {
		in, err := n.arena.nodes[id].Compute(src)
		if err != nil {
			return nil, err
		}
		if len(in) > n.width-len(out) {
			return nil, fault.Evalf("concatenate: node %d overflows output of width %d", id, n.width)
		}
		out = append(out, in...)
	}
	if len(out) != n.width {
		return nil, fault.Evalf("concatenate: filled %d of %d outputs", len(out), n.width)
	}
	return out, nil
}
