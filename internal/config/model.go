package config

import "fmt"

// NodeKind selects the node variant a Node record describes.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindInput
	KindFeedForward
	KindConcatenate
)

var kindNames = map[NodeKind]string{
	KindInput:       "input",
	KindFeedForward: "feed_forward",
	KindConcatenate: "concatenate",
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// ParseNodeKind maps a configuration label to a NodeKind. Unrecognised labels
// yield KindUnknown; rejecting them is the graph builder's job.
func ParseNodeKind(label string) NodeKind {
	for kind, name := range kindNames {
		if name == label {
			return kind
		}
	}
	return KindUnknown
}

// Architecture names a stage implementation registered with the stage package.
type Architecture string

const (
	ArchDense         Architecture = "dense"
	ArchNormalization Architecture = "normalization"
)

// Activation names the element-wise function applied after a dense transform.
type Activation string

const (
	ActivationLinear      Activation = "linear"
	ActivationSigmoid     Activation = "sigmoid"
	ActivationHardSigmoid Activation = "hard_sigmoid"
	ActivationTanh        Activation = "tanh"
	ActivationRectified   Activation = "rectified"
	ActivationSoftmax     Activation = "softmax"
)

// Model is the complete configuration of one graph.
type Model struct {
	Inputs []Input
	Nodes  []Node
	Layers []Layer
}

// Input describes one external input slot. Only the number of variables
// matters to the engine; it sizes dry-run sources.
type Input struct {
	Name      string
	Variables []string
}

// Node is one entry of the flat node list.
//
// Sources and Index are overloaded by Kind:
//   - input: Sources[0] is the external slot, Index the expected width.
//   - feed_forward: Sources[0] is the upstream node id, Index the layer id.
//   - concatenate: Sources are the ordered upstream node ids, Index is unused.
type Node struct {
	Kind    NodeKind
	Sources []int
	Index   int
}

// Layer describes one weight-bearing stage. Weights are row-major.
type Layer struct {
	Architecture Architecture
	Activation   Activation
	Weights      []float64
	Bias         []float64
}

// Limits on the input slots and widths InputSizes derives from input nodes.
// Sizes become dummy vectors, so they must stay allocatable.
const (
	MaxInputSlot  = 1 << 16
	MaxInputWidth = 1 << 24
)

// InputSizes returns the width of every external input slot. Declared inputs
// win; without them the sizes are derived from the input nodes.
func (m *Model) InputSizes() ([]int, error) {
	if len(m.Inputs) > 0 {
		sizes := make([]int, len(m.Inputs))
		for i, in := range m.Inputs {
			sizes[i] = len(in.Variables)
		}
		return sizes, nil
	}

	var sizes []int
	for i, n := range m.Nodes {
		if n.Kind != KindInput || len(n.Sources) != 1 || n.Sources[0] < 0 || n.Index < 0 {
			continue
		}
		slot := n.Sources[0]
		if slot > MaxInputSlot {
			return nil, fmt.Errorf("input node %d: slot %d exceeds the limit of %d", i, slot, MaxInputSlot)
		}
		if n.Index > MaxInputWidth {
			return nil, fmt.Errorf("input node %d: width %d exceeds the limit of %d", i, n.Index, MaxInputWidth)
		}
		if slot >= len(sizes) {
			sizes = append(sizes, make([]int, slot+1-len(sizes))...)
		}
		sizes[slot] = n.Index
	}
	return sizes, nil
}
