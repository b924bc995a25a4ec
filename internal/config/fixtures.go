package config

// reversal4 maps [x0, x1, x2, x3] to [x3, x2, x1, x0].
var reversal4 = []float64{
	0, 0, 0, 1,
	0, 0, 1, 0,
	0, 1, 0, 0,
	1, 0, 0, 0,
}

func reversalLayer() Layer {
	return Layer{
		Architecture: ArchDense,
		Activation:   ActivationLinear,
		Weights:      append([]float64(nil), reversal4...),
		Bias:         []float64{0, 0, 0, 0},
	}
}

// Illustrative is the smallest useful graph: two width-2 inputs, their
// concatenation, and one feed-forward node reversing the concatenated vector.
func Illustrative() *Model {
	return &Model{
		Nodes: []Node{
			{Kind: KindInput, Sources: []int{0}, Index: 2},
			{Kind: KindInput, Sources: []int{1}, Index: 2},
			{Kind: KindConcatenate, Sources: []int{0, 1}},
			{Kind: KindFeedForward, Sources: []int{2}, Index: 0},
		},
		Layers: []Layer{reversalLayer()},
	}
}

// Dummy is the configuration evaluated when no file is given: two named
// inputs, a concatenation and two feed-forward nodes sharing layer 0.
func Dummy() *Model {
	vars := []string{"a", "b"}
	return &Model{
		Inputs: []Input{
			{Name: "one", Variables: append([]string(nil), vars...)},
			{Name: "two", Variables: append([]string(nil), vars...)},
		},
		Nodes: []Node{
			{Kind: KindInput, Sources: []int{0}, Index: 2},
			{Kind: KindInput, Sources: []int{1}, Index: 2},
			{Kind: KindConcatenate, Sources: []int{0, 1}},
			{Kind: KindFeedForward, Sources: []int{2}, Index: 0},
			{Kind: KindFeedForward, Sources: []int{2}, Index: 0},
		},
		Layers: []Layer{reversalLayer()},
	}
}
