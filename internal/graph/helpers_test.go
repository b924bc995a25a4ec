package graph

import (
	"sync/atomic"

	"github.com/carloslema/lwtnn/internal/config"
	"github.com/carloslema/lwtnn/internal/stage"
)

// countingArch is a dense architecture that counts how often it is constructed.
const countingArch config.Architecture = "test_counting_dense"

var stageConstructions atomic.Int64

func init() {
	stage.Register(countingArch, func(nInputs int, layer *config.Layer) (stage.Stage, error) {
		stageConstructions.Add(1)
		dense := *layer
		dense.Architecture = config.ArchDense
		return stage.New(nInputs, &dense)
	})
}

func reversalLayer(arch config.Architecture) config.Layer {
	return config.Layer{
		Architecture: arch,
		Activation:   config.ActivationLinear,
		Weights: []float64{
			0, 0, 0, 1,
			0, 0, 1, 0,
			0, 1, 0, 0,
			1, 0, 0, 0,
		},
		Bias: []float64{0, 0, 0, 0},
	}
}

func input(slot, width int) config.Node {
	return config.Node{Kind: config.KindInput, Sources: []int{slot}, Index: width}
}

func feedForward(upstream, layer int) config.Node {
	return config.Node{Kind: config.KindFeedForward, Sources: []int{upstream}, Index: layer}
}

func concatenate(upstream ...int) config.Node {
	return config.Node{Kind: config.KindConcatenate, Sources: upstream}
}
