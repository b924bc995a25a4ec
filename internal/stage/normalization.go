package stage

import (
	"github.com/carloslema/lwtnn/internal/config"
	"github.com/carloslema/lwtnn/internal/fault"
)

// normalization computes (x + bias) * weights element by element. Weights and
// Bias both carry one entry per input.
type normalization struct {
	scale  []float64
	offset []float64
}

func newNormalization(nInputs int, layer *config.Layer) (Stage, error) {
	if len(layer.Weights) != nInputs || len(layer.Bias) != nInputs {
		return nil, fault.Configf(fault.NoIndex,
			"normalization layer: got %d weights and %d bias entries, expected %d of each",
			len(layer.Weights), len(layer.Bias), nInputs)
	}
	if layer.Activation != "" && layer.Activation != config.ActivationLinear {
		return nil, fault.Configf(fault.NoIndex,
			"normalization layer does not apply activations, got '%s'", layer.Activation)
	}
	return &normalization{
		scale:  append([]float64(nil), layer.Weights...),
		offset: append([]float64(nil), layer.Bias...),
	}, nil
}

func (n *normalization) NInputs() int  { return len(n.scale) }
func (n *normalization) NOutputs() int { return len(n.scale) }

func (n *normalization) Transform(in []float64) ([]float64, error) {
	if len(in) != len(n.scale) {
		return nil, fault.Evalf("normalization layer: found vector of length %d, expected %d", len(in), len(n.scale))
	}
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = (x + n.offset[i]) * n.scale[i]
	}
	return out, nil
}
