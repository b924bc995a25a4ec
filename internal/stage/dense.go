package stage

import (
	"github.com/carloslema/lwtnn/internal/config"
	"github.com/carloslema/lwtnn/internal/fault"
)

// dense computes activate(W·x + b) with W stored row-major, one row per output.
type dense struct {
	nIn      int
	nOut     int
	weights  []float64
	bias     []float64
	activate activationFunc
}

func newDense(nInputs int, layer *config.Layer) (Stage, error) {
	if nInputs <= 0 {
		return nil, fault.Configf(fault.NoIndex, "dense layer needs a positive input width, got %d", nInputs)
	}
	nWeights := len(layer.Weights)
	if nWeights == 0 || nWeights%nInputs != 0 {
		return nil, fault.Configf(fault.NoIndex,
			"dense layer: %d weights do not form rows of %d inputs", nWeights, nInputs)
	}
	nOut := nWeights / nInputs

	bias := make([]float64, nOut)
	switch len(layer.Bias) {
	case 0:
	case nOut:
		copy(bias, layer.Bias)
	default:
		return nil, fault.Configf(fault.NoIndex,
			"dense layer: bias has %d entries, expected %d", len(layer.Bias), nOut)
	}

	activate, err := activationFor(layer.Activation)
	if err != nil {
		return nil, err
	}

	return &dense{
		nIn:      nInputs,
		nOut:     nOut,
		weights:  append([]float64(nil), layer.Weights...),
		bias:     bias,
		activate: activate,
	}, nil
}

func (d *dense) NInputs() int  { return d.nIn }
func (d *dense) NOutputs() int { return d.nOut }

func (d *dense) Transform(in []float64) ([]float64, error) {
	if len(in) != d.nIn {
		return nil, fault.Evalf("dense layer: found vector of length %d, expected %d", len(in), d.nIn)
	}
	out := make([]float64, d.nOut)
	for r := range out {
		row := d.weights[r*d.nIn : (r+1)*d.nIn]
		sum := d.bias[r]
		for c, w := range row {
			sum += w * in[c]
		}
		out[r] = sum
	}
	d.activate(out)
	return out, nil
}
