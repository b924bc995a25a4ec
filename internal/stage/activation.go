package stage

import (
	"math"

	"github.com/carloslema/lwtnn/internal/config"
	"github.com/carloslema/lwtnn/internal/fault"
)

// activationFunc rewrites a vector in place.
type activationFunc func(v []float64)

func activationFor(a config.Activation) (activationFunc, error) {
	switch a {
	case "", config.ActivationLinear:
		return func([]float64) {}, nil
	case config.ActivationSigmoid:
		return elementwise(sigmoid), nil
	case config.ActivationHardSigmoid:
		return elementwise(hardSigmoid), nil
	case config.ActivationTanh:
		return elementwise(math.Tanh), nil
	case config.ActivationRectified:
		return elementwise(func(x float64) float64 { return math.Max(0, x) }), nil
	case config.ActivationSoftmax:
		return softmax, nil
	default:
		return nil, fault.Configf(fault.NoIndex, "unknown activation '%s'", a)
	}
}

func elementwise(f func(float64) float64) activationFunc {
	return func(v []float64) {
		for i, x := range v {
			v[i] = f(x)
		}
	}
}

func sigmoid(x float64) float64 {
	// avoid exp overflow for large negative inputs
	if x < -30 {
		return 0
	}
	return 1 / (1 + math.Exp(-x))
}

func hardSigmoid(x float64) float64 {
	return math.Min(1, math.Max(0, 0.2*x+0.5))
}

func softmax(v []float64) {
	if len(v) == 0 {
		return
	}
	peak := v[0]
	for _, x := range v[1:] {
		peak = math.Max(peak, x)
	}
	var sum float64
	for i, x := range v {
		v[i] = math.Exp(x - peak)
		sum += v[i]
	}
	for i := range v {
		v[i] /= sum
	}
}
