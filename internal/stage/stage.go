package stage

import (
	"github.com/carloslema/lwtnn/internal/config"
)

// Stage is a fixed transform from an input vector to a vector of NOutputs
// elements. Implementations hold no mutable state, so one Stage may serve any
// number of nodes and goroutines.
type Stage interface {
	NInputs() int
	NOutputs() int
	Transform(in []float64) ([]float64, error)
}

// Constructor builds a Stage for vectors of nInputs elements. Shape problems
// in the layer are reported as configuration faults.
type Constructor func(nInputs int, layer *config.Layer) (Stage, error)
