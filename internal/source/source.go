// Package source provides the raw input vectors a graph is evaluated against.
package source

import (
	"slices"

	"github.com/carloslema/lwtnn/internal/fault"
)

// Source supplies the input vector for an external input slot.
//
// Implementations must be safe to query repeatedly and, when a graph is
// evaluated from several goroutines, concurrently.
type Source interface {
	At(slot int) ([]float64, error)
}

// VectorSource serves caller-supplied vectors, one per slot.
type VectorSource struct {
	inputs [][]float64
}

// NewVectorSource copies vectors so later changes by the caller are not seen.
func NewVectorSource(vectors [][]float64) *VectorSource {
	inputs := make([][]float64, len(vectors))
	for i, v := range vectors {
		inputs[i] = slices.Clone(v)
	}
	return &VectorSource{inputs: inputs}
}

// At returns a copy of the vector stored for slot.
func (s *VectorSource) At(slot int) ([]float64, error) {
	if slot < 0 || slot >= len(s.inputs) {
		return nil, fault.Evalf("vector source: no source vector defined at %d", slot)
	}
	return slices.Clone(s.inputs[slot]), nil
}

// Len reports the number of slots.
func (s *VectorSource) Len() int { return len(s.inputs) }

// DummySource synthesises [0, 1, ..., width-1] for every slot. It validates a
// configuration end to end without real data.
type DummySource struct {
	sizes []int
}

func NewDummySource(sizes []int) *DummySource {
	return &DummySource{sizes: slices.Clone(sizes)}
}

func (s *DummySource) At(slot int) ([]float64, error) {
	if slot < 0 || slot >= len(s.sizes) {
		return nil, fault.Evalf("dummy source: no size defined at %d", slot)
	}
	vec := make([]float64, max(s.sizes[slot], 0))
	for i := range vec {
		vec[i] = float64(i)
	}
	return vec, nil
}

// Len reports the number of slots.
func (s *DummySource) Len() int { return len(s.sizes) }
