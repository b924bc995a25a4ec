package stage

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/carloslema/lwtnn/internal/config"
	"github.com/carloslema/lwtnn/internal/fault"
)

var (
	mu           sync.RWMutex
	constructors = make(map[config.Architecture]Constructor)
)

func init() {
	Register(config.ArchDense, newDense)
	Register(config.ArchNormalization, newNormalization)
}

// Register makes a Constructor available under arch. Registering the same
// architecture twice is a programmer error and panics.
func Register(arch config.Architecture, ctor Constructor) {
	mu.Lock()
	defer mu.Unlock()

	if ctor == nil {
		panic(fmt.Sprintf("stage constructor for '%s' is nil", arch))
	}
	if _, exists := constructors[arch]; exists {
		panic(fmt.Sprintf("stage architecture '%s' already registered", arch))
	}
	slog.Debug("Registering stage architecture.", "architecture", arch)
	constructors[arch] = ctor
}

// Architectures lists the registered architecture names in sorted order.
func Architectures() []config.Architecture {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]config.Architecture, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds the Stage described by layer for inputs of width nInputs.
func New(nInputs int, layer *config.Layer) (Stage, error) {
	if layer == nil {
		return nil, fault.Configf(fault.NoIndex, "missing layer configuration")
	}

	mu.RLock()
	ctor, ok := constructors[layer.Architecture]
	mu.RUnlock()
	if !ok {
		return nil, fault.Configf(fault.NoIndex, "unknown layer architecture '%s'", layer.Architecture)
	}
	return ctor(nInputs, layer)
}
