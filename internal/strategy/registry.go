package strategy

import (
	"sort"
	"sync"

	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Constructor builds a strategy from the full configuration.
type Constructor func(cfg config.Config) (Strategy, error)

// Registry maps strategy names to constructors.
type Registry struct {
	constructors map[string]Constructor
	mu           sync.RWMutex
}

// NewRegistry returns a registry holding the built-in strategies.
func NewRegistry() *Registry {
	r := &Registry{
		constructors: make(map[string]Constructor),
	}

	r.constructors[NameDualMA] = NewDualMA
	r.constructors[NameMACD] = NewMACD
	r.constructors[NameRSI] = NewRSI

	return r
}

// Register adds a constructor under name.
func (r *Registry) Register(name string, constructor Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[name]; exists {
		return errors.Newf(errors.ErrCodeStrategyConfigError, "strategy %s already registered", name)
	}

	r.constructors[name] = constructor

	return nil
}

// New builds the strategy named by cfg.Strategy.Name.
func (r *Registry) New(cfg config.Config) (Strategy, error) {
	r.mu.RLock()
	constructor, ok := r.constructors[cfg.Strategy.Name]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy %q", cfg.Strategy.Name)
	}

	return constructor(cfg)
}

// Names lists the registered strategies alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
