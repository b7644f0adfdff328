package indicator

import (
	"sync"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// IndicatorRegistry manages configured indicators by key.
type IndicatorRegistry interface {
	RegisterIndicator(indicator Indicator) error
	GetIndicator(key string) (Indicator, error)
	// ListIndicators returns keys in registration order.
	ListIndicators() []string
	RemoveIndicator(key string) error
}

// IndicatorRegistryV1 manages all available indicators.
type IndicatorRegistryV1 struct {
	indicators map[string]Indicator
	order      []string
	mu         sync.RWMutex
}

// NewIndicatorRegistry creates a new indicator registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &IndicatorRegistryV1{
		indicators: make(map[string]Indicator),
		order:      nil,
		mu:         sync.RWMutex{},
	}
}

// RegisterIndicator adds an indicator to the registry.
func (r *IndicatorRegistryV1) RegisterIndicator(indicator Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := indicator.Key()
	if _, exists := r.indicators[key]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "RegisterIndicator: indicator with key %s already registered", key)
	}

	r.indicators[key] = indicator
	r.order = append(r.order, key)

	return nil
}

// GetIndicator retrieves an indicator by key.
func (r *IndicatorRegistryV1) GetIndicator(key string) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indicator, exists := r.indicators[key]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "GetIndicator: indicator with key %s not found", key)
	}

	return indicator, nil
}

// ListIndicators returns a list of all registered indicator keys.
func (r *IndicatorRegistryV1) ListIndicators() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, len(r.order))
	copy(keys, r.order)

	return keys
}

// RemoveIndicator removes an indicator from the registry.
func (r *IndicatorRegistryV1) RemoveIndicator(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indicators[key]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "RemoveIndicator: indicator with key %s not found", key)
	}

	delete(r.indicators, key)

	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	return nil
}
