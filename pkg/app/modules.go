package app

import (
	"errors"
	"sync"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

type moduleRegistry struct {
	modules []contracts.AppModule
	names   map[string]bool
	mu      sync.RWMutex
}

func NewModuleRegistry() contracts.AppRegistry {
	return &moduleRegistry{names: make(map[string]bool)}
}

func (r *moduleRegistry) Register(module contracts.AppModule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.names[module.Name()] {
		return ErrDuplicateModule.WithDetail("module", module.Name())
	}
	r.names[module.Name()] = true
	r.modules = append(r.modules, module)
	return nil
}

func (r *moduleRegistry) All() []contracts.AppModule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]contracts.AppModule, len(r.modules))
	copy(result, r.modules)
	return result
}

// Shutdown stops modules in reverse registration order and collects every
// failure.
func (r *moduleRegistry) Shutdown(ctx contracts.AppContext) error {
	var errs []error
	modules := r.All()
	for i := len(modules) - 1; i >= 0; i-- {
		if err := modules[i].Stop(ctx); err != nil {
			errs = append(errs, ErrModuleStop.
				WithDetail("module", modules[i].Name()).
				WithCause(err))
		}
	}
	return errors.Join(errs...)
}
