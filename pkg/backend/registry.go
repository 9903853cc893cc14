package backend

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores backends by name, providing discovery and duplication
// safeguards. A converter holds one and resolves per-request backend
// overrides through it.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]Backend),
	}
}

// Register adds a backend by its Name(). Duplicate names return an error.
func (r *Registry) Register(b Backend) error {
	if b == nil {
		return fmt.Errorf("backend: backend is required")
	}
	name := b.Name()
	if name == "" {
		return fmt.Errorf("backend: backend name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[name]; exists {
		return fmt.Errorf("backend: %q already registered", name)
	}

	r.backends[name] = b
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(b Backend) {
	if err := r.Register(b); err != nil {
		panic(err)
	}
}

// Get retrieves a backend by name. The error lists registered names so a
// mistyped request option is easy to diagnose.
func (r *Registry) Get(name string) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.backends[name]
	if !ok {
		known := r.namesLocked()
		if len(known) == 0 {
			return nil, fmt.Errorf("backend: %q not found (none registered)", name)
		}
		return nil, fmt.Errorf("backend: %q not found (registered: %s)", name, strings.Join(known, ", "))
	}
	return b, nil
}

// Names returns a sorted list of registered backend names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.namesLocked()
}

// Has reports whether a backend is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.backends[name]
	return ok
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
