package llm

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Backend is the adapter contract every backend integration satisfies. A
// backend translates the normalized message sequence into its SDK's call and
// the SDK's response back into plain text.
type Backend interface {
	// Name returns the backend's unique registration name.
	Name() string

	// Create validates that the provider is supported and the required
	// access settings are present, then returns a ready LLM handle. Create
	// may build a client object but must not perform network I/O.
	Create(provider Provider, access AccessConfig, model ModelConfig) (LLM, error)
}

// Prober is an optional interface a backend implements when it can cheaply
// check that its remote service is reachable. Probing is an explicit
// operation, never part of Create.
type Prober interface {
	Probe(ctx context.Context, access AccessConfig) error
}

var (
	backendsMu sync.RWMutex
	backends   = map[string]Backend{}
)

// Register makes a backend available to the loader by name. Backend adapter
// packages call Register from an init function, so an adapter is available
// exactly when its package is imported. Register panics if the backend is
// nil or the name is already taken, mirroring database/sql driver
// registration.
func Register(b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	if b == nil {
		panic("llm: Register backend is nil")
	}
	if _, dup := backends[b.Name()]; dup {
		panic(fmt.Sprintf("llm: Register called twice for backend %q", b.Name()))
	}
	backends[b.Name()] = b
}

// Backends returns the names of all registered backends, sorted.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookupBackend returns the registered backend with the given name.
func lookupBackend(name string) (Backend, bool) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	b, ok := backends[name]
	return b, ok
}
