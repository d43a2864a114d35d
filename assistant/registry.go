package assistant

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Sentinel errors for registry lookups and registration conflicts.
var (
	// ErrUnknownAssistant indicates no assistant is registered under the
	// requested id.
	ErrUnknownAssistant = errors.New("unknown assistant")
	// ErrDuplicateAssistant indicates the id is already registered.
	ErrDuplicateAssistant = errors.New("assistant already registered")
)

// entry records a registered descriptor together with the plugin that
// contributed it. Direct registrations carry an empty plugin name.
type entry struct {
	plugin string
	desc   Descriptor
}

// Registry maps assistant ids to descriptors. It is written during startup
// (direct Register calls and plugin discovery) and read-only afterwards;
// the mutex makes it safe if those phases ever overlap.
//
// Construction order matters: run Discover before handing the registry to
// application logic, and pass the registry by reference to whatever needs
// assistant lookup.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	logger  *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger used for discovery diagnostics.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[string]entry),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a descriptor directly, outside plugin discovery. It fails
// with ErrDuplicateAssistant if the id is already present.
func (r *Registry) Register(d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked("", d)
}

// registerLocked inserts a descriptor on behalf of a plugin. Re-registration
// of an id by the same named plugin is a no-op, which makes re-discovery of
// an unchanged plugin set idempotent; the same id from a different source is
// a conflict. Direct registrations (empty plugin) always conflict on a
// duplicate id.
func (r *Registry) registerLocked(plugin string, d Descriptor) error {
	if d.ID == "" {
		return errors.New("assistant descriptor has empty id")
	}
	if d.New == nil {
		return fmt.Errorf("assistant %q: descriptor has nil factory", d.ID)
	}
	if prev, ok := r.entries[d.ID]; ok {
		if plugin != "" && prev.plugin == plugin {
			return nil
		}
		return fmt.Errorf("%w: %q", ErrDuplicateAssistant, d.ID)
	}
	r.entries[d.ID] = entry{plugin: plugin, desc: d}
	return nil
}

// Get returns the descriptor registered under id. It fails with
// ErrUnknownAssistant, naming the known ids, if the id is absent.
func (r *Registry) Get(id string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q (available: %s)",
			ErrUnknownAssistant, id, strings.Join(r.idsLocked(), ", "))
	}
	return e.desc, nil
}

// IDs returns all registered assistant ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.idsLocked()
}

func (r *Registry) idsLocked() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered assistants.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
