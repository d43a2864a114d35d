package assistant

import (
	"fmt"
	"sync"
)

// Plugin is one add-on source of assistants. Its Register hook is invoked
// during discovery with a registrar scoped to the plugin's name.
type Plugin struct {
	// Name identifies the plugin in logs and registry entries. Required,
	// unique within the process.
	Name string
	// Register contributes the plugin's descriptors. Required.
	Register func(*Registrar) error
}

// Registrar collects a single plugin's registrations during discovery.
// Nothing reaches the registry until the plugin's Register hook returns
// without error, so a failing plugin leaves the registry exactly as it was.
type Registrar struct {
	registry *Registry
	plugin   string
	staged   []Descriptor
}

// Register stages a descriptor for the plugin being discovered. Conflicts
// with already-registered ids (from other sources) and with ids staged
// earlier in the same hook are reported immediately.
func (pr *Registrar) Register(d Descriptor) error {
	pr.registry.mu.RLock()
	prev, exists := pr.registry.entries[d.ID]
	pr.registry.mu.RUnlock()
	if exists && prev.plugin != pr.plugin {
		return fmt.Errorf("%w: %q", ErrDuplicateAssistant, d.ID)
	}
	for _, staged := range pr.staged {
		if staged.ID == d.ID {
			return fmt.Errorf("%w: %q", ErrDuplicateAssistant, d.ID)
		}
	}
	pr.staged = append(pr.staged, d)
	return nil
}

var (
	pluginsMu sync.RWMutex
	plugins   []Plugin
)

// RegisterPlugin adds a plugin to the process-wide discovery list. Add-on
// packages call it from an init function, so a plugin is discoverable
// exactly when its package is imported. RegisterPlugin panics on a nil hook
// or a duplicate name, mirroring database/sql driver registration.
func RegisterPlugin(p Plugin) {
	pluginsMu.Lock()
	defer pluginsMu.Unlock()
	if p.Name == "" || p.Register == nil {
		panic("assistant: RegisterPlugin with empty name or nil hook")
	}
	for _, known := range plugins {
		if known.Name == p.Name {
			panic(fmt.Sprintf("assistant: RegisterPlugin called twice for plugin %q", p.Name))
		}
	}
	plugins = append(plugins, p)
}

// Plugins returns the process-wide discovery list in registration order.
func Plugins() []Plugin {
	pluginsMu.RLock()
	defer pluginsMu.RUnlock()
	out := make([]Plugin, len(plugins))
	copy(out, plugins)
	return out
}

// Discover runs every plugin's registration hook against the registry.
// Discovery is best-effort: a plugin that returns an error or panics is
// logged and skipped without touching the registry, and discovery continues
// with the remaining plugins. No error escapes Discover.
//
// Discovery is idempotent for an unchanged plugin set: a second run finds
// every id already registered by the same plugin and commits nothing new.
func (r *Registry) Discover(plugins ...Plugin) {
	for _, p := range plugins {
		if err := r.discoverOne(p); err != nil {
			r.logger.Warn("skipping assistant plugin", "plugin", p.Name, "error", err)
			continue
		}
		r.logger.Info("loaded assistant plugin", "plugin", p.Name)
	}
}

// discoverOne stages one plugin's registrations and commits them only if the
// hook succeeds.
func (r *Registry) discoverOne(p Plugin) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("plugin panicked: %v", rec)
		}
	}()

	registrar := &Registrar{registry: r, plugin: p.Name}
	if err := p.Register(registrar); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Validate the whole batch before inserting anything so a conflicting
	// plugin leaves the registry untouched.
	for _, d := range registrar.staged {
		if prev, ok := r.entries[d.ID]; ok && prev.plugin != p.Name {
			return fmt.Errorf("%w: %q", ErrDuplicateAssistant, d.ID)
		}
	}
	for _, d := range registrar.staged {
		if err := r.registerLocked(p.Name, d); err != nil {
			return err
		}
	}
	return nil
}
