package llm

import (
	"log/slog"
	"sync"
)

// Precedence is the fixed order in which the loader prefers backends when
// more than one is available. It is a deliberate constant, not configurable:
// callers that need a specific backend construct its adapter directly.
var Precedence = []string{"openai", "ollama"}

// Availability is an immutable record of which backends were present when it
// was captured, ordered by Precedence. The loader never re-checks
// registration state after the record is built.
type Availability struct {
	backends []Backend
}

// Detect captures the current set of registered backends, ordered by
// Precedence. Backends registered under names outside Precedence are
// appended after it in registration-name order.
func Detect() Availability {
	var ordered []Backend
	seen := map[string]bool{}
	for _, name := range Precedence {
		if b, ok := lookupBackend(name); ok {
			ordered = append(ordered, b)
			seen[name] = true
		}
	}
	for _, name := range Backends() {
		if !seen[name] {
			b, _ := lookupBackend(name)
			ordered = append(ordered, b)
		}
	}
	return Availability{backends: ordered}
}

// NewAvailability builds an availability record from an explicit backend
// list, in the given order. Intended for tests and for callers that manage
// backend instances themselves.
func NewAvailability(backends ...Backend) Availability {
	return Availability{backends: backends}
}

// Backends returns the available backends in selection order.
func (a Availability) Backends() []Backend {
	out := make([]Backend, len(a.backends))
	copy(out, a.backends)
	return out
}

// Names returns the available backend names in selection order.
func (a Availability) Names() []string {
	names := make([]string, len(a.backends))
	for i, b := range a.backends {
		names[i] = b.Name()
	}
	return names
}

// Loader resolves which backend adapter serves a CreateLLM call. Resolution
// is a pure function of the availability record and Precedence: the same
// record always selects the same backend.
type Loader struct {
	avail  Availability
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(l *slog.Logger) LoaderOption {
	return func(ld *Loader) { ld.logger = l }
}

// NewLoader creates a Loader over the given availability record.
func NewLoader(avail Availability, opts ...LoaderOption) *Loader {
	ld := &Loader{avail: avail, logger: slog.Default()}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// CreateLLM selects a backend and constructs an LLM handle through it.
//
// Zero available backends fails with ErrNoBackendAvailable. Exactly one is
// selected silently. More than one logs a single "multiple LLM backends
// found" warning and selects the first in Precedence order; a multi-backend
// environment stays usable and the choice stays reproducible.
//
// When the model config sets RequestsPerMinute, the returned handle is
// wrapped with a client-side rate limiter.
func (ld *Loader) CreateLLM(provider Provider, access AccessConfig, model ModelConfig) (LLM, error) {
	switch len(ld.avail.backends) {
	case 0:
		return nil, ErrNoBackendAvailable
	case 1:
	default:
		ld.logger.Warn("multiple LLM backends found, using first by precedence",
			"available", ld.avail.Names(),
			"selected", ld.avail.backends[0].Name(),
		)
	}

	backend := ld.avail.backends[0]
	ld.logger.Info("loading LLM", "backend", backend.Name(), "provider", provider)

	handle, err := backend.Create(provider, access, model)
	if err != nil {
		return nil, err
	}
	if model.RequestsPerMinute > 0 {
		handle = withRateLimit(handle, model.RequestsPerMinute)
	}
	return handle, nil
}

var (
	detectOnce    sync.Once
	defaultLoader *Loader
)

// CreateLLM resolves a backend through the process-wide loader and returns
// an LLM handle. Availability is detected once, on first use, and never
// re-evaluated mid-process.
func CreateLLM(provider Provider, access AccessConfig, model ModelConfig) (LLM, error) {
	detectOnce.Do(func() {
		defaultLoader = NewLoader(Detect())
	})
	return defaultLoader.CreateLLM(provider, access, model)
}
