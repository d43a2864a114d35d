package llm

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the loader and backends.
var (
	// ErrNoBackendAvailable indicates no backend adapter is compiled into
	// the binary. At least one adapter package must be imported.
	ErrNoBackendAvailable = errors.New("no LLM backend available")
	// ErrEmptyResponse indicates the remote service returned no generated
	// content.
	ErrEmptyResponse = errors.New("remote service returned no content")
)

// MissingCredentialsError reports a required access setting that was absent
// when a backend constructed an LLM handle. It indicates a setup defect and
// is never retried.
type MissingCredentialsError struct {
	Backend  string
	Provider Provider
	Setting  string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("%s backend: provider %s requires %s", e.Backend, e.Provider, e.Setting)
}

// UnsupportedProviderError reports a provider the chosen backend cannot
// reach. Callers needing that provider must select a different backend.
type UnsupportedProviderError struct {
	Backend  string
	Provider Provider
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("%s backend does not support provider %s", e.Backend, e.Provider)
}

// InvocationError wraps a transport, auth, or quota failure surfaced by the
// remote service, with enough context to name the backend and provider
// involved.
type InvocationError struct {
	Backend  string
	Provider Provider
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s backend (provider %s): %v", e.Backend, e.Provider, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }
