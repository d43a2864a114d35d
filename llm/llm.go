// Package llm defines the normalized chat capability shared by all LLM
// backends, the backend adapter contract, and the loader that resolves which
// compiled-in backend serves a request.
//
// Backend adapter packages register themselves at init time (the
// database/sql driver idiom); importing an adapter package makes its backend
// available to the loader. Callers that need a specific backend construct it
// directly and skip the loader.
package llm

import (
	"context"
	"time"

	"github.com/ronin-hq/ronin/chat"
)

// DefaultMaxLength is the response length forwarded to backends when the
// model configuration does not set one.
const DefaultMaxLength = 700

// LLM is a ready-to-use handle on one remote model, reached through one
// backend. Chat blocks until the remote service replies or fails; a handle
// supports one in-flight Chat at a time. Handles hold no state beyond
// configuration and are cheap to discard and recreate.
type LLM interface {
	// Provider returns the model family this handle targets.
	Provider() Provider

	// Backend returns the name of the backend serving this handle.
	Backend() string

	// Chat sends the full ordered conversation in one exchange and returns
	// the assistant's reply as plain text. Message order is preserved
	// exactly; no reordering, deduplication, or dropping.
	Chat(ctx context.Context, messages []chat.Message) (string, error)
}

// AccessConfig carries provider-dependent access settings. It is sourced by
// the configuration layer and passed through to backends opaquely; which
// fields are required depends on the provider.
type AccessConfig struct {
	// APIKey authenticates against the remote service.
	APIKey string
	// Endpoint is the service base URL (Azure resource endpoint, Ollama
	// host, or an OpenAI-compatible URL).
	Endpoint string
	// APIVersion is the Azure OpenAI API version.
	APIVersion string
	// Deployment is the Azure OpenAI deployment name.
	Deployment string
	// Model is the model name to request.
	Model string
}

// ModelConfig carries model-behavior settings. Numeric settings are
// forwarded to the underlying service unchanged; backends never clamp them.
type ModelConfig struct {
	// MaxLength bounds the generated response length. Zero means
	// DefaultMaxLength; negative means no bound is sent.
	MaxLength int
	// Temperature is the sampling temperature.
	Temperature float64
	// Seed pins sampling for reproducible output when non-nil.
	Seed *int
	// Timeout bounds each remote call. Zero leaves the backend default.
	Timeout time.Duration
	// RequestsPerMinute rate-limits Chat calls on this handle. Zero means
	// unlimited.
	RequestsPerMinute int
}

// EffectiveMaxLength resolves MaxLength against the package default.
// It returns 0 when no bound should be sent.
func (c ModelConfig) EffectiveMaxLength() int {
	switch {
	case c.MaxLength > 0:
		return c.MaxLength
	case c.MaxLength < 0:
		return 0
	default:
		return DefaultMaxLength
	}
}
