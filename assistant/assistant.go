// Package assistant defines the pluggable assistant contract, the
// process-wide assistant registry, and plugin discovery. Assistants are
// higher-level units of behavior built on an LLM handle and identified by a
// registry id; add-on packages contribute assistants through registration
// hooks discovered at startup.
package assistant

import (
	"context"

	"github.com/ronin-hq/ronin/chat"
	"github.com/ronin-hq/ronin/llm"
)

// Assistant is a conversational unit of behavior. Respond sends one user
// message, blocks until the assistant's reply is available, and returns it.
type Assistant interface {
	// Respond sends the user's message and returns the assistant's reply.
	Respond(ctx context.Context, message string) (chat.Message, error)

	// History returns the conversation so far, in order.
	History() []chat.Message
}

// Config is what a registered assistant factory receives to build an
// instance. The LLM handle is constructed by the caller (usually through the
// loader) so assistants stay backend-agnostic.
type Config struct {
	// LLM is the handle the assistant chats through. Required.
	LLM llm.LLM

	// SystemPrompt overrides the assistant's default system template text
	// when non-empty.
	SystemPrompt string

	// SystemValues are bound into the system template on every turn.
	SystemValues map[string]string
}

// Factory builds an assistant instance from a Config.
type Factory func(Config) (Assistant, error)

// Descriptor describes one registrable assistant.
type Descriptor struct {
	// ID is the registry identifier, unique within the process.
	ID string
	// Summary is a one-line description shown by listings.
	Summary string
	// New builds an instance. Required.
	New Factory
}
