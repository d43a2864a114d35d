// Package ollamabackend adapts the native Ollama API client to the llm
// backend contract and registers itself under the name "ollama" on import.
// Unlike the OpenAI adapter's compatibility surface, this backend speaks
// Ollama's own chat protocol.
package ollamabackend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"

	"github.com/ronin-hq/ronin/chat"
	"github.com/ronin-hq/ronin/llm"
)

// BackendName is the name this adapter registers under.
const BackendName = "ollama"

// defaultHost is used when the access config names no endpoint.
const defaultHost = "http://localhost:11434"

func init() {
	llm.Register(&backend{})
}

type backend struct{}

func (b *backend) Name() string { return BackendName }

// Create validates the access settings and returns a handle holding a
// configured API client. The Ollama daemon is not contacted here.
func (b *backend) Create(provider llm.Provider, access llm.AccessConfig, model llm.ModelConfig) (llm.LLM, error) {
	if provider != llm.ProviderOllama {
		return nil, &llm.UnsupportedProviderError{Backend: BackendName, Provider: provider}
	}
	if access.Model == "" {
		return nil, &llm.MissingCredentialsError{Backend: BackendName, Provider: provider, Setting: "model"}
	}

	host := access.Endpoint
	if host == "" {
		host = defaultHost
	}
	baseURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama endpoint %q: %w", host, err)
	}

	httpClient := &http.Client{Timeout: model.Timeout}
	return &ollamaLLM{
		client: api.NewClient(baseURL, httpClient),
		model:  access.Model,
		config: model,
	}, nil
}

// Probe checks that the Ollama daemon is reachable.
func (b *backend) Probe(ctx context.Context, access llm.AccessConfig) error {
	host := access.Endpoint
	if host == "" {
		host = defaultHost
	}
	baseURL, err := url.Parse(host)
	if err != nil {
		return fmt.Errorf("invalid Ollama endpoint %q: %w", host, err)
	}
	client := api.NewClient(baseURL, http.DefaultClient)
	if err := client.Heartbeat(ctx); err != nil {
		return &llm.InvocationError{Backend: BackendName, Provider: llm.ProviderOllama, Err: err}
	}
	return nil
}

// ollamaLLM is one API client bound to one local model.
type ollamaLLM struct {
	client *api.Client
	model  string
	config llm.ModelConfig
}

func (l *ollamaLLM) Provider() llm.Provider { return llm.ProviderOllama }

func (l *ollamaLLM) Backend() string { return BackendName }

// Chat sends the conversation in one non-streaming chat request. The Ollama
// client delivers the reply through a callback even when not streaming, so
// the callback accumulates the final message content.
func (l *ollamaLLM) Chat(ctx context.Context, messages []chat.Message) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    l.model,
		Messages: toOllamaMessages(messages),
		Stream:   &stream,
		Options:  l.options(),
	}

	var content string
	err := l.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content += resp.Message.Content
		return nil
	})
	if err != nil {
		return "", &llm.InvocationError{Backend: BackendName, Provider: llm.ProviderOllama, Err: err}
	}
	if content == "" {
		return "", &llm.InvocationError{Backend: BackendName, Provider: llm.ProviderOllama, Err: llm.ErrEmptyResponse}
	}
	return content, nil
}

// options maps the model config onto Ollama request options, forwarding
// numeric settings unchanged.
func (l *ollamaLLM) options() map[string]any {
	opts := map[string]any{}
	if maxLen := l.config.EffectiveMaxLength(); maxLen > 0 {
		opts["num_predict"] = maxLen
	}
	if l.config.Temperature != 0 {
		opts["temperature"] = l.config.Temperature
	}
	if l.config.Seed != nil {
		opts["seed"] = *l.config.Seed
	}
	return opts
}

// toOllamaMessages converts normalized messages to the API type, preserving
// order.
func toOllamaMessages(msgs []chat.Message) []api.Message {
	out := make([]api.Message, len(msgs))
	for i, m := range msgs {
		out[i] = api.Message{Role: string(m.Role), Content: m.Content}
	}
	return out
}
