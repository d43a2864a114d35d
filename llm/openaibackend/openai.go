// Package openaibackend adapts the official OpenAI Go SDK to the llm
// backend contract. It reaches the public OpenAI API, Azure OpenAI
// deployments, and any OpenAI-compatible endpoint (including Ollama's /v1
// surface), and registers itself under the name "openai" on import.
package openaibackend

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"

	"github.com/ronin-hq/ronin/chat"
	"github.com/ronin-hq/ronin/llm"
)

// BackendName is the name this adapter registers under.
const BackendName = "openai"

// defaultOpenAIModel is requested when the access config names no model.
const defaultOpenAIModel = "gpt-4o"

// defaultOllamaBaseURL is the OpenAI-compatible surface of a local Ollama.
const defaultOllamaBaseURL = "http://localhost:11434/v1"

func init() {
	llm.Register(&backend{})
}

type backend struct{}

func (b *backend) Name() string { return BackendName }

// Create validates the access settings for the provider and returns a handle
// holding a configured SDK client. No network call is made here; the SDK
// connects lazily on the first request.
func (b *backend) Create(provider llm.Provider, access llm.AccessConfig, model llm.ModelConfig) (llm.LLM, error) {
	var (
		clientOpts []option.RequestOption
		modelName  string
	)

	switch provider {
	case llm.ProviderOpenAI:
		if access.APIKey == "" {
			return nil, &llm.MissingCredentialsError{Backend: BackendName, Provider: provider, Setting: "api key"}
		}
		clientOpts = append(clientOpts, option.WithAPIKey(access.APIKey))
		if access.Endpoint != "" {
			clientOpts = append(clientOpts, option.WithBaseURL(access.Endpoint))
		}
		modelName = access.Model
		if modelName == "" {
			modelName = defaultOpenAIModel
		}

	case llm.ProviderAzure:
		if access.APIKey == "" {
			return nil, &llm.MissingCredentialsError{Backend: BackendName, Provider: provider, Setting: "api key"}
		}
		if access.Endpoint == "" {
			return nil, &llm.MissingCredentialsError{Backend: BackendName, Provider: provider, Setting: "endpoint"}
		}
		if access.APIVersion == "" {
			return nil, &llm.MissingCredentialsError{Backend: BackendName, Provider: provider, Setting: "api version"}
		}
		if access.Deployment == "" {
			return nil, &llm.MissingCredentialsError{Backend: BackendName, Provider: provider, Setting: "deployment"}
		}
		clientOpts = append(clientOpts,
			azure.WithEndpoint(access.Endpoint, access.APIVersion),
			azure.WithAPIKey(access.APIKey),
		)
		// Azure routes by deployment name rather than model name.
		modelName = access.Deployment

	case llm.ProviderOllama:
		if access.Model == "" {
			return nil, &llm.MissingCredentialsError{Backend: BackendName, Provider: provider, Setting: "model"}
		}
		baseURL := access.Endpoint
		if baseURL == "" {
			baseURL = defaultOllamaBaseURL
		} else if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = strings.TrimSuffix(baseURL, "/") + "/v1"
		}
		// Ollama ignores the API key but the SDK wants one set.
		clientOpts = append(clientOpts,
			option.WithBaseURL(baseURL),
			option.WithAPIKey("ollama"),
		)
		modelName = access.Model

	default:
		return nil, &llm.UnsupportedProviderError{Backend: BackendName, Provider: provider}
	}

	if model.Timeout > 0 {
		clientOpts = append(clientOpts, option.WithRequestTimeout(model.Timeout))
	}

	return &openaiLLM{
		client:   openai.NewClient(clientOpts...),
		provider: provider,
		model:    modelName,
		config:   model,
	}, nil
}

// openaiLLM is one SDK client bound to one provider and model.
type openaiLLM struct {
	client   openai.Client
	provider llm.Provider
	model    string
	config   llm.ModelConfig
}

func (l *openaiLLM) Provider() llm.Provider { return l.provider }

func (l *openaiLLM) Backend() string { return BackendName }

// Chat sends the conversation in one chat-completion request and returns the
// first choice's content.
func (l *openaiLLM) Chat(ctx context.Context, messages []chat.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    l.model,
		Messages: toOpenAIMessages(messages),
	}
	if maxLen := l.config.EffectiveMaxLength(); maxLen > 0 {
		params.MaxCompletionTokens = openai.Int(int64(maxLen))
	}
	if l.config.Temperature != 0 {
		params.Temperature = openai.Float(l.config.Temperature)
	}
	if l.config.Seed != nil {
		params.Seed = openai.Int(int64(*l.config.Seed))
	}

	completion, err := l.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &llm.InvocationError{Backend: BackendName, Provider: l.provider, Err: err}
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", &llm.InvocationError{Backend: BackendName, Provider: l.provider, Err: llm.ErrEmptyResponse}
	}
	return completion.Choices[0].Message.Content, nil
}

// toOpenAIMessages converts normalized messages to the SDK union type,
// preserving order.
func toOpenAIMessages(msgs []chat.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, len(msgs))
	for i, m := range msgs {
		switch m.Role {
		case chat.RoleSystem:
			out[i] = openai.SystemMessage(m.Content)
		case chat.RoleAssistant:
			out[i] = openai.AssistantMessage(m.Content)
		default:
			out[i] = openai.UserMessage(m.Content)
		}
	}
	return out
}
