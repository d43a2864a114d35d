package llm

import "fmt"

// Provider names the remote model family a chat request targets. It is
// orthogonal to the backend used to reach it: the same provider may be
// reachable through more than one backend SDK.
type Provider string

const (
	// ProviderOpenAI targets the public OpenAI API.
	ProviderOpenAI Provider = "openai"
	// ProviderAzure targets an Azure-hosted OpenAI deployment.
	ProviderAzure Provider = "azure"
	// ProviderOllama targets a local or remote Ollama instance.
	ProviderOllama Provider = "ollama"
)

// Providers returns all known providers.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderAzure, ProviderOllama}
}

// ParseProvider converts a string into a Provider, failing on unknown names.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderOpenAI, ProviderAzure, ProviderOllama:
		return Provider(s), nil
	}
	return "", fmt.Errorf("unknown LLM provider %q (known: openai, azure, ollama)", s)
}
