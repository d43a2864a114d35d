// Package config loads ronin's configuration from .ronin.yaml and the
// environment. Credentials are always environment-sourced; the YAML file
// only names models, endpoints, and chat defaults. The loaded Config
// produces the per-provider access settings that are passed opaquely to
// backend adapters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ronin-hq/ronin/llm"
)

// FileName is the config file looked up in the working directory.
const FileName = ".ronin.yaml"

// Config holds project-level configuration.
type Config struct {
	OpenAI OpenAISettings `yaml:"openai"`
	Azure  AzureSettings  `yaml:"azure"`
	Ollama OllamaSettings `yaml:"ollama"`
	Chat   ChatSettings   `yaml:"chat"`
}

// OpenAISettings configures the public OpenAI provider.
type OpenAISettings struct {
	Model   string `yaml:"model"`    // model name (default: backend-chosen)
	BaseURL string `yaml:"base_url"` // custom OpenAI-compatible base URL
}

// AzureSettings configures an Azure OpenAI deployment. Endpoint is derived
// from Service when not set explicitly.
type AzureSettings struct {
	Service    string `yaml:"service"`     // Azure OpenAI service name
	Endpoint   string `yaml:"endpoint"`    // full resource endpoint URL
	APIVersion string `yaml:"api_version"` // Azure OpenAI API version
	Deployment string `yaml:"deployment"`  // chat deployment name
}

// OllamaSettings configures a local or remote Ollama instance.
type OllamaSettings struct {
	Host  string `yaml:"host"`  // daemon URL (default: http://localhost:11434)
	Model string `yaml:"model"` // model name, required to chat via Ollama
}

// ChatSettings holds chat defaults.
type ChatSettings struct {
	Provider          string `yaml:"provider"`            // default provider (default: openai)
	MaxLength         int    `yaml:"max_length"`          // default response length bound
	RequestsPerMinute int    `yaml:"requests_per_minute"` // client-side rate limit, 0 = off
}

// Load reads .ronin.yaml from dir, applies environment overrides, and
// returns the config. A missing file yields a config built from the
// environment alone.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return &cfg, nil
}

// applyEnv fills settings the file left empty from the environment.
func (c *Config) applyEnv() {
	setIfEmpty(&c.OpenAI.Model, "OPENAI_MODEL_NAME")
	setIfEmpty(&c.Azure.Service, "AZURE_OPENAI_SERVICE")
	setIfEmpty(&c.Azure.Endpoint, "AZURE_OPENAI_ENDPOINT")
	setIfEmpty(&c.Azure.APIVersion, "AZURE_OPENAI_API_VERSION")
	setIfEmpty(&c.Azure.Deployment, "AZURE_OPENAI_CHATGPT_DEPLOYMENT")
	setIfEmpty(&c.Ollama.Host, "OLLAMA_HOST")
	setIfEmpty(&c.Ollama.Model, "OLLAMA_MODEL")

	if c.Azure.Endpoint == "" && c.Azure.Service != "" {
		c.Azure.Endpoint = fmt.Sprintf("https://%s.openai.azure.com/", c.Azure.Service)
	}
}

func setIfEmpty(dst *string, envKey string) {
	if *dst == "" {
		*dst = os.Getenv(envKey)
	}
}

// Access builds the access settings for the given provider. API keys are
// read from the environment here and nowhere else; backends decide whether
// a missing key is fatal.
func (c *Config) Access(provider llm.Provider) llm.AccessConfig {
	switch provider {
	case llm.ProviderOpenAI:
		return llm.AccessConfig{
			APIKey:   os.Getenv("OPENAI_API_KEY"),
			Endpoint: c.OpenAI.BaseURL,
			Model:    c.OpenAI.Model,
		}
	case llm.ProviderAzure:
		return llm.AccessConfig{
			APIKey:     os.Getenv("AZURE_OPENAI_API_KEY"),
			Endpoint:   c.Azure.Endpoint,
			APIVersion: c.Azure.APIVersion,
			Deployment: c.Azure.Deployment,
		}
	case llm.ProviderOllama:
		return llm.AccessConfig{
			Endpoint: c.Ollama.Host,
			Model:    c.Ollama.Model,
		}
	}
	return llm.AccessConfig{}
}

// Model builds the model settings for a chat, applying the config defaults
// under an explicit max-length override.
func (c *Config) Model(maxLength int) llm.ModelConfig {
	if maxLength == 0 {
		maxLength = c.Chat.MaxLength
	}
	return llm.ModelConfig{
		MaxLength:         maxLength,
		RequestsPerMinute: c.Chat.RequestsPerMinute,
	}
}

// Provider resolves the configured default provider, applying an explicit
// override first.
func (c *Config) Provider(override string) (llm.Provider, error) {
	name := override
	if name == "" {
		name = c.Chat.Provider
	}
	if name == "" {
		name = string(llm.ProviderOpenAI)
	}
	return llm.ParseProvider(name)
}
