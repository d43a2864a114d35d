package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ronin-hq/ronin/llm"
)

// clearEnv blanks the variables applyEnv and Access read so tests do not
// pick up the host environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "OPENAI_MODEL_NAME",
		"AZURE_OPENAI_API_KEY", "AZURE_OPENAI_SERVICE", "AZURE_OPENAI_ENDPOINT",
		"AZURE_OPENAI_API_VERSION", "AZURE_OPENAI_CHATGPT_DEPLOYMENT",
		"OLLAMA_HOST", "OLLAMA_MODEL",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return dir
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenAI.Model != "" || cfg.Chat.Provider != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoad_ReadsYAML(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, `
openai:
  model: gpt-4o-mini
ollama:
  host: http://box:11434
  model: llama3
chat:
  provider: ollama
  max_length: 300
  requests_per_minute: 30
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected openai model: %q", cfg.OpenAI.Model)
	}
	if cfg.Ollama.Host != "http://box:11434" || cfg.Ollama.Model != "llama3" {
		t.Fatalf("unexpected ollama settings: %+v", cfg.Ollama)
	}
	if cfg.Chat.Provider != "ollama" || cfg.Chat.MaxLength != 300 || cfg.Chat.RequestsPerMinute != 30 {
		t.Fatalf("unexpected chat settings: %+v", cfg.Chat)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, "openai: [not: a: mapping")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_EnvFillsEmptySettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_MODEL_NAME", "gpt-4.1")
	t.Setenv("OLLAMA_MODEL", "mistral")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenAI.Model != "gpt-4.1" {
		t.Fatalf("expected env model, got %q", cfg.OpenAI.Model)
	}
	if cfg.Ollama.Model != "mistral" {
		t.Fatalf("expected env ollama model, got %q", cfg.Ollama.Model)
	}
}

func TestLoad_FileWinsOverEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_MODEL_NAME", "from-env")
	dir := writeConfig(t, "openai:\n  model: from-file\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenAI.Model != "from-file" {
		t.Fatalf("expected file value to win, got %q", cfg.OpenAI.Model)
	}
}

func TestLoad_AzureEndpointDerivedFromService(t *testing.T) {
	clearEnv(t)
	t.Setenv("AZURE_OPENAI_SERVICE", "unit")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Azure.Endpoint != "https://unit.openai.azure.com/" {
		t.Fatalf("unexpected derived endpoint: %q", cfg.Azure.Endpoint)
	}
}

func TestLoad_ExplicitAzureEndpointWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("AZURE_OPENAI_SERVICE", "unit")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://custom.example.com/")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Azure.Endpoint != "https://custom.example.com/" {
		t.Fatalf("expected explicit endpoint to win, got %q", cfg.Azure.Endpoint)
	}
}

func TestAccess_PerProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("AZURE_OPENAI_API_KEY", "sk-azure")

	cfg := &Config{
		OpenAI: OpenAISettings{Model: "gpt-4o", BaseURL: "https://proxy.example.com/v1"},
		Azure: AzureSettings{
			Endpoint:   "https://unit.openai.azure.com/",
			APIVersion: "2024-02-01",
			Deployment: "gpt4",
		},
		Ollama: OllamaSettings{Host: "http://box:11434", Model: "llama3"},
	}

	openai := cfg.Access(llm.ProviderOpenAI)
	if openai.APIKey != "sk-openai" || openai.Model != "gpt-4o" || openai.Endpoint != "https://proxy.example.com/v1" {
		t.Fatalf("unexpected openai access: %+v", openai)
	}

	azure := cfg.Access(llm.ProviderAzure)
	if azure.APIKey != "sk-azure" || azure.Deployment != "gpt4" || azure.APIVersion != "2024-02-01" {
		t.Fatalf("unexpected azure access: %+v", azure)
	}

	ollama := cfg.Access(llm.ProviderOllama)
	if ollama.APIKey != "" || ollama.Endpoint != "http://box:11434" || ollama.Model != "llama3" {
		t.Fatalf("unexpected ollama access: %+v", ollama)
	}
}

func TestModel_OverrideAndDefaults(t *testing.T) {
	cfg := &Config{Chat: ChatSettings{MaxLength: 300, RequestsPerMinute: 10}}

	model := cfg.Model(0)
	if model.MaxLength != 300 || model.RequestsPerMinute != 10 {
		t.Fatalf("unexpected model config: %+v", model)
	}

	model = cfg.Model(50)
	if model.MaxLength != 50 {
		t.Fatalf("expected override to win, got %d", model.MaxLength)
	}
}

func TestProvider_Resolution(t *testing.T) {
	cfg := &Config{}

	p, err := cfg.Provider("")
	if err != nil || p != llm.ProviderOpenAI {
		t.Fatalf("expected openai default, got %v %v", p, err)
	}

	cfg.Chat.Provider = "ollama"
	p, err = cfg.Provider("")
	if err != nil || p != llm.ProviderOllama {
		t.Fatalf("expected configured ollama, got %v %v", p, err)
	}

	p, err = cfg.Provider("azure")
	if err != nil || p != llm.ProviderAzure {
		t.Fatalf("expected override azure, got %v %v", p, err)
	}

	if _, err := cfg.Provider("hal9000"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
