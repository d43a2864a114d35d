package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ronin-hq/ronin/assistant"
	"github.com/ronin-hq/ronin/chat"
	"github.com/ronin-hq/ronin/llm"
)

func TestBuildAssistant_UnknownAssistant(t *testing.T) {
	_, err := buildAssistant("missing", "", "", 0)
	if !errors.Is(err, assistant.ErrUnknownAssistant) {
		t.Fatalf("expected ErrUnknownAssistant, got %v", err)
	}
}

func TestBuildAssistant_UnknownProvider(t *testing.T) {
	_, err := buildAssistant("base-chat-assistant", "", "hal9000", 0)
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestBuildAssistant_MissingCredentials(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := buildAssistant("base-chat-assistant", "", "openai", 0)
	var credErr *llm.MissingCredentialsError
	if !errors.As(err, &credErr) {
		t.Fatalf("expected *MissingCredentialsError, got %v", err)
	}
}

// canned is a minimal assistant for transcript tests.
type canned struct {
	history []chat.Message
}

func (a *canned) Respond(_ context.Context, message string) (chat.Message, error) {
	reply := chat.AssistantMessage("ok")
	a.history = append(a.history, chat.UserMessage(message), reply)
	return reply, nil
}

func (a *canned) History() []chat.Message { return a.history }

func TestSaveTranscript_NoPathIsNoOp(t *testing.T) {
	if code := saveTranscript(&canned{}, ""); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestSaveTranscript_WritesJSON(t *testing.T) {
	inst := &canned{}
	if _, err := inst.Respond(context.Background(), "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if code := saveTranscript(inst, path); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading transcript: %v", err)
	}
	var records []chat.Message
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("parsing transcript: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestSaveTranscript_BadPath(t *testing.T) {
	if code := saveTranscript(&canned{}, "/nonexistent/dir/out.json"); code != 2 {
		t.Fatalf("expected exit code 2 for unwritable path, got %d", code)
	}
}
