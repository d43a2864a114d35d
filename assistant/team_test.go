package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/ronin-hq/ronin/chat"
)

// tagLLM prefixes the last user message with its tag, making the chain order
// visible in the final reply.
type tagLLM struct {
	scriptedLLM
	tag string
}

func (l *tagLLM) Chat(_ context.Context, messages []chat.Message) (string, error) {
	last := messages[len(messages)-1]
	return l.tag + ":" + last.Content, nil
}

func TestTeam_ChainsReplies(t *testing.T) {
	first := NewChatAssistant(&tagLLM{tag: "a"}, WithChatLogger(quietLogger()))
	second := NewChatAssistant(&tagLLM{tag: "b"}, WithChatLogger(quietLogger()))
	team := NewTeam(first, second)

	reply, err := team.Respond(context.Background(), "start")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Content != "b:a:start" {
		t.Fatalf("expected chained reply, got %q", reply.Content)
	}
}

func TestTeam_HistoryConcatenates(t *testing.T) {
	first := NewChatAssistant(&scriptedLLM{replies: []string{"one"}}, WithChatLogger(quietLogger()))
	second := NewChatAssistant(&scriptedLLM{replies: []string{"two"}}, WithChatLogger(quietLogger()))
	team := NewTeam(first, second)

	if _, err := team.Respond(context.Background(), "go"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history := team.History()
	if len(history) != 4 {
		t.Fatalf("expected 4 history entries, got %d", len(history))
	}
	var contents []string
	for _, m := range history {
		contents = append(contents, m.Content)
	}
	if strings.Join(contents, "|") != "go|one|one|two" {
		t.Fatalf("unexpected history: %v", contents)
	}
}

func TestTeam_Empty(t *testing.T) {
	team := NewTeam()

	if _, err := team.Respond(context.Background(), "go"); err == nil {
		t.Fatal("expected error for empty team")
	}
}
