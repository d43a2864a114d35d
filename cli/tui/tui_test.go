package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ronin-hq/ronin/chat"
)

// stubAssistant replies with a fixed message and records what it was asked.
type stubAssistant struct {
	reply    string
	messages []string
	history  []chat.Message
}

func (a *stubAssistant) Respond(_ context.Context, message string) (chat.Message, error) {
	a.messages = append(a.messages, message)
	reply := chat.AssistantMessage(a.reply)
	a.history = append(a.history, chat.UserMessage(message), reply)
	return reply, nil
}

func (a *stubAssistant) History() []chat.Message {
	return a.history
}

func testModel() *Model {
	return New(&stubAssistant{reply: "hello"}, "test-assistant", "")
}

// --- Init tests ---

func TestInit_NoInitialMessage(t *testing.T) {
	m := testModel()

	m.Init()
	if m.waiting {
		t.Error("a plain assistant with no initial message should not be waiting")
	}
}

func TestInit_InitialMessageStartsExchange(t *testing.T) {
	m := New(&stubAssistant{reply: "hi"}, "test", "opening line")

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected a command sending the initial message")
	}
	if !m.waiting {
		t.Error("expected the model to be waiting on the reply")
	}
}

// proactiveStub also implements the opener contract.
type proactiveStub struct {
	stubAssistant
	opened bool
}

func (a *proactiveStub) Open(_ context.Context, _ map[string]string) (chat.Message, error) {
	a.opened = true
	reply := chat.AssistantMessage(a.reply)
	a.history = append(a.history, reply)
	return reply, nil
}

func TestInit_ProactiveAssistantOpens(t *testing.T) {
	a := &proactiveStub{stubAssistant: stubAssistant{reply: "What do you need?"}}
	m := New(a, "test", "")

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected a command for the opening exchange")
	}
	if !m.waiting {
		t.Error("expected the model to be waiting on the opening message")
	}
}

// --- Update tests ---

func TestUpdate_WindowSize(t *testing.T) {
	m := testModel()

	result, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if cmd != nil {
		t.Error("WindowSizeMsg should return nil cmd")
	}
	updated := result.(*Model)
	if updated.width != 120 || updated.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", updated.width, updated.height)
	}
	if !updated.ready {
		t.Error("expected the viewport to be ready after the first resize")
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	m := testModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("expected tea.Quit, got %v", msg)
	}
}

func TestUpdate_SendRecordsUserTurn(t *testing.T) {
	m := testModel()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.textarea.SetValue("hello there")

	result, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated := result.(*Model)
	if cmd == nil {
		t.Fatal("expected a command dispatching the exchange")
	}
	if !updated.waiting {
		t.Error("expected the model to be waiting")
	}
	if len(updated.turns) != 1 || updated.turns[0].Content != "hello there" {
		t.Fatalf("expected the user turn recorded, got %v", updated.turns)
	}
	if updated.textarea.Value() != "" {
		t.Error("expected the textarea to be cleared")
	}
}

func TestUpdate_SendIgnoredWhileWaiting(t *testing.T) {
	m := testModel()
	m.waiting = true
	m.textarea.SetValue("queued")

	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated := result.(*Model)
	if len(updated.turns) != 0 {
		t.Error("expected no turn while waiting on a reply")
	}
	if updated.textarea.Value() != "queued" {
		t.Error("expected the draft to survive")
	}
}

func TestUpdate_SendIgnoresBlankInput(t *testing.T) {
	m := testModel()
	m.textarea.SetValue("   ")

	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated := result.(*Model)
	if len(updated.turns) != 0 || updated.waiting {
		t.Error("expected blank input to be ignored")
	}
}

func TestUpdate_ReplyAppendsTurn(t *testing.T) {
	m := testModel()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.waiting = true

	result, _ := m.Update(replyMsg{message: chat.AssistantMessage("here you go")})
	updated := result.(*Model)
	if updated.waiting {
		t.Error("expected waiting to clear on reply")
	}
	if len(updated.turns) != 1 || updated.turns[0].Content != "here you go" {
		t.Fatalf("expected the reply recorded, got %v", updated.turns)
	}
}

func TestUpdate_ErrorShown(t *testing.T) {
	m := testModel()
	m.waiting = true

	result, _ := m.Update(errMsg{err: context.DeadlineExceeded})
	updated := result.(*Model)
	if updated.waiting {
		t.Error("expected waiting to clear on error")
	}
	if updated.err == nil {
		t.Error("expected the error to be kept for the view")
	}
}

// --- View tests ---

func TestView_ContainsTitleAndHelp(t *testing.T) {
	m := testModel()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	if !strings.Contains(view, "test-assistant") {
		t.Error("expected the assistant title in the view")
	}
	if !strings.Contains(view, "enter: send") {
		t.Error("expected the help line in the view")
	}
}

func TestView_ShowsError(t *testing.T) {
	m := testModel()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(errMsg{err: context.DeadlineExceeded})

	if !strings.Contains(m.View(), "error:") {
		t.Error("expected the error in the view")
	}
}

func TestView_ShowsSpinnerWhileWaiting(t *testing.T) {
	m := testModel()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.waiting = true

	if !strings.Contains(m.View(), "thinking...") {
		t.Error("expected the waiting indicator in the view")
	}
}

func TestSendCommand_DeliversReply(t *testing.T) {
	a := &stubAssistant{reply: "pong"}
	m := New(a, "test", "")

	msg := m.send("ping")()
	reply, ok := msg.(replyMsg)
	if !ok {
		t.Fatalf("expected replyMsg, got %T", msg)
	}
	if reply.message.Content != "pong" {
		t.Fatalf("unexpected reply: %+v", reply.message)
	}
	if len(a.messages) != 1 || a.messages[0] != "ping" {
		t.Fatalf("expected the assistant to receive the message, got %v", a.messages)
	}
}
