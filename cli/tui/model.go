// Package tui provides the interactive chat session for the ronin CLI using
// the Bubble Tea framework.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ronin-hq/ronin/assistant"
	"github.com/ronin-hq/ronin/chat"
)

// opener is implemented by assistants that can open the conversation
// themselves.
type opener interface {
	Open(ctx context.Context, values map[string]string) (chat.Message, error)
}

// replyMsg carries an assistant reply into the update loop.
type replyMsg struct {
	message chat.Message
}

// errMsg carries a failed exchange into the update loop.
type errMsg struct {
	err error
}

// Model is the root Bubble Tea model for a chat session.
type Model struct {
	assistant assistant.Assistant
	title     string
	initial   string

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	turns   []chat.Message
	waiting bool
	err     error
	width   int
	height  int
	ready   bool
}

// New creates a chat session model. If initial is non-empty it is sent as
// the first user message; otherwise a proactive assistant opens the
// conversation itself.
func New(a assistant.Assistant, title, initial string) *Model {
	ta := textarea.New()
	ta.Placeholder = "Send a message (esc to quit)"
	ta.Focus()
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(spinnerStyle),
	)

	return &Model{
		assistant: a,
		title:     title,
		initial:   initial,
		textarea:  ta,
		spinner:   sp,
		width:     80,
		height:    24,
	}
}

// Run starts the chat session and blocks until the user quits.
func Run(a assistant.Assistant, title, initial string) error {
	_, err := tea.NewProgram(New(a, title, initial), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	switch {
	case m.initial != "":
		cmds = append(cmds, m.send(m.initial), m.spinner.Tick)
		m.waiting = true
	default:
		if op, ok := m.assistant.(opener); ok {
			cmds = append(cmds, m.open(op), m.spinner.Tick)
			m.waiting = true
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Send):
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.textarea.Value())
			if text == "" {
				return m, nil
			}
			m.textarea.Reset()
			m.turns = append(m.turns, chat.UserMessage(text))
			m.waiting = true
			m.err = nil
			m.refreshViewport()
			return m, tea.Batch(m.send(text), m.spinner.Tick)
		}

	case replyMsg:
		m.waiting = false
		m.turns = append(m.turns, msg.message)
		m.refreshViewport()
		return m, nil

	case errMsg:
		m.waiting = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ronin — "+m.title) + "\n\n")
	b.WriteString(m.viewport.View() + "\n")

	switch {
	case m.waiting:
		b.WriteString(m.spinner.View() + " thinking...\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n")
	default:
		b.WriteString("\n")
	}

	b.WriteString(m.textarea.View() + "\n")
	b.WriteString(helpStyle.Render("enter: send • esc: quit"))
	return b.String()
}

// send dispatches one exchange with the assistant.
func (m *Model) send(text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.assistant.Respond(context.Background(), text)
		if err != nil {
			return errMsg{err: err}
		}
		return replyMsg{message: reply}
	}
}

// open asks a proactive assistant for its opening message.
func (m *Model) open(op opener) tea.Cmd {
	return func() tea.Msg {
		reply, err := op.Open(context.Background(), nil)
		if err != nil {
			return errMsg{err: err}
		}
		return replyMsg{message: reply}
	}
}

// layout sizes the viewport and textarea to the terminal.
func (m *Model) layout() {
	chromeHeight := 8 // title, status, textarea, help
	vpHeight := m.height - chromeHeight
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(m.width)
	m.refreshViewport()
}

// refreshViewport re-renders the conversation and scrolls to the bottom.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for i, turn := range m.turns {
		if i > 0 {
			b.WriteString("\n")
		}
		label := assistantLabelStyle.Render("Assistant")
		if turn.Role == chat.RoleUser {
			label = userLabelStyle.Render("User")
		}
		b.WriteString(label + "\n" + turn.Content + "\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}
