package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ronin-hq/ronin/chat"
	"github.com/ronin-hq/ronin/llm"
)

// DefaultProactiveTrigger is the user message sent on behalf of the user
// when a proactive assistant opens the conversation.
const DefaultProactiveTrigger = "Generate 5 questions to the user that will help you get all the information " +
	"that is relevant for you to fulfill your task."

// ChatAssistant is the base conversational assistant: a system prompt, a
// rolling history, and an LLM handle. Every turn re-fills the system
// template and sends it ahead of the full history.
type ChatAssistant struct {
	llm             llm.LLM
	systemPrompt    chat.PromptTemplate
	userPrompt      chat.PromptTemplate
	assistantPrompt chat.PromptTemplate
	systemValues    map[string]string

	primingMessage string
	autoPrime      bool
	primed         bool

	history chat.Transcript
	logger  *slog.Logger
}

// ChatOption configures a ChatAssistant.
type ChatOption func(*ChatAssistant)

// WithSystemPrompt sets the system template.
func WithSystemPrompt(t chat.PromptTemplate) ChatOption {
	return func(a *ChatAssistant) { a.systemPrompt = t }
}

// WithUserPrompt sets the template shaping raw user turns. The default
// passes the message through verbatim.
func WithUserPrompt(t chat.PromptTemplate) ChatOption {
	return func(a *ChatAssistant) { a.userPrompt = t }
}

// WithAssistantPrompt sets the template shaping raw model replies. The
// default passes the reply through verbatim.
func WithAssistantPrompt(t chat.PromptTemplate) ChatOption {
	return func(a *ChatAssistant) { a.assistantPrompt = t }
}

// WithSystemValues binds values into the system template on every turn.
func WithSystemValues(values map[string]string) ChatOption {
	return func(a *ChatAssistant) { a.systemValues = values }
}

// WithPrimingMessage sets the message used to prime the assistant into its
// working state before the first real turn.
func WithPrimingMessage(message string) ChatOption {
	return func(a *ChatAssistant) { a.primingMessage = message }
}

// WithAutoPrime makes the assistant prime itself on its first Respond call.
func WithAutoPrime() ChatOption {
	return func(a *ChatAssistant) { a.autoPrime = true }
}

// WithChatLogger sets the assistant's logger.
func WithChatLogger(l *slog.Logger) ChatOption {
	return func(a *ChatAssistant) { a.logger = l }
}

// NewChatAssistant creates a ChatAssistant chatting through the given LLM
// handle.
func NewChatAssistant(model llm.LLM, opts ...ChatOption) *ChatAssistant {
	a := &ChatAssistant{
		llm:             model,
		systemPrompt:    chat.NewSystemTemplate("You are a helpful assistant."),
		userPrompt:      chat.PassthroughTemplate(chat.RoleUser),
		assistantPrompt: chat.PassthroughTemplate(chat.RoleAssistant),
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// History returns the conversation so far, excluding the system message.
func (a *ChatAssistant) History() []chat.Message {
	return a.history.Messages()
}

// Transcript returns the assistant's transcript for persistence.
func (a *ChatAssistant) Transcript() *chat.Transcript {
	return &a.history
}

// Reset discards the history. The next Respond call re-primes if auto-prime
// is set.
func (a *ChatAssistant) Reset() {
	a.history.Reset()
	a.primed = false
}

// Respond sends one user message with the full history and returns the
// assistant's reply. The user turn and the reply are both recorded.
func (a *ChatAssistant) Respond(ctx context.Context, message string) (chat.Message, error) {
	if a.autoPrime && !a.primed {
		if _, err := a.Prime(ctx); err != nil {
			return chat.Message{}, err
		}
	}

	userMsg, err := a.userPrompt.Fill(map[string]string{"message": message})
	if err != nil {
		return chat.Message{}, fmt.Errorf("building user message: %w", err)
	}

	systemMsg, err := a.systemPrompt.Fill(a.systemValues)
	if err != nil {
		return chat.Message{}, fmt.Errorf("building system message: %w", err)
	}

	a.history.Append(userMsg)
	messages := append([]chat.Message{systemMsg}, a.history.Messages()...)

	return a.complete(ctx, messages)
}

// Prime sends the priming message (without recording it) so the assistant
// reaches its working state; only the reply is recorded. Priming without a
// configured message is a logged no-op.
func (a *ChatAssistant) Prime(ctx context.Context) (chat.Message, error) {
	a.primed = true
	if a.primingMessage == "" {
		a.logger.Warn("no priming message set for assistant")
		return chat.Message{}, nil
	}

	systemMsg, err := a.systemPrompt.Fill(a.systemValues)
	if err != nil {
		return chat.Message{}, fmt.Errorf("building system message: %w", err)
	}

	a.logger.Debug("priming assistant")
	return a.complete(ctx, []chat.Message{systemMsg, chat.UserMessage(a.primingMessage)})
}

// complete runs one LLM exchange and records the shaped reply.
func (a *ChatAssistant) complete(ctx context.Context, messages []chat.Message) (chat.Message, error) {
	reply, err := a.llm.Chat(ctx, messages)
	if err != nil {
		return chat.Message{}, err
	}

	assistantMsg, err := a.assistantPrompt.Fill(map[string]string{"message": reply})
	if err != nil {
		return chat.Message{}, fmt.Errorf("building assistant message: %w", err)
	}
	a.history.Append(assistantMsg)
	return assistantMsg, nil
}

// ProactiveChatAssistant opens conversations on its own: a trigger template
// asks the model to address the user first.
type ProactiveChatAssistant struct {
	*ChatAssistant
	trigger chat.PromptTemplate
}

// ProactiveOption configures a ProactiveChatAssistant.
type ProactiveOption func(*ProactiveChatAssistant)

// WithTrigger replaces the default opening trigger template.
func WithTrigger(t chat.PromptTemplate) ProactiveOption {
	return func(a *ProactiveChatAssistant) { a.trigger = t }
}

// NewProactiveChatAssistant creates a proactive assistant over a base
// ChatAssistant configuration.
func NewProactiveChatAssistant(model llm.LLM, chatOpts []ChatOption, opts ...ProactiveOption) *ProactiveChatAssistant {
	a := &ProactiveChatAssistant{
		ChatAssistant: NewChatAssistant(model, chatOpts...),
		trigger:       chat.NewUserTemplate(DefaultProactiveTrigger),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Open sends the trigger on behalf of the user and returns the assistant's
// opening message. Only the reply is recorded.
func (a *ProactiveChatAssistant) Open(ctx context.Context, values map[string]string) (chat.Message, error) {
	a.logger.Debug("assistant is proactively sending a message")

	systemMsg, err := a.systemPrompt.Fill(a.systemValues)
	if err != nil {
		return chat.Message{}, fmt.Errorf("building system message: %w", err)
	}
	triggerMsg, err := a.trigger.Fill(values)
	if err != nil {
		return chat.Message{}, fmt.Errorf("building trigger message: %w", err)
	}

	return a.complete(ctx, []chat.Message{systemMsg, triggerMsg})
}
