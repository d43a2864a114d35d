package assistants

import (
	"github.com/ronin-hq/ronin/assistant"
	"github.com/ronin-hq/ronin/chat"
)

// conversationDesignerPrompt primes the model into the role of a
// conversational-UX designer collaborating with an engineer.
const conversationDesignerPrompt = "You are an experienced UX designer, specialized in designing " +
	"conversational experiences with virtual assistants. You have a " +
	"background in coaching and can design a virtual assistant that " +
	"helps people achieve their goals.\n" +
	"In this role, you are responsible for:\n" +
	"- Defining what information the user shall provide for briefing the assistant;\n" +
	"- Proposing the assistant's personality;\n" +
	"- Designing the conversation flow;\n" +
	"- Proposing integrations with other systems;\n" +
	"You are conversing with a software engineer that will implement " +
	"the assistant along with any other integration you propose.\n" +
	"You have the creative freedom to challenge the status quo and propose " +
	"new ideas, and to think of the best way to build the perfect assistant."

const conversationDesignerPriming = "In three sentences, what are the top 3 principles and concepts that " +
	"make a great virtual assistant?"

func newConversationDesigner(cfg assistant.Config) (assistant.Assistant, error) {
	opts, err := baseOptions(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.SystemPrompt == "" {
		opts = append(opts, assistant.WithSystemPrompt(chat.NewSystemTemplate(conversationDesignerPrompt)))
	}
	opts = append(opts,
		assistant.WithPrimingMessage(conversationDesignerPriming),
		assistant.WithAutoPrime(),
	)
	return assistant.NewProactiveChatAssistant(cfg.LLM, opts), nil
}
