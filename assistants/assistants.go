// Package assistants is the built-in add-on package of chat assistants. It
// advertises itself to the assistant registry through the plugin discovery
// hook; importing the package is what makes its assistants discoverable.
package assistants

import (
	"errors"

	"github.com/ronin-hq/ronin/assistant"
	"github.com/ronin-hq/ronin/chat"
)

// PluginName is the name this package advertises itself under.
const PluginName = "assistants"

func init() {
	assistant.RegisterPlugin(assistant.Plugin{
		Name:     PluginName,
		Register: Register,
	})
}

// Register contributes the built-in assistant descriptors. It is invoked by
// registry discovery and may be called directly in tests.
func Register(r *assistant.Registrar) error {
	for _, d := range []assistant.Descriptor{
		{
			ID:      "base-chat-assistant",
			Summary: "Plain conversational assistant.",
			New:     newBaseChat,
		},
		{
			ID:      "base-proactive-assistant",
			Summary: "Conversational assistant that opens the conversation itself.",
			New:     newBaseProactive,
		},
		{
			ID:      "conversation-designer",
			Summary: "UX designer for conversational experiences.",
			New:     newConversationDesigner,
		},
		{
			ID:      "resume-bio-writer",
			Summary: "Writes resume and profile bios that stand out.",
			New:     newResumeBioWriter,
		},
		{
			ID:      "resume-experience-writer",
			Summary: "Writes the professional-experience section of a resume.",
			New:     newResumeExperienceWriter,
		},
	} {
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// baseOptions maps the shared Config fields onto chat options.
func baseOptions(cfg assistant.Config) ([]assistant.ChatOption, error) {
	if cfg.LLM == nil {
		return nil, errors.New("assistant config has no LLM handle")
	}
	var opts []assistant.ChatOption
	if cfg.SystemPrompt != "" {
		opts = append(opts, assistant.WithSystemPrompt(chat.NewSystemTemplate(cfg.SystemPrompt)))
	}
	if cfg.SystemValues != nil {
		opts = append(opts, assistant.WithSystemValues(cfg.SystemValues))
	}
	return opts, nil
}

func newBaseChat(cfg assistant.Config) (assistant.Assistant, error) {
	opts, err := baseOptions(cfg)
	if err != nil {
		return nil, err
	}
	return assistant.NewChatAssistant(cfg.LLM, opts...), nil
}

func newBaseProactive(cfg assistant.Config) (assistant.Assistant, error) {
	opts, err := baseOptions(cfg)
	if err != nil {
		return nil, err
	}
	return assistant.NewProactiveChatAssistant(cfg.LLM, opts), nil
}
