package assistants

import (
	"github.com/ronin-hq/ronin/assistant"
)

const resumeBioPriming = "Write the top principles and concepts that can make " +
	"someone stand out in Linkedin."

const resumeExperiencePriming = "Write the top principles and concepts one should take into account " +
	"when writing about their past professional experiences in their resume."

func newResumeBioWriter(cfg assistant.Config) (assistant.Assistant, error) {
	opts, err := baseOptions(cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		assistant.WithPrimingMessage(resumeBioPriming),
		assistant.WithAutoPrime(),
	)
	return assistant.NewChatAssistant(cfg.LLM, opts...), nil
}

func newResumeExperienceWriter(cfg assistant.Config) (assistant.Assistant, error) {
	opts, err := baseOptions(cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		assistant.WithPrimingMessage(resumeExperiencePriming),
		assistant.WithAutoPrime(),
	)
	return assistant.NewProactiveChatAssistant(cfg.LLM, opts), nil
}
