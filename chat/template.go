package chat

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern matches {name} placeholders in template text. Names are
// identifier-like; anything else (including "{}" and "{1x}") is left as-is.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// BindingError reports a template placeholder that had no bound value.
type BindingError struct {
	Placeholder string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("template placeholder {%s} has no bound value", e.Placeholder)
}

// PromptTemplate is parametrized prompt text that produces a Message of a
// fixed role when filled. Filling is pure: the same template and values
// always yield the same Message.
type PromptTemplate struct {
	role Role
	text string
}

// NewSystemTemplate returns a template producing system messages.
func NewSystemTemplate(text string) PromptTemplate {
	return PromptTemplate{role: RoleSystem, text: text}
}

// NewUserTemplate returns a template producing user messages.
func NewUserTemplate(text string) PromptTemplate {
	return PromptTemplate{role: RoleUser, text: text}
}

// NewAssistantTemplate returns a template producing assistant messages.
func NewAssistantTemplate(text string) PromptTemplate {
	return PromptTemplate{role: RoleAssistant, text: text}
}

// PassthroughTemplate returns a template that reproduces the bound "message"
// value verbatim. It is the default user/assistant template for assistants
// that do not reshape raw turns.
func PassthroughTemplate(role Role) PromptTemplate {
	return PromptTemplate{role: role, text: "{message}"}
}

// Role returns the role of the messages this template produces.
func (t PromptTemplate) Role() Role { return t.role }

// Text returns the raw template text.
func (t PromptTemplate) Text() string { return t.text }

// Placeholders returns the distinct placeholder names declared in the
// template text, in order of first appearance.
func (t PromptTemplate) Placeholders() []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(t.text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Fill substitutes the bound values into the template text and returns the
// resulting Message. Every declared placeholder must have a bound value or
// Fill fails with a *BindingError; values without a matching placeholder are
// ignored. Fill has no side effects.
func (t PromptTemplate) Fill(values map[string]string) (Message, error) {
	var missing *BindingError
	content := placeholderPattern.ReplaceAllStringFunc(t.text, func(match string) string {
		name := strings.Trim(match, "{}")
		v, ok := values[name]
		if !ok && missing == nil {
			missing = &BindingError{Placeholder: name}
		}
		return v
	})
	if missing != nil {
		return Message{}, missing
	}
	return Message{Role: t.role, Content: content}, nil
}
