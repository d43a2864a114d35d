package assistant

import (
	"context"
	"errors"

	"github.com/ronin-hq/ronin/chat"
)

// Team chains assistants: the reply of one becomes the message to the next,
// and the last assistant's reply is the team's reply.
type Team struct {
	assistants []Assistant
}

// NewTeam creates a team from the given assistants, in chat order.
func NewTeam(assistants ...Assistant) *Team {
	return &Team{assistants: assistants}
}

// Respond runs the message through the chain and returns the final reply.
func (t *Team) Respond(ctx context.Context, message string) (chat.Message, error) {
	if len(t.assistants) == 0 {
		return chat.Message{}, errors.New("team has no assistants")
	}

	var reply chat.Message
	current := message
	for _, a := range t.assistants {
		var err error
		reply, err = a.Respond(ctx, current)
		if err != nil {
			return chat.Message{}, err
		}
		current = reply.Content
	}
	return reply, nil
}

// History returns the concatenated histories of every member, in chain
// order.
func (t *Team) History() []chat.Message {
	var out []chat.Message
	for _, a := range t.assistants {
		out = append(out, a.History()...)
	}
	return out
}
