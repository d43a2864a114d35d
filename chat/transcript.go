package chat

import (
	"encoding/json"
	"fmt"
	"os"
)

// Transcript is the ordered record of a conversation. It serializes to a
// plain list of role/content objects so saved exchanges stay readable by
// tooling that knows nothing about this module.
type Transcript struct {
	messages []Message
}

// Append adds messages to the end of the transcript.
func (tr *Transcript) Append(msgs ...Message) {
	tr.messages = append(tr.messages, msgs...)
}

// Messages returns the recorded messages in order.
func (tr *Transcript) Messages() []Message {
	out := make([]Message, len(tr.messages))
	copy(out, tr.messages)
	return out
}

// Len returns the number of recorded messages.
func (tr *Transcript) Len() int { return len(tr.messages) }

// Reset discards all recorded messages.
func (tr *Transcript) Reset() { tr.messages = nil }

// JSON returns the transcript as pretty-printed JSON bytes.
func (tr *Transcript) JSON() ([]byte, error) {
	msgs := tr.messages
	if msgs == nil {
		msgs = []Message{}
	}
	return json.MarshalIndent(msgs, "", "  ")
}

// WriteFile writes the transcript to the given file path.
func (tr *Transcript) WriteFile(path string) error {
	data, err := tr.JSON()
	if err != nil {
		return fmt.Errorf("marshalling transcript: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
