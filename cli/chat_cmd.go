package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ronin-hq/ronin/assistant"
	"github.com/ronin-hq/ronin/chat"
	"github.com/ronin-hq/ronin/cli/tui"
	"github.com/ronin-hq/ronin/config"
	"github.com/ronin-hq/ronin/llm"
)

// opener is implemented by assistants that can open the conversation
// themselves.
type opener interface {
	Open(ctx context.Context, values map[string]string) (chat.Message, error)
}

func runChat(args []string) int {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)

	var (
		assistantID   string
		message       string
		systemMessage string
		providerFlag  string
		output        string
		maxLength     int
		interactive   bool
	)

	fs.StringVar(&assistantID, "assistant", "base-chat-assistant", "registry id of the assistant")
	fs.StringVar(&message, "message", "", "message to send to the assistant")
	fs.StringVar(&message, "m", "", "message to send to the assistant (shorthand)")
	fs.StringVar(&systemMessage, "system-message", "", "system message override")
	fs.StringVar(&providerFlag, "provider", "", "LLM provider: openai, azure, ollama (default from config)")
	fs.StringVar(&output, "output", "", "path where to save the transcript as JSON")
	fs.StringVar(&output, "o", "", "path where to save the transcript as JSON (shorthand)")
	fs.IntVar(&maxLength, "max-length", 0, fmt.Sprintf("maximum response length (default %d)", llm.DefaultMaxLength))
	fs.BoolVar(&interactive, "interactive", false, "keep the conversation open")
	fs.BoolVar(&interactive, "i", false, "keep the conversation open (shorthand)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	inst, err := buildAssistant(assistantID, systemMessage, providerFlag, maxLength)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	if interactive && term.IsTerminal(int(os.Stdout.Fd())) {
		if err := tui.Run(inst, assistantID, message); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
		return saveTranscript(inst, output)
	}

	if message == "" {
		if op, ok := inst.(opener); ok {
			reply, err := op.Open(context.Background(), nil)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				return 2
			}
			fmt.Printf("Assistant:\n%s\n\n", reply.Content)
			if !interactive {
				return saveTranscript(inst, output)
			}
		} else {
			fmt.Fprintln(os.Stderr, "error: -m message is required (or pick a proactive assistant)")
			return 2
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for message != "exit" {
		if message != "" {
			fmt.Printf("User:\n%s\n\n", message)
			reply, err := inst.Respond(context.Background(), message)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				return 2
			}
			fmt.Printf("Assistant:\n%s\n\n", reply.Content)
		}

		if !interactive {
			break
		}
		fmt.Print("User: ")
		if !scanner.Scan() {
			break
		}
		message = strings.TrimSpace(scanner.Text())
		fmt.Println()
	}

	return saveTranscript(inst, output)
}

// buildAssistant resolves the assistant from the registry and wires it to an
// LLM handle created through the loader.
func buildAssistant(assistantID, systemMessage, providerFlag string, maxLength int) (assistant.Assistant, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, err
	}
	provider, err := cfg.Provider(providerFlag)
	if err != nil {
		return nil, err
	}

	reg := discoveredRegistry()
	desc, err := reg.Get(assistantID)
	if err != nil {
		return nil, err
	}

	loader := llm.NewLoader(llm.Detect())
	handle, err := loader.CreateLLM(provider, cfg.Access(provider), cfg.Model(maxLength))
	if err != nil {
		return nil, err
	}

	inst, err := desc.New(assistant.Config{LLM: handle, SystemPrompt: systemMessage})
	if err != nil {
		return nil, fmt.Errorf("building assistant %q: %w", assistantID, err)
	}
	return inst, nil
}

// saveTranscript writes the conversation to path as JSON, if a path was
// given.
func saveTranscript(inst assistant.Assistant, path string) int {
	if path == "" {
		return 0
	}
	var tr chat.Transcript
	tr.Append(inst.History()...)
	if err := tr.WriteFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing %s: %v\n", path, err)
		return 2
	}
	fmt.Printf("saved transcript to %s (%d messages)\n", path, tr.Len())
	return 0
}
