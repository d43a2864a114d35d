// Package main is the entry point for the ronin CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ronin-hq/ronin/assistant"

	// Compiled-in assistant plugins and LLM backends register themselves
	// on import.
	_ "github.com/ronin-hq/ronin/assistants"
	_ "github.com/ronin-hq/ronin/llm/ollamabackend"
	_ "github.com/ronin-hq/ronin/llm/openaibackend"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and returns the exit code.
// 0 = success, 2 = error.
func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}

	switch command := args[0]; command {
	case "chat":
		return runChat(args[1:])
	case "assistants":
		return runAssistants(args[1:])
	case "backends":
		return runBackends(args[1:])
	case "watch":
		return runWatch(args[1:])
	case "serve":
		return runServe(args[1:])
	case "version":
		fmt.Printf("ronin %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	case "help", "-h", "--help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: ronin <command> [flags]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  chat        Chat with an assistant\n")
	fmt.Fprintf(os.Stderr, "  assistants  List discovered assistants\n")
	fmt.Fprintf(os.Stderr, "  backends    Show LLM backend availability\n")
	fmt.Fprintf(os.Stderr, "  watch       Live-preview a prompt template file\n")
	fmt.Fprintf(os.Stderr, "  serve       Start MCP server on stdio\n")
	fmt.Fprintf(os.Stderr, "  version     Print version and exit\n")
}

// discoveredRegistry builds the registry and runs plugin discovery over the
// compiled-in plugin list. Discovery happens once, before any lookups.
func discoveredRegistry() *assistant.Registry {
	reg := assistant.NewRegistry()
	reg.Discover(assistant.Plugins()...)
	return reg
}
