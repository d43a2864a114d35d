package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ronin-hq/ronin/config"
	"github.com/ronin-hq/ronin/llm"
	"github.com/ronin-hq/ronin/server"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	var providerFlag string
	fs.StringVar(&providerFlag, "provider", "", "LLM provider: openai, azure, ollama (default from config)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	provider, err := cfg.Provider(providerFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	reg := discoveredRegistry()
	loader := llm.NewLoader(llm.Detect())

	srv := server.New(version, reg, loader, cfg, provider)
	if err := srv.Serve(); err != nil {
		fmt.Fprintf(os.Stderr, "error: MCP server: %v\n", err)
		return 2
	}
	return 0
}
