package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ronin-hq/ronin/assistant"
)

func runAssistants(args []string) int {
	fs := flag.NewFlagSet("assistants", flag.ContinueOnError)
	var showPlugins bool
	fs.BoolVar(&showPlugins, "plugins", false, "also list the discovered plugin sources")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if showPlugins {
		fmt.Println("Plugins:")
		for _, p := range assistant.Plugins() {
			fmt.Printf("  %s\n", p.Name)
		}
		fmt.Println()
	}

	reg := discoveredRegistry()
	ids := reg.IDs()
	if len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "no assistants registered")
		return 2
	}

	fmt.Println("Assistants:")
	for _, id := range ids {
		d, err := reg.Get(id)
		if err != nil {
			continue
		}
		fmt.Printf("  %-28s %s\n", d.ID, d.Summary)
	}
	return 0
}
