package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ronin-hq/ronin/config"
	"github.com/ronin-hq/ronin/llm"
)

func runBackends(args []string) int {
	fs := flag.NewFlagSet("backends", flag.ContinueOnError)
	var (
		probe   bool
		timeout time.Duration
	)
	fs.BoolVar(&probe, "probe", false, "probe backends for reachability")
	fs.DurationVar(&timeout, "timeout", 5*time.Second, "probe timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	avail := llm.Detect()
	backends := avail.Backends()
	if len(backends) == 0 {
		fmt.Fprintln(os.Stderr, "no LLM backends compiled in")
		return 2
	}

	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	results := make(map[string]string, len(backends))
	if probe {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var mu sync.Mutex
		g, gCtx := errgroup.WithContext(ctx)
		for _, b := range backends {
			// Only the Ollama backend probes today, so its access
			// settings are the ones handed out below.
			prober, ok := b.(llm.Prober)
			if !ok {
				continue
			}
			g.Go(func() error {
				status := "reachable"
				if err := prober.Probe(gCtx, cfg.Access(llm.ProviderOllama)); err != nil {
					status = fmt.Sprintf("unreachable: %v", err)
				}
				mu.Lock()
				results[b.Name()] = status
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}

	fmt.Println("Backends (selection order):")
	for i, b := range backends {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		line := fmt.Sprintf("%s %s", marker, b.Name())
		if status, ok := results[b.Name()]; ok {
			line += " — " + status
		}
		fmt.Println(line)
	}
	if len(backends) > 1 {
		fmt.Println("\nmultiple backends available; * marks the loader's pick")
	}
	return 0
}
