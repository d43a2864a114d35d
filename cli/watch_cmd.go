package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ronin-hq/ronin/chat"
)

// runWatch live-previews a prompt template file: it renders the template
// with the given bound values and re-renders on every change. Useful while
// iterating on assistant prompts.
func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)

	var (
		role     string
		debounce time.Duration
		values   = map[string]string{}
	)
	fs.StringVar(&role, "role", "system", "template role: system, user, assistant")
	fs.DurationVar(&debounce, "debounce", 500*time.Millisecond, "debounce interval for file changes")
	fs.Func("p", "bound value as name=value (repeatable)", func(s string) error {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("expected name=value, got %q", s)
		}
		values[name] = value
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: ronin watch <template-file> [flags]")
		return 2
	}
	path := fs.Arg(0)

	if !renderTemplate(path, role, values) {
		return 2
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: creating watcher: %v\n", err)
		return 2
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which drops the
	// watch when watching the file itself.
	dir := "."
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		dir = path[:i]
	}
	if err := watcher.Add(dir); err != nil {
		fmt.Fprintf(os.Stderr, "error: watching %s: %v\n", dir, err)
		return 2
	}

	fmt.Printf("watch: %s (debounce: %s, ctrl+c to stop)\n", path, debounce)

	var mu sync.Mutex
	var timer *time.Timer
	resetTimer := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			fmt.Print("\033[2J\033[H") // clear terminal
			fmt.Printf("watch: re-rendering %s\n", path)
			renderTemplate(path, role, values)
		})
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			if event.Name == path && (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				resetTimer()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

// renderTemplate reads the template file, fills it, and prints the result.
func renderTemplate(path, role string, values map[string]string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: reading %s: %v\n", path, err)
		return false
	}

	var tmpl chat.PromptTemplate
	switch role {
	case "system":
		tmpl = chat.NewSystemTemplate(string(data))
	case "user":
		tmpl = chat.NewUserTemplate(string(data))
	case "assistant":
		tmpl = chat.NewAssistantTemplate(string(data))
	default:
		fmt.Fprintf(os.Stderr, "error: unknown role %q\n", role)
		return false
	}

	if ph := tmpl.Placeholders(); len(ph) > 0 {
		fmt.Printf("placeholders: %s\n", strings.Join(ph, ", "))
	}

	msg, err := tmpl.Fill(values)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return false
	}
	fmt.Printf("\n[%s]\n%s\n", msg.Role, msg.Content)
	return true
}
