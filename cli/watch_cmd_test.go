package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompt.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing template: %v", err)
	}
	return path
}

func TestRenderTemplate_Filled(t *testing.T) {
	path := writeTemplate(t, "You are a {role}.")

	if !renderTemplate(path, "system", map[string]string{"role": "poet"}) {
		t.Fatal("expected successful render")
	}
}

func TestRenderTemplate_MissingValue(t *testing.T) {
	path := writeTemplate(t, "You are a {role}.")

	if renderTemplate(path, "system", nil) {
		t.Fatal("expected render to fail on an unbound placeholder")
	}
}

func TestRenderTemplate_UnknownRole(t *testing.T) {
	path := writeTemplate(t, "hello")

	if renderTemplate(path, "narrator", nil) {
		t.Fatal("expected render to fail on an unknown role")
	}
}

func TestRenderTemplate_MissingFile(t *testing.T) {
	if renderTemplate("/nonexistent/prompt.txt", "system", nil) {
		t.Fatal("expected render to fail on a missing file")
	}
}

func TestRunWatch_InvalidFlag(t *testing.T) {
	code := runWatch([]string{"--invalid-flag"})
	if code != 2 {
		t.Fatalf("expected exit code 2 for invalid flag, got %d", code)
	}
}

func TestRunWatch_BadBinding(t *testing.T) {
	path := writeTemplate(t, "hello")

	code := runWatch([]string{"-p", "novalue", path})
	if code != 2 {
		t.Fatalf("expected exit code 2 for malformed -p, got %d", code)
	}
}
