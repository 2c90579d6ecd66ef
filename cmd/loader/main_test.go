package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupFiles(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{"cat.txt": "meow", "banana.txt": "split"}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	t.Setenv("LOADER_BACKEND", "file")
	t.Setenv("LOADER_ROOT_DIR", dir)
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func TestRun_DefaultNames(t *testing.T) {
	setupFiles(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}

	want := "Data: 2 resources\n  banana: \"split\"\n  cat: \"meow\"\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}

	if !strings.Contains(stderr.String(), "tokyo") || !strings.Contains(stderr.String(), "not_found") {
		t.Errorf("stderr should report the missing resource, got %q", stderr.String())
	}
}

func TestRun_ExplicitNames(t *testing.T) {
	setupFiles(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"cat"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}

	if stdout.String() != "Data: 1 resources\n  cat: \"meow\"\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr should be empty, got %q", stderr.String())
	}
}

func TestRun_AllFailuresStillSucceeds(t *testing.T) {
	setupFiles(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"x", "../y"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if lines := strings.Count(stderr.String(), "\n"); lines != 2 {
		t.Errorf("expected 2 failure lines, got %d: %q", lines, stderr.String())
	}
	if !strings.Contains(stderr.String(), "invalid_identifier") {
		t.Errorf("stderr should report the invalid name, got %q", stderr.String())
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("LOADER_BACKEND", "tape")
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}
}

func TestRun_MetricsFile(t *testing.T) {
	setupFiles(t)
	path := filepath.Join(t.TempDir(), "loader.prom")
	t.Setenv("LOADER_METRICS_FILE", path)

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"cat"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d", code)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(body), "loader_fetch_total") {
		t.Errorf("metrics file missing loader_fetch_total:\n%s", body)
	}
}
