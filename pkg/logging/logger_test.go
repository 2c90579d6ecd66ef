package logging_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/resource-loader/pkg/aggregate"
	"github.com/Sternrassler/resource-loader/pkg/batch"
	"github.com/Sternrassler/resource-loader/pkg/fetcher"
	"github.com/Sternrassler/resource-loader/pkg/logging"
	"github.com/Sternrassler/resource-loader/pkg/storage"
)

type event map[string]any

func (e event) str(key string) string {
	s, _ := e[key].(string)
	return s
}

// setup installs a JSON logger writing to a buffer and restores the global
// level afterwards.
func setup(t *testing.T, level logging.LogLevel) (*bytes.Buffer, zerolog.Logger) {
	t.Helper()
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	buf := &bytes.Buffer{}
	logger := logging.Setup(logging.Config{Level: level, Output: buf})
	return buf, logger
}

func decode(t *testing.T, buf *bytes.Buffer) []event {
	t.Helper()
	var events []event
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var e event
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("log line is not JSON: %q: %v", sc.Text(), err)
		}
		events = append(events, e)
	}
	return events
}

func find(events []event, component, msg string) []event {
	var out []event
	for _, e := range events {
		if e.str("component") == component && e.str("message") == msg {
			out = append(out, e)
		}
	}
	return out
}

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		pretty     string
		wantLevel  logging.LogLevel
		wantPretty bool
	}{
		{name: "unset", wantLevel: logging.LevelInfo},
		{name: "debug pretty", level: "debug", pretty: "true", wantLevel: logging.LevelDebug, wantPretty: true},
		{name: "warn json", level: "warn", pretty: "0", wantLevel: logging.LevelWarn},
		{name: "unparsable pretty keeps default", level: "error", pretty: "sometimes", wantLevel: logging.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			t.Setenv("LOG_PRETTY", tt.pretty)

			cfg := logging.ConfigFromEnv()
			if cfg.Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", cfg.Level, tt.wantLevel)
			}
			if cfg.Pretty != tt.wantPretty {
				t.Errorf("Pretty = %v, want %v", cfg.Pretty, tt.wantPretty)
			}
			if cfg.Output != os.Stderr {
				t.Error("Output should default to stderr")
			}
		})
	}
}

func TestSetup_GlobalLevel(t *testing.T) {
	tests := []struct {
		level logging.LogLevel
		want  zerolog.Level
	}{
		{logging.LevelDebug, zerolog.DebugLevel},
		{logging.LevelWarn, zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{logging.LevelError, zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			setup(t, tt.level)
			if got := zerolog.GlobalLevel(); got != tt.want {
				t.Errorf("GlobalLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLogger_Component(t *testing.T) {
	buf, _ := setup(t, logging.LevelInfo)

	logger := logging.NewLogger("cli")
	logger.Info().Str("resource", "cat").Msg("Loaded")

	events := decode(t, buf)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.str("component") != "cli" || e.str("resource") != "cat" || e.str("level") != "info" {
		t.Errorf("unexpected event %v", e)
	}
	if _, ok := e["time"]; !ok {
		t.Error("events should carry a timestamp")
	}
}

// loadBatch runs cat, tokyo and banana through the fetcher, the batch
// orchestrator and the aggregator, all logging through logger.
func loadBatch(t *testing.T, logger zerolog.Logger) *aggregate.Result {
	t.Helper()
	store := storage.NewMemoryStore(map[string]string{"cat": "meow", "banana": "split"})
	o, err := batch.New(fetcher.New(store, logger), logger)
	if err != nil {
		t.Fatal(err)
	}

	outcomes, err := o.FetchAll(context.Background(), []string{"cat", "tokyo", "banana"})
	if err != nil {
		t.Fatal(err)
	}
	return aggregate.Aggregate(outcomes, aggregate.Options{
		Logger: logger.With().Str("component", "loader").Logger(),
	})
}

func TestGuidelines_Debug(t *testing.T) {
	buf, logger := setup(t, logging.LevelDebug)

	loadBatch(t, logger)
	events := decode(t, buf)

	fetches := find(events, "fetcher", "Fetched resource")
	if len(fetches) != 3 {
		t.Fatalf("got %d fetch events, want one per resource", len(fetches))
	}
	results := map[string]string{}
	for _, e := range fetches {
		if e.str("level") != "debug" {
			t.Errorf("fetch event level = %q, want debug", e.str("level"))
		}
		results[e.str("resource")] = e.str("result")
	}
	want := map[string]string{"cat": "ok", "tokyo": "not_found", "banana": "ok"}
	for id, result := range want {
		if results[id] != result {
			t.Errorf("fetch %s result = %q, want %q", id, results[id], result)
		}
	}

	for _, msg := range []string{"Starting parallel fetch", "Fetch complete"} {
		got := find(events, "batch", msg)
		if len(got) != 1 || got[0].str("level") != "info" {
			t.Errorf("batch %q events = %v, want one info event", msg, got)
		}
	}
	done := find(events, "batch", "Fetch complete")
	if len(done) == 1 && done[0]["failed"] != float64(1) {
		t.Errorf("batch completion failed = %v, want 1", done[0]["failed"])
	}
}

func TestGuidelines_WarnOnlyFailures(t *testing.T) {
	buf, logger := setup(t, logging.LevelWarn)

	result := loadBatch(t, logger)
	if result.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", result.Len())
	}

	events := decode(t, buf)
	if len(events) != 1 {
		t.Fatalf("got %d events at warn level, want only the failure: %v", len(events), events)
	}
	e := events[0]
	if e.str("level") != "warn" || e.str("component") != "loader" {
		t.Errorf("unexpected event %v", e)
	}
	if e.str("resource") != "tokyo" || e.str("kind") != "not_found" || e.str("reason") == "" {
		t.Errorf("failure event fields = %v", e)
	}
}

func TestSetup_Pretty(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	buf := &bytes.Buffer{}
	logger := logging.Setup(logging.Config{Level: logging.LevelInfo, Pretty: true, Output: buf})
	logger.Info().Str("resource", "cat").Msg("loaded")

	output := buf.String()
	if strings.HasPrefix(output, "{") {
		t.Errorf("pretty output should not be JSON: %q", output)
	}
	if !strings.Contains(output, "resource=") || !strings.Contains(output, "cat") {
		t.Errorf("pretty output should contain fields: %q", output)
	}
}
