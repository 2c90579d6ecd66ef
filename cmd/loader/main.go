package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Sternrassler/resource-loader/pkg/aggregate"
	"github.com/Sternrassler/resource-loader/pkg/loader"
	"github.com/Sternrassler/resource-loader/pkg/logging"
	"github.com/Sternrassler/resource-loader/pkg/metrics"
)

// defaultNames is loaded when no names are given on the command line.
var defaultNames = []string{"cat", "tokyo", "banana"}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run loads the named resources and prints them. It returns the process
// exit code: 0 when the batch completed, even if some resources failed.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logCfg := logging.ConfigFromEnv()
	logCfg.Output = stderr
	logging.Setup(logCfg)
	logger := logging.NewLogger("cli")

	cfg, err := loader.ConfigFromEnv()
	if err != nil {
		logger.Error().Err(err).Msg("Invalid configuration")
		return 1
	}

	l, err := loader.New(cfg)
	if err != nil {
		logger.Error().Err(err).Str("backend", string(cfg.Backend)).Msg("Failed to create loader")
		return 1
	}
	defer l.Close()

	names := args
	if len(names) == 0 {
		names = defaultNames
	}

	result, err := l.Load(ctx, names)
	if err != nil {
		logger.Error().Err(err).Msg("Batch failed")
		return 1
	}

	printFailures(stderr, result.Failures)
	printData(stdout, result)

	if path := os.Getenv("LOADER_METRICS_FILE"); path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Failed to write metrics")
		}
	}

	return 0
}

func printFailures(w io.Writer, failures []aggregate.Failure) {
	for _, f := range failures {
		fmt.Fprintln(w, f.String())
	}
}

func printData(w io.Writer, result *aggregate.Result) {
	names := make([]string, 0, result.Len())
	for name := range result.Data {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "Data: %d resources\n", len(names))
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %q\n", name, result.Data[name].String())
	}
}
