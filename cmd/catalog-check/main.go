// Package main provides a standalone validator for recipe chunk files.
// It loads chunks the way the API server does and reports what the registry
// would serve, so a catalog can be checked before it is deployed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mealwise/core/internal/infrastructure/catalog"
	"github.com/mealwise/core/pkg/logger"
	"go.uber.org/zap"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

// Config holds command-line configuration
type Config struct {
	Dir          string
	OutputFormat string
	Strict       bool
	Timeout      time.Duration
	Verbose      bool
}

// scanner is a chunk source that also reports the files it skipped
type scanner interface {
	Scan(ctx context.Context) (catalog.Scan, error)
}

func main() {
	os.Exit(run(parseFlags(), os.Stdout))
}

func parseFlags() Config {
	config := Config{}

	flag.StringVar(&config.Dir, "dir", "", "Chunk directory to check (default: the embedded catalog)")
	flag.StringVar(&config.OutputFormat, "format", "text", "Output format: text, json")
	flag.BoolVar(&config.Strict, "strict", false, "Fail when malformed chunks, duplicate or unusable records are found")
	flag.DurationVar(&config.Timeout, "timeout", 10*time.Second, "Time allowed for reading chunks")
	flag.BoolVar(&config.Verbose, "verbose", false, "Log skipped chunks and other diagnostics")

	flag.Parse()
	return config
}

func run(config Config, stdout io.Writer) int {
	level := "error"
	if config.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Format: "console", OutputPaths: []string{"stderr"}})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return exitCodeError
	}
	defer func() { _ = log.Sync() }()

	var source scanner
	if config.Dir != "" {
		source = catalog.NewDirSource(config.Dir, log)
	} else {
		source = catalog.NewEmbeddedSource(log)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	scan, err := source.Scan(ctx)
	if err != nil {
		log.Error("Failed to read chunks", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitCodeError
	}

	report := scan.Report()
	if err := output(stdout, report, config.OutputFormat); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitCodeError
	}

	if report.Recipes == 0 || (config.Strict && !report.Clean()) {
		return exitCodeFailure
	}
	return exitCodeSuccess
}

func output(w io.Writer, report catalog.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "text":
		for _, chunk := range report.Chunks {
			fmt.Fprintf(w, "%-24s %3d records, %3d accepted\n", chunk.Name, chunk.Records, chunk.Accepted)
		}
		for _, name := range report.Malformed {
			fmt.Fprintf(w, "%-24s malformed, skipped\n", name)
		}
		fmt.Fprintf(w, "\nrecipes: %d (main meals %d, snacks %d)\n", report.Recipes, report.MainMeals, report.Snacks)
		if len(report.Duplicates) > 0 {
			fmt.Fprintf(w, "duplicate ids (first occurrence kept): %v\n", report.Duplicates)
		}
		if report.Unusable > 0 {
			fmt.Fprintf(w, "unusable records skipped: %d\n", report.Unusable)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
