// Command synth generates deliberately messy admission records and drives
// them through a running pipeline instance, then cross-checks the reports.
package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/C0nnectify/edulens/internal/synth"
	"github.com/C0nnectify/edulens/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumRecords = 10000
	defaultBatchSize  = 500
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
	defaultDupeRate   = 0.05
	defaultSeed       = 42
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numRecords = flag.Int("records", defaultNumRecords, "Number of raw records to generate")
		batchSize  = flag.Int("batch", defaultBatchSize, "Records per submission batch")
		workers    = flag.Int("workers", runtime.NumCPU()*2, "Number of concurrent submitters")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed       = flag.Int64("seed", defaultSeed, "Generator seed")
		dupeRate   = flag.Float64("dupes", defaultDupeRate, "Fraction of records re-emitted as near duplicates")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &synth.Config{
		BaseURL:    *baseURL,
		NumRecords: *numRecords,
		BatchSize:  *batchSize,
		Workers:    *workers,
		Timeout:    *timeout,
		Seed:       *seed,
		DupeRate:   *dupeRate,
		Verbose:    *verbose,
	}

	if err := synth.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "synthetic run failed", logger.Error(err))
		os.Exit(1)
	}
}
