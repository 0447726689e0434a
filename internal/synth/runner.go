package synth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/C0nnectify/edulens/pkg/logger"
)

// Run executes one synthetic ingestion: generate messy records, submit
// them in concurrent batches, then pull the reports and sanity-check the
// pipeline's accounting.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("synth")

	log.Info(ctx, "starting synthetic ingestion run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("records", cfg.NumRecords),
		logger.Int("batchSize", cfg.BatchSize),
		logger.Int("workers", cfg.Workers),
	)

	c := newClient(cfg.Timeout)
	if err := c.get(ctx, cfg.BaseURL+"/healthz", nil); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	records := Generate(ctx, cfg)
	stats.Generated = len(records)

	if err := submitBatches(ctx, cfg, c, records, stats); err != nil {
		return fmt.Errorf("record submission failed: %w", err)
	}

	if err := verify(ctx, cfg, c, stats); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Info(ctx, "synthetic ingestion run completed",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("invalid", stats.Invalid),
		logger.Int("failedBatches", stats.Failed),
		logger.Duration("duration", stats.Duration),
	)
	return nil
}

// submitBatches fans batches out over cfg.Workers concurrent submitters.
func submitBatches(ctx context.Context, cfg *Config, c *client, records []Record, stats *Stats) error {
	batches := make(chan []Record, cfg.Workers)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < cfg.Workers; i++ {
		g.Go(func() error {
			for batch := range batches {
				var resp CleaningStats
				status, err := c.post(gctx, cfg.BaseURL+"/records", map[string]any{"records": batch}, &resp)
				mu.Lock()
				if err != nil || status != http.StatusAccepted {
					stats.Failed++
					mu.Unlock()
					if err != nil {
						return err
					}
					continue
				}
				stats.Submitted += resp.Submitted
				stats.Accepted += resp.Accepted
				stats.Duplicates += resp.Duplicates
				stats.Invalid += resp.Invalid
				mu.Unlock()
			}
			return nil
		})
	}

	for start := 0; start < len(records); start += cfg.BatchSize {
		end := start + cfg.BatchSize
		if end > len(records) {
			end = len(records)
		}
		select {
		case batches <- records[start:end]:
		case <-gctx.Done():
			close(batches)
			return g.Wait()
		}
	}
	close(batches)
	return g.Wait()
}

// verify cross-checks the run totals against the service reports.
func verify(ctx context.Context, cfg *Config, c *client, stats *Stats) error {
	if got, want := stats.Accepted+stats.Duplicates+stats.Invalid, stats.Submitted; got != want {
		return fmt.Errorf("accounting mismatch: accepted+duplicates+invalid=%d, submitted=%d", got, want)
	}

	var agg struct {
		TotalRecords int `json:"total_records"`
	}
	if err := c.get(ctx, cfg.BaseURL+"/statistics", &agg); err != nil {
		return err
	}
	if agg.TotalRecords < stats.Accepted {
		return fmt.Errorf("store reports %d records, run accepted %d", agg.TotalRecords, stats.Accepted)
	}

	logger.Get().Info(ctx, "verification passed",
		logger.Int("storeRecords", agg.TotalRecords),
		logger.Int("runAccepted", stats.Accepted),
	)

	if cfg.Verbose {
		var quality struct {
			CompletenessBands map[string]int `json:"completeness_distribution"`
		}
		if err := c.get(ctx, cfg.BaseURL+"/quality", &quality); err != nil {
			return err
		}
		logger.Get().Info(ctx, "quality profile", logger.Any("bands", quality.CompletenessBands))
	}
	return nil
}
