// Package service provides the core pipeline service that implements the
// dependencies required by the HTTP API: batch submission, deduplication,
// persistence, and the downstream analytics operations.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	taskqueue "github.com/C0nnectify/edulens/internal/adapters/mq/queue"
	workerpool "github.com/C0nnectify/edulens/internal/adapters/mq/worker"
	"github.com/C0nnectify/edulens/internal/adapters/repository"
	"github.com/C0nnectify/edulens/internal/domain/aggregate"
	"github.com/C0nnectify/edulens/internal/domain/cleaner"
	"github.com/C0nnectify/edulens/internal/domain/dedupe"
	"github.com/C0nnectify/edulens/internal/domain/features"
	"github.com/C0nnectify/edulens/internal/domain/impute"
	"github.com/C0nnectify/edulens/internal/domain/model"
	"github.com/C0nnectify/edulens/internal/domain/split"
	"github.com/C0nnectify/edulens/internal/domain/types"
	"github.com/C0nnectify/edulens/internal/domain/university"
	"github.com/C0nnectify/edulens/pkg/logger"
	"github.com/C0nnectify/edulens/pkg/metrics"
)

// Service wires the cleaning pipeline together: queue, worker pool,
// duplicate detector, record store, and the analytics stages.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	index    *university.Index
	cleaner  *cleaner.Cleaner
	detector *dedupe.Detector
	tracker  dedupe.Tracker
	queue    taskqueue.Queue
	pool     *workerpool.Pool

	// Configuration
	workerCount     int
	queueSize       int
	dedupeCacheSize int
	fuzzyCeiling    int
	fuzzySimilarity float64
	valFraction     float64
	testFraction    float64
	splitSeed       int64

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of cleaning workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the task queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeCacheSize caps the duplicate tracker.
func WithDedupeCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeCacheSize = size
		}
	}
}

// WithStore sets the record store. Defaults to the in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithFuzzyCeiling sets the batch size above which near-duplicate
// detection is skipped.
func WithFuzzyCeiling(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.fuzzyCeiling = n
		}
	}
}

// WithFuzzySimilarity sets the near-duplicate threshold in (0,1].
func WithFuzzySimilarity(t float64) Option {
	return func(s *Service) {
		if t > 0 && t <= 1 {
			s.fuzzySimilarity = t
		}
	}
}

// WithSplitConfig sets the validation/test fractions and shuffle seed used
// by the dataset splitter.
func WithSplitConfig(val, test float64, seed int64) Option {
	return func(s *Service) {
		if val >= 0 && test >= 0 && val+test < 1 {
			s.valFraction = val
			s.testFraction = test
		}
		s.splitSeed = seed
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU() * 2,
		queueSize:       10000,
		dedupeCacheSize: 500000,
		fuzzyCeiling:    5000,
		fuzzySimilarity: 0.90,
		valFraction:     0.15,
		testFraction:    0.15,
		splitSeed:       42,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.index = university.NewIndex()
	s.cleaner = cleaner.New(s.index)
	s.tracker = dedupe.NewTracker(dedupe.WithMaxSize(s.dedupeCacheSize))
	s.detector = dedupe.NewDetector(
		dedupe.WithTracker(s.tracker),
		dedupe.WithFuzzyCeiling(s.fuzzyCeiling),
		dedupe.WithFuzzySimilarity(s.fuzzySimilarity),
	)
	if s.store == nil {
		s.store = repository.NewMemStore()
		s.logger.Info(ctx, "using in-memory record store")
	}

	s.queue = taskqueue.NewInMemoryQueue(taskqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.cleaner)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "pipeline service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("fuzzyCeiling", s.fuzzyCeiling),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping pipeline service...")

	if q, ok := s.queue.(*taskqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "pipeline service stopped")
}

// Submit runs one batch through the pipeline: parallel field-level
// cleaning, duplicate detection, and insertion. Per-record failures are
// counted, never fatal; only store errors abort the batch.
func (s *Service) Submit(ctx context.Context, raws []*model.RawRecord) (types.CleaningStats, error) {
	stats := types.CleaningStats{
		Submitted:   len(raws),
		FieldErrors: make(map[string]int),
	}
	if len(raws) == 0 {
		return stats, nil
	}
	if !s.isStarted() {
		return stats, ErrNotStarted
	}

	for _, r := range raws {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
	}

	// The outcome channel is buffered for the whole batch so workers never
	// block reporting, even if collection lags.
	out := make(chan taskqueue.Outcome, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for _, r := range raws {
			t := taskqueue.Task{Record: r, Out: out}
			if !s.queue.Enqueue(gctx, t) {
				// Queue full or closed: degrade to inline cleaning rather
				// than dropping the record.
				s.cleanInline(gctx, r, out)
			}
		}
		return nil
	})

	cleanedBatch := make([]*model.CleanedRecord, 0, len(raws))
	for i := 0; i < len(raws); i++ {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case o := <-out:
			for _, field := range o.FieldErrors {
				stats.FieldErrors[field]++
				metrics.RecordFieldError(field)
			}
			if o.Err != nil {
				stats.Invalid++
				continue
			}
			if o.Cleaned != nil {
				metrics.ObserveCompleteness(o.Cleaned.CompletenessScore)
				cleanedBatch = append(cleanedBatch, o.Cleaned)
			}
		}
	}
	_ = g.Wait()

	res := s.detector.Detect(ctx, cleanedBatch)
	batchDupes := res.ExactDuplicates + res.HashDuplicates + res.NearDuplicates
	stats.Duplicates += batchDupes
	for i := 0; i < batchDupes; i++ {
		metrics.RecordDuplicate()
	}
	if res.FuzzySkipped {
		s.logger.Warn(ctx, "near-duplicate pass skipped, batch over ceiling",
			logger.Int("batch", len(cleanedBatch)),
			logger.Int("ceiling", s.fuzzyCeiling),
		)
	}

	for i, rec := range res.Kept {
		inserted, err := s.store.InsertIfAbsent(ctx, rec)
		if err != nil {
			metrics.RecordStoreError()
			// The failed record and everything after it never reached the
			// store. Forget their hashes so resubmitting the batch retries
			// them instead of counting them as duplicates.
			for _, missed := range res.Kept[i:] {
				s.tracker.Unrecord(ctx, missed.Hash)
			}
			return stats, fmt.Errorf("insert record %s: %w", rec.ID, err)
		}
		if !inserted {
			stats.Duplicates++
			metrics.RecordDuplicate()
			continue
		}
		stats.Accepted++
		metrics.RecordAccepted()
	}

	if count, err := s.store.Count(ctx, repository.Filter{}); err == nil {
		metrics.UpdateStoredRecords(count)
	}

	s.logger.Info(ctx, "batch processed",
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("invalid", stats.Invalid),
	)
	return stats, nil
}

// cleanInline mirrors the worker path for records the queue refused.
func (s *Service) cleanInline(ctx context.Context, r *model.RawRecord, out chan<- taskqueue.Outcome) {
	start := time.Now()
	cleaned, fieldErrors, err := s.cleaner.Clean(r)
	if err != nil {
		metrics.RecordRecordInvalid()
		s.logger.Debug(ctx, "record excluded",
			logger.String("recordID", r.ID),
			logger.Error(err),
		)
	}
	metrics.RecordCleanLatency(float64(time.Since(start).Milliseconds()))
	out <- taskqueue.Outcome{Cleaned: cleaned, FieldErrors: fieldErrors, Err: err}
}

// Records returns stored records matching the filter with paging.
func (s *Service) Records(ctx context.Context, f repository.Filter, skip, limit int) ([]*model.CleanedRecord, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.store.Find(ctx, f, skip, limit)
}

// Statistics recomputes the aggregation summary over all stored records.
func (s *Service) Statistics(ctx context.Context) (types.AggregationStatistics, error) {
	records, err := s.snapshot(ctx)
	if err != nil {
		return types.AggregationStatistics{}, err
	}
	return aggregate.Statistics(records), nil
}

// Quality recomputes the quality report over all stored records.
func (s *Service) Quality(ctx context.Context) (types.QualityReport, error) {
	records, err := s.snapshot(ctx)
	if err != nil {
		return types.QualityReport{}, err
	}
	return aggregate.QualityReport(records), nil
}

// Impute reports how many missing values grouped imputation fills across
// the stored set. Imputation is an analytical transform: it feeds feature
// engineering and never writes back to the store.
func (s *Service) Impute(ctx context.Context) (int, error) {
	records, err := s.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return impute.New(records).Apply(records), nil
}

// Features imputes missing values over a snapshot of the stored set and
// computes the feature vector for every valid record.
func (s *Service) Features(ctx context.Context) ([]features.Vector, error) {
	records, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	impute.New(records).Apply(records)

	eng := features.NewEngineer(
		features.WithAcceptanceRates(acceptanceRates(records)),
	)
	return eng.Vectors(records), nil
}

// Split partitions the current feature vectors into stratified train,
// validation, and test sets.
func (s *Service) Split(ctx context.Context) (types.SplitResult, error) {
	vectors, err := s.Features(ctx)
	if err != nil {
		return types.SplitResult{}, err
	}
	sp := split.New(
		split.WithFractions(s.valFraction, s.testFraction),
		split.WithSeed(s.splitSeed),
	)
	return sp.Split(vectors), nil
}

// Stats returns service runtime statistics for monitoring.
func (s *Service) Stats(ctx context.Context) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}
	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
		stats["knownUniversities"] = s.index.Size()
		if count, err := s.store.Count(ctx, repository.Filter{}); err == nil {
			stats["storedRecords"] = count
			metrics.UpdateStoredRecords(count)
		}
	}
	return stats
}

func (s *Service) snapshot(ctx context.Context) ([]*model.CleanedRecord, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return records, nil
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// acceptanceRates derives per-university acceptance rates from the records
// themselves. Universities with no decided records are left out and fall
// back to the neutral competitiveness value.
func acceptanceRates(records []*model.CleanedRecord) map[string]float64 {
	totals := make(map[string]int)
	accepted := make(map[string]int)
	for _, r := range records {
		switch r.Decision {
		case model.DecisionAccepted:
			accepted[r.University]++
			totals[r.University]++
		case model.DecisionRejected, model.DecisionWaitlisted:
			totals[r.University]++
		}
	}
	rates := make(map[string]float64, len(totals))
	for u, n := range totals {
		rates[u] = float64(accepted[u]) / float64(n)
	}
	return rates
}
