// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file/env on top.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Store backends selectable via the store_backend key.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory cleaning task queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of cleaning workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeCacheSize caps the exact/hash duplicate tracker.
	DedupeCacheSize int `koanf:"dedupe_cache_size"`

	// FuzzyCeiling disables near-duplicate detection for batches larger
	// than this many records. Zero disables the fuzzy pass entirely.
	FuzzyCeiling int `koanf:"fuzzy_ceiling"`

	// FuzzySimilarity is the 0-100 token-sort similarity threshold at
	// which two records in the same group count as near duplicates.
	FuzzySimilarity int `koanf:"fuzzy_similarity"`

	// ValFraction and TestFraction control dataset splitting.
	ValFraction  float64 `koanf:"val_fraction"`
	TestFraction float64 `koanf:"test_fraction"`

	// SplitSeed seeds the deterministic split shuffle.
	SplitSeed int64 `koanf:"split_seed"`

	// StoreBackend selects the record store: memory or mongo.
	StoreBackend string `koanf:"store_backend"`

	// Mongo settings, used when StoreBackend is mongo.
	MongoURI        string `koanf:"mongo_uri"`
	MongoDatabase   string `koanf:"mongo_database"`
	MongoCollection string `koanf:"mongo_collection"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		QueueSize:       10_000,
		WorkerCount:     runtime.NumCPU() * 4,
		DedupeCacheSize: 500_000,
		FuzzyCeiling:    5_000,
		FuzzySimilarity: 90,
		ValFraction:     0.15,
		TestFraction:    0.15,
		SplitSeed:       42,
		StoreBackend:    StoreMemory,
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "edulens",
		MongoCollection: "records",
	}
}
