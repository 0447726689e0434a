package synth

import "time"

// Config holds configuration for one synthetic ingestion run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumRecords int           // Number of raw records to generate
	BatchSize  int           // Records per POST /records call
	Workers    int           // Concurrent submitters
	Timeout    time.Duration // HTTP request timeout
	Seed       int64         // Generator seed, for reproducible runs
	DupeRate   float64       // Fraction of records emitted twice with cosmetic noise
	Verbose    bool          // Enable verbose logging
}

// CleaningStats mirrors the POST /records response shape.
type CleaningStats struct {
	Submitted   int            `json:"submitted"`
	Accepted    int            `json:"accepted"`
	Duplicates  int            `json:"duplicates"`
	Invalid     int            `json:"invalid"`
	FieldErrors map[string]int `json:"field_errors"`
}

// Stats accumulates run totals across batches.
type Stats struct {
	Generated  int
	Submitted  int
	Accepted   int
	Duplicates int
	Invalid    int
	Failed     int

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
