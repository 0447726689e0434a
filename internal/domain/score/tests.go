package score

import "strings"

// ScoreRange bounds one standardized test component.
type ScoreRange struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the range, inclusive.
func (r ScoreRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ranges is the fixed validation table, keyed by "test" or "test/component".
var ranges = map[string]ScoreRange{
	"gre/verbal":     {Min: 130, Max: 170},
	"gre/quant":      {Min: 130, Max: 170},
	"gre/analytical": {Min: 0, Max: 6},
	"gmat":           {Min: 200, Max: 800},
	"toefl":          {Min: 0, Max: 120},
	"ielts":          {Min: 0, Max: 9},
}

// StandardizeTestScore validates a raw test score against the fixed range
// table. Out-of-range scores are discarded (nil), never clamped: a silently
// corrected score is worse than a missing one. Unknown test types return nil.
func StandardizeTestScore(testType, component string, raw float64) *float64 {
	key := strings.ToLower(strings.TrimSpace(testType))
	if c := strings.ToLower(strings.TrimSpace(component)); c != "" {
		key += "/" + c
	}
	r, ok := ranges[key]
	if !ok || !r.Contains(raw) {
		return nil
	}
	return &raw
}

// Range exposes the validation bounds for a test type/component, for
// defensive re-checks downstream. ok is false for unknown keys.
func Range(testType, component string) (ScoreRange, bool) {
	key := strings.ToLower(strings.TrimSpace(testType))
	if c := strings.ToLower(strings.TrimSpace(component)); c != "" {
		key += "/" + c
	}
	r, ok := ranges[key]
	return r, ok
}
