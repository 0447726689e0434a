package model

import "strings"

// Decision is the normalized admission outcome.
type Decision string

// Normalized decision values.
const (
	DecisionAccepted   Decision = "accepted"
	DecisionRejected   Decision = "rejected"
	DecisionWaitlisted Decision = "waitlisted"
	DecisionInterview  Decision = "interview"
	DecisionUnknown    Decision = "unknown"
)

// ParseDecision maps a raw decision string to a normalized Decision. Raw
// strings carry source-specific noise ("Accepted via E-mail on 4 Mar"), so
// matching is substring-based on the lowercased input.
func ParseDecision(raw string) Decision {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return DecisionUnknown
	case strings.Contains(s, "accept") || strings.Contains(s, "admit") || strings.Contains(s, "offer"):
		return DecisionAccepted
	case strings.Contains(s, "reject") || strings.Contains(s, "denied") || strings.Contains(s, "decline"):
		return DecisionRejected
	case strings.Contains(s, "wait"):
		return DecisionWaitlisted
	case strings.Contains(s, "interview"):
		return DecisionInterview
	default:
		return DecisionUnknown
	}
}

// Target returns the supervised-learning encoding for the decision and
// whether the record belongs in a supervised feature set at all.
// Accepted maps to 1, rejected to 0, waitlisted to 0.5; interview and
// unknown outcomes are excluded.
func (d Decision) Target() (float64, bool) {
	switch d {
	case DecisionAccepted:
		return 1, true
	case DecisionRejected:
		return 0, true
	case DecisionWaitlisted:
		return 0.5, true
	default:
		return 0, false
	}
}
