package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// notesHashPrefix bounds how much free text participates in the content
// hash, so trailing edits to long notes do not defeat duplicate detection.
const notesHashPrefix = 100

// ContentHash returns a stable digest over the record's core fields, used
// for cross-batch and cross-source duplicate detection. Records from
// different sources describing the same outcome hash identically.
func (r *CleanedRecord) ContentHash() string {
	notes := strings.ToLower(strings.TrimSpace(r.Notes))
	if len(notes) > notesHashPrefix {
		notes = notes[:notesHashPrefix]
	}
	parts := []string{
		strings.ToLower(strings.TrimSpace(r.University)),
		strings.ToLower(strings.TrimSpace(r.Program)),
		string(r.Decision),
		strings.ToLower(strings.TrimSpace(r.Season)),
		notes,
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// CompositeKey returns the exact-duplicate key over
// (canonical university, program, normalized GPA, decision).
func (r *CleanedRecord) CompositeKey() string {
	gpa := "null"
	if r.GPA != nil {
		gpa = fmt.Sprintf("%.2f", *r.GPA)
	}
	return strings.Join([]string{
		r.University,
		strings.ToLower(strings.TrimSpace(r.Program)),
		gpa,
		string(r.Decision),
	}, "|")
}
