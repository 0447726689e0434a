package model

import "strings"

// researchKeywords are the free-text markers counted as research evidence.
var researchKeywords = []string{
	"research", "publication", "published", "paper", "thesis",
	"conference", "journal", "first author", "co-author", "lab",
}

func containsResearchMention(notes string) bool {
	s := strings.ToLower(notes)
	for _, kw := range researchKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
