package service

import (
	"strings"

	"skillsage/internal/domain"
)

// substringSimilarity is the default duplicate heuristic: two titles are
// duplicates when, after lowercasing and stripping all whitespace, either
// contains the other. Deliberately cheap; semantic dedup can be swapped in
// behind domain.SimilarityChecker.
type substringSimilarity struct{}

// NewSubstringSimilarity returns the default title similarity checker.
func NewSubstringSimilarity() domain.SimilarityChecker {
	return substringSimilarity{}
}

func (substringSimilarity) IsDuplicate(candidateTitle string, existingTitles []string) bool {
	candidate := normalizeTitle(candidateTitle)
	if candidate == "" {
		return false
	}
	for _, title := range existingTitles {
		existing := normalizeTitle(title)
		if existing == "" {
			continue
		}
		if strings.Contains(existing, candidate) || strings.Contains(candidate, existing) {
			return true
		}
	}
	return false
}

func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), "")
}
