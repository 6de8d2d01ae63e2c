package ui

import (
	"strings"

	"sectionsnap/internal/domain"
)

// sectionMatches returns the indexes of sections whose id or title contains
// query, ignoring case.
func sectionMatches(doc *domain.Document, query string) []int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []int
	for i, s := range doc.Sections {
		if strings.Contains(strings.ToLower(s.ID), q) || strings.Contains(strings.ToLower(s.Title), q) {
			out = append(out, i)
		}
	}
	return out
}

// nextMatch picks the match after current, wrapping around. With forward
// false it picks the one before.
func nextMatch(matches []int, current int, forward bool) int {
	if len(matches) == 0 {
		return -1
	}
	if forward {
		for _, m := range matches {
			if m > current {
				return m
			}
		}
		return matches[0]
	}
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i] < current {
			return matches[i]
		}
	}
	return matches[len(matches)-1]
}
