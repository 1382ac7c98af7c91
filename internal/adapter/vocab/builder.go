package vocab

import (
	"sort"
	"strings"
)

// Build derives a fixed-size vocabulary from a column of comma-separated tag
// strings. Terms are trimmed, lowercased, counted across the whole corpus,
// and ordered most-frequent-first with ties broken by first encounter. The
// result always has exactly size entries, tail-padded with empty strings so
// feature-vector dimensionality stays fixed.
func Build(tagColumns []string, size int) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for _, raw := range tagColumns {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		for _, part := range strings.Split(raw, ",") {
			term := strings.ToLower(strings.TrimSpace(part))
			if term == "" {
				continue
			}
			if _, ok := counts[term]; !ok {
				firstSeen[term] = len(firstSeen)
			}
			counts[term]++
		}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return firstSeen[terms[i]] < firstSeen[terms[j]]
	})

	if len(terms) > size {
		terms = terms[:size]
	}
	for len(terms) < size {
		terms = append(terms, "")
	}

	return terms
}
