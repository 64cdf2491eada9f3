// Package search filters the loaded audiobook list by title.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/shoko75/audioshelf/internal/domain"
)

// Match pairs a matched audiobook with its position in the source list.
// The original index is kept so callers can route list actions (favorite
// toggle, near-end trigger) back to the unfiltered position.
type Match struct {
	Index int // Position in the unfiltered list
	Rank  int // Levenshtein-ish distance, lower is better
}

// Filter returns positions of audiobooks whose title or publisher
// fuzzy-matches query, best matches first. An empty query matches
// everything in original order.
func Filter(query string, items []domain.Audiobook) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		matches := make([]Match, len(items))
		for i := range items {
			matches[i] = Match{Index: i}
		}
		return matches
	}

	var matches []Match
	for i, item := range items {
		target := item.Title
		rank := fuzzy.RankMatchNormalizedFold(query, target)
		if rank < 0 {
			// Fall back to publisher so "penguin" finds their titles.
			rank = fuzzy.RankMatchNormalizedFold(query, item.Publisher)
			if rank < 0 {
				continue
			}
			rank += len(target) // Publisher hits sort after title hits
		}
		matches = append(matches, Match{Index: i, Rank: rank})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Rank < matches[b].Rank
	})

	return matches
}
