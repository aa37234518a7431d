// Package search provides search-box suggestions and fuzzy narrowing of loaded lists.
package search

import (
	"slices"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/flix/internal/domain"
)

// TrendingTerms are offered while the search box is focused
var TrendingTerms = []string{
	"Marvel",
	"Batman",
	"Horror",
	"Comedy",
	"Action",
	"Sci-Fi",
	"Romance",
	"Thriller",
}

// Suggest returns the trending terms matching input, closest first.
// Blank input returns every term.
func Suggest(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return slices.Clone(TrendingTerms)
	}

	matches := lfuzzy.RankFindFold(input, TrendingTerms)
	// Closest first, ties in term order
	slices.SortStableFunc(matches, func(a, b lfuzzy.Rank) int {
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		return a.OriginalIndex - b.OriginalIndex
	})

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Target
	}
	return out
}

// Index implements sahilm/fuzzy.Source over a list of catalog items
type Index struct {
	items       []domain.CatalogItem
	lowerTitles []string // Pre-computed lowercase display titles
}

// NewIndex builds an index over items
func NewIndex(items []domain.CatalogItem) *Index {
	idx := &Index{
		items:       items,
		lowerTitles: make([]string, len(items)),
	}
	for i, item := range items {
		idx.lowerTitles[i] = strings.ToLower(item.DisplayTitle())
	}
	return idx
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of items (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.items) }

// Match is a narrowed item with match metadata for highlighting
type Match struct {
	Item           domain.CatalogItem
	Index          int   // Position in the indexed list
	MatchedIndexes []int // Character positions that matched
	Score          int   // Higher is better
}

// Filter returns the indexed items whose title fuzzily matches query, best first.
// A blank query returns nil; callers show the full list.
func (idx *Index) Filter(query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	found := fuzzy.FindFrom(query, idx)
	out := make([]Match, len(found))
	for i, m := range found {
		out[i] = Match{
			Item:           idx.items[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return out
}
