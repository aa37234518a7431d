// Package pipeline turns raw catalog results into the ordered list shown to the user.
package pipeline

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mmcdole/flix/internal/catalog"
	"github.com/mmcdole/flix/internal/domain"
)

// Pipeline applies genre filtering and sorting with a fixed collation locale.
type Pipeline struct {
	mu       sync.Mutex // collate.Collator is not safe for concurrent use
	collator *collate.Collator
}

// New creates a pipeline comparing titles under the given BCP 47 language tag.
// An unparseable tag falls back to English.
func New(lang string) *Pipeline {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Pipeline{collator: collate.New(tag, collate.IgnoreCase)}
}

var defaultPipeline = New("en")

// Apply runs the default English pipeline.
func Apply(items []domain.CatalogItem, filters domain.FilterSpec) []domain.CatalogItem {
	return defaultPipeline.Apply(items, filters)
}

// Apply filters items by genre and stable-sorts them by filters.SortBy.
// The input slice is never modified. An unknown sort key keeps input order.
func (p *Pipeline) Apply(items []domain.CatalogItem, filters domain.FilterSpec) []domain.CatalogItem {
	out := filterGenre(items, filters.Genre)
	if filters.SortBy == "" {
		return out
	}

	cmpFn := p.comparator(filters.SortBy)
	if cmpFn == nil {
		return out
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	slices.SortStableFunc(out, cmpFn)
	return out
}

// filterGenre returns a copy of items holding only those tagged with genre.
// A non-numeric genre matches nothing.
func filterGenre(items []domain.CatalogItem, genre string) []domain.CatalogItem {
	if genre == "" {
		return slices.Clone(items)
	}
	id, err := strconv.Atoi(strings.TrimSpace(genre))
	if err != nil {
		return []domain.CatalogItem{}
	}

	out := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.HasGenre(id) {
			out = append(out, item)
		}
	}
	return out
}

func (p *Pipeline) comparator(key domain.SortKey) func(a, b domain.CatalogItem) int {
	switch key {
	case domain.SortPopularityDesc:
		return desc(byPopularity)
	case domain.SortPopularityAsc:
		return byPopularity
	case domain.SortReleaseDateDesc:
		return desc(byReleaseDate)
	case domain.SortReleaseDateAsc:
		return byReleaseDate
	case domain.SortVoteAverageDesc:
		return desc(byVoteAverage)
	case domain.SortVoteAverageAsc:
		return byVoteAverage
	case domain.SortTitleAsc:
		return p.byTitle
	case domain.SortTitleDesc:
		return desc(p.byTitle)
	default:
		return nil
	}
}

func desc(f func(a, b domain.CatalogItem) int) func(a, b domain.CatalogItem) int {
	return func(a, b domain.CatalogItem) int { return f(b, a) }
}

func byPopularity(a, b domain.CatalogItem) int {
	return cmp.Compare(a.Popularity, b.Popularity)
}

func byVoteAverage(a, b domain.CatalogItem) int {
	return cmp.Compare(a.Rating(), b.Rating())
}

func byReleaseDate(a, b domain.CatalogItem) int {
	return releaseTime(a).Compare(releaseTime(b))
}

// byTitle is called with p.mu held
func (p *Pipeline) byTitle(a, b domain.CatalogItem) int {
	return p.collator.CompareString(a.DisplayTitle(), b.DisplayTitle())
}

// releaseTime parses the item's date; absent or invalid dates sort as the epoch.
func releaseTime(item domain.CatalogItem) time.Time {
	return catalog.ParseDate(item.DisplayDate())
}
