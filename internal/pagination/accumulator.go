// Package pagination merges successive listing pages into one growing list.
package pagination

import (
	"slices"
	"sync"

	"github.com/mmcdole/flix/internal/domain"
)

// AppendPage merges a fetched page into the existing list. The first page
// replaces existing; later pages are appended with both orders preserved.
// Items repeated across pages are kept. The result never aliases existing.
func AppendPage(existing, incoming []domain.CatalogItem, isFirstPage bool) []domain.CatalogItem {
	if isFirstPage {
		return slices.Clone(incoming)
	}
	out := make([]domain.CatalogItem, 0, len(existing)+len(incoming))
	out = append(out, existing...)
	return append(out, incoming...)
}

// appendUnique is AppendPage that skips incoming IDs already present.
func appendUnique(existing, incoming []domain.CatalogItem, isFirstPage bool) []domain.CatalogItem {
	if isFirstPage {
		existing = nil
	}
	seen := make(map[int]struct{}, len(existing)+len(incoming))
	for _, item := range existing {
		seen[item.ID] = struct{}{}
	}
	out := slices.Clone(existing)
	for _, item := range incoming {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Ticket identifies one page fetch started on an Accumulator.
type Ticket struct {
	Page int
	gen  uint64
}

// Option configures an Accumulator
type Option func(*Accumulator)

// WithDedupe drops incoming items whose ID is already accumulated.
func WithDedupe() Option {
	return func(a *Accumulator) {
		a.dedupe = true
	}
}

// Accumulator owns a paginated listing: the merged items, the pagination
// state and the in-flight flag. At most one fetch is in flight at a time.
type Accumulator struct {
	mu       sync.Mutex
	items    []domain.CatalogItem
	state    domain.PaginationState
	loaded   bool
	inFlight bool
	gen      uint64
	dedupe   bool
}

// New creates an empty accumulator
func New(opts ...Option) *Accumulator {
	a := &Accumulator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Begin starts a fetch of the next page. ok is false, and no request should be
// issued, when a fetch is already in flight or the last page has been loaded.
func (a *Accumulator) Begin() (Ticket, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.inFlight {
		return Ticket{}, false
	}
	if a.loaded && a.state.CurrentPage >= a.state.TotalPages {
		return Ticket{}, false
	}

	next := 1
	if a.loaded {
		next = a.state.CurrentPage + 1
	}
	a.inFlight = true
	return Ticket{Page: next, gen: a.gen}, true
}

// BeginPage starts a fetch of a specific page, typically page 1 after Restart.
func (a *Accumulator) BeginPage(page int) (Ticket, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.inFlight {
		return Ticket{}, false
	}
	if page < 1 {
		page = 1
	}
	a.inFlight = true
	return Ticket{Page: page, gen: a.gen}, true
}

// Complete applies a fetched page. It returns false, changing nothing, if the
// ticket was invalidated by Restart.
func (a *Accumulator) Complete(t Ticket, page *domain.Page) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if t.gen != a.gen || !a.inFlight {
		return false
	}
	a.inFlight = false

	current := page.Page
	if current < 1 {
		current = t.Page
	}
	isFirst := current == 1

	if a.dedupe {
		a.items = appendUnique(a.items, page.Results, isFirst)
	} else {
		a.items = AppendPage(a.items, page.Results, isFirst)
	}

	total := max(page.TotalPages, 0)
	if total > 0 && current > total {
		current = total
	}
	a.state = domain.PaginationState{CurrentPage: current, TotalPages: total}
	a.loaded = true
	return true
}

// Fail ends a fetch without touching the accumulated items.
func (a *Accumulator) Fail(t Ticket) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if t.gen == a.gen {
		a.inFlight = false
	}
}

// Restart invalidates outstanding tickets and clears the in-flight flag but
// keeps the items and state, so a failed reload leaves the list intact. A
// completed page 1 replaces the items.
func (a *Accumulator) Restart() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.inFlight = false
	a.gen++
}

// Items returns a copy of the accumulated items
func (a *Accumulator) Items() []domain.CatalogItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.items)
}

// State returns the current pagination state
func (a *Accumulator) State() domain.PaginationState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// HasMore returns true if Begin would currently start a fetch, ignoring in-flight state.
func (a *Accumulator) HasMore() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.loaded || a.state.CurrentPage < a.state.TotalPages
}

// InFlight reports whether a fetch is outstanding
func (a *Accumulator) InFlight() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inFlight
}
