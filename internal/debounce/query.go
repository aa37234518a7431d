package debounce

import (
	"strings"
	"time"

	"github.com/mmcdole/flix/internal/domain"
)

// Query is one state of the search box.
type Query struct {
	Text    string
	Filters domain.FilterSpec
}

// Searchable returns true if the query has text or a narrowing filter.
// Sort order alone does not make a query searchable.
func (q Query) Searchable() bool {
	return strings.TrimSpace(q.Text) != "" || q.Filters.Narrowed()
}

// QueryTrigger feeds search-box edits into a Debouncer. Edits that are not
// Searchable are dropped; Clear and Submit bypass the quiet period.
type QueryTrigger struct {
	d *Debouncer[Query]
}

// NewQueryTrigger creates a trigger dispatching to fn after delay.
func NewQueryTrigger(delay time.Duration, fn func(Query)) *QueryTrigger {
	return &QueryTrigger{d: New(delay, fn)}
}

// Edit records a new search-box state. An unsearchable state cancels any
// pending dispatch and schedules nothing; only Clear resets the listing.
func (t *QueryTrigger) Edit(q Query) {
	q.Text = strings.TrimSpace(q.Text)
	if !q.Searchable() {
		t.d.Cancel()
		return
	}
	t.d.Update(q)
}

// Submit dispatches q immediately, as on enter.
func (t *QueryTrigger) Submit(q Query) {
	q.Text = strings.TrimSpace(q.Text)
	t.d.Flush(q)
}

// Clear dispatches an empty query with the current filters immediately.
// The receiver treats it as "reset to the default listing" unless filters narrow it.
func (t *QueryTrigger) Clear(filters domain.FilterSpec) {
	t.d.Flush(Query{Filters: filters})
}

func (t *QueryTrigger) Pending() bool {
	return t.d.Pending()
}

// Stop cancels any pending dispatch for good
func (t *QueryTrigger) Stop() {
	t.d.Stop()
}
