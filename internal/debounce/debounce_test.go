package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/flix/internal/domain"
)

const testDelay = 30 * time.Millisecond

func collect[T any](t *testing.T) (func(T), <-chan T) {
	t.Helper()
	ch := make(chan T, 16)
	return func(v T) { ch <- v }, ch
}

func expectNone[T any](t *testing.T, ch <-chan T, wait time.Duration) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected emission: %v", v)
	case <-time.After(wait):
	}
}

func expectOne[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for emission")
	}
	var zero T
	return zero
}

func TestDebouncer_BurstEmitsLatestOnce(t *testing.T) {
	fn, ch := collect[string](t)
	d := New(testDelay, fn)

	d.Update("b")
	d.Update("ba")
	d.Update("bat")
	assert.True(t, d.Pending())

	// Nothing before the quiet period elapses
	expectNone(t, ch, testDelay/3)

	assert.Equal(t, "bat", expectOne(t, ch))
	expectNone(t, ch, 2*testDelay)
	assert.False(t, d.Pending())
}

func TestDebouncer_SeparateQuietPeriodsEmitEach(t *testing.T) {
	fn, ch := collect[int](t)
	d := New(testDelay, fn)

	d.Update(1)
	assert.Equal(t, 1, expectOne(t, ch))
	d.Update(2)
	assert.Equal(t, 2, expectOne(t, ch))
}

func TestDebouncer_FlushBypassesDelay(t *testing.T) {
	fn, ch := collect[string](t)
	d := New(time.Hour, fn)

	d.Update("pending")
	d.Flush("now")

	select {
	case v := <-ch:
		assert.Equal(t, "now", v)
	default:
		t.Fatal("Flush did not call fn synchronously")
	}
	assert.False(t, d.Pending())
}

func TestDebouncer_CancelAndStop(t *testing.T) {
	fn, ch := collect[string](t)
	d := New(testDelay, fn)

	d.Update("x")
	d.Cancel()
	expectNone(t, ch, 2*testDelay)

	d.Update("y")
	d.Stop()
	d.Update("z")
	d.Flush("z")
	expectNone(t, ch, 2*testDelay)
}

func TestNew_DefaultDelay(t *testing.T) {
	d := New(0, func(int) {})
	assert.Equal(t, DefaultDelay, d.delay)
}

func TestQueryTrigger_GatesUnsearchableEdits(t *testing.T) {
	fn, ch := collect[Query](t)
	trig := NewQueryTrigger(testDelay, fn)
	defer trig.Stop()

	// Blank text with default filters never schedules anything
	trig.Edit(Query{Text: "   ", Filters: domain.DefaultFilterSpec()})
	assert.False(t, trig.Pending())

	// Sort alone does not narrow
	trig.Edit(Query{Filters: domain.FilterSpec{Type: domain.SearchAll, SortBy: domain.SortTitleAsc}})
	assert.False(t, trig.Pending())

	// A genre filter with no text does
	trig.Edit(Query{Filters: domain.FilterSpec{Genre: "27"}})
	q := expectOne(t, ch)
	assert.Equal(t, "27", q.Filters.Genre)
	assert.Empty(t, q.Text)
}

func TestQueryTrigger_EmptyEditCancelsPending(t *testing.T) {
	fn, ch := collect[Query](t)
	trig := NewQueryTrigger(testDelay, fn)
	defer trig.Stop()

	trig.Edit(Query{Text: "a"})
	require.True(t, trig.Pending())

	// Backspacing to an empty box drops the pending search without a reset
	trig.Edit(Query{Filters: domain.DefaultFilterSpec()})
	assert.False(t, trig.Pending())
	expectNone(t, ch, 3*testDelay)
}

func TestQueryTrigger_TrimsAndDebounces(t *testing.T) {
	fn, ch := collect[Query](t)
	trig := NewQueryTrigger(testDelay, fn)
	defer trig.Stop()

	trig.Edit(Query{Text: "al"})
	trig.Edit(Query{Text: " alien  "})

	q := expectOne(t, ch)
	assert.Equal(t, "alien", q.Text)
	expectNone(t, ch, 2*testDelay)
}

func TestQueryTrigger_ClearAndSubmitAreImmediate(t *testing.T) {
	fn, ch := collect[Query](t)
	trig := NewQueryTrigger(time.Hour, fn)
	defer trig.Stop()

	trig.Edit(Query{Text: "alien"})
	trig.Clear(domain.DefaultFilterSpec())

	require.Len(t, ch, 1)
	q := <-ch
	assert.Empty(t, q.Text)
	assert.False(t, q.Searchable())
	assert.False(t, trig.Pending())

	trig.Submit(Query{Text: " dune "})
	require.Len(t, ch, 1)
	assert.Equal(t, "dune", (<-ch).Text)
}
