package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/flix/internal/domain"
)

func items(idList ...int) []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(idList))
	for i, id := range idList {
		out[i] = domain.CatalogItem{ID: id}
	}
	return out
}

func ids(list []domain.CatalogItem) []int {
	out := make([]int, len(list))
	for i, item := range list {
		out[i] = item.ID
	}
	return out
}

func TestAppendPage(t *testing.T) {
	existing := items(1, 2, 3)
	incoming := items(3, 4)

	out := AppendPage(existing, incoming, false)
	assert.Len(t, out, len(existing)+len(incoming))
	assert.Equal(t, ids(existing), ids(out[:len(existing)]))
	assert.Equal(t, []int{1, 2, 3, 3, 4}, ids(out))

	assert.Equal(t, []int{3, 4}, ids(AppendPage(existing, incoming, true)))
	assert.Empty(t, AppendPage(existing, nil, true))
}

func TestAppendPage_DoesNotAliasExisting(t *testing.T) {
	existing := make([]domain.CatalogItem, 2, 10)
	copy(existing, items(1, 2))

	out := AppendPage(existing, items(3), false)
	out[0].ID = 99
	assert.Equal(t, 1, existing[0].ID)
	assert.Equal(t, 0, existing[:3][2].ID)
}

func TestAccumulator_LoadsPagesInOrder(t *testing.T) {
	acc := New()

	ticket, ok := acc.Begin()
	require.True(t, ok)
	assert.Equal(t, 1, ticket.Page)
	assert.True(t, acc.InFlight())

	// A second Begin while in flight must not issue a request
	_, ok = acc.Begin()
	assert.False(t, ok)

	require.True(t, acc.Complete(ticket, &domain.Page{Page: 1, TotalPages: 2, Results: items(1, 2)}))
	assert.Equal(t, domain.PaginationState{CurrentPage: 1, TotalPages: 2}, acc.State())

	ticket, ok = acc.Begin()
	require.True(t, ok)
	assert.Equal(t, 2, ticket.Page)
	require.True(t, acc.Complete(ticket, &domain.Page{Page: 2, TotalPages: 2, Results: items(3)}))

	assert.Equal(t, []int{1, 2, 3}, ids(acc.Items()))
	assert.False(t, acc.HasMore())

	_, ok = acc.Begin()
	assert.False(t, ok)
}

func TestAccumulator_FailKeepsItems(t *testing.T) {
	acc := New()
	ticket, _ := acc.Begin()
	acc.Complete(ticket, &domain.Page{Page: 1, TotalPages: 5, Results: items(1, 2)})

	ticket, ok := acc.Begin()
	require.True(t, ok)
	acc.Fail(ticket)

	assert.False(t, acc.InFlight())
	assert.Equal(t, []int{1, 2}, ids(acc.Items()))
	assert.Equal(t, 1, acc.State().CurrentPage)

	// Retrying asks for the same page again
	ticket, ok = acc.Begin()
	require.True(t, ok)
	assert.Equal(t, 2, ticket.Page)
}

func TestAccumulator_RestartInvalidatesTickets(t *testing.T) {
	acc := New()
	stale, _ := acc.Begin()

	acc.Restart()
	fresh, ok := acc.BeginPage(1)
	require.True(t, ok)

	assert.False(t, acc.Complete(stale, &domain.Page{Page: 1, TotalPages: 1, Results: items(7)}))
	assert.True(t, acc.InFlight())

	assert.True(t, acc.Complete(fresh, &domain.Page{Page: 1, TotalPages: 3, Results: items(8)}))
	assert.Equal(t, []int{8}, ids(acc.Items()))
}

func TestAccumulator_RestartKeepsItemsUntilFirstPage(t *testing.T) {
	acc := New()
	ticket, _ := acc.Begin()
	acc.Complete(ticket, &domain.Page{Page: 1, TotalPages: 3, Results: items(1, 2)})
	ticket, _ = acc.Begin()
	acc.Complete(ticket, &domain.Page{Page: 2, TotalPages: 3, Results: items(3, 4)})

	acc.Restart()
	ticket, ok := acc.BeginPage(1)
	require.True(t, ok)
	acc.Fail(ticket)

	assert.Equal(t, []int{1, 2, 3, 4}, ids(acc.Items()))
	assert.Equal(t, domain.PaginationState{CurrentPage: 2, TotalPages: 3}, acc.State())
	assert.False(t, acc.InFlight())

	ticket, ok = acc.BeginPage(1)
	require.True(t, ok)
	require.True(t, acc.Complete(ticket, &domain.Page{Page: 1, TotalPages: 3, Results: items(5)}))
	assert.Equal(t, []int{5}, ids(acc.Items()))
	assert.Equal(t, domain.PaginationState{CurrentPage: 1, TotalPages: 3}, acc.State())
}

func TestAccumulator_FirstPageReplaces(t *testing.T) {
	acc := New()
	ticket, _ := acc.Begin()
	acc.Complete(ticket, &domain.Page{Page: 1, TotalPages: 3, Results: items(1, 2)})

	ticket, ok := acc.BeginPage(1)
	require.True(t, ok)
	acc.Complete(ticket, &domain.Page{Page: 1, TotalPages: 3, Results: items(5)})
	assert.Equal(t, []int{5}, ids(acc.Items()))
}

func TestAccumulator_EmptyListingHasNoMore(t *testing.T) {
	acc := New()
	ticket, _ := acc.Begin()
	acc.Complete(ticket, &domain.Page{Page: 1, TotalPages: 0})

	assert.False(t, acc.HasMore())
	_, ok := acc.Begin()
	assert.False(t, ok)
}

func TestAccumulator_Dedupe(t *testing.T) {
	acc := New(WithDedupe())
	ticket, _ := acc.Begin()
	acc.Complete(ticket, &domain.Page{Page: 1, TotalPages: 2, Results: items(1, 2, 3)})
	ticket, _ = acc.Begin()
	acc.Complete(ticket, &domain.Page{Page: 2, TotalPages: 2, Results: items(3, 4, 4, 5)})

	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(acc.Items()))
}
