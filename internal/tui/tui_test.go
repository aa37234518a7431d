package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/flix/internal/bookmark"
	"github.com/mmcdole/flix/internal/catalog"
	"github.com/mmcdole/flix/internal/debounce"
	"github.com/mmcdole/flix/internal/discover"
	"github.com/mmcdole/flix/internal/domain"
	"github.com/mmcdole/flix/internal/logging"
	"github.com/mmcdole/flix/internal/store"
)

type stubCatalog struct {
	searchErr error
}

func (s *stubCatalog) FetchListing(_ context.Context, _ domain.Category, page int) (*domain.Page, error) {
	return &domain.Page{Page: page, TotalPages: 2, Results: []domain.CatalogItem{
		{ID: page*10 + 1, Title: "Popular A"},
		{ID: page*10 + 2, Title: "Popular B"},
	}}, nil
}

func (s *stubCatalog) Search(_ context.Context, query string, _ domain.FilterSpec) (*domain.Page, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return &domain.Page{Page: 1, TotalPages: 1, Results: []domain.CatalogItem{
		{ID: 100, Title: query + " I", Popularity: 1},
		{ID: 101, Title: query + " II", Popularity: 2},
	}}, nil
}

func (s *stubCatalog) TrendingMovies(context.Context, domain.TimeWindow) (*domain.Page, error) {
	return &domain.Page{Page: 1, TotalPages: 1, Results: []domain.CatalogItem{{ID: 7, Title: "Trending"}}}, nil
}

func setupTestModel(t *testing.T) (Model, *stubCatalog) {
	t.Helper()
	st, err := store.NewBookmarkStore("")
	require.NoError(t, err)

	fake := &stubCatalog{}
	logger := logging.NullLogger()
	svc := discover.NewService(fake, bookmark.NewService(nil, st, logger), nil, logger)

	m := NewModel(svc, nil, "user-1", time.Hour, logger)
	t.Cleanup(m.Close)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), fake
}

// send feeds msg to the model and returns the updated model
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_LoadsPopularAndMore(t *testing.T) {
	m, _ := setupTestModel(t)

	m = send(t, m, LoadPopularCmd(m.Discover)())
	assert.Equal(t, 2, m.List.Count())
	assert.Contains(t, m.View(), "Popular A")
	assert.Contains(t, m.View(), "page 1/2")

	next, cmd := m.Update(keyMsg("m"))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.loadingMore)

	m = send(t, m, cmd())
	assert.False(t, m.loadingMore)
	assert.Equal(t, 4, m.List.Count())

	// Everything loaded: no command
	_, cmd = m.Update(keyMsg("m"))
	assert.Nil(t, cmd)
}

func TestModel_TabsSwitchLists(t *testing.T) {
	m, _ := setupTestModel(t)
	m = send(t, m, LoadPopularCmd(m.Discover)())
	m = send(t, m, LoadTrendingCmd(m.Discover)())

	m = send(t, m, keyMsg("2"))
	assert.Equal(t, discover.TabTrending, m.Discover.Tab())
	assert.Equal(t, 1, m.List.Count())

	m = send(t, m, keyMsg("tab"))
	assert.Equal(t, discover.TabBookmarked, m.Discover.Tab())
	assert.Contains(t, m.View(), "No bookmarks yet")

	m = send(t, m, keyMsg("1"))
	assert.Equal(t, 2, m.List.Count())
}

func TestModel_BookmarkToggle(t *testing.T) {
	m, _ := setupTestModel(t)
	m = send(t, m, LoadPopularCmd(m.Discover)())

	_, cmd := m.Update(keyMsg("b"))
	require.NotNil(t, cmd)
	msg := cmd()
	toggled, ok := msg.(BookmarkToggledMsg)
	require.True(t, ok)
	assert.True(t, toggled.Bookmarked)
	assert.NoError(t, toggled.Err)

	m = send(t, m, msg)
	assert.Contains(t, m.StatusMsg, "Bookmarked Popular A")

	m = send(t, m, keyMsg("3"))
	require.Equal(t, 1, m.List.Count())
	item, _ := m.List.Selected()
	assert.Equal(t, 11, item.ID)
}

func TestModel_SearchEnterBypassesDebounce(t *testing.T) {
	m, _ := setupTestModel(t)

	m = send(t, m, keyMsg("f"))
	assert.True(t, m.SearchBar.Focused())
	assert.Equal(t, discover.TabSearch, m.Discover.Tab())

	for _, r := range "dune" {
		m = send(t, m, keyMsg(string(r)))
	}
	// Debounce window is an hour: nothing dispatched yet
	assert.True(t, m.trigger.Pending())

	m = send(t, m, keyMsg("enter"))
	assert.False(t, m.SearchBar.Focused())

	ready, ok := m.observer.Wait()().(QueryReadyMsg)
	require.True(t, ok)
	assert.Equal(t, "dune", ready.Query.Text)

	m = send(t, m, SearchCmd(m.Discover, ready.Query)())
	assert.Equal(t, 2, m.List.Count())
	assert.Equal(t, "2 results for \"dune\"", m.StatusMsg)
}

func TestModel_BackspaceToEmptyDropsPendingSearch(t *testing.T) {
	m, _ := setupTestModel(t)
	m = send(t, m, LoadPopularCmd(m.Discover)())

	m = send(t, m, keyMsg("f"))
	m = send(t, m, keyMsg("d"))
	require.True(t, m.trigger.Pending())

	m = send(t, m, keyMsg("backspace"))
	assert.False(t, m.trigger.Pending())
	assert.Empty(t, m.observer.ch)
	assert.Equal(t, []int{11, 12}, itemIDs(m.Discover.List(discover.TabPopular)))
}

func TestModel_SearchErrorKeepsList(t *testing.T) {
	m, fake := setupTestModel(t)
	q := debounce.Query{Text: "alien", Filters: domain.DefaultFilterSpec()}
	m = send(t, m, SearchCmd(m.Discover, q)())
	require.Equal(t, 2, m.List.Count())

	fake.searchErr = &domain.CatalogRequestError{Endpoint: "/search/multi", StatusCode: 500, Status: "500 Internal Server Error"}
	msg := SearchCmd(m.Discover, debounce.Query{Text: "aliens"})()
	errMsg, ok := msg.(ErrMsg)
	require.True(t, ok)
	assert.True(t, errors.Is(errMsg.Err, domain.ErrHTTPStatus))

	m = send(t, m, msg)
	assert.True(t, m.StatusIsErr)
	assert.Contains(t, m.StatusMsg, "searching")
	assert.Equal(t, 2, m.List.Count())
}

func TestModel_SortModalAppliesToSearch(t *testing.T) {
	m, _ := setupTestModel(t)
	m = send(t, m, keyMsg("s"))
	assert.True(t, m.SortModal.IsVisible())
	assert.Contains(t, m.View(), "Sort by")

	// Move from "Most Popular" to "Least Popular"
	m = send(t, m, keyMsg("j"))
	m = send(t, m, keyMsg("enter"))
	assert.False(t, m.SortModal.IsVisible())
	assert.Equal(t, domain.SortPopularityAsc, m.SearchBar.Filters().SortBy)
	assert.Contains(t, m.StatusMsg, "next search")
}

func TestModel_LocalFilter(t *testing.T) {
	m, _ := setupTestModel(t)
	m = send(t, m, LoadPopularCmd(m.Discover)())

	m = send(t, m, keyMsg("/"))
	assert.True(t, m.List.IsFilterTyping())
	m = send(t, m, keyMsg("b"))
	assert.Equal(t, 1, m.List.Count())

	m = send(t, m, keyMsg("esc"))
	assert.False(t, m.List.IsFiltering())
	assert.Equal(t, 2, m.List.Count())
}

func itemIDs(list []domain.CatalogItem) []int {
	out := make([]int, len(list))
	for i, item := range list {
		out[i] = item.ID
	}
	return out
}

func TestQueryObserver_KeepsLatest(t *testing.T) {
	o := NewQueryObserver(1)
	o.OnQuery(debounce.Query{Text: "a"})
	o.OnQuery(debounce.Query{Text: "b"})

	msg := o.Wait()().(QueryReadyMsg)
	assert.Equal(t, "b", msg.Query.Text)
}

func TestErrMsg_Error(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, "loading trending: boom", ErrMsg{Err: err, Context: "loading trending"}.Error())
	assert.Equal(t, "boom", ErrMsg{Err: err}.Error())
}

func TestDetails(t *testing.T) {
	rating := 7.94
	item := domain.CatalogItem{ID: 1, Title: "Dune", ReleaseDate: "2021-10-22", VoteAverage: &rating, Overview: "Spice."}

	d := summaryDetail(item, nil)
	assert.Equal(t, "Dune", d.Title)
	assert.Equal(t, [][2]string{{"Released", "October 22, 2021"}, {"Rating", "7.9 / 10"}}, d.Fields)
	assert.Empty(t, d.Poster)

	applyMovie(d, &catalog.MovieDetails{Runtime: 155, Tagline: "Beyond fear, destiny awaits.", Genres: []domain.Genre{{ID: 878, Name: "Science Fiction"}}})
	applyCredits(d, &catalog.Credits{
		Cast: []catalog.CastMember{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}, {Name: "E"}, {Name: "F"}},
		Crew: []catalog.CrewMember{{Name: "Denis Villeneuve", Job: "Director"}, {Name: "X", Job: "Editor"}},
	})

	assert.Equal(t, "Beyond fear, destiny awaits.", d.Subtitle)
	assert.Equal(t, "Spice.", d.Overview)
	assert.Contains(t, d.Fields, [2]string{"Runtime", "2h 35m"})
	assert.Contains(t, d.Fields, [2]string{"Genres", "Science Fiction"})
	assert.Contains(t, d.Fields, [2]string{"Director", "Denis Villeneuve"})
	assert.Contains(t, d.Fields, [2]string{"Cast", "A, B, C, D, E"})
}
