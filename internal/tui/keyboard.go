package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/flix/internal/debounce"
	"github.com/mmcdole/flix/internal/discover"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ShowHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.ShowHelp = false
			m.Help.ShowAll = false
		}
		return m, nil
	}

	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	if m.SearchBar.Focused() {
		return m.handleSearchKey(msg)
	}

	if m.List.IsFilterTyping() {
		cmd := m.List.Update(msg)
		return m, tea.Batch(cmd, m.syncDetails())
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		m.Help.ShowAll = true
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.List.IsFiltering() {
			m.List.ClearFilter()
			return m, m.refreshList()
		}
		if m.ShowDetails {
			m.ShowDetails = false
			m.updateLayout()
		}
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.setTab(discover.TabSearch)
		cmd := m.SearchBar.Focus()
		m.updateLayout()
		return m, tea.Batch(cmd, m.refreshList())

	case key.Matches(msg, Keys.Filter):
		cmd := m.List.StartFilter()
		return m, cmd

	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(m.SearchBar.Filters().SortBy)
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		return m, m.cycleTab(1)

	case key.Matches(msg, Keys.PrevTab):
		return m, m.cycleTab(-1)

	case key.Matches(msg, Keys.Tab1):
		return m, m.switchTab(discover.TabPopular)
	case key.Matches(msg, Keys.Tab2):
		return m, m.switchTab(discover.TabTrending)
	case key.Matches(msg, Keys.Tab3):
		return m, m.switchTab(discover.TabBookmarked)
	case key.Matches(msg, Keys.Tab4):
		return m, m.switchTab(discover.TabSearch)

	case key.Matches(msg, Keys.Bookmark):
		item, ok := m.List.Selected()
		if !ok {
			return m, nil
		}
		return m, ToggleBookmarkCmd(m.Discover, m.UserID, item)

	case key.Matches(msg, Keys.LoadMore):
		return m, m.loadMore()

	case key.Matches(msg, Keys.Refresh):
		return m, m.refreshTab()

	case key.Matches(msg, Keys.Details):
		m.ShowDetails = !m.ShowDetails
		m.updateLayout()
		if !m.ShowDetails {
			m.Details = nil
			m.detailsFor = 0
		}
		return m, m.syncDetails()

	case key.Matches(msg, Keys.Down) && m.List.AtEnd():
		// Scrolling past the end of popular fetches the next page
		if m.Discover.Tab() == discover.TabPopular {
			return m, m.loadMore()
		}
		return m, nil
	}

	cmd := m.List.Update(msg)
	return m, tea.Batch(cmd, m.syncDetails())
}

// handleSearchKey handles keys while the search box has focus
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, Keys.Escape):
		if m.SearchBar.Query().Text == "" {
			m.SearchBar.Blur()
			m.updateLayout()
			return m, nil
		}
		// Clearing the box resets to the default listing right away
		m.SearchBar.Reset()
		m.trigger.Clear(m.SearchBar.Filters())
		return m, nil

	case key.Matches(msg, Keys.Enter):
		m.trigger.Submit(m.SearchBar.Query())
		m.SearchBar.Blur()
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.CycleType):
		m.SearchBar.CycleType()
		m.editQuery()
		return m, nil

	case key.Matches(msg, Keys.Suggestion):
		if m.SearchBar.AcceptSuggestion() {
			m.editQuery()
		}
		return m, nil
	}

	cmd, changed := m.SearchBar.Update(msg)
	if changed {
		m.editQuery()
	}
	return m, cmd
}

// editQuery feeds the current search-box state to the debouncer. Emptying the
// box only drops a pending search; esc resets to the default listing.
func (m *Model) editQuery() {
	m.trigger.Edit(m.SearchBar.Query())
}

// routeToModal sends keys to the sort modal when it is visible
func (m Model) routeToModal(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if !m.SortModal.IsVisible() {
		return false, m, nil
	}

	handled, selection := m.SortModal.HandleKey(msg.String())
	if selection == nil {
		return handled, m, nil
	}

	m.SearchBar.SetSort(*selection)
	q := m.SearchBar.Query()
	if q.Searchable() {
		m.trigger.Submit(q)
		m.StatusMsg = "Sorting by " + selection.Label()
	} else {
		m.StatusMsg = "Sort set to " + selection.Label() + " for the next search"
	}
	m.StatusIsErr = false
	return true, m, ClearStatusCmd(statusTimeout)
}

func (m *Model) setTab(tab discover.Tab) {
	if m.List.IsFiltering() {
		m.List.ClearFilter()
	}
	m.Discover.SetTab(tab)
}

func (m *Model) switchTab(tab discover.Tab) tea.Cmd {
	m.setTab(tab)
	return m.refreshList()
}

func (m *Model) cycleTab(delta int) tea.Cmd {
	tabs := discover.Tabs()
	cur := 0
	for i, t := range tabs {
		if t == m.Discover.Tab() {
			cur = i
			break
		}
	}
	next := (cur + delta + len(tabs)) % len(tabs)
	return m.switchTab(tabs[next])
}

func (m *Model) loadMore() tea.Cmd {
	if m.Discover.Tab() != discover.TabPopular {
		m.StatusMsg = "Load more works on the popular tab"
		m.StatusIsErr = false
		return ClearStatusCmd(statusTimeout)
	}
	if m.loadingMore || !m.Discover.CanLoadMore() {
		return nil
	}
	m.loadingMore = true
	return LoadMoreCmd(m.Discover)
}

// refreshTab reloads the data behind the active tab
func (m *Model) refreshTab() tea.Cmd {
	switch m.Discover.Tab() {
	case discover.TabTrending:
		return LoadTrendingCmd(m.Discover)
	case discover.TabBookmarked:
		return LoadBookmarksCmd(m.Discover, m.UserID)
	case discover.TabSearch:
		text, filters := m.Discover.Query()
		return SearchCmd(m.Discover, debounce.Query{Text: text, Filters: filters})
	default:
		return LoadPopularCmd(m.Discover)
	}
}
