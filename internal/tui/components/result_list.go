package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flix/internal/catalog"
	"github.com/mmcdole/flix/internal/domain"
	"github.com/mmcdole/flix/internal/search"
	"github.com/mmcdole/flix/internal/tui/styles"
)

const (
	yearWidth   = 4
	ratingWidth = 9 // "7.9 / 10"
	kindWidth   = 6
)

// ResultList is a scrollable list of catalog items with local fuzzy filtering
type ResultList struct {
	items   []domain.CatalogItem
	index   *search.Index
	matches []search.Match // nil when no filter query

	filterActive bool
	filterInput  textinput.Model

	cursor     int
	offset     int
	maxVisible int
	width      int
	height     int

	// Reports whether an item id is bookmarked
	marked func(int) bool
}

func NewResultList() *ResultList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.CharLimit = 50
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.PlaceholderStyle = styles.DimStyle

	return &ResultList{
		filterInput: ti,
		index:       search.NewIndex(nil),
		marked:      func(int) bool { return false },
	}
}

// SetMarked sets the bookmark lookup used when rendering
func (l *ResultList) SetMarked(fn func(int) bool) {
	if fn != nil {
		l.marked = fn
	}
}

// SetItems replaces the list. The selected item keeps its place if it is
// still present; an active filter is reapplied to the new items.
func (l *ResultList) SetItems(items []domain.CatalogItem) {
	selected, hadSelection := l.Selected()

	l.items = items
	l.index = search.NewIndex(items)
	l.applyFilter()

	l.cursor = 0
	if hadSelection {
		for i := 0; i < l.Count(); i++ {
			if l.itemAt(i).ID == selected.ID {
				l.cursor = i
				break
			}
		}
	}
	l.offset = 0
	l.ensureVisible()
}

func (l *ResultList) Items() []domain.CatalogItem {
	return l.items
}

func (l *ResultList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.filterInput.Width = max(width-4, 10)
	l.recalcMaxVisible()
	l.ensureVisible()
}

// Count returns the number of visible rows
func (l *ResultList) Count() int {
	if l.matches != nil {
		return len(l.matches)
	}
	return len(l.items)
}

// Selected returns the item under the cursor
func (l *ResultList) Selected() (domain.CatalogItem, bool) {
	if l.cursor < 0 || l.cursor >= l.Count() {
		return domain.CatalogItem{}, false
	}
	return l.itemAt(l.cursor), true
}

// AtEnd reports whether the cursor is on the last row
func (l *ResultList) AtEnd() bool {
	return l.Count() > 0 && l.cursor == l.Count()-1
}

// StartFilter activates the filter input
func (l *ResultList) StartFilter() tea.Cmd {
	l.filterActive = true
	l.recalcMaxVisible()
	return l.filterInput.Focus()
}

// IsFiltering returns true if filter mode is active
func (l *ResultList) IsFiltering() bool {
	return l.filterActive
}

// IsFilterTyping returns true if the filter input has focus
func (l *ResultList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (l *ResultList) ClearFilter() {
	l.filterActive = false
	l.matches = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
}

// Update handles filter typing and cursor movement
func (l *ResultList) Update(msg tea.Msg) tea.Cmd {
	if l.IsFilterTyping() {
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "esc":
				l.ClearFilter()
				return nil
			case "enter":
				// Keep the results, navigate them
				l.filterInput.Blur()
				return nil
			case "backspace":
				if l.filterInput.Value() == "" {
					l.ClearFilter()
					return nil
				}
			}
		}

		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		l.cursor = 0
		l.offset = 0
		return cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	count := l.Count()
	if count == 0 {
		return nil
	}

	switch k.String() {
	case "j", "down":
		if l.cursor < count-1 {
			l.cursor++
		}
	case "k", "up":
		if l.cursor > 0 {
			l.cursor--
		}
	case "g", "home":
		l.cursor = 0
	case "G", "end":
		l.cursor = count - 1
	case "ctrl+d", "pgdown":
		l.cursor = min(l.cursor+max(l.maxVisible/2, 1), count-1)
	case "ctrl+u", "pgup":
		l.cursor = max(l.cursor-max(l.maxVisible/2, 1), 0)
	}
	l.ensureVisible()
	return nil
}

func (l *ResultList) itemAt(i int) domain.CatalogItem {
	if l.matches != nil {
		return l.matches[i].Item
	}
	return l.items[i]
}

func (l *ResultList) applyFilter() {
	if !l.filterActive {
		l.matches = nil
		return
	}
	matches := l.index.Filter(l.filterInput.Value())
	if matches == nil {
		// Blank query shows everything
		l.matches = nil
		return
	}
	l.matches = matches
}

func (l *ResultList) recalcMaxVisible() {
	l.maxVisible = l.height - 1 // header row
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *ResultList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

// View renders the header, the visible rows and the filter bar
func (l *ResultList) View(emptyText string) string {
	var lines []string

	titleWidth := max(l.width-yearWidth-ratingWidth-kindWidth-8, 10)
	header := fmt.Sprintf("  %s %s %s %s",
		styles.Pad("Title", titleWidth),
		styles.Pad("Year", yearWidth),
		styles.Pad("Rating", ratingWidth),
		styles.Pad("Kind", kindWidth))
	lines = append(lines, styles.DimStyle.Render(header))

	if l.Count() == 0 {
		lines = append(lines, styles.DimStyle.Render("  "+emptyText))
	}

	end := min(l.offset+l.maxVisible, l.Count())
	for i := l.offset; i < end; i++ {
		var positions []int
		if l.matches != nil {
			positions = l.matches[i].MatchedIndexes
		}
		lines = append(lines, l.renderRow(l.itemAt(i), positions, titleWidth, i == l.cursor))
	}

	if l.filterActive {
		counter := styles.DimStyle.Render(fmt.Sprintf(" %d/%d", l.Count(), len(l.items)))
		lines = append(lines, l.filterInput.View()+counter)
	}

	return strings.Join(lines, "\n")
}

func (l *ResultList) renderRow(item domain.CatalogItem, positions []int, titleWidth int, selected bool) string {
	base := styles.NormalItemStyle
	if selected {
		base = styles.SelectedItemStyle
	}

	mark := styles.UnmarkedChar
	if l.marked(item.ID) {
		mark = styles.BookmarkedChar
	}

	title := styles.Pad(item.DisplayTitle(), titleWidth)
	if lipgloss.Width(item.DisplayTitle()) > titleWidth {
		// Highlight positions may fall past the cut
		positions = nil
	}

	year := catalog.YearFromDate(item.DisplayDate())
	rating := catalog.FormatRating(item.VoteAverage)
	kind := string(item.MediaType)
	if kind == "" {
		kind = string(domain.MediaTypeMovie)
	}

	return base.Render(mark+" ") +
		styles.HighlightMatches(title, positions, base) +
		base.Render(" "+styles.Pad(year, yearWidth)+" ") +
		styles.RatingStyle.Inherit(base).Render(styles.Pad(rating, ratingWidth)) +
		base.Render(" "+styles.Pad(kind, kindWidth))
}
