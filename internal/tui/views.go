package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flix/internal/discover"
	"github.com/mmcdole/flix/internal/tui/styles"
)

var tabLabels = map[discover.Tab]string{
	discover.TabPopular:    "Popular",
	discover.TabTrending:   "Trending",
	discover.TabBookmarked: "Bookmarked",
	discover.TabSearch:     "Search",
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	bodyHeight := max(m.Height-ChromeHeight, 1)

	var body string
	switch {
	case m.ShowHelp:
		body = lipgloss.Place(m.Width, bodyHeight, lipgloss.Center, lipgloss.Center,
			styles.ModalStyle.Render(m.Help.View(Keys)))
	case m.SortModal.IsVisible():
		body = lipgloss.Place(m.Width, bodyHeight, lipgloss.Center, lipgloss.Center,
			m.SortModal.View())
	default:
		body = m.renderBody(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderSearch(),
		lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	parts := []string{styles.TitleStyle.Render("flix ")}
	active := m.Discover.Tab()
	for i, tab := range discover.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, tabLabels[tab])
		if tab == active {
			parts = append(parts, styles.ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, styles.InactiveTabStyle.Render(label))
		}
	}
	if m.Loading() {
		parts = append(parts, " "+m.Spinner.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderSearch always takes two lines so the layout does not jump
func (m Model) renderSearch() string {
	bar := m.SearchBar.View()
	if lipgloss.Height(bar) < 2 {
		bar += "\n"
	}
	return bar
}

func (m Model) renderBody(height int) string {
	list := m.List.View(m.emptyText())
	if !m.ShowDetails {
		return list
	}

	detailWidth := m.Width - m.listWidth()
	if detailWidth < 10 {
		return list
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.listWidth()).Render(list),
		m.renderDetails(detailWidth, height),
	)
}

func (m Model) emptyText() string {
	switch m.Discover.Tab() {
	case discover.TabBookmarked:
		return "No bookmarks yet. Press b on a title to save it."
	case discover.TabSearch:
		if text, filters := m.Discover.Query(); text == "" && !filters.Narrowed() {
			return "Press f to search."
		}
		return "No results."
	default:
		if m.Loading() {
			return "Loading..."
		}
		return "Nothing to show."
	}
}

func (m Model) renderDetails(width, height int) string {
	style := styles.DetailStyle
	frameW, frameH := style.GetFrameSize()
	inner := max(width-frameW, 1)

	var b strings.Builder
	if d := m.Details; d == nil {
		b.WriteString(styles.DimStyle.Render("Nothing selected"))
	} else {
		b.WriteString(styles.TitleStyle.Render(styles.Truncate(d.Title, inner)))
		if d.Subtitle != "" {
			b.WriteString("\n" + styles.SubtitleStyle.Render(styles.Truncate(d.Subtitle, inner)))
		}
		b.WriteString("\n\n")
		for _, f := range d.Fields {
			label := styles.DimStyle.Render(fmt.Sprintf("%-9s", f[0]))
			b.WriteString(label + " " + styles.Truncate(f[1], max(inner-10, 1)) + "\n")
		}
		if d.Overview != "" {
			b.WriteString("\n" + lipgloss.NewStyle().Width(inner).Render(d.Overview) + "\n")
		}
		if d.Poster != "" {
			b.WriteString("\n" + styles.DimStyle.Render(styles.Truncate(d.Poster, inner)))
		}
	}

	return style.
		Width(inner).
		Height(max(height-frameH, 1)).
		MaxHeight(height).
		Render(b.String())
}

func (m Model) renderFooter() string {
	left := m.Help.ShortHelpView(Keys.ShortHelp())
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	}

	var right string
	if m.Discover.Tab() == discover.TabPopular {
		p := m.Discover.Pagination()
		right = styles.DimStyle.Render(fmt.Sprintf("page %d/%d", p.CurrentPage, p.TotalPages))
	} else {
		right = styles.DimStyle.Render(fmt.Sprintf("%d items", m.List.Count()))
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.NewStyle().MaxWidth(max(m.Width-lipgloss.Width(right)-1, 0)).Render(left) + " " + right
	}
	return left + strings.Repeat(" ", gap) + right
}
