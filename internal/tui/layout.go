package tui

// Layout proportions
const (
	ListPercentWithDetails = 60
	MinListWidth           = 30

	// Header, search bar, suggestions line, footer
	ChromeHeight = 4
)

// listWidth returns the width of the result list for the current window
func (m Model) listWidth() int {
	if !m.ShowDetails {
		return m.Width
	}
	return min(max(m.Width*ListPercentWithDetails/100, MinListWidth), m.Width)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	m.SearchBar.SetWidth(m.Width / 2)
	m.List.SetSize(m.listWidth(), max(m.Height-ChromeHeight, 1))
	m.Help.Width = m.Width
}
