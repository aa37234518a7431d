package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flix/internal/domain"
	"github.com/mmcdole/flix/internal/tui/styles"
)

const sortModalWidth = 20

// SortModal is a small popup for choosing the result order
type SortModal struct {
	visible bool
	options []domain.SortKey
	cursor  int
	active  domain.SortKey
}

func NewSortModal() SortModal {
	return SortModal{options: domain.SortKeys()}
}

// Show displays the modal with the cursor on the active key
func (m *SortModal) Show(active domain.SortKey) {
	m.visible = true
	m.active = active
	m.cursor = 0
	for i, opt := range m.options {
		if opt == active {
			m.cursor = i
			break
		}
	}
}

func (m *SortModal) Hide() {
	m.visible = false
}

func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// A non-nil selection means the user confirmed a choice.
func (m *SortModal) HandleKey(key string) (handled bool, selection *domain.SortKey) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		chosen := m.options[m.cursor]
		m.visible = false
		return true, &chosen
	case "esc", "s", "q":
		m.visible = false
	}

	return true, nil // consume all keys when visible
}

func (m SortModal) View() string {
	if !m.visible {
		return ""
	}

	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		prefix := "  "
		if opt == m.active {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+opt.Label(), sortModalWidth)

		switch {
		case i == m.cursor:
			lines = append(lines, styles.SelectedItemStyle.Render(text))
		case opt == m.active:
			lines = append(lines, lipgloss.NewStyle().Foreground(styles.Teal).Render(text))
		default:
			lines = append(lines, styles.NormalItemStyle.Render(text))
		}
	}

	return styles.ModalStyle.Render(
		styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"),
	)
}
