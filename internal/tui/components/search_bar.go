package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/flix/internal/debounce"
	"github.com/mmcdole/flix/internal/domain"
	"github.com/mmcdole/flix/internal/search"
	"github.com/mmcdole/flix/internal/tui/styles"
)

const maxSuggestions = 5

// SearchBar is the remote search input. Besides free text it understands
// "type:", "year:" and "genre:" tokens, which set the matching filter.
type SearchBar struct {
	input       textinput.Model
	filters     domain.FilterSpec
	suggestions []string
	width       int
}

func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search movies, shows, people..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "f "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{
		input:   ti,
		filters: domain.DefaultFilterSpec(),
	}
}

// Focus starts editing and returns the cursor blink command
func (s *SearchBar) Focus() tea.Cmd {
	s.refreshSuggestions()
	return s.input.Focus()
}

func (s *SearchBar) Blur() {
	s.input.Blur()
	s.suggestions = nil
}

func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

func (s *SearchBar) SetWidth(width int) {
	s.width = width
	s.input.Width = max(width-4, 10)
}

// Update forwards msg to the input and reports whether the text changed
func (s *SearchBar) Update(msg tea.Msg) (tea.Cmd, bool) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	changed := s.input.Value() != before
	if changed {
		s.refreshSuggestions()
	}
	return cmd, changed
}

// Reset empties the text and drops every narrowing filter. Sort is kept.
func (s *SearchBar) Reset() {
	s.input.SetValue("")
	sortBy := s.filters.SortBy
	s.filters = domain.DefaultFilterSpec()
	s.filters.SortBy = sortBy
	s.refreshSuggestions()
}

// SetSort replaces the sort key of the current filters
func (s *SearchBar) SetSort(key domain.SortKey) {
	s.filters.SortBy = key
}

// CycleType advances the search type through all, movie, tv and person
func (s *SearchBar) CycleType() {
	order := []domain.SearchType{domain.SearchAll, domain.SearchMovie, domain.SearchTV, domain.SearchPerson}
	cur := s.filters.SearchType()
	for i, t := range order {
		if t == cur {
			s.filters.Type = order[(i+1)%len(order)]
			return
		}
	}
	s.filters.Type = domain.SearchAll
}

func (s SearchBar) Filters() domain.FilterSpec {
	return s.filters
}

// AcceptSuggestion replaces the text with the closest suggestion.
// Returns false when there is none.
func (s *SearchBar) AcceptSuggestion() bool {
	if len(s.suggestions) == 0 {
		return false
	}
	s.input.SetValue(s.suggestions[0])
	s.input.CursorEnd()
	s.refreshSuggestions()
	return true
}

// Query returns the current text and filters, with filter tokens applied
func (s SearchBar) Query() debounce.Query {
	return ParseQuery(s.input.Value(), s.filters)
}

func (s *SearchBar) refreshSuggestions() {
	text := ParseQuery(s.input.Value(), s.filters).Text
	sugg := search.Suggest(text)
	if len(sugg) > maxSuggestions {
		sugg = sugg[:maxSuggestions]
	}
	s.suggestions = sugg
}

// ParseQuery splits input into free text and filter tokens. Tokens override
// the matching field of base; unknown keys are left in the text.
func ParseQuery(input string, base domain.FilterSpec) debounce.Query {
	filters := base
	var words []string
	for _, field := range strings.Fields(input) {
		k, v, ok := strings.Cut(field, ":")
		if !ok || v == "" {
			words = append(words, field)
			continue
		}
		switch strings.ToLower(k) {
		case "type":
			filters.Type = domain.SearchType(strings.ToLower(v))
		case "year":
			filters.Year = v
		case "genre":
			filters.Genre = v
		default:
			words = append(words, field)
		}
	}
	return debounce.Query{Text: strings.Join(words, " "), Filters: filters}
}

func (s SearchBar) View() string {
	var b strings.Builder
	b.WriteString(s.input.View())

	f := s.filters
	badges := []string{string(f.SearchType())}
	if f.SortBy != "" {
		badges = append(badges, f.SortBy.Label())
	}
	b.WriteString("  ")
	for _, badge := range badges {
		b.WriteString(styles.BadgeStyle.Render(badge))
		b.WriteString(" ")
	}

	if s.input.Focused() && len(s.suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("  try: " + strings.Join(s.suggestions, " · ")))
	}
	return b.String()
}
