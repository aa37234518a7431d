package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/flix/internal/catalog"
	"github.com/mmcdole/flix/internal/debounce"
	"github.com/mmcdole/flix/internal/discover"
	"github.com/mmcdole/flix/internal/tui/components"
	"github.com/mmcdole/flix/internal/tui/styles"
)

const statusTimeout = 3 * time.Second

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Services
	Discover *discover.Service
	Client   *catalog.Client // details pane; nil disables it
	UserID   string
	logger   *slog.Logger

	// Search-box edits go through the trigger; settled queries come back
	// through the observer as QueryReadyMsg
	trigger  *debounce.QueryTrigger
	observer *QueryObserver

	// UI Components
	SearchBar components.SearchBar
	List      *components.ResultList
	SortModal components.SortModal
	Help      help.Model
	Spinner   spinner.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	ShowHelp    bool
	ShowDetails bool
	Details     *DetailView
	detailsFor  int
	loadingMore bool
}

// NewModel creates a new application model. client may be nil.
func NewModel(svc *discover.Service, client *catalog.Client, userID string, debounceDelay time.Duration, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	observer := NewQueryObserver(1)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	list := components.NewResultList()
	list.SetMarked(svc.IsBookmarked)

	return Model{
		Discover:  svc,
		Client:    client,
		UserID:    userID,
		logger:    logger,
		trigger:   debounce.NewQueryTrigger(debounceDelay, observer.OnQuery),
		observer:  observer,
		SearchBar: components.NewSearchBar(),
		List:      list,
		SortModal: components.NewSortModal(),
		Help:      help.New(),
		Spinner:   sp,
	}
}

// Init starts the initial loads
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadPopularCmd(m.Discover),
		LoadTrendingCmd(m.Discover),
		LoadBookmarksCmd(m.Discover, m.UserID),
		m.observer.Wait(),
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case PopularLoadedMsg, TrendingLoadedMsg, BookmarksLoadedMsg:
		return m, m.refreshList()

	case MoreLoadedMsg:
		m.loadingMore = false
		if !msg.Started {
			m.StatusMsg = "All pages loaded"
			m.StatusIsErr = false
			return m, tea.Batch(m.refreshList(), ClearStatusCmd(statusTimeout))
		}
		return m, m.refreshList()

	case QueryReadyMsg:
		// Keep listening for the next settled query
		return m, tea.Batch(SearchCmd(m.Discover, msg.Query), m.observer.Wait())

	case SearchDoneMsg:
		cmd := m.refreshList()
		if m.Discover.Tab() != discover.TabSearch {
			return m, cmd
		}
		m.StatusMsg = fmt.Sprintf("%d results", len(m.List.Items()))
		if msg.Query.Text != "" {
			m.StatusMsg += fmt.Sprintf(" for %q", msg.Query.Text)
		}
		m.StatusIsErr = false
		return m, tea.Batch(cmd, ClearStatusCmd(statusTimeout))

	case StaleMsg:
		return m, nil

	case BookmarkToggledMsg:
		title := msg.Item.DisplayTitle()
		if msg.Err != nil {
			m.StatusMsg = fmt.Sprintf("Bookmark for %s not saved: %v", title, msg.Err)
			m.StatusIsErr = true
		} else if msg.Bookmarked {
			m.StatusMsg = "Bookmarked " + title
			m.StatusIsErr = false
		} else {
			m.StatusMsg = "Removed bookmark for " + title
			m.StatusIsErr = false
		}
		return m, tea.Batch(m.refreshList(), ClearStatusCmd(statusTimeout))

	case DetailsLoadedMsg:
		if msg.ItemID == m.detailsFor {
			m.Details = msg.Details
		}
		return m, nil

	case ErrMsg:
		m.loadingMore = false
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		m.logger.Debug("command failed", "context", msg.Context, "error", msg.Err)
		return m, tea.Batch(m.refreshList(), ClearStatusCmd(2*statusTimeout))

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// refreshList pulls the active tab's list from the service
func (m *Model) refreshList() tea.Cmd {
	m.List.SetItems(m.Discover.Current())
	return m.syncDetails()
}

// syncDetails loads the details pane for the selected item if it changed
func (m *Model) syncDetails() tea.Cmd {
	if !m.ShowDetails {
		return nil
	}
	item, ok := m.List.Selected()
	if !ok {
		m.Details = nil
		m.detailsFor = 0
		return nil
	}
	if item.ID == m.detailsFor && m.Details != nil {
		return nil
	}

	m.detailsFor = item.ID
	m.Details = summaryDetail(item, m.Client)
	if m.Client == nil {
		return nil
	}
	return LoadDetailsCmd(m.Client, item)
}

// Loading reports whether any fetch is outstanding
func (m Model) Loading() bool {
	return m.loadingMore || m.Discover.Loading()
}

// Close stops the pending search dispatch
func (m Model) Close() {
	m.trigger.Stop()
}
