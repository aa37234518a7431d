package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/flix/internal/catalog"
	"github.com/mmcdole/flix/internal/debounce"
	"github.com/mmcdole/flix/internal/discover"
	"github.com/mmcdole/flix/internal/domain"
)

const (
	fetchTimeout    = 15 * time.Second
	bookmarkTimeout = 5 * time.Second
)

// LoadPopularCmd reloads the popular listing from page 1
func LoadPopularCmd(svc *discover.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if err := svc.LoadPopular(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading popular movies"}
		}
		return PopularLoadedMsg{}
	}
}

// LoadMoreCmd appends the next popular page
func LoadMoreCmd(svc *discover.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		started, err := svc.LoadMore(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading more"}
		}
		return MoreLoadedMsg{Started: started}
	}
}

// LoadTrendingCmd loads this week's trending movies
func LoadTrendingCmd(svc *discover.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if err := svc.LoadTrending(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading trending"}
		}
		return TrendingLoadedMsg{}
	}
}

// LoadBookmarksCmd loads persisted bookmarks for userID
func LoadBookmarksCmd(svc *discover.Service, userID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), bookmarkTimeout)
		defer cancel()

		if err := svc.LoadBookmarks(ctx, userID); err != nil {
			return ErrMsg{Err: err, Context: "loading bookmarks"}
		}
		return BookmarksLoadedMsg{}
	}
}

// SearchCmd runs q against the catalog
func SearchCmd(svc *discover.Service, q debounce.Query) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := svc.Search(ctx, q.Text, q.Filters)
		switch {
		case errors.Is(err, discover.ErrStaleSearch):
			return StaleMsg{}
		case err != nil:
			return ErrMsg{Err: err, Context: "searching"}
		}
		return SearchDoneMsg{Query: q}
	}
}

// ToggleBookmarkCmd flips the bookmark for item
func ToggleBookmarkCmd(svc *discover.Service, userID string, item domain.CatalogItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), bookmarkTimeout)
		defer cancel()

		on, err := svc.ToggleBookmark(ctx, userID, item)
		return BookmarkToggledMsg{Item: item, Bookmarked: on, Err: err}
	}
}

// LoadDetailsCmd fetches the details pane content for item
func LoadDetailsCmd(client *catalog.Client, item domain.CatalogItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		return DetailsLoadedMsg{ItemID: item.ID, Details: loadDetails(ctx, client, item)}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
