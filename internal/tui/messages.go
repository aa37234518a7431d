package tui

import (
	"fmt"

	"github.com/mmcdole/flix/internal/debounce"
	"github.com/mmcdole/flix/internal/domain"
)

// PopularLoadedMsg is sent when the popular listing was (re)loaded from page 1
type PopularLoadedMsg struct{}

// MoreLoadedMsg is sent when a load-more request finished.
// Started is false when nothing was requested.
type MoreLoadedMsg struct {
	Started bool
}

// TrendingLoadedMsg is sent when the trending list is loaded
type TrendingLoadedMsg struct{}

// BookmarksLoadedMsg is sent when persisted bookmarks are loaded
type BookmarksLoadedMsg struct{}

// QueryReadyMsg carries a search-box state that survived the debounce window
type QueryReadyMsg struct {
	Query debounce.Query
}

// SearchDoneMsg is sent when a search was applied
type SearchDoneMsg struct {
	Query debounce.Query
}

// BookmarkToggledMsg is sent after a bookmark toggle.
// Err reports a persistence failure; the toggle itself stands.
type BookmarkToggledMsg struct {
	Item       domain.CatalogItem
	Bookmarked bool
	Err        error
}

// DetailsLoadedMsg carries the full record for the details pane
type DetailsLoadedMsg struct {
	ItemID  int
	Details *DetailView
}

// StaleMsg is sent for a search response superseded by a newer one
type StaleMsg struct{}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}

// ErrMsg is sent when an error occurs
type ErrMsg struct {
	Err     error
	Context string
}

func (e ErrMsg) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %v", e.Context, e.Err)
	}
	return e.Err.Error()
}
