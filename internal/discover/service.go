// Package discover orchestrates the listings, search results and bookmarks
// behind the browsing tabs.
package discover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"github.com/mmcdole/flix/internal/bookmark"
	"github.com/mmcdole/flix/internal/domain"
	"github.com/mmcdole/flix/internal/pagination"
	"github.com/mmcdole/flix/internal/pipeline"
)

// Tab is a browsing view
type Tab string

const (
	TabPopular    Tab = "popular"
	TabTrending   Tab = "trending"
	TabBookmarked Tab = "bookmarked"
	TabSearch     Tab = "search"
)

// Tabs returns the tabs in display order
func Tabs() []Tab {
	return []Tab{TabPopular, TabTrending, TabBookmarked, TabSearch}
}

// TrendingLimit caps the trending list
const TrendingLimit = 10

var (
	// ErrStaleSearch is returned when a newer search superseded this one
	// before its response arrived. The response was discarded.
	ErrStaleSearch = errors.New("search superseded by a newer one")

	// ErrLoadInProgress is returned when a listing fetch is already running
	ErrLoadInProgress = errors.New("listing fetch already in progress")
)

// Service holds every list the UI can show. Fetch errors never clear a list:
// the previous results stay visible and the error is logged and returned.
type Service struct {
	catalog   domain.Catalog
	bookmarks *bookmark.Service
	pipeline  *pipeline.Pipeline
	validate  *validator.Validate
	logger    *slog.Logger

	popular *pagination.Accumulator

	// Incremented by every search and every reset to the default listing;
	// a search response is applied only if its number is still current
	searchSeq atomic.Uint64

	mu            sync.RWMutex
	trending      []domain.CatalogItem
	results       []domain.CatalogItem
	saved         []domain.CatalogItem
	query         string
	filters       domain.FilterSpec
	tab           Tab
	searchLoading bool
}

// NewService creates a discovery service. bookmarks and pipe may be nil.
func NewService(catalog domain.Catalog, bookmarks *bookmark.Service, pipe *pipeline.Pipeline, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if bookmarks == nil {
		bookmarks = bookmark.NewService(nil, nil, logger)
	}
	if pipe == nil {
		pipe = pipeline.New("en")
	}
	return &Service{
		catalog:   catalog,
		bookmarks: bookmarks,
		pipeline:  pipe,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
		popular:   pagination.New(),
		filters:   domain.DefaultFilterSpec(),
		tab:       TabPopular,
	}
}

// === Listings ===

// LoadPopular reloads the popular listing from page 1. The loaded pages stay
// in place until page 1 arrives.
func (s *Service) LoadPopular(ctx context.Context) error {
	s.popular.Restart()
	ticket, ok := s.popular.BeginPage(1)
	if !ok {
		return ErrLoadInProgress
	}
	return s.fetchPopular(ctx, ticket)
}

// LoadMore appends the next popular page. It returns false without issuing a
// request when a fetch is in flight or every page is loaded.
func (s *Service) LoadMore(ctx context.Context) (bool, error) {
	ticket, ok := s.popular.Begin()
	if !ok {
		return false, nil
	}
	return true, s.fetchPopular(ctx, ticket)
}

func (s *Service) fetchPopular(ctx context.Context, ticket pagination.Ticket) error {
	page, err := s.catalog.FetchListing(ctx, domain.CategoryPopularMovies, ticket.Page)
	if err != nil {
		s.popular.Fail(ticket)
		s.logger.Error("failed to fetch popular movies", "page", ticket.Page, "error", err)
		return fmt.Errorf("fetch popular page %d: %w", ticket.Page, err)
	}

	if !s.popular.Complete(ticket, page) {
		s.logger.Debug("discarded popular page after reset", "page", ticket.Page)
		return nil
	}
	s.logger.Debug("popular page loaded", "page", ticket.Page, "count", len(page.Results))
	return nil
}

// LoadTrending fetches this week's trending movies, keeping the first TrendingLimit.
func (s *Service) LoadTrending(ctx context.Context) error {
	page, err := s.catalog.TrendingMovies(ctx, domain.TimeWindowWeek)
	if err != nil {
		s.logger.Error("failed to fetch trending movies", "error", err)
		return fmt.Errorf("fetch trending: %w", err)
	}

	results := page.Results
	if len(results) > TrendingLimit {
		results = results[:TrendingLimit]
	}

	s.mu.Lock()
	s.trending = append([]domain.CatalogItem(nil), results...)
	s.mu.Unlock()
	return nil
}

// === Search ===

// ValidateFilters checks filters against the accepted values.
func (s *Service) ValidateFilters(filters domain.FilterSpec) error {
	if err := s.validate.Struct(filters); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
	}
	return nil
}

// Search runs query with filters and shows the filtered, sorted results on
// the search tab. An empty query with no narrowing filter resets to the
// popular listing instead. A response that arrives after a newer Search (or
// reset) has started is discarded and ErrStaleSearch is returned.
func (s *Service) Search(ctx context.Context, query string, filters domain.FilterSpec) error {
	if err := s.ValidateFilters(filters); err != nil {
		return err
	}
	query = strings.TrimSpace(query)

	seq := s.searchSeq.Add(1)

	if query == "" && !filters.Narrowed() {
		s.mu.Lock()
		s.tab = TabPopular
		s.query = ""
		s.filters = filters
		s.searchLoading = false
		s.mu.Unlock()
		return s.LoadPopular(ctx)
	}

	s.mu.Lock()
	s.tab = TabSearch
	s.searchLoading = true
	s.mu.Unlock()

	page, err := s.catalog.Search(ctx, query, filters)
	if err != nil {
		s.mu.Lock()
		if s.searchSeq.Load() == seq {
			s.searchLoading = false
		}
		s.mu.Unlock()
		s.logger.Error("search failed", "query", query, "error", err)
		return fmt.Errorf("search %q: %w", query, err)
	}

	results := s.pipeline.Apply(page.Results, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchSeq.Load() != seq {
		s.logger.Debug("discarded stale search response", "query", query, "seq", seq)
		return ErrStaleSearch
	}
	s.results = results
	s.query = query
	s.filters = filters
	s.searchLoading = false

	s.logger.Info("search completed", "query", query, "type", filters.SearchType(), "count", len(results))
	return nil
}

// === Bookmarks ===

// ToggleBookmark flips the bookmark for item. See bookmark.Service.Toggle.
func (s *Service) ToggleBookmark(ctx context.Context, userID string, item domain.CatalogItem) (bool, error) {
	return s.bookmarks.Toggle(ctx, userID, item)
}

// IsBookmarked reports whether id is bookmarked
func (s *Service) IsBookmarked(id int) bool {
	return s.bookmarks.Set().IsBookmarked(id)
}

// LoadBookmarks seeds bookmarks from the store so the bookmarked tab can
// list them before they appear in a fetched page.
func (s *Service) LoadBookmarks(ctx context.Context, userID string) error {
	records, err := s.bookmarks.Load(ctx, userID)
	if err != nil {
		return err
	}

	saved := make([]domain.CatalogItem, 0, len(records))
	for _, rec := range records {
		saved = append(saved, bookmark.RecordItem(rec))
	}
	s.mu.Lock()
	s.saved = saved
	s.mu.Unlock()
	return nil
}

// === Views ===

// SetTab switches the active view
func (s *Service) SetTab(tab Tab) {
	s.mu.Lock()
	s.tab = tab
	s.mu.Unlock()
}

func (s *Service) Tab() Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tab
}

// Current returns the list for the active tab.
func (s *Service) Current() []domain.CatalogItem {
	return s.List(s.Tab())
}

// List returns a copy of the list behind tab. The bookmarked list is every
// loaded item that is bookmarked, in the order the lists were loaded.
func (s *Service) List(tab Tab) []domain.CatalogItem {
	switch tab {
	case TabTrending:
		s.mu.RLock()
		defer s.mu.RUnlock()
		return append([]domain.CatalogItem(nil), s.trending...)
	case TabSearch:
		s.mu.RLock()
		defer s.mu.RUnlock()
		return append([]domain.CatalogItem(nil), s.results...)
	case TabBookmarked:
		return s.bookmarks.Set().FilterBookmarked(s.loaded())
	default:
		return s.popular.Items()
	}
}

// loaded returns every known item, first occurrence of each id wins
func (s *Service) loaded() []domain.CatalogItem {
	popular := s.popular.Items()

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[int]struct{})
	var out []domain.CatalogItem
	for _, list := range [][]domain.CatalogItem{popular, s.results, s.trending, s.saved} {
		for _, item := range list {
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

// Query returns the text and filters of the last applied search
func (s *Service) Query() (string, domain.FilterSpec) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query, s.filters
}

// Pagination returns the popular listing's pagination state
func (s *Service) Pagination() domain.PaginationState {
	return s.popular.State()
}

// CanLoadMore reports whether LoadMore would issue a request
func (s *Service) CanLoadMore() bool {
	return s.popular.HasMore() && !s.popular.InFlight()
}

// Loading reports whether a popular page or a search is being fetched
func (s *Service) Loading() bool {
	s.mu.RLock()
	searching := s.searchLoading
	s.mu.RUnlock()
	return searching || s.popular.InFlight()
}
