package bookmark

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/flix/internal/domain"
)

// Service pairs the in-memory Set with a persistence collaborator.
// The Set is authoritative: store failures are logged and never roll back a toggle.
type Service struct {
	set    *Set
	store  domain.BookmarkStore
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a bookmark service. store may be nil for memory-only use.
func NewService(set *Set, store domain.BookmarkStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if set == nil {
		set = NewSet()
	}
	return &Service{
		set:    set,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Set returns the underlying membership set
func (s *Service) Set() *Set {
	return s.set
}

// Toggle flips the bookmark for item, then saves or removes the persisted
// record. The returned state is the new membership; err reports a store
// failure only and does not change that state.
func (s *Service) Toggle(ctx context.Context, userID string, item domain.CatalogItem) (bool, error) {
	bookmarked := s.set.Toggle(item.ID)
	if s.store == nil {
		return bookmarked, nil
	}

	var err error
	if bookmarked {
		err = s.store.Save(ctx, userID, domain.NewBookmarkRecord(item, s.now()))
	} else {
		err = s.store.Remove(ctx, userID, item.ID)
	}
	if err != nil {
		s.logger.Error("bookmark persistence failed",
			"itemID", item.ID, "bookmarked", bookmarked, "error", err)
		return bookmarked, err
	}

	s.logger.Debug("bookmark toggled", "itemID", item.ID, "bookmarked", bookmarked)
	return bookmarked, nil
}

// Load seeds the set from the store and returns the persisted records.
// Existing membership is kept.
func (s *Service) Load(ctx context.Context, userID string) ([]domain.BookmarkRecord, error) {
	if s.store == nil {
		return nil, nil
	}

	records, err := s.store.List(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load bookmarks", "error", err)
		return nil, err
	}
	for _, rec := range records {
		s.set.Add(rec.ItemID)
	}

	s.logger.Info("bookmarks loaded", "count", len(records))
	return records, nil
}

// RecordItem converts a persisted record back into a catalog item, so
// bookmarks loaded at start-up can be listed before any page is fetched.
func RecordItem(rec domain.BookmarkRecord) domain.CatalogItem {
	return domain.CatalogItem{
		ID:          rec.ItemID,
		Title:       rec.Title,
		Overview:    rec.Overview,
		ReleaseDate: rec.ReleaseDate,
		VoteAverage: rec.VoteAverage,
		PosterPath:  rec.PosterPath,
	}
}
