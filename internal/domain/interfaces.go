package domain

import "context"

// Catalog is the subset of the catalog client the discovery flow needs.
// Implemented by catalog.Client; faked in tests.
type Catalog interface {
	// FetchListing returns one page of a listing endpoint
	FetchListing(ctx context.Context, category Category, page int) (*Page, error)

	// Search runs a query against the endpoint selected by filters.Type.
	// Filtering and sorting are applied by the caller.
	Search(ctx context.Context, query string, filters FilterSpec) (*Page, error)

	// TrendingMovies returns trending movies for the window
	TrendingMovies(ctx context.Context, window TimeWindow) (*Page, error)
}

// BookmarkStore persists bookmarks for a user. It is an external collaborator:
// the in-memory bookmark set stays authoritative when it fails.
type BookmarkStore interface {
	// Save persists a bookmark keyed by its item id
	Save(ctx context.Context, userID string, rec BookmarkRecord) error

	// Remove deletes the bookmark for itemID; removing a missing bookmark is not an error
	Remove(ctx context.Context, userID string, itemID int) error

	// List returns every bookmark saved for the user
	List(ctx context.Context, userID string) ([]BookmarkRecord, error)

	Close() error
}
