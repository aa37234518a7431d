package domain

import (
	"maps"
	"slices"
	"time"
)

// MediaType distinguishes catalog record kinds. Multi-search results carry it
// in media_type; single-kind endpoints leave it empty.
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeTV     MediaType = "tv"
	MediaTypePerson MediaType = "person"
)

// CatalogItem is a movie, show or person record as returned by list endpoints.
// Items are passed by value between lists and never mutated after decoding.
type CatalogItem struct {
	ID               int       `json:"id"`
	MediaType        MediaType `json:"media_type,omitempty"`
	Title            string    `json:"title,omitempty"` // movies
	Name             string    `json:"name,omitempty"`  // shows and people
	Overview         string    `json:"overview,omitempty"`
	ReleaseDate      string    `json:"release_date,omitempty"`   // movies, YYYY-MM-DD
	FirstAirDate     string    `json:"first_air_date,omitempty"` // shows, YYYY-MM-DD
	VoteAverage      *float64  `json:"vote_average,omitempty"`
	VoteCount        int       `json:"vote_count,omitempty"`
	Popularity       float64   `json:"popularity,omitempty"`
	PosterPath       string    `json:"poster_path,omitempty"`
	BackdropPath     string    `json:"backdrop_path,omitempty"`
	ProfilePath      string    `json:"profile_path,omitempty"`
	OriginalLanguage string    `json:"original_language,omitempty"`
	GenreIDs         []int     `json:"genre_ids,omitempty"`
	Adult            bool      `json:"adult,omitempty"`
}

// DisplayTitle returns Title, falling back to Name for shows and people.
func (c CatalogItem) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// DisplayDate returns ReleaseDate, falling back to FirstAirDate for shows.
func (c CatalogItem) DisplayDate() string {
	if c.ReleaseDate != "" {
		return c.ReleaseDate
	}
	return c.FirstAirDate
}

// Rating returns the vote average, 0 when absent.
func (c CatalogItem) Rating() float64 {
	if c.VoteAverage == nil {
		return 0
	}
	return *c.VoteAverage
}

// HasGenre reports whether id appears in the item's genre list.
func (c CatalogItem) HasGenre(id int) bool {
	for _, g := range c.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// Page is one page of a listing or search endpoint.
type Page struct {
	Page         int           `json:"page"`
	Results      []CatalogItem `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// PaginationState tracks how far a listing has been loaded.
// TotalPages == 0 means no page has been fetched yet.
type PaginationState struct {
	CurrentPage int
	TotalPages  int
}

// HasMore returns true if another page can be requested.
func (p PaginationState) HasMore() bool {
	return p.TotalPages == 0 || p.CurrentPage < p.TotalPages
}

// Genre is a named genre identifier.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Category identifies a paged listing endpoint. The value is the endpoint path.
type Category string

const (
	CategoryPopularMovies    Category = "/movie/popular"
	CategoryTopRatedMovies   Category = "/movie/top_rated"
	CategoryNowPlayingMovies Category = "/movie/now_playing"
	CategoryUpcomingMovies   Category = "/movie/upcoming"
	CategoryPopularTV        Category = "/tv/popular"
	CategoryTopRatedTV       Category = "/tv/top_rated"
	CategoryOnTheAirTV       Category = "/tv/on_the_air"
	CategoryAiringTodayTV    Category = "/tv/airing_today"
	CategoryPopularPeople    Category = "/person/popular"
)

// categoryNames maps short CLI names to categories
var categoryNames = map[string]Category{
	"popular":      CategoryPopularMovies,
	"top_rated":    CategoryTopRatedMovies,
	"now_playing":  CategoryNowPlayingMovies,
	"upcoming":     CategoryUpcomingMovies,
	"tv_popular":   CategoryPopularTV,
	"tv_top_rated": CategoryTopRatedTV,
	"on_the_air":   CategoryOnTheAirTV,
	"airing_today": CategoryAiringTodayTV,
	"people":       CategoryPopularPeople,
}

// ParseCategory resolves a short listing name such as "popular" or "on_the_air".
func ParseCategory(name string) (Category, bool) {
	c, ok := categoryNames[name]
	return c, ok
}

// CategoryNames returns the short listing names in alphabetical order
func CategoryNames() []string {
	return slices.Sorted(maps.Keys(categoryNames))
}

// TimeWindow is the trending aggregation window.
type TimeWindow string

const (
	TimeWindowDay  TimeWindow = "day"
	TimeWindowWeek TimeWindow = "week"
)

// BookmarkRecord is the persisted form of a bookmark.
type BookmarkRecord struct {
	ItemID       int       `json:"movieId"`
	Title        string    `json:"title"`
	PosterPath   string    `json:"posterPath,omitempty"`
	ReleaseDate  string    `json:"releaseDate,omitempty"`
	VoteAverage  *float64  `json:"voteAverage,omitempty"`
	Overview     string    `json:"overview,omitempty"`
	BookmarkedAt time.Time `json:"bookmarkedAt"`
}

// NewBookmarkRecord builds a record from a catalog item.
func NewBookmarkRecord(item CatalogItem, at time.Time) BookmarkRecord {
	return BookmarkRecord{
		ItemID:       item.ID,
		Title:        item.DisplayTitle(),
		PosterPath:   item.PosterPath,
		ReleaseDate:  item.DisplayDate(),
		VoteAverage:  item.VoteAverage,
		Overview:     item.Overview,
		BookmarkedAt: at,
	}
}
