package catalog

import (
	"context"
	"strings"

	"github.com/mmcdole/flix/internal/domain"
)

// DiscoverFilter holds the discover endpoint parameters. Zero values are omitted
// from the request, except the include flags which are always sent.
type DiscoverFilter struct {
	Page                    int      `json:"page,omitempty"`
	SortBy                  string   `json:"sort_by,omitempty"`
	WithGenres              string   `json:"with_genres,omitempty"`
	Year                    string   `json:"year,omitempty"`
	DateGTE                 string   `json:"date_gte,omitempty"` // release_date (movie) or first_air_date (tv)
	DateLTE                 string   `json:"date_lte,omitempty"`
	VoteAverageGTE          *float64 `json:"vote_average_gte,omitempty"`
	VoteAverageLTE          *float64 `json:"vote_average_lte,omitempty"`
	WithOriginalLanguage    string   `json:"with_original_language,omitempty"`
	WithKeywords            string   `json:"with_keywords,omitempty"`
	WithoutKeywords         string   `json:"without_keywords,omitempty"`
	WithCast                string   `json:"with_cast,omitempty"` // movie only
	WithCrew                string   `json:"with_crew,omitempty"` // movie only
	WithPeople              string   `json:"with_people,omitempty"`
	WithCompanies           string   `json:"with_companies,omitempty"`
	IncludeAdult            bool     `json:"include_adult,omitempty"`
	IncludeVideo            bool     `json:"include_video,omitempty"`               // movie only
	IncludeNullFirstAirDate bool     `json:"include_null_first_air_date,omitempty"` // tv only
}

func (f DiscoverFilter) page() int {
	if f.Page < 1 {
		return 1
	}
	return f.Page
}

func (f DiscoverFilter) sortBy() string {
	if f.SortBy == "" {
		return string(domain.SortPopularityDesc)
	}
	return f.SortBy
}

// DiscoverMovies queries /discover/movie.
func (c *Client) DiscoverMovies(ctx context.Context, f DiscoverFilter) (*domain.Page, error) {
	f.Page = f.page()
	f.SortBy = f.sortBy()
	params := Params{}.
		SetInt("page", f.Page).
		Set("sort_by", f.SortBy).
		Set("with_genres", f.WithGenres).
		Set("year", f.Year).
		Set("release_date.gte", f.DateGTE).
		Set("release_date.lte", f.DateLTE).
		SetFloat("vote_average.gte", f.VoteAverageGTE).
		SetFloat("vote_average.lte", f.VoteAverageLTE).
		Set("with_original_language", f.WithOriginalLanguage).
		Set("with_keywords", f.WithKeywords).
		Set("with_cast", f.WithCast).
		Set("with_crew", f.WithCrew).
		Set("with_people", f.WithPeople).
		Set("with_companies", f.WithCompanies).
		Set("without_keywords", f.WithoutKeywords).
		SetBool("include_adult", f.IncludeAdult).
		SetBool("include_video", f.IncludeVideo)
	return c.getPage(ctx, "discoverMovies", []any{f}, "/discover/movie", params)
}

// DiscoverTV queries /discover/tv.
func (c *Client) DiscoverTV(ctx context.Context, f DiscoverFilter) (*domain.Page, error) {
	f.Page = f.page()
	f.SortBy = f.sortBy()
	params := Params{}.
		SetInt("page", f.Page).
		Set("sort_by", f.SortBy).
		Set("with_genres", f.WithGenres).
		Set("first_air_date_year", f.Year).
		Set("first_air_date.gte", f.DateGTE).
		Set("first_air_date.lte", f.DateLTE).
		SetFloat("vote_average.gte", f.VoteAverageGTE).
		SetFloat("vote_average.lte", f.VoteAverageLTE).
		Set("with_original_language", f.WithOriginalLanguage).
		Set("with_keywords", f.WithKeywords).
		Set("with_companies", f.WithCompanies).
		Set("without_keywords", f.WithoutKeywords).
		SetBool("include_null_first_air_date", f.IncludeNullFirstAirDate)
	return c.getPage(ctx, "discoverTVShows", []any{f}, "/discover/tv", params)
}

// discoverFor maps a query-less FilterSpec onto discover. People cannot be
// discovered, so a person search without a query yields an empty page.
func (c *Client) discoverFor(ctx context.Context, filters domain.FilterSpec) (*domain.Page, error) {
	kind := filters.SearchType()
	if kind == domain.SearchPerson {
		return &domain.Page{Page: 1}, nil
	}

	f := DiscoverFilter{
		Page:       1,
		SortBy:     discoverSort(filters.SortBy, kind == domain.SearchTV),
		WithGenres: filters.Genre,
		Year:       filters.Year,
	}
	if kind == domain.SearchTV {
		return c.DiscoverTV(ctx, f)
	}
	return c.DiscoverMovies(ctx, f)
}

// discoverSort translates a client-side sort key into the discover sort_by value.
func discoverSort(key domain.SortKey, tv bool) string {
	field, dir, ok := strings.Cut(string(key), ".")
	if !ok {
		return string(domain.SortPopularityDesc)
	}
	switch field {
	case "release_date":
		if tv {
			field = "first_air_date"
		} else {
			field = "primary_release_date"
		}
	case "title":
		if tv {
			field = "name"
		} else {
			field = "title"
		}
	}
	return field + "." + dir
}
