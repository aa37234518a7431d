package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/flix/internal/domain"
)

// fetch is get for endpoints decoding into a single struct
func fetch[T any](ctx context.Context, c *Client, op string, args []any, endpoint string, params Params) (*T, error) {
	var out T
	if err := c.get(ctx, op, args, endpoint, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// === Listings ===

// FetchListing returns one page of a listing category (popular, top rated, ...).
func (c *Client) FetchListing(ctx context.Context, category domain.Category, page int) (*domain.Page, error) {
	if page < 1 {
		page = 1
	}
	return c.getPage(ctx, "fetchListing", []any{category, page}, string(category), Params{}.SetInt("page", page))
}

func (c *Client) PopularMovies(ctx context.Context, page int) (*domain.Page, error) {
	return c.FetchListing(ctx, domain.CategoryPopularMovies, page)
}

func (c *Client) TopRatedMovies(ctx context.Context, page int) (*domain.Page, error) {
	return c.FetchListing(ctx, domain.CategoryTopRatedMovies, page)
}

func (c *Client) NowPlayingMovies(ctx context.Context, page int) (*domain.Page, error) {
	return c.FetchListing(ctx, domain.CategoryNowPlayingMovies, page)
}

func (c *Client) UpcomingMovies(ctx context.Context, page int) (*domain.Page, error) {
	return c.FetchListing(ctx, domain.CategoryUpcomingMovies, page)
}

func (c *Client) PopularTV(ctx context.Context, page int) (*domain.Page, error) {
	return c.FetchListing(ctx, domain.CategoryPopularTV, page)
}

func (c *Client) TopRatedTV(ctx context.Context, page int) (*domain.Page, error) {
	return c.FetchListing(ctx, domain.CategoryTopRatedTV, page)
}

func (c *Client) OnTheAirTV(ctx context.Context, page int) (*domain.Page, error) {
	return c.FetchListing(ctx, domain.CategoryOnTheAirTV, page)
}

func (c *Client) AiringTodayTV(ctx context.Context, page int) (*domain.Page, error) {
	return c.FetchListing(ctx, domain.CategoryAiringTodayTV, page)
}

func (c *Client) PopularPeople(ctx context.Context, page int) (*domain.Page, error) {
	return c.FetchListing(ctx, domain.CategoryPopularPeople, page)
}

// === Movie and TV details ===

func (c *Client) MovieDetails(ctx context.Context, movieID int) (*MovieDetails, error) {
	return fetch[MovieDetails](ctx, c, "getMovieDetails", []any{movieID}, fmt.Sprintf("/movie/%d", movieID), nil)
}

func (c *Client) TVDetails(ctx context.Context, tvID int) (*TVDetails, error) {
	return fetch[TVDetails](ctx, c, "getTVShowDetails", []any{tvID}, fmt.Sprintf("/tv/%d", tvID), nil)
}

// Credits returns cast and crew; kind is domain.MediaTypeMovie or domain.MediaTypeTV.
func (c *Client) Credits(ctx context.Context, kind domain.MediaType, id int) (*Credits, error) {
	return fetch[Credits](ctx, c, "getCredits", []any{kind, id}, fmt.Sprintf("/%s/%d/credits", kind, id), nil)
}

func (c *Client) Videos(ctx context.Context, kind domain.MediaType, id int) (*Videos, error) {
	return fetch[Videos](ctx, c, "getVideos", []any{kind, id}, fmt.Sprintf("/%s/%d/videos", kind, id), nil)
}

func (c *Client) Images(ctx context.Context, kind domain.MediaType, id int) (*Images, error) {
	return fetch[Images](ctx, c, "getImages", []any{kind, id}, fmt.Sprintf("/%s/%d/images", kind, id), nil)
}

func (c *Client) Similar(ctx context.Context, kind domain.MediaType, id, page int) (*domain.Page, error) {
	return c.getPage(ctx, "getSimilar", []any{kind, id, page},
		fmt.Sprintf("/%s/%d/similar", kind, id), Params{}.SetInt("page", page))
}

func (c *Client) Recommendations(ctx context.Context, kind domain.MediaType, id, page int) (*domain.Page, error) {
	return c.getPage(ctx, "getRecommendations", []any{kind, id, page},
		fmt.Sprintf("/%s/%d/recommendations", kind, id), Params{}.SetInt("page", page))
}

func (c *Client) Reviews(ctx context.Context, kind domain.MediaType, id, page int) (*ReviewPage, error) {
	return fetch[ReviewPage](ctx, c, "getReviews", []any{kind, id, page},
		fmt.Sprintf("/%s/%d/reviews", kind, id), Params{}.SetInt("page", page))
}

func (c *Client) TVSeason(ctx context.Context, tvID, seasonNumber int) (*Season, error) {
	return fetch[Season](ctx, c, "getTVSeasonDetails", []any{tvID, seasonNumber},
		fmt.Sprintf("/tv/%d/season/%d", tvID, seasonNumber), nil)
}

func (c *Client) TVEpisode(ctx context.Context, tvID, seasonNumber, episodeNumber int) (*Episode, error) {
	return fetch[Episode](ctx, c, "getTVEpisodeDetails", []any{tvID, seasonNumber, episodeNumber},
		fmt.Sprintf("/tv/%d/season/%d/episode/%d", tvID, seasonNumber, episodeNumber), nil)
}

// === Search ===

// Search routes a query by filters.Type. A blank query with narrowing filters
// goes to discover instead, since the search endpoints require a query.
// Genre filtering and sorting are left to the result pipeline.
func (c *Client) Search(ctx context.Context, query string, filters domain.FilterSpec) (*domain.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.discoverFor(ctx, filters)
	}

	switch filters.SearchType() {
	case domain.SearchMovie:
		return c.SearchMovies(ctx, query, 1, filters.Year)
	case domain.SearchTV:
		return c.SearchTV(ctx, query, 1, filters.Year)
	case domain.SearchPerson:
		return c.SearchPeople(ctx, query, 1)
	default:
		return c.SearchMulti(ctx, query, 1)
	}
}

func (c *Client) SearchMulti(ctx context.Context, query string, page int) (*domain.Page, error) {
	return c.getPage(ctx, "searchMulti", []any{query, page}, "/search/multi",
		Params{}.Set("query", query).SetInt("page", page))
}

func (c *Client) SearchMovies(ctx context.Context, query string, page int, year string) (*domain.Page, error) {
	return c.getPage(ctx, "searchMovies", []any{query, page, year}, "/search/movie",
		Params{}.Set("query", query).SetInt("page", page).Set("year", year))
}

func (c *Client) SearchTV(ctx context.Context, query string, page int, year string) (*domain.Page, error) {
	return c.getPage(ctx, "searchTVShows", []any{query, page, year}, "/search/tv",
		Params{}.Set("query", query).SetInt("page", page).Set("first_air_date_year", year))
}

func (c *Client) SearchPeople(ctx context.Context, query string, page int) (*domain.Page, error) {
	return c.getPage(ctx, "searchPeople", []any{query, page}, "/search/person",
		Params{}.Set("query", query).SetInt("page", page))
}

func (c *Client) SearchCompanies(ctx context.Context, query string, page int) (*domain.Page, error) {
	return c.getPage(ctx, "searchCompanies", []any{query, page}, "/search/company",
		Params{}.Set("query", query).SetInt("page", page))
}

func (c *Client) SearchCollections(ctx context.Context, query string, page int) (*domain.Page, error) {
	return c.getPage(ctx, "searchCollections", []any{query, page}, "/search/collection",
		Params{}.Set("query", query).SetInt("page", page))
}

func (c *Client) SearchKeywords(ctx context.Context, query string, page int) (*domain.Page, error) {
	return c.getPage(ctx, "searchKeywords", []any{query, page}, "/search/keyword",
		Params{}.Set("query", query).SetInt("page", page))
}

// === Trending ===

// Trending returns trending items; media is all, movie, tv or person.
func (c *Client) Trending(ctx context.Context, media string, window domain.TimeWindow) (*domain.Page, error) {
	if media == "" {
		media = "all"
	}
	if window == "" {
		window = domain.TimeWindowWeek
	}
	return c.getPage(ctx, "getTrending", []any{media, window},
		fmt.Sprintf("/trending/%s/%s", media, window), nil)
}

func (c *Client) TrendingMovies(ctx context.Context, window domain.TimeWindow) (*domain.Page, error) {
	return c.Trending(ctx, string(domain.MediaTypeMovie), window)
}

func (c *Client) TrendingTV(ctx context.Context, window domain.TimeWindow) (*domain.Page, error) {
	return c.Trending(ctx, string(domain.MediaTypeTV), window)
}

func (c *Client) TrendingPeople(ctx context.Context, window domain.TimeWindow) (*domain.Page, error) {
	return c.Trending(ctx, string(domain.MediaTypePerson), window)
}

// === Genres ===

// Genres returns the genre list for movie or tv.
func (c *Client) Genres(ctx context.Context, kind domain.MediaType) ([]domain.Genre, error) {
	var out GenreList
	if err := c.get(ctx, "getGenres", []any{kind}, fmt.Sprintf("/genre/%s/list", kind), nil, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

// === People ===

func (c *Client) PersonDetails(ctx context.Context, personID int) (*Person, error) {
	return fetch[Person](ctx, c, "getPersonDetails", []any{personID}, fmt.Sprintf("/person/%d", personID), nil)
}

func (c *Client) PersonMovieCredits(ctx context.Context, personID int) (*PersonCredits, error) {
	return c.personCredits(ctx, "getPersonMovieCredits", personID, "movie_credits")
}

func (c *Client) PersonTVCredits(ctx context.Context, personID int) (*PersonCredits, error) {
	return c.personCredits(ctx, "getPersonTVCredits", personID, "tv_credits")
}

func (c *Client) PersonCombinedCredits(ctx context.Context, personID int) (*PersonCredits, error) {
	return c.personCredits(ctx, "getPersonCombinedCredits", personID, "combined_credits")
}

func (c *Client) personCredits(ctx context.Context, op string, personID int, kind string) (*PersonCredits, error) {
	return fetch[PersonCredits](ctx, c, op, []any{personID}, fmt.Sprintf("/person/%d/%s", personID, kind), nil)
}

func (c *Client) PersonImages(ctx context.Context, personID int) (*Images, error) {
	return c.Images(ctx, domain.MediaTypePerson, personID)
}

// === Collections and companies ===

func (c *Client) CollectionDetails(ctx context.Context, collectionID int) (*Collection, error) {
	return fetch[Collection](ctx, c, "getCollectionDetails", []any{collectionID}, fmt.Sprintf("/collection/%d", collectionID), nil)
}

func (c *Client) CollectionImages(ctx context.Context, collectionID int) (*Images, error) {
	return fetch[Images](ctx, c, "getCollectionImages", []any{collectionID}, fmt.Sprintf("/collection/%d/images", collectionID), nil)
}

func (c *Client) CompanyDetails(ctx context.Context, companyID int) (*Company, error) {
	return fetch[Company](ctx, c, "getCompanyDetails", []any{companyID}, fmt.Sprintf("/company/%d", companyID), nil)
}

// CompanyMovies lists a company's movies through discover, which replaced the
// deprecated /company/{id}/movies endpoint.
func (c *Client) CompanyMovies(ctx context.Context, companyID, page int) (*domain.Page, error) {
	return c.DiscoverMovies(ctx, DiscoverFilter{Page: page, WithCompanies: fmt.Sprint(companyID)})
}

// === Configuration ===

func (c *Client) Configuration(ctx context.Context) (*APIConfiguration, error) {
	return fetch[APIConfiguration](ctx, c, "getConfiguration", nil, "/configuration", nil)
}

func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	var out []Country
	if err := c.get(ctx, "getCountries", nil, "/configuration/countries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	var out []Language
	if err := c.get(ctx, "getLanguages", nil, "/configuration/languages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Jobs(ctx context.Context) ([]Job, error) {
	var out []Job
	if err := c.get(ctx, "getJobs", nil, "/configuration/jobs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Timezones(ctx context.Context) ([]Timezone, error) {
	var out []Timezone
	if err := c.get(ctx, "getTimezones", nil, "/configuration/timezones", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
