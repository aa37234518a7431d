package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/flix/internal/domain"
	"github.com/mmcdole/flix/internal/logging"
)

// fakeCatalog serves canned catalog responses and records every request
type fakeCatalog struct {
	mu       sync.Mutex
	requests []*http.Request
}

func (f *fakeCatalog) record(r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.mu.Unlock()
}

func (f *fakeCatalog) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.URL.Path == path {
			n++
		}
	}
	return n
}

func (f *fakeCatalog) last() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func writePage(w http.ResponseWriter, page domain.Page) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

func setupTestClient(t *testing.T) (*Client, *fakeCatalog, func()) {
	fake := &fakeCatalog{}

	router := mux.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fake.record(r)
			next.ServeHTTP(w, r)
		})
	})
	router.HandleFunc("/movie/popular", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, domain.Page{
			Page:       1,
			TotalPages: 3,
			Results: []domain.CatalogItem{
				{ID: 1, Title: "Zeta", Popularity: 5},
				{ID: 2, Title: "Alpha", Popularity: 9},
			},
		})
	}).Methods(http.MethodGet)
	router.HandleFunc("/movie/top_rated", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}).Methods(http.MethodGet)
	router.HandleFunc("/movie/upcoming", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}).Methods(http.MethodGet)
	router.HandleFunc("/movie/now_playing", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}).Methods(http.MethodGet)
	router.HandleFunc("/search/{kind}", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, domain.Page{Page: 1, TotalPages: 1, Results: []domain.CatalogItem{{ID: 7, Title: mux.Vars(r)["kind"]}}})
	}).Methods(http.MethodGet)
	router.HandleFunc("/discover/{kind}", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, domain.Page{Page: 1, TotalPages: 1})
	}).Methods(http.MethodGet)
	router.HandleFunc("/trending/{media}/{window}", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, domain.Page{Page: 1, TotalPages: 1, Results: []domain.CatalogItem{{ID: 42, Title: "Trend"}}})
	}).Methods(http.MethodGet)
	router.HandleFunc("/movie/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 603, "title": "The Matrix", "runtime": 136, "genres": [{"id": 28, "name": "Action"}]}`))
	}).Methods(http.MethodGet)

	server := httptest.NewServer(router)

	client, err := NewClient(Options{BaseURL: server.URL, APIKey: "test-key"}, NewCache(0, 0), logging.NullLogger())
	require.NoError(t, err)

	cleanup := func() {
		server.Close()
	}
	return client, fake, cleanup
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Options{}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestClient_FetchListing(t *testing.T) {
	client, fake, cleanup := setupTestClient(t)
	defer cleanup()

	page, err := client.FetchListing(context.Background(), domain.CategoryPopularMovies, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "Zeta", page.Results[0].Title)

	q := fake.last().URL.Query()
	assert.Equal(t, "test-key", q.Get("api_key"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "Flix/1.0", fake.last().Header.Get("User-Agent"))
}

func TestClient_MemoizesSuccessfulRequests(t *testing.T) {
	client, fake, cleanup := setupTestClient(t)
	defer cleanup()
	ctx := context.Background()

	first, err := client.PopularMovies(ctx, 1)
	require.NoError(t, err)
	second, err := client.FetchListing(ctx, domain.CategoryPopularMovies, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.count("/movie/popular"))

	// A different page is a different key
	_, err = client.PopularMovies(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.count("/movie/popular"))
}

func TestClient_HTTPStatusErrors(t *testing.T) {
	client, fake, cleanup := setupTestClient(t)
	defer cleanup()
	ctx := context.Background()

	_, err := client.TopRatedMovies(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHTTPStatus)
	assert.ErrorIs(t, err, domain.ErrAuthFailed)

	var reqErr *domain.CatalogRequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
	assert.Equal(t, "/movie/top_rated", reqErr.Endpoint)

	_, err = client.UpcomingMovies(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrHTTPStatus)
	assert.NotErrorIs(t, err, domain.ErrAuthFailed)

	// Failures are never cached
	_, err = client.UpcomingMovies(ctx, 1)
	assert.Error(t, err)
	assert.Equal(t, 2, fake.count("/movie/upcoming"))
	assert.Equal(t, 0, client.Cache().Len())
}

func TestClient_ParseError(t *testing.T) {
	client, _, cleanup := setupTestClient(t)
	defer cleanup()

	_, err := client.NowPlayingMovies(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.NotErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, 0, client.Cache().Len())
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := NewClient(Options{BaseURL: server.URL, APIKey: "k"}, nil, logging.NullLogger())
	require.NoError(t, err)

	_, err = client.PopularMovies(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.NotErrorIs(t, err, domain.ErrHTTPStatus)
}

func TestClient_Search_RoutesByType(t *testing.T) {
	client, fake, cleanup := setupTestClient(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name    string
		filters domain.FilterSpec
		path    string
	}{
		{"all", domain.DefaultFilterSpec(), "/search/multi"},
		{"empty type", domain.FilterSpec{}, "/search/multi"},
		{"movie", domain.FilterSpec{Type: domain.SearchMovie}, "/search/movie"},
		{"tv", domain.FilterSpec{Type: domain.SearchTV}, "/search/tv"},
		{"person", domain.FilterSpec{Type: domain.SearchPerson}, "/search/person"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client.Cache().Clear()
			_, err := client.Search(ctx, "alien", tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.path, fake.last().URL.Path)
			assert.Equal(t, "alien", fake.last().URL.Query().Get("query"))
		})
	}
}

func TestClient_Search_OmitsEmptyParams(t *testing.T) {
	client, fake, cleanup := setupTestClient(t)
	defer cleanup()
	ctx := context.Background()

	_, err := client.Search(ctx, "alien", domain.FilterSpec{Type: domain.SearchMovie})
	require.NoError(t, err)
	q := fake.last().URL.Query()
	_, hasYear := q["year"]
	assert.False(t, hasYear)

	_, err = client.Search(ctx, "alien", domain.FilterSpec{Type: domain.SearchMovie, Year: "1979"})
	require.NoError(t, err)
	assert.Equal(t, "1979", fake.last().URL.Query().Get("year"))

	_, err = client.Search(ctx, "alien", domain.FilterSpec{Type: domain.SearchTV, Year: "2024"})
	require.NoError(t, err)
	assert.Equal(t, "2024", fake.last().URL.Query().Get("first_air_date_year"))
}

func TestClient_Search_BlankQueryUsesDiscover(t *testing.T) {
	client, fake, cleanup := setupTestClient(t)
	defer cleanup()
	ctx := context.Background()

	_, err := client.Search(ctx, "  ", domain.FilterSpec{Type: domain.SearchTV, Genre: "18", SortBy: domain.SortTitleAsc})
	require.NoError(t, err)
	req := fake.last()
	assert.Equal(t, "/discover/tv", req.URL.Path)
	assert.Equal(t, "18", req.URL.Query().Get("with_genres"))
	assert.Equal(t, "name.asc", req.URL.Query().Get("sort_by"))
	assert.Equal(t, "false", req.URL.Query().Get("include_null_first_air_date"))

	n := len(fake.requests)
	page, err := client.Search(ctx, "", domain.FilterSpec{Type: domain.SearchPerson})
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	assert.Len(t, fake.requests, n)
}

func TestClient_DiscoverMovies_Defaults(t *testing.T) {
	client, fake, cleanup := setupTestClient(t)
	defer cleanup()

	_, err := client.DiscoverMovies(context.Background(), DiscoverFilter{WithCompanies: "420"})
	require.NoError(t, err)
	q := fake.last().URL.Query()
	assert.Equal(t, "popularity.desc", q.Get("sort_by"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "420", q.Get("with_companies"))
	assert.Equal(t, "false", q.Get("include_adult"))
	_, hasGenres := q["with_genres"]
	assert.False(t, hasGenres)
}

func TestClient_TrendingMovies(t *testing.T) {
	client, fake, cleanup := setupTestClient(t)
	defer cleanup()

	page, err := client.TrendingMovies(context.Background(), domain.TimeWindowWeek)
	require.NoError(t, err)
	assert.Equal(t, "/trending/movie/week", fake.last().URL.Path)
	assert.Equal(t, 42, page.Results[0].ID)
}

func TestClient_MovieDetails(t *testing.T) {
	client, _, cleanup := setupTestClient(t)
	defer cleanup()

	details, err := client.MovieDetails(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", details.Title)
	assert.Equal(t, 136, details.Runtime)
	assert.Equal(t, "2h 16m", FormatRuntime(details.Runtime))
	require.Len(t, details.Genres, 1)
	assert.Equal(t, "Action", details.Genres[0].Name)
}

func TestBatch_ReportsEachOutcome(t *testing.T) {
	client, _, cleanup := setupTestClient(t)
	defer cleanup()

	results := Batch(context.Background(),
		func(ctx context.Context) (any, error) { return client.PopularMovies(ctx, 1) },
		func(ctx context.Context) (any, error) { return client.TopRatedMovies(ctx, 1) },
		func(ctx context.Context) (any, error) { return client.TrendingMovies(ctx, domain.TimeWindowDay) },
	)

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.IsType(t, &domain.Page{}, results[0].Data)
	assert.ErrorIs(t, results[1].Err, domain.ErrAuthFailed)
	assert.Nil(t, results[1].Data)
	assert.NoError(t, results[2].Err)
}

func TestClient_PosterURL(t *testing.T) {
	client, err := NewClient(Options{APIKey: "k"}, nil, nil)
	require.NoError(t, err)

	u, ok := client.PosterURL("/p.jpg")
	assert.True(t, ok)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p.jpg", u)

	_, ok = client.BackdropURL("")
	assert.False(t, ok)
}
