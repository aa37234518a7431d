package domain

// SearchType selects which search endpoint a query goes to.
type SearchType string

const (
	SearchAll    SearchType = "all"
	SearchMovie  SearchType = "movie"
	SearchTV     SearchType = "tv"
	SearchPerson SearchType = "person"
)

// SortKey is one of the fixed client-side sort orders.
type SortKey string

const (
	SortPopularityDesc  SortKey = "popularity.desc"
	SortPopularityAsc   SortKey = "popularity.asc"
	SortReleaseDateDesc SortKey = "release_date.desc"
	SortReleaseDateAsc  SortKey = "release_date.asc"
	SortVoteAverageDesc SortKey = "vote_average.desc"
	SortVoteAverageAsc  SortKey = "vote_average.asc"
	SortTitleAsc        SortKey = "title.asc"
	SortTitleDesc       SortKey = "title.desc"
)

// SortKeys returns every sort key in menu order.
func SortKeys() []SortKey {
	return []SortKey{
		SortPopularityDesc, SortPopularityAsc,
		SortReleaseDateDesc, SortReleaseDateAsc,
		SortVoteAverageDesc, SortVoteAverageAsc,
		SortTitleAsc, SortTitleDesc,
	}
}

// Label returns the display name for the sort key
func (k SortKey) Label() string {
	switch k {
	case SortPopularityDesc:
		return "Most Popular"
	case SortPopularityAsc:
		return "Least Popular"
	case SortReleaseDateDesc:
		return "Newest"
	case SortReleaseDateAsc:
		return "Oldest"
	case SortVoteAverageDesc:
		return "Highest Rated"
	case SortVoteAverageAsc:
		return "Lowest Rated"
	case SortTitleAsc:
		return "Title A-Z"
	case SortTitleDesc:
		return "Title Z-A"
	default:
		return string(k)
	}
}

// FilterSpec is the complete search configuration. Every change replaces the
// whole value. The empty string means "not set" for Year, Genre and SortBy;
// an empty Type is treated as SearchAll.
type FilterSpec struct {
	Type   SearchType `validate:"omitempty,oneof=all movie tv person"`
	Year   string     `validate:"omitempty,len=4,numeric"`
	Genre  string     `validate:"omitempty,numeric"`
	SortBy SortKey    `validate:"omitempty,oneof=popularity.desc popularity.asc release_date.desc release_date.asc vote_average.desc vote_average.asc title.asc title.desc"`
}

// DefaultFilterSpec returns the filters a fresh search box starts with.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{Type: SearchAll, SortBy: SortPopularityDesc}
}

// SearchType returns Type, defaulting to SearchAll.
func (f FilterSpec) SearchType() SearchType {
	if f.Type == "" {
		return SearchAll
	}
	return f.Type
}

// Narrowed returns true if any of type, year or genre restricts the search.
// SortBy alone does not narrow.
func (f FilterSpec) Narrowed() bool {
	return f.SearchType() != SearchAll || f.Year != "" || f.Genre != ""
}
