package catalog

import "github.com/mmcdole/flix/internal/domain"

// MovieDetails is the /movie/{id} response
type MovieDetails struct {
	domain.CatalogItem
	Runtime             int            `json:"runtime"`
	Status              string         `json:"status"`
	Tagline             string         `json:"tagline"`
	Genres              []domain.Genre `json:"genres"`
	Budget              int64          `json:"budget"`
	Revenue             int64          `json:"revenue"`
	IMDBID              string         `json:"imdb_id"`
	Homepage            string         `json:"homepage"`
	Collection          *Collection    `json:"belongs_to_collection"`
	ProductionCompanies []Company      `json:"production_companies"`
}

// TVDetails is the /tv/{id} response
type TVDetails struct {
	domain.CatalogItem
	NumberOfSeasons  int            `json:"number_of_seasons"`
	NumberOfEpisodes int            `json:"number_of_episodes"`
	EpisodeRunTime   []int          `json:"episode_run_time"`
	Status           string         `json:"status"`
	Genres           []domain.Genre `json:"genres"`
	Seasons          []Season       `json:"seasons"`
}

// Season is a TV season, with episodes when fetched directly
type Season struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Overview     string    `json:"overview"`
	SeasonNumber int       `json:"season_number"`
	AirDate      string    `json:"air_date"`
	EpisodeCount int       `json:"episode_count"`
	PosterPath   string    `json:"poster_path"`
	Episodes     []Episode `json:"episodes,omitempty"`
}

// Episode is a single TV episode
type Episode struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Overview      string   `json:"overview"`
	SeasonNumber  int      `json:"season_number"`
	EpisodeNumber int      `json:"episode_number"`
	AirDate       string   `json:"air_date"`
	Runtime       int      `json:"runtime"`
	StillPath     string   `json:"still_path"`
	VoteAverage   *float64 `json:"vote_average"`
}

// Credits lists cast and crew for a title
type Credits struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember is an actor credit
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	Order       int    `json:"order"`
	ProfilePath string `json:"profile_path"`
}

// CrewMember is a crew credit
type CrewMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

// PersonCredits is a person's filmography; entries are catalog items with a role
type PersonCredits struct {
	ID   int              `json:"id"`
	Cast []PersonCastItem `json:"cast"`
	Crew []PersonCrewItem `json:"crew"`
}

// PersonCastItem is a title a person acted in
type PersonCastItem struct {
	domain.CatalogItem
	Character string `json:"character"`
}

// PersonCrewItem is a title a person worked on
type PersonCrewItem struct {
	domain.CatalogItem
	Job string `json:"job"`
}

// Video is a trailer, teaser or clip
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// Videos is the /{kind}/{id}/videos response
type Videos struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// Review is a user review
type Review struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	URL       string `json:"url"`
}

// ReviewPage is one page of reviews
type ReviewPage struct {
	Page       int      `json:"page"`
	Results    []Review `json:"results"`
	TotalPages int      `json:"total_pages"`
}

// Image is one image file reference
type Image struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
	Language    string  `json:"iso_639_1"`
}

// Images groups the image sets of a title, person or collection
type Images struct {
	ID        int     `json:"id"`
	Backdrops []Image `json:"backdrops,omitempty"`
	Posters   []Image `json:"posters,omitempty"`
	Logos     []Image `json:"logos,omitempty"`
	Profiles  []Image `json:"profiles,omitempty"`
}

// Person is the /person/{id} response
type Person struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Biography          string `json:"biography"`
	Birthday           string `json:"birthday"`
	Deathday           string `json:"deathday"`
	PlaceOfBirth       string `json:"place_of_birth"`
	KnownForDepartment string `json:"known_for_department"`
	ProfilePath        string `json:"profile_path"`
}

// Collection is a movie collection
type Collection struct {
	ID           int                  `json:"id"`
	Name         string               `json:"name"`
	Overview     string               `json:"overview,omitempty"`
	PosterPath   string               `json:"poster_path"`
	BackdropPath string               `json:"backdrop_path"`
	Parts        []domain.CatalogItem `json:"parts,omitempty"`
}

// Company is a production company
type Company struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Headquarters  string `json:"headquarters,omitempty"`
	Homepage      string `json:"homepage,omitempty"`
	LogoPath      string `json:"logo_path"`
	OriginCountry string `json:"origin_country"`
}

// GenreList is the /genre/{kind}/list response
type GenreList struct {
	Genres []domain.Genre `json:"genres"`
}

// APIConfiguration is the /configuration response
type APIConfiguration struct {
	Images struct {
		BaseURL       string   `json:"base_url"`
		SecureBaseURL string   `json:"secure_base_url"`
		PosterSizes   []string `json:"poster_sizes"`
		BackdropSizes []string `json:"backdrop_sizes"`
		ProfileSizes  []string `json:"profile_sizes"`
		LogoSizes     []string `json:"logo_sizes"`
	} `json:"images"`
	ChangeKeys []string `json:"change_keys"`
}

// Country is an ISO 3166-1 country
type Country struct {
	Code        string `json:"iso_3166_1"`
	EnglishName string `json:"english_name"`
	NativeName  string `json:"native_name"`
}

// Language is an ISO 639-1 language
type Language struct {
	Code        string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

// Job lists the jobs of a crew department
type Job struct {
	Department string   `json:"department"`
	Jobs       []string `json:"jobs"`
}

// Timezone lists the zones of a country
type Timezone struct {
	Country string   `json:"iso_3166_1"`
	Zones   []string `json:"zones"`
}
