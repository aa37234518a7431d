package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/flix/internal/catalog"
	"github.com/mmcdole/flix/internal/domain"
)

const topCastCount = 5

// DetailView is what the details pane shows for one item
type DetailView struct {
	Title    string
	Subtitle string // tagline or known-for department
	Fields   [][2]string
	Overview string
	Poster   string
}

// summaryDetail builds a detail view from a list entry alone
func summaryDetail(item domain.CatalogItem, images *catalog.Client) *DetailView {
	d := &DetailView{
		Title:    item.DisplayTitle(),
		Overview: item.Overview,
	}
	if item.MediaType != domain.MediaTypePerson {
		d.Fields = append(d.Fields,
			[2]string{"Released", catalog.FormatDate(item.DisplayDate())},
			[2]string{"Rating", catalog.FormatRating(item.VoteAverage)},
		)
	}
	if images != nil {
		url, ok := images.PosterURL(item.PosterPath)
		if item.MediaType == domain.MediaTypePerson {
			url, ok = images.ProfileURL(item.ProfilePath)
		}
		if ok {
			d.Poster = url
		}
	}
	return d
}

// loadDetails fetches the full record and credits for item concurrently.
// Whatever fails is left out; the summary fields are always present.
func loadDetails(ctx context.Context, client *catalog.Client, item domain.CatalogItem) *DetailView {
	d := summaryDetail(item, client)

	switch item.MediaType {
	case domain.MediaTypePerson:
		person, err := client.PersonDetails(ctx, item.ID)
		if err == nil {
			applyPerson(d, person)
		}
		return d

	case domain.MediaTypeTV:
		results := catalog.Batch(ctx,
			func(ctx context.Context) (any, error) { return client.TVDetails(ctx, item.ID) },
			func(ctx context.Context) (any, error) { return client.Credits(ctx, domain.MediaTypeTV, item.ID) },
		)
		if tv, ok := results[0].Data.(*catalog.TVDetails); ok {
			applyTV(d, tv)
		}
		if credits, ok := results[1].Data.(*catalog.Credits); ok {
			applyCredits(d, credits)
		}
		return d

	default:
		results := catalog.Batch(ctx,
			func(ctx context.Context) (any, error) { return client.MovieDetails(ctx, item.ID) },
			func(ctx context.Context) (any, error) { return client.Credits(ctx, domain.MediaTypeMovie, item.ID) },
		)
		if movie, ok := results[0].Data.(*catalog.MovieDetails); ok {
			applyMovie(d, movie)
		}
		if credits, ok := results[1].Data.(*catalog.Credits); ok {
			applyCredits(d, credits)
		}
		return d
	}
}

func applyMovie(d *DetailView, m *catalog.MovieDetails) {
	d.Subtitle = m.Tagline
	d.Fields = append(d.Fields,
		[2]string{"Runtime", catalog.FormatRuntime(m.Runtime)},
		[2]string{"Genres", genreNames(m.Genres)},
	)
	if m.Status != "" {
		d.Fields = append(d.Fields, [2]string{"Status", m.Status})
	}
	if m.Overview != "" {
		d.Overview = m.Overview
	}
}

func applyTV(d *DetailView, tv *catalog.TVDetails) {
	d.Fields = append(d.Fields,
		[2]string{"Seasons", fmt.Sprintf("%d (%d episodes)", tv.NumberOfSeasons, tv.NumberOfEpisodes)},
		[2]string{"Genres", genreNames(tv.Genres)},
	)
	if len(tv.EpisodeRunTime) > 0 {
		d.Fields = append(d.Fields, [2]string{"Episode", catalog.FormatRuntime(tv.EpisodeRunTime[0])})
	}
	if tv.Status != "" {
		d.Fields = append(d.Fields, [2]string{"Status", tv.Status})
	}
	if tv.Overview != "" {
		d.Overview = tv.Overview
	}
}

func applyPerson(d *DetailView, p *catalog.Person) {
	d.Subtitle = p.KnownForDepartment
	d.Fields = append(d.Fields,
		[2]string{"Born", catalog.FormatDate(p.Birthday)},
	)
	if p.PlaceOfBirth != "" {
		d.Fields = append(d.Fields, [2]string{"From", p.PlaceOfBirth})
	}
	if p.Deathday != "" {
		d.Fields = append(d.Fields, [2]string{"Died", catalog.FormatDate(p.Deathday)})
	}
	d.Overview = p.Biography
}

func applyCredits(d *DetailView, c *catalog.Credits) {
	var directors []string
	for _, crew := range c.Crew {
		if crew.Job == "Director" {
			directors = append(directors, crew.Name)
		}
	}
	if len(directors) > 0 {
		d.Fields = append(d.Fields, [2]string{"Director", strings.Join(directors, ", ")})
	}

	cast := c.Cast
	if len(cast) > topCastCount {
		cast = cast[:topCastCount]
	}
	names := make([]string, len(cast))
	for i, member := range cast {
		names[i] = member.Name
	}
	if len(names) > 0 {
		d.Fields = append(d.Fields, [2]string{"Cast", strings.Join(names, ", ")})
	}
}

func genreNames(genres []domain.Genre) string {
	if len(genres) == 0 {
		return catalog.NotAvailable
	}
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	return strings.Join(names, ", ")
}
