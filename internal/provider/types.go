package provider

import (
	"context"

	"philcali.me/movies/internal/data"
)

type Movie struct {
	ImdbId string  `json:"imdbId"`
	Title  string  `json:"title"`
	Year   string  `json:"year"`
	Type   string  `json:"type"`
	Poster *string `json:"poster"`
}

type Rating struct {
	Source string `json:"source"`
	Value  string `json:"value"`
}

type MovieDetails struct {
	Movie
	Rated      string   `json:"rated,omitempty"`
	Released   string   `json:"released,omitempty"`
	Runtime    string   `json:"runtime,omitempty"`
	Genre      string   `json:"genre,omitempty"`
	Director   string   `json:"director,omitempty"`
	Writer     string   `json:"writer,omitempty"`
	Actors     string   `json:"actors,omitempty"`
	Plot       string   `json:"plot,omitempty"`
	Language   string   `json:"language,omitempty"`
	Country    string   `json:"country,omitempty"`
	Awards     string   `json:"awards,omitempty"`
	Metascore  string   `json:"metascore,omitempty"`
	ImdbRating string   `json:"imdbRating,omitempty"`
	ImdbVotes  string   `json:"imdbVotes,omitempty"`
	BoxOffice  string   `json:"boxOffice,omitempty"`
	Ratings    []Rating `json:"ratings"`
}

type SearchInput struct {
	Text string
	Page int
	Type *string
	Year *string
}

// MovieProvider is a read only catalog of movies. Search results page through
// NextToken, which holds the next page number when there is one.
type MovieProvider interface {
	Search(ctx context.Context, input SearchInput) (data.QueryResults[Movie], error)
	Lookup(ctx context.Context, imdbId string) (MovieDetails, error)
	Random(ctx context.Context) (data.QueryResults[Movie], error)
}
