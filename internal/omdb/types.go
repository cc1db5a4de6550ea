package omdb

import (
	"strings"

	"philcali.me/movies/internal/provider"
)

const NOT_AVAILABLE = "N/A"

type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type SearchResult struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbId string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

type SearchResponse struct {
	envelope
	Search       []SearchResult `json:"Search"`
	TotalResults string         `json:"totalResults"`
}

type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

type DetailResponse struct {
	envelope
	SearchResult
	Rated      string   `json:"Rated"`
	Released   string   `json:"Released"`
	Runtime    string   `json:"Runtime"`
	Genre      string   `json:"Genre"`
	Director   string   `json:"Director"`
	Writer     string   `json:"Writer"`
	Actors     string   `json:"Actors"`
	Plot       string   `json:"Plot"`
	Language   string   `json:"Language"`
	Country    string   `json:"Country"`
	Awards     string   `json:"Awards"`
	Ratings    []Rating `json:"Ratings"`
	Metascore  string   `json:"Metascore"`
	ImdbRating string   `json:"imdbRating"`
	ImdbVotes  string   `json:"imdbVotes"`
	BoxOffice  string   `json:"BoxOffice"`
}

func _value(field string) string {
	field = strings.TrimSpace(field)
	if field == NOT_AVAILABLE {
		return ""
	}
	return field
}

func ToMovie(result SearchResult) provider.Movie {
	movie := provider.Movie{
		ImdbId: result.ImdbId,
		Title:  result.Title,
		Year:   _value(result.Year),
		Type:   _value(result.Type),
	}
	if poster := _value(result.Poster); poster != "" {
		movie.Poster = &poster
	}
	return movie
}

func ToMovieDetails(detail DetailResponse) provider.MovieDetails {
	ratings := make([]provider.Rating, 0, len(detail.Ratings))
	for _, rating := range detail.Ratings {
		ratings = append(ratings, provider.Rating{
			Source: rating.Source,
			Value:  rating.Value,
		})
	}
	return provider.MovieDetails{
		Movie:      ToMovie(detail.SearchResult),
		Rated:      _value(detail.Rated),
		Released:   _value(detail.Released),
		Runtime:    _value(detail.Runtime),
		Genre:      _value(detail.Genre),
		Director:   _value(detail.Director),
		Writer:     _value(detail.Writer),
		Actors:     _value(detail.Actors),
		Plot:       _value(detail.Plot),
		Language:   _value(detail.Language),
		Country:    _value(detail.Country),
		Awards:     _value(detail.Awards),
		Metascore:  _value(detail.Metascore),
		ImdbRating: _value(detail.ImdbRating),
		ImdbVotes:  _value(detail.ImdbVotes),
		BoxOffice:  _value(detail.BoxOffice),
		Ratings:    ratings,
	}
}
