package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"philcali.me/movies/internal/config"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/exceptions"
	"philcali.me/movies/internal/provider"
)

const (
	PROVIDER_NAME = "omdb"
	PAGE_SIZE     = 10
	MAX_PAGE      = 100
)

var DiscoveryTerms = []string{
	"action",
	"comedy",
	"drama",
	"thriller",
	"romance",
	"sci-fi",
	"adventure",
	"fantasy",
}

type OmdbClient struct {
	BaseURL    string
	ApiKey     string
	Client     *http.Client
	MaxRetries uint
	Terms      []string
	Logger     *slog.Logger
}

type serverError struct {
	status int
}

func (se *serverError) Error() string {
	return fmt.Sprintf("omdb responded with %d", se.status)
}

func NewOmdbClient(cfg config.OmdbConfig, logger *slog.Logger) *OmdbClient {
	return &OmdbClient{
		BaseURL:    cfg.BaseURL,
		ApiKey:     cfg.ApiKey,
		Client:     &http.Client{Timeout: cfg.Timeout},
		MaxRetries: cfg.MaxRetries,
		Terms:      DiscoveryTerms,
		Logger:     logger,
	}
}

func _translateError(message string, id string) error {
	lowered := strings.ToLower(message)
	switch {
	case strings.Contains(lowered, "not found"), strings.Contains(lowered, "incorrect imdb id"):
		return exceptions.NotFound("movie", id)
	case strings.Contains(lowered, "too many results"):
		return exceptions.InvalidInput(message)
	default:
		return exceptions.BadGateway(PROVIDER_NAME, message)
	}
}

func (oc *OmdbClient) _fetch(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("apikey", oc.ApiKey)
	endpoint := oc.BaseURL + "?" + params.Encode()
	attempts := oc.MaxRetries
	if attempts == 0 {
		attempts = 3
	}
	return retry.DoWithData(
		func() ([]byte, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return nil, retry.Unrecoverable(err)
			}
			resp, err := oc.Client.Do(req)
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close()
			if resp.StatusCode >= 500 {
				return nil, &serverError{status: resp.StatusCode}
			}
			return io.ReadAll(resp.Body)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			oc.Logger.Warn("retrying omdb request", "attempt", n+1, "error", err)
		}),
	)
}

type failable interface {
	failure() (string, bool)
}

// _request decodes the body into thing, honoring the in-band error envelope.
// OMDb answers bad keys with a 401 that still carries the envelope.
func _request(ctx context.Context, oc *OmdbClient, params url.Values, id string, thing failable) error {
	body, err := oc._fetch(ctx, params)
	if err != nil {
		var se *serverError
		if errors.As(err, &se) {
			return exceptions.BadGateway(PROVIDER_NAME, se.Error())
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return exceptions.BadGateway(PROVIDER_NAME, err.Error())
	}
	if err := json.Unmarshal(body, thing); err != nil {
		return exceptions.BadGateway(PROVIDER_NAME, "malformed response")
	}
	if message, failed := thing.failure(); failed {
		return _translateError(message, id)
	}
	return nil
}

func (e *envelope) failure() (string, bool) {
	if strings.EqualFold(e.Response, "True") {
		return "", false
	}
	if e.Error == "" {
		return "unknown error", true
	}
	return e.Error, true
}

func (oc *OmdbClient) Search(ctx context.Context, input provider.SearchInput) (data.QueryResults[provider.Movie], error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return data.QueryResults[provider.Movie]{}, exceptions.InvalidInput("search text is required")
	}
	page := input.Page
	if page == 0 {
		page = 1
	}
	if page < 1 || page > MAX_PAGE {
		return data.QueryResults[provider.Movie]{}, exceptions.InvalidInput(fmt.Sprintf("page must be between 1 and %d", MAX_PAGE))
	}
	params := url.Values{}
	params.Set("s", text)
	params.Set("page", strconv.Itoa(page))
	if input.Type != nil && *input.Type != "" {
		params.Set("type", *input.Type)
	}
	if input.Year != nil && *input.Year != "" {
		params.Set("y", *input.Year)
	}
	var response SearchResponse
	if err := _request(ctx, oc, params, text, &response); err != nil {
		return data.QueryResults[provider.Movie]{}, err
	}
	items := make([]provider.Movie, 0, len(response.Search))
	for _, result := range response.Search {
		items = append(items, ToMovie(result))
	}
	results := data.QueryResults[provider.Movie]{Items: items}
	total, err := strconv.Atoi(response.TotalResults)
	if err == nil && page*PAGE_SIZE < total && page < MAX_PAGE {
		next := strconv.Itoa(page + 1)
		results.NextToken = &next
	}
	oc.Logger.Debug("omdb search", "text", text, "page", page, "total", total)
	return results, nil
}

func (oc *OmdbClient) Lookup(ctx context.Context, imdbId string) (provider.MovieDetails, error) {
	if strings.TrimSpace(imdbId) == "" {
		return provider.MovieDetails{}, exceptions.InvalidInput("imdbId is required")
	}
	params := url.Values{}
	params.Set("i", imdbId)
	params.Set("plot", "full")
	var response DetailResponse
	if err := _request(ctx, oc, params, imdbId, &response); err != nil {
		return provider.MovieDetails{}, err
	}
	return ToMovieDetails(response), nil
}

func (oc *OmdbClient) Random(ctx context.Context) (data.QueryResults[provider.Movie], error) {
	terms := oc.Terms
	if len(terms) == 0 {
		terms = DiscoveryTerms
	}
	return oc.Search(ctx, provider.SearchInput{
		Text: terms[rand.Intn(len(terms))],
		Page: 1,
	})
}
