package provider_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"philcali.me/movies/internal/cache"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/exceptions"
	"philcali.me/movies/internal/provider"
)

type countingProvider struct {
	searches int
	lookups  int
	randoms  int
}

func (cp *countingProvider) Search(ctx context.Context, input provider.SearchInput) (data.QueryResults[provider.Movie], error) {
	cp.searches++
	return data.QueryResults[provider.Movie]{
		Items: []provider.Movie{{ImdbId: "tt0133093", Title: "The Matrix", Year: "1999", Type: "movie"}},
	}, nil
}

func (cp *countingProvider) Lookup(ctx context.Context, imdbId string) (provider.MovieDetails, error) {
	cp.lookups++
	if imdbId == "tt0000000" {
		return provider.MovieDetails{}, exceptions.NotFound("movie", imdbId)
	}
	return provider.MovieDetails{Movie: provider.Movie{ImdbId: imdbId, Title: "The Matrix"}, Plot: "Neo wakes up."}, nil
}

func (cp *countingProvider) Random(ctx context.Context) (data.QueryResults[provider.Movie], error) {
	cp.randoms++
	return data.QueryResults[provider.Movie]{}, nil
}

func newCached() (*countingProvider, *provider.CachedProvider) {
	inner := &countingProvider{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return inner, provider.NewCachedProvider(inner, cache.NewMemoryCache(16, time.Minute), time.Minute, logger)
}

func TestCachedProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("Search", func(t *testing.T) {
		inner, cached := newCached()
		for i := 0; i < 3; i++ {
			results, err := cached.Search(ctx, provider.SearchInput{Text: "Matrix", Page: 1})
			require.NoError(t, err)
			require.Len(t, results.Items, 1)
			assert.Equal(t, "The Matrix", results.Items[0].Title)
		}
		_, err := cached.Search(ctx, provider.SearchInput{Text: " matrix ", Page: 1})
		require.NoError(t, err)
		assert.Equal(t, 1, inner.searches)

		_, err = cached.Search(ctx, provider.SearchInput{Text: "matrix", Page: 1, Type: aws.String("series")})
		require.NoError(t, err)
		assert.Equal(t, 2, inner.searches)
	})

	t.Run("Lookup", func(t *testing.T) {
		inner, cached := newCached()
		for i := 0; i < 2; i++ {
			details, err := cached.Lookup(ctx, "tt0133093")
			require.NoError(t, err)
			assert.Equal(t, "Neo wakes up.", details.Plot)
		}
		assert.Equal(t, 1, inner.lookups)
	})

	t.Run("ErrorsAreNotCached", func(t *testing.T) {
		inner, cached := newCached()
		for i := 0; i < 2; i++ {
			_, err := cached.Lookup(ctx, "tt0000000")
			assert.True(t, exceptions.IsNotFound(err))
		}
		assert.Equal(t, 2, inner.lookups)
	})

	t.Run("RandomIsNotCached", func(t *testing.T) {
		inner, cached := newCached()
		_, _ = cached.Random(ctx)
		_, _ = cached.Random(ctx)
		assert.Equal(t, 2, inner.randoms)
	})
}
