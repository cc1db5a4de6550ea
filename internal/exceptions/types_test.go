package exceptions_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"philcali.me/movies/internal/exceptions"
)

func TestStatusCode(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"NotFound":       {exceptions.NotFound("list", "abc"), 404},
		"Conflict":       {exceptions.AlreadyInList("abc", "tt0133093"), 409},
		"InvalidInput":   {exceptions.InvalidInput("bad"), 400},
		"Unauthorized":   {exceptions.Unauthorized("nope"), 401},
		"Forbidden":      {exceptions.Forbidden("nope"), 403},
		"BadGateway":     {exceptions.BadGateway("omdb", "Invalid API key!"), 502},
		"InternalServer": {exceptions.InternalServer("boom"), 500},
		"Wrapped":        {fmt.Errorf("adding movie: %w", exceptions.NotFound("list", "abc")), 404},
		"Plain":          {errors.New("anything"), 500},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.status, exceptions.StatusCode(tc.err))
		})
	}
}

func TestMatchers(t *testing.T) {
	wrapped := fmt.Errorf("wrapped: %w", exceptions.AlreadyInList("abc", "tt0133093"))
	assert.True(t, exceptions.IsConflict(wrapped))
	assert.False(t, exceptions.IsNotFound(wrapped))
	assert.Equal(t, "Movie tt0133093 already in list abc", errors.Unwrap(wrapped).Error())
}
