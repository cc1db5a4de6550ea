package auth_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"philcali.me/movies/internal/auth"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/exceptions"
)

type fakeTokens struct {
	data.ApiTokenDataService
	tokens map[string]data.ApiTokenDTO
}

func (ft *fakeTokens) Get(ctx context.Context, accountId string, itemId string) (data.ApiTokenDTO, error) {
	if token, ok := ft.tokens[accountId+"/"+itemId]; ok {
		return token, nil
	}
	return data.ApiTokenDTO{}, exceptions.NotFound("token", itemId)
}

func newAuthorizer(t *testing.T) *auth.Authorizer {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth2/userInfo" || r.Header.Get("Authorization") != "Bearer user-pool-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"username": "moviebuff", "email": "moviebuff@example.com", "sub": "abc"}`)
	}))
	t.Cleanup(server.Close)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tokens := &fakeTokens{
		tokens: map[string]data.ApiTokenDTO{
			"Global/cli": {
				AccountId: "moviebuff",
				Scopes:    []data.Scope{data.LISTS_READ},
			},
			"Global/stale": {
				AccountId: "moviebuff",
				Scopes:    []data.Scope{data.LISTS_WRITE},
				ExpiresIn: aws.Int(int(now.Add(-time.Hour).UnixMilli())),
			},
		},
	}
	authorizer := auth.NewAuthorizer(server.URL+"/", tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))
	authorizer.Now = func() time.Time { return now }
	return authorizer
}

func request(authorization string) events.APIGatewayV2CustomAuthorizerV2Request {
	return events.APIGatewayV2CustomAuthorizerV2Request{
		Headers: map[string]string{"authorization": authorization},
	}
}

func TestHandleRequest(t *testing.T) {
	authorizer := newAuthorizer(t)
	ctx := context.Background()

	t.Run("UserPool", func(t *testing.T) {
		resp, err := authorizer.HandleRequest(ctx, request("Bearer user-pool-token"))
		require.NoError(t, err)
		assert.True(t, resp.IsAuthorized)
		claims := resp.Context["claims"].(map[string]string)
		assert.Equal(t, "moviebuff", claims["username"])
		assert.Equal(t, "moviebuff@example.com", claims["email"])
		assert.Len(t, resp.Context["scopes"], len(data.AllScopes()))
	})

	t.Run("ApiToken", func(t *testing.T) {
		resp, err := authorizer.HandleRequest(ctx, request("Bearer cli"))
		require.NoError(t, err)
		assert.True(t, resp.IsAuthorized)
		assert.Equal(t, []string{"lists.readonly"}, resp.Context["scopes"])
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		resp, err := authorizer.HandleRequest(ctx, request("Bearer stale"))
		require.NoError(t, err)
		assert.False(t, resp.IsAuthorized)

		_, err = authorizer.ApiToken(ctx, "Bearer stale")
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("Unknown", func(t *testing.T) {
		for _, header := range []string{"Bearer nope", "garbage", ""} {
			resp, err := authorizer.HandleRequest(ctx, request(header))
			require.NoError(t, err)
			assert.False(t, resp.IsAuthorized, header)
		}
		resp, err := authorizer.HandleRequest(ctx, events.APIGatewayV2CustomAuthorizerV2Request{})
		require.NoError(t, err)
		assert.False(t, resp.IsAuthorized)
	})
}
