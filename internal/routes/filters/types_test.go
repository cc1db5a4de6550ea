package filters_test

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"philcali.me/movies/internal/routes/filters"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		name    string
		scopes  []string
		method  string
		path    string
		allowed bool
	}{
		{"WriteScope", []string{"lists"}, "POST", "/lists/abc/movies", true},
		{"ReadonlyGet", []string{"lists.readonly"}, "GET", "/lists", true},
		{"ReadonlyPost", []string{"lists.readonly"}, "POST", "/lists", false},
		{"OtherResource", []string{"lists"}, "GET", "/tokens", false},
		{"PrefixOnly", []string{"lists"}, "GET", "/listsabc", false},
		{"Providers", []string{"providers.readonly"}, "GET", "/providers/omdb/random", true},
		{"NoScopes", nil, "GET", "/lists", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, filters.Allowed(tc.scopes, tc.method, tc.path))
		})
	}
}

func TestCovers(t *testing.T) {
	cases := []struct {
		name      string
		held      []string
		requested string
		covered   bool
	}{
		{"Same", []string{"lists"}, "lists", true},
		{"WriteCoversReadonly", []string{"lists"}, "lists.readonly", true},
		{"ReadonlyNotWrite", []string{"lists.readonly"}, "lists", false},
		{"ReadonlySame", []string{"providers.readonly"}, "providers.readonly", true},
		{"OtherResource", []string{"tokens"}, "account", false},
		{"NoScopes", nil, "tokens.readonly", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.covered, filters.Covers(tc.held, tc.requested))
		})
	}
}

func TestEventScopes(t *testing.T) {
	scopes, ok := filters.EventScopes(request("GET", "/tokens", map[string]interface{}{
		"scopes": []interface{}{"tokens", "lists.readonly"},
	}))
	assert.True(t, ok)
	assert.Equal(t, []string{"tokens", "lists.readonly"}, scopes)

	_, ok = filters.EventScopes(events.APIGatewayV2HTTPRequest{})
	assert.False(t, ok)
}

func request(method, path string, lambda map[string]interface{}) events.APIGatewayV2HTTPRequest {
	event := events.APIGatewayV2HTTPRequest{RawPath: path}
	event.RequestContext.HTTP.Method = method
	event.RequestContext.Authorizer = &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
		Lambda: lambda,
	}
	return event
}

func TestAuthorizedScopeFilter(t *testing.T) {
	filter := filters.DefaultAuthorizationFilter()

	_, broken := filter.Filter(filters.DefaultFilterContext(request("DELETE", "/lists/abc", map[string]interface{}{
		"scopes": []interface{}{"lists"},
	}), context.Background()))
	assert.False(t, broken)

	updated, broken := filter.Filter(filters.DefaultFilterContext(request("DELETE", "/lists/abc", map[string]interface{}{
		"scopes": []interface{}{"lists.readonly"},
	}), context.Background()))
	assert.True(t, broken)
	assert.Equal(t, 401, updated.Response.StatusCode)
	assert.Equal(t, "27", updated.Response.Headers["Content-Length"])

	event := request("GET", "/lists", nil)
	event.RequestContext.Authorizer = nil
	_, broken = filter.Filter(filters.DefaultFilterContext(event, context.Background()))
	assert.True(t, broken)
}

func TestCorsFilter(t *testing.T) {
	updated, broken := filters.DefaultCorsFilter().Filter(filters.DefaultFilterContext(request("OPTIONS", "/lists", nil), context.Background()))
	assert.True(t, broken)
	assert.Equal(t, 200, updated.Response.StatusCode)
	assert.Equal(t, "*", updated.Response.Headers["access-control-allow-origin"])
}
