package external

import (
	"context"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/movies/internal/exceptions"
	"philcali.me/movies/internal/provider"
	"philcali.me/movies/internal/routes"
	"philcali.me/movies/internal/routes/util"
)

type ExternalService struct {
	Service provider.MovieProvider
}

func NewExternalService(movies provider.MovieProvider) routes.Service {
	return &ExternalService{
		Service: movies,
	}
}

func (es *ExternalService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/providers/omdb":         util.AuthorizedRoute(es.Search),
		"GET:/providers/omdb/random":  util.AuthorizedRoute(es.Random),
		"GET:/providers/omdb/:imdbId": util.AuthorizedRoute(es.Lookup),
	}
}

func _optional(event events.APIGatewayV2HTTPRequest, name string) *string {
	if value, ok := event.QueryStringParameters[name]; ok && strings.TrimSpace(value) != "" {
		return &value
	}
	return nil
}

func (es *ExternalService) Lookup(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	details, err := es.Service.Lookup(ctx, util.RequestParam(ctx, "imdbId"))
	return util.SerializeResponseOK(util.IdentityThunk[provider.MovieDetails], details, err)
}

func (es *ExternalService) Search(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	text, ok := event.QueryStringParameters["search"]
	if !ok || strings.TrimSpace(text) == "" {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("Need a search parameter set")
	}
	input := provider.SearchInput{
		Text: text,
		Page: 1,
		Type: _optional(event, "type"),
		Year: _optional(event, "year"),
	}
	if page := _optional(event, "page"); page != nil {
		parsed, err := strconv.Atoi(*page)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("Page parameter was not a number type.")
		}
		input.Page = parsed
	}
	query, err := es.Service.Search(ctx, input)
	return util.SerializeResponseOK(util.IdentityThunk, query, err)
}

func (es *ExternalService) Random(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	query, err := es.Service.Random(ctx)
	return util.SerializeResponseOK(util.IdentityThunk, query, err)
}
