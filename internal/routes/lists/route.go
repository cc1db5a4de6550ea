package lists

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/exceptions"
	"philcali.me/movies/internal/provider"
	"philcali.me/movies/internal/routes"
	"philcali.me/movies/internal/routes/util"
)

type MovieListService struct {
	lists    data.MovieListRepository
	items    data.ListItemRepository
	provider provider.MovieProvider
	logger   *slog.Logger
}

func NewRoute(lists data.MovieListRepository, items data.ListItemRepository, movies provider.MovieProvider, logger *slog.Logger) routes.Service {
	return &MovieListService{
		lists:    lists,
		items:    items,
		provider: movies,
		logger:   logger,
	}
}

func (ms *MovieListService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/lists":                           util.AuthorizedRoute(ms.ListLists),
		"POST:/lists":                          util.AuthorizedRoute(ms.CreateList),
		"GET:/lists/:listId":                   util.AuthorizedRoute(ms.GetList),
		"PUT:/lists/:listId":                   util.AuthorizedRoute(ms.UpdateList),
		"DELETE:/lists/:listId":                util.AuthorizedRoute(ms.DeleteList),
		"GET:/lists/:listId/movies":            util.AuthorizedRoute(ms.ListMovies),
		"POST:/lists/:listId/movies":           util.AuthorizedRoute(ms.AddMovie),
		"GET:/lists/:listId/movies/:imdbId":    util.AuthorizedRoute(ms.GetMovie),
		"DELETE:/lists/:listId/movies/:imdbId": util.AuthorizedRoute(ms.RemoveMovie),
	}
}

func _validateName(name *string, required bool) error {
	if name == nil {
		if required {
			return exceptions.InvalidInput("List name is required.")
		}
		return nil
	}
	if strings.TrimSpace(*name) == "" {
		return exceptions.InvalidInput("List name cannot be blank.")
	}
	return nil
}

func (ms *MovieListService) ListLists(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeList[data.MovieListDTO, data.MovieListInputDTO](ms.lists, NewMovieList, event, ctx)
}

func (ms *MovieListService) GetList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := ms.lists.Get(ctx, util.Username(ctx), util.RequestParam(ctx, "listId"))
	return util.SerializeResponseOK(NewMovieList, item, err)
}

func (ms *MovieListService) CreateList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[MovieListInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if err := _validateName(input.Name, true); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	listInput := input.ToData(util.Username(ctx))
	listInput.IsDefault = aws.Bool(false)
	if listInput.IsPublic == nil {
		listInput.IsPublic = aws.Bool(false)
	}
	created, err := ms.lists.Create(ctx, util.Username(ctx), listInput)
	return util.SerializeResponseOK(NewMovieList, created, err)
}

func (ms *MovieListService) UpdateList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[MovieListInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if err := _validateName(input.Name, false); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := ms.lists.Update(ctx, util.Username(ctx), util.RequestParam(ctx, "listId"), data.MovieListInputDTO{
		Name:     input.Name,
		IsPublic: input.IsPublic,
	})
	return util.SerializeResponseOK(NewMovieList, item, err)
}

// DeleteList removes every item in the list before the list itself.
func (ms *MovieListService) DeleteList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	accountId := util.Username(ctx)
	listId := util.RequestParam(ctx, "listId")
	list, err := ms.lists.Get(ctx, accountId, listId)
	if err != nil {
		if exceptions.IsNotFound(err) {
			return util.SerializeResponseNoContent(nil)
		}
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if list.IsDefault {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("The default list cannot be deleted.")
	}
	purged, err := ms.items.Purge(ctx, accountId, listId)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	ms.logger.Debug("purged list items", "account", accountId, "listId", listId, "count", purged)
	return util.SerializeResponseNoContent(ms.lists.Delete(ctx, accountId, listId))
}

func (ms *MovieListService) ListMovies(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	accountId := util.Username(ctx)
	listId := util.RequestParam(ctx, "listId")
	params, err := util.ParseQueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if _, err := ms.lists.Get(ctx, accountId, listId); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	items, err := ms.items.List(ctx, accountId, listId, params)
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewListItem), items, err)
}

func (ms *MovieListService) GetMovie(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := ms.items.Get(ctx, util.Username(ctx), util.RequestParam(ctx, "listId"), util.RequestParam(ctx, "imdbId"))
	return util.SerializeResponseOK(NewListItem, item, err)
}

// _fillDetails copies the catalog fields onto input when the caller only sent an id.
func (ms *MovieListService) _fillDetails(ctx context.Context, input *ListItemInput) error {
	if input.Title != nil && strings.TrimSpace(*input.Title) != "" {
		return nil
	}
	details, err := ms.provider.Lookup(ctx, *input.ImdbId)
	if err != nil {
		return err
	}
	input.Title = aws.String(details.Title)
	if input.Year == nil {
		input.Year = aws.String(details.Year)
	}
	if input.Type == nil {
		input.Type = aws.String(details.Type)
	}
	if input.Poster == nil {
		input.Poster = details.Poster
	}
	return nil
}

func (ms *MovieListService) AddMovie(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[ListItemInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if input.ImdbId == nil || strings.TrimSpace(*input.ImdbId) == "" {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("imdbId is required.")
	}
	accountId := util.Username(ctx)
	listId := util.RequestParam(ctx, "listId")
	if _, err := ms.lists.Get(ctx, accountId, listId); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if err := ms._fillDetails(ctx, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := ms.items.Add(ctx, accountId, listId, input.ToData())
	return util.SerializeResponseOK(NewListItem, created, err)
}

func (ms *MovieListService) RemoveMovie(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := ms.items.Remove(ctx, util.Username(ctx), util.RequestParam(ctx, "listId"), util.RequestParam(ctx, "imdbId"))
	return util.SerializeResponseNoContent(err)
}
