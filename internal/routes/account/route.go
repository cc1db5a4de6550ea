package account

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sourcegraph/conc/pool"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/users"
	"philcali.me/movies/internal/exceptions"
	"philcali.me/movies/internal/routes"
	"philcali.me/movies/internal/routes/util"
)

const STATS_WORKERS = 4

// RegistrationHook runs after an account is registered.
type RegistrationHook func(ctx context.Context, accountId string) error

type AccountService struct {
	users      data.UserService
	lists      data.MovieListRepository
	items      data.ListItemRepository
	onRegister RegistrationHook
}

func NewRoute(users data.UserService, lists data.MovieListRepository, items data.ListItemRepository) routes.Service {
	return NewRouteWithHook(users, lists, items, nil)
}

// NewRouteWithHook serves deployments without a table stream, where onRegister
// does the work the stream handlers would.
func NewRouteWithHook(users data.UserService, lists data.MovieListRepository, items data.ListItemRepository, onRegister RegistrationHook) routes.Service {
	return &AccountService{
		users:      users,
		lists:      lists,
		items:      items,
		onRegister: onRegister,
	}
}

func (as *AccountService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/account":       util.AuthorizedRoute(as.GetAccount),
		"POST:/account":      util.AuthorizedRoute(as.Register),
		"GET:/account/stats": util.AuthorizedRoute(as.GetStats),
	}
}

func (as *AccountService) GetAccount(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	account := Account{
		Username: util.Username(ctx),
		Email:    util.Email(ctx),
	}
	user, err := as.users.Get(ctx, users.GLOBAL_ACCOUNT, account.Username)
	if err != nil && !exceptions.IsNotFound(err) {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if err == nil {
		converted := NewUser(user)
		account.Registered = true
		account.User = &converted
	}
	return util.SerializeResponseOK(util.IdentityThunk[Account], account, nil)
}

func (as *AccountService) Register(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := AccountInput{}
	if strings.TrimSpace(event.Body) != "" {
		parsed, err := util.ParseBody[AccountInput](event)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{}, err
		}
		input = parsed
	}
	username := util.Username(ctx)
	var email *string
	if value := util.Email(ctx); value != "" {
		email = &value
	}
	created, err := as.users.CreateWithItemId(ctx, users.GLOBAL_ACCOUNT, data.UserInputDTO{
		AccountId:   &username,
		Email:       email,
		DisplayName: input.DisplayName,
	}, username)
	if err == nil && as.onRegister != nil {
		err = as.onRegister(ctx, username)
	}
	return util.SerializeResponseOK(NewUser, created, err)
}

func (as *AccountService) _allLists(ctx context.Context, accountId string) ([]data.MovieListDTO, error) {
	var lists []data.MovieListDTO
	params := data.QueryParams{}
	for {
		page, err := as.lists.List(ctx, accountId, params)
		if err != nil {
			return nil, err
		}
		lists = append(lists, page.Items...)
		if page.NextToken == nil {
			return lists, nil
		}
		params.NextToken = page.NextToken
	}
}

// GetStats counts the movies in every list of the caller concurrently.
func (as *AccountService) GetStats(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	accountId := util.Username(ctx)
	lists, err := as._allLists(ctx, accountId)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	p := pool.NewWithResults[ListStats]().WithContext(ctx).WithMaxGoroutines(STATS_WORKERS).WithCancelOnError()
	for _, list := range lists {
		list := list
		p.Go(func(ctx context.Context) (ListStats, error) {
			count, err := as.items.Count(ctx, accountId, list.SK)
			return ListStats{
				ListId:    list.SK,
				Name:      list.Name,
				IsDefault: list.IsDefault,
				Movies:    count,
			}, err
		})
	}
	items, err := p.Wait()
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	stats := Stats{
		Lists: len(lists),
		Items: make([]ListStats, 0, len(items)),
	}
	for _, item := range items {
		stats.Movies += item.Movies
		stats.Items = append(stats.Items, item)
	}
	return util.SerializeResponseOK(util.IdentityThunk[Stats], stats, nil)
}
