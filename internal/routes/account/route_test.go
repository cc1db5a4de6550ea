package account_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"philcali.me/movies/internal/data"
	movieEvents "philcali.me/movies/internal/events"
	"philcali.me/movies/internal/exceptions"
	"philcali.me/movies/internal/routes"
	"philcali.me/movies/internal/routes/account"
)

type memoryUsers struct {
	data.UserService
	users map[string]data.UserDTO
}

func (m *memoryUsers) Get(ctx context.Context, accountId string, itemId string) (data.UserDTO, error) {
	user, ok := m.users[itemId]
	if !ok {
		return user, exceptions.NotFound("User", itemId)
	}
	return user, nil
}

func (m *memoryUsers) CreateWithItemId(ctx context.Context, accountId string, input data.UserInputDTO, itemId string) (data.UserDTO, error) {
	if _, exists := m.users[itemId]; exists {
		return data.UserDTO{}, exceptions.Conflict("User", itemId)
	}
	now := time.Now()
	user := data.UserDTO{
		PK:          accountId + ":User",
		SK:          itemId,
		AccountId:   *input.AccountId,
		Email:       input.Email,
		DisplayName: input.DisplayName,
		CreateTime:  now,
		UpdateTime:  now,
	}
	m.users[itemId] = user
	return user, nil
}

type memoryLists struct {
	data.MovieListRepository
	lists map[string]data.MovieListDTO
}

func (m *memoryLists) CreateWithItemId(ctx context.Context, accountId string, input data.MovieListInputDTO, itemId string) (data.MovieListDTO, error) {
	key := accountId + "/" + itemId
	if _, exists := m.lists[key]; exists {
		return data.MovieListDTO{}, exceptions.Conflict("MovieList", itemId)
	}
	list := data.MovieListDTO{
		PK:        accountId + ":MovieList",
		SK:        itemId,
		Name:      *input.Name,
		IsDefault: aws.ToBool(input.IsDefault),
		Owner:     input.Owner,
	}
	m.lists[key] = list
	return list, nil
}

func register(t *testing.T, router *routes.Router, username string) events.APIGatewayV2HTTPResponse {
	body, err := json.Marshal(account.AccountInput{DisplayName: aws.String("Movie Buff")})
	require.NoError(t, err)
	request := events.APIGatewayV2HTTPRequest{RawPath: "/account", Body: string(body)}
	request.RequestContext.HTTP.Method = "POST"
	request.RequestContext.HTTP.Path = "/account"
	request.RequestContext.Authorizer = &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
		Lambda: map[string]interface{}{
			"claims": map[string]interface{}{"username": username, "email": username + "@example.com"},
			"scopes": []interface{}{"account"},
		},
	}
	return router.Invoke(request, context.Background())
}

func TestRegisterCreatesDefaultList(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := &memoryUsers{users: make(map[string]data.UserDTO)}
	lists := &memoryLists{lists: make(map[string]data.MovieListDTO)}
	defaultList := movieEvents.NewDefaultListHandler(lists, logger)
	router := routes.NewRouterWithLogger(logger, account.NewRouteWithHook(users, lists, nil, defaultList.Create))

	response := register(t, router, "moviebuff")
	require.Equal(t, 200, response.StatusCode, response.Body)
	var user account.User
	require.NoError(t, json.Unmarshal([]byte(response.Body), &user))
	assert.Equal(t, "moviebuff", user.Username)

	list, ok := lists.lists["moviebuff/"+movieEvents.DefaultListId("moviebuff")]
	require.True(t, ok)
	assert.True(t, list.IsDefault)
	assert.Equal(t, data.DEFAULT_LIST_NAME, list.Name)

	again := register(t, router, "moviebuff")
	assert.Equal(t, 409, again.StatusCode)
	assert.Len(t, lists.lists, 1)
}

func TestRegisterWithoutHook(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := &memoryUsers{users: make(map[string]data.UserDTO)}
	lists := &memoryLists{lists: make(map[string]data.MovieListDTO)}
	router := routes.NewRouterWithLogger(logger, account.NewRoute(users, lists, nil))

	response := register(t, router, "moviebuff")
	require.Equal(t, 200, response.StatusCode, response.Body)
	assert.Contains(t, users.users, "moviebuff")
	assert.Empty(t, lists.lists)
}
