package util

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/exceptions"
	"philcali.me/movies/internal/routes"
)

// Claims resolves the caller identity, preferring the lambda authorizer context
// and falling back to a JWT authorizer.
func Claims(event events.APIGatewayV2HTTPRequest) (string, string, bool) {
	authorizer := event.RequestContext.Authorizer
	if authorizer == nil {
		return "", "", false
	}
	if raw, ok := authorizer.Lambda["claims"]; ok {
		if claims, ok := raw.(map[string]interface{}); ok {
			username, _ := claims["username"].(string)
			email, _ := claims["email"].(string)
			if username != "" {
				return username, email, true
			}
		}
		if claims, ok := raw.(map[string]string); ok && claims["username"] != "" {
			return claims["username"], claims["email"], true
		}
	}
	if authorizer.JWT != nil {
		if username, ok := authorizer.JWT.Claims["username"]; ok && username != "" {
			return username, authorizer.JWT.Claims["email"], true
		}
	}
	return "", "", false
}

func AuthorizedRoute(route routes.Route) routes.Route {
	return func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
		if username, email, ok := Claims(event); ok {
			ctx = context.WithValue(ctx, routes.USERNAME_KEY, username)
			return route(event, context.WithValue(ctx, routes.EMAIL_KEY, email))
		}
		return events.APIGatewayV2HTTPResponse{}, exceptions.Unauthorized("Unauthorized")
	}
}

func Username(ctx context.Context) string {
	username, _ := ctx.Value(routes.USERNAME_KEY).(string)
	return username
}

func Email(ctx context.Context) string {
	email, _ := ctx.Value(routes.EMAIL_KEY).(string)
	return email
}

func RequestParam(ctx context.Context, name string) string {
	params, _ := ctx.Value(routes.PARAMS_KEY).(map[string]string)
	return params[name]
}

func ParseBody[T interface{}](event events.APIGatewayV2HTTPRequest) (T, error) {
	var input T
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return input, exceptions.InvalidInput(fmt.Sprintf("Request body is invalid: %s", err.Error()))
	}
	return input, nil
}

func ParseQueryParams(event events.APIGatewayV2HTTPRequest) (data.QueryParams, error) {
	var params data.QueryParams
	if sLimit, ok := event.QueryStringParameters["limit"]; ok {
		limit, err := strconv.Atoi(sLimit)
		if err != nil {
			return params, exceptions.InvalidInput("Limit parameter was not a number type.")
		}
		params.Limit = limit
	}
	if token, ok := event.QueryStringParameters["nextToken"]; ok && token != "" {
		params.NextToken = &token
	}
	return params, nil
}

func SerializeList[T interface{}, I interface{}, R interface{}](repo data.Repository[T, I], thunk func(T) R, event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := ParseQueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	items, err := repo.List(ctx, Username(ctx), params)
	return SerializeResponseOK(ConvertQueryResultsPartial(thunk), items, err)
}

func SerializeListByIndex[T interface{}, I interface{}, R interface{}](repo data.Repository[T, I], thunk func(T) R, indexName string, event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := ParseQueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	items, err := repo.ListByIndex(ctx, Username(ctx), indexName, params)
	return SerializeResponseOK(ConvertQueryResultsPartial(thunk), items, err)
}

func SerializeResponse[T interface{}, R interface{}](delayed func(T) R, thing T, err error, statusCode int) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	body, err := json.Marshal(delayed(thing))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

func SerializeResponseOK[T interface{}, R interface{}](delayed func(T) R, thing T, err error) (events.APIGatewayV2HTTPResponse, error) {
	return SerializeResponse(delayed, thing, err, 200)
}

func SerializeResponseNoContent(err error) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: 204,
	}, nil
}

func IdentityThunk[T interface{}](thing T) T {
	return thing
}

func MapOnList[T interface{}, R interface{}](items *[]T, thunk func(T) R) *[]R {
	if items == nil {
		empty := make([]R, 0)
		return &empty
	}
	mapped := make([]R, len(*items))
	for i, item := range *items {
		mapped[i] = thunk(item)
	}
	return &mapped
}

func ConvertQueryResults[D interface{}, R interface{}](items data.QueryResults[D], thunk func(D) R) data.QueryResults[R] {
	if items.Items != nil {
		newItems := make([]R, len(items.Items))
		for i, rd := range items.Items {
			newItems[i] = thunk(rd)
		}
		return data.QueryResults[R]{
			Items:     newItems,
			NextToken: items.NextToken,
		}
	}
	return data.QueryResults[R]{
		Items: make([]R, 0),
	}
}

func ConvertQueryResultsPartial[D interface{}, R interface{}](thunk func(D) R) func(data.QueryResults[D]) data.QueryResults[R] {
	return func(d data.QueryResults[D]) data.QueryResults[R] {
		return ConvertQueryResults(d, thunk)
	}
}
