package apitokens

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/users"
	"philcali.me/movies/internal/exceptions"
	"philcali.me/movies/internal/routes"
	"philcali.me/movies/internal/routes/filters"
	"philcali.me/movies/internal/routes/util"
)

type ApiTokenService struct {
	data      data.ApiTokenDataService
	indexName string
}

func NewRouteWithIndex(data data.ApiTokenDataService, indexName string) routes.Service {
	return &ApiTokenService{
		data:      data,
		indexName: indexName,
	}
}

func _convertToken(tokenDTO data.ApiTokenDTO) ApiToken {
	var expiresIn *time.Time = nil
	if tokenDTO.ExpiresIn != nil {
		expiresIn = aws.Time(time.UnixMilli(int64(*tokenDTO.ExpiresIn)))
	}
	return ApiToken{
		Name:       tokenDTO.Name,
		Value:      tokenDTO.SK,
		Scopes:     tokenDTO.Scopes,
		ExpiresIn:  expiresIn,
		CreateTime: tokenDTO.CreateTime,
		UpdateTime: tokenDTO.UpdateTime,
	}
}

func _generateTokenHash(length int) (string, error) {
	randomBytes := make([]byte, length)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(randomBytes), nil
}

func (as *ApiTokenService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/tokens":             util.AuthorizedRoute(as.ListTokens),
		"GET:/tokens/:tokenId":    util.AuthorizedRoute(as.GetToken),
		"POST:/tokens":            util.AuthorizedRoute(as.CreateToken),
		"PUT:/tokens/:tokenId":    util.AuthorizedRoute(as.UpdateToken),
		"DELETE:/tokens/:tokenId": util.AuthorizedRoute(as.DeleteToken),
	}
}

func (as *ApiTokenService) ListTokens(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeListByIndex[data.ApiTokenDTO, data.ApiTokenInputDTO](as.data, _convertToken, as.indexName, event, ctx)
}

func (as *ApiTokenService) GetToken(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := as._ownedToken(ctx, util.RequestParam(ctx, "tokenId"))
	return util.SerializeResponseOK(_convertToken, item, err)
}

// Tokens live in the global partition so the authorizer can resolve them by
// value alone; ownership is checked against the stored account id.
func (as *ApiTokenService) _ownedToken(ctx context.Context, tokenId string) (data.ApiTokenDTO, error) {
	item, err := as.data.Get(ctx, users.GLOBAL_ACCOUNT, tokenId)
	if err != nil {
		return item, err
	}
	if item.AccountId != util.Username(ctx) {
		return data.ApiTokenDTO{}, exceptions.NotFound("token", tokenId)
	}
	return item, nil
}

func _validateScopes(scopes []data.Scope) error {
	if len(scopes) == 0 {
		return exceptions.InvalidInput("At least one scope is required.")
	}
	known := make(map[data.Scope]bool)
	for _, scope := range data.KnownScopes() {
		known[scope] = true
	}
	for _, scope := range scopes {
		if strings.TrimSpace(string(scope)) == "" {
			return exceptions.InvalidInput("Scopes cannot be blank.")
		}
		if !known[scope] {
			return exceptions.InvalidInput(fmt.Sprintf("Unknown scope: %s", scope))
		}
	}
	return nil
}

// _grantable rejects scopes the caller does not hold itself. JWT identities
// bypass the scope filter and may grant any scope.
func _grantable(event events.APIGatewayV2HTTPRequest, scopes []data.Scope) error {
	held, ok := filters.EventScopes(event)
	if !ok {
		authorizer := event.RequestContext.Authorizer
		if authorizer != nil && authorizer.JWT != nil && len(authorizer.JWT.Claims) > 0 {
			return nil
		}
	}
	for _, scope := range scopes {
		if !filters.Covers(held, string(scope)) {
			return exceptions.Forbidden(fmt.Sprintf("Cannot grant scope %s", scope))
		}
	}
	return nil
}

func (as *ApiTokenService) CreateToken(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := ApiTokenInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("Token name is required.")
	}
	if err := _validateScopes(input.Scopes); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if err := _grantable(event, input.Scopes); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	var expiresIn *int
	if input.ExpiresIn != nil {
		expiresIn = aws.Int(int(input.ExpiresIn.UnixMilli()))
	}
	tokenHash, err := _generateTokenHash(32)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InternalServer(err.Error())
	}
	created, err := as.data.CreateWithItemId(ctx, users.GLOBAL_ACCOUNT, data.ApiTokenInputDTO{
		Name:      input.Name,
		Scopes:    &input.Scopes,
		AccountId: aws.String(util.Username(ctx)),
		ExpiresIn: expiresIn,
	}, tokenHash)
	return util.SerializeResponseOK(_convertToken, created, err)
}

func (as *ApiTokenService) UpdateToken(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := ApiTokenInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	var expiresIn *int
	if input.ExpiresIn != nil {
		expiresIn = aws.Int(int(input.ExpiresIn.UnixMilli()))
	}
	tokenId := util.RequestParam(ctx, "tokenId")
	if _, err := as._ownedToken(ctx, tokenId); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := as.data.Update(ctx, users.GLOBAL_ACCOUNT, tokenId, data.ApiTokenInputDTO{
		Name:      input.Name,
		ExpiresIn: expiresIn,
	})
	return util.SerializeResponseOK(_convertToken, item, err)
}

func (as *ApiTokenService) DeleteToken(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	tokenId := util.RequestParam(ctx, "tokenId")
	if _, err := as._ownedToken(ctx, tokenId); err != nil {
		if exceptions.IsNotFound(err) {
			return util.SerializeResponseNoContent(nil)
		}
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return util.SerializeResponseNoContent(as.data.Delete(ctx, users.GLOBAL_ACCOUNT, tokenId))
}
