package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/dynamodb/users"
)

var ErrExpiredToken = errors.New("api token has expired")

type AuthThunk func(ctx context.Context, authorization string) (*events.APIGatewayV2CustomAuthorizerSimpleResponse, error)

type Authorizer struct {
	UserInfoURL string
	Client      *http.Client
	Tokens      data.ApiTokenDataService
	Logger      *slog.Logger
	Now         func() time.Time
}

func NewAuthorizer(poolURL string, tokens data.ApiTokenDataService, logger *slog.Logger) *Authorizer {
	return &Authorizer{
		UserInfoURL: fmt.Sprintf("%s/oauth2/userInfo", strings.TrimSuffix(poolURL, "/")),
		Client:      &http.Client{Timeout: 5 * time.Second},
		Tokens:      tokens,
		Logger:      logger,
		Now:         time.Now,
	}
}

func _scopes(scopes []data.Scope) []string {
	rtn := make([]string, len(scopes))
	for i, scope := range scopes {
		rtn[i] = string(scope)
	}
	return rtn
}

func _authorized(username string, email string, scopes []data.Scope) *events.APIGatewayV2CustomAuthorizerSimpleResponse {
	return &events.APIGatewayV2CustomAuthorizerSimpleResponse{
		IsAuthorized: true,
		Context: map[string]interface{}{
			"claims": map[string]string{
				"username": username,
				"email":    email,
			},
			"scopes": _scopes(scopes),
		},
	}
}

// UserInfo trades the authorization header with the user pool. A user pool identity
// is the account owner and receives every scope.
func (a *Authorizer) UserInfo(ctx context.Context, authorization string) (*events.APIGatewayV2CustomAuthorizerSimpleResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.UserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Authorization", authorization)
	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userInfo responded with %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var claims struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.Unmarshal(body, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse claims: %w", err)
	}
	if claims.Username == "" {
		return nil, errors.New("userInfo did not include a username")
	}
	return _authorized(claims.Username, claims.Email, data.AllScopes()), nil
}

func (a *Authorizer) ApiToken(ctx context.Context, authorization string) (*events.APIGatewayV2CustomAuthorizerSimpleResponse, error) {
	scheme, value, found := strings.Cut(authorization, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || value == "" {
		return nil, errors.New("authorization is not a bearer token")
	}
	tokenDTO, err := a.Tokens.Get(ctx, users.GLOBAL_ACCOUNT, value)
	if err != nil {
		return nil, err
	}
	if tokenDTO.Expired(a.Now()) {
		return nil, ErrExpiredToken
	}
	var email string
	if tokenDTO.Claims != nil {
		email = tokenDTO.Claims["email"]
	}
	return _authorized(tokenDTO.AccountId, email, tokenDTO.Scopes), nil
}

func (a *Authorizer) HandleRequest(ctx context.Context, event events.APIGatewayV2CustomAuthorizerV2Request) (events.APIGatewayV2CustomAuthorizerSimpleResponse, error) {
	response := events.APIGatewayV2CustomAuthorizerSimpleResponse{
		IsAuthorized: false,
	}
	authorization, ok := event.Headers["authorization"]
	if !ok {
		authorization, ok = event.Headers["Authorization"]
	}
	if !ok || authorization == "" {
		return response, nil
	}
	thunks := []AuthThunk{
		a.UserInfo,
		a.ApiToken,
	}
	for _, authThunk := range thunks {
		newResp, err := authThunk(ctx, authorization)
		if err == nil && newResp != nil {
			return *newResp, nil
		}
		if err != nil {
			a.Logger.Debug("skipping authorization method", "error", err)
		}
	}
	return response, nil
}
