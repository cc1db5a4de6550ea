package data

import "time"

type Scope string

const (
	LISTS_READ          Scope = "lists.readonly"
	LISTS_WRITE         Scope = "lists"
	MOVIES_READ         Scope = "providers.readonly"
	ACCOUNT_READ        Scope = "account.readonly"
	ACCOUNT_WRITE       Scope = "account"
	AUDIT_READ          Scope = "audits.readonly"
	AUDIT_WRITE         Scope = "audits"
	SUBSCRIPTIONS_READ  Scope = "subscriptions.readonly"
	SUBSCRIPTIONS_WRITE Scope = "subscriptions"
	TOKENS_READ         Scope = "tokens.readonly"
	TOKENS_WRITE        Scope = "tokens"
)

// Scopes granted to an identity authenticated against the user pool.
func AllScopes() []Scope {
	return []Scope{
		LISTS_WRITE,
		MOVIES_READ,
		ACCOUNT_WRITE,
		AUDIT_WRITE,
		SUBSCRIPTIONS_WRITE,
		TOKENS_WRITE,
	}
}

// KnownScopes lists every scope a token may carry.
func KnownScopes() []Scope {
	return []Scope{
		LISTS_READ,
		LISTS_WRITE,
		MOVIES_READ,
		ACCOUNT_READ,
		ACCOUNT_WRITE,
		AUDIT_READ,
		AUDIT_WRITE,
		SUBSCRIPTIONS_READ,
		SUBSCRIPTIONS_WRITE,
		TOKENS_READ,
		TOKENS_WRITE,
	}
}

type ApiTokenDTO struct {
	PK         string            `dynamodbav:"PK"`
	SK         string            `dynamodbav:"SK"`
	FirstIndex string            `dynamodbav:"GS1-PK"`
	AccountId  string            `dynamodbav:"accountId"`
	Name       string            `dynamodbav:"name"`
	Claims     map[string]string `dynamodbav:"claims"`
	Scopes     []Scope           `dynamodbav:"scopes"`
	ExpiresIn  *int              `dynamodbav:"expiresIn"`
	CreateTime time.Time         `dynamodbav:"createTime"`
	UpdateTime time.Time         `dynamodbav:"updateTime"`
}

// Expired reports whether the token carries an expiry (unix millis) in the past.
func (a ApiTokenDTO) Expired(now time.Time) bool {
	return a.ExpiresIn != nil && int64(*a.ExpiresIn) < now.UnixMilli()
}

type ApiTokenInputDTO struct {
	Name      *string            `dynamodbav:"name"`
	Scopes    *[]Scope           `dynamodbav:"scopes"`
	Claims    *map[string]string `dynamodbav:"claims"`
	AccountId *string            `dynamodbav:"accountId"`
	ExpiresIn *int               `dynamodbav:"expiresIn"`
}

type ApiTokenDataService interface {
	Repository[ApiTokenDTO, ApiTokenInputDTO]
}
