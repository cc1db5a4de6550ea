package notifications

import "context"

// ACCOUNT_ATTRIBUTE tags every published message so subscribers only receive
// activity for their own account.
const ACCOUNT_ATTRIBUTE = "accountId"

type SubscribeInput struct {
	AccountId string
	Endpoint  *string
	Protocol  *string
}

type SubscribeOutput struct {
	SubscriberId string
}

type PublishInput struct {
	AccountId string
	Subject   string
	Message   string
}

type NotificationService interface {
	Subscribe(ctx context.Context, input SubscribeInput) (*SubscribeOutput, error)
	Unsubscribe(ctx context.Context, subscriberId string) error
	Publish(ctx context.Context, input PublishInput) error
}
