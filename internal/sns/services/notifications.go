package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/mozillazg/go-unidecode"
	"philcali.me/movies/internal/notifications"
)

// SNS subjects must be ASCII and shorter than 100 characters.
const MAX_SUBJECT_LENGTH = 99

type NotificationSNSService struct {
	Sns      *sns.Client
	TopicArn string
}

func NewNotificationService(client *sns.Client, topicArn string) *NotificationSNSService {
	return &NotificationSNSService{
		Sns:      client,
		TopicArn: topicArn,
	}
}

// Subject transliterates a subject to printable ASCII and truncates it to
// MAX_SUBJECT_LENGTH characters.
func Subject(subject string) string {
	var b strings.Builder
	for _, r := range unidecode.Unidecode(subject) {
		if r < 0x20 || r > 0x7e {
			continue
		}
		if b.Len() == MAX_SUBJECT_LENGTH {
			break
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func FilterPolicy(accountId string) (string, error) {
	policy, err := json.Marshal(map[string][]string{
		notifications.ACCOUNT_ATTRIBUTE: {accountId},
	})
	if err != nil {
		return "", err
	}
	return string(policy), nil
}

func (n *NotificationSNSService) Subscribe(ctx context.Context, input notifications.SubscribeInput) (*notifications.SubscribeOutput, error) {
	policy, err := FilterPolicy(input.AccountId)
	if err != nil {
		return nil, err
	}
	output, err := n.Sns.Subscribe(ctx, &sns.SubscribeInput{
		Endpoint:              input.Endpoint,
		Protocol:              input.Protocol,
		TopicArn:              aws.String(n.TopicArn),
		ReturnSubscriptionArn: true,
		Attributes: map[string]string{
			"FilterPolicy": policy,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to subscribe %s: %w", input.AccountId, err)
	}

	return &notifications.SubscribeOutput{
		SubscriberId: *output.SubscriptionArn,
	}, nil
}

func (n *NotificationSNSService) Unsubscribe(ctx context.Context, subscriberId string) error {
	_, err := n.Sns.Unsubscribe(ctx, &sns.UnsubscribeInput{
		SubscriptionArn: aws.String(subscriberId),
	})

	return err
}

func (n *NotificationSNSService) Publish(ctx context.Context, input notifications.PublishInput) error {
	var subject *string
	if value := Subject(input.Subject); value != "" {
		subject = aws.String(value)
	}
	_, err := n.Sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.TopicArn),
		Subject:  subject,
		Message:  aws.String(input.Message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			notifications.ACCOUNT_ATTRIBUTE: {
				DataType:    aws.String("String"),
				StringValue: aws.String(input.AccountId),
			},
		},
	})
	return err
}
