package subscriptions

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/exceptions"
	"philcali.me/movies/internal/notifications"
	"philcali.me/movies/internal/routes"
	"philcali.me/movies/internal/routes/util"
)

type SubscriptionService struct {
	data          data.SubscriptionDataService
	notifications notifications.NotificationService
}

func NewRoute(data data.SubscriptionDataService, notifications notifications.NotificationService) routes.Service {
	return &SubscriptionService{
		data:          data,
		notifications: notifications,
	}
}

func (s *SubscriptionService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/subscriptions":                  util.AuthorizedRoute(s.ListSubscriptions),
		"GET:/subscriptions/:subscriberId":    util.AuthorizedRoute(s.GetSubscription),
		"POST:/subscriptions":                 util.AuthorizedRoute(s.CreateSubscription),
		"DELETE:/subscriptions/:subscriberId": util.AuthorizedRoute(s.DeleteSubscription),
	}
}

func (s *SubscriptionService) ListSubscriptions(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeList[data.SubscriptionDTO, data.SubscriptionInputDTO](s.data, NewSubscription, event, ctx)
}

func (s *SubscriptionService) GetSubscription(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := s.data.Get(ctx, util.Username(ctx), util.RequestParam(ctx, "subscriberId"))
	return util.SerializeResponseOK(NewSubscription, item, err)
}

func (s *SubscriptionService) CreateSubscription(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[SubscriptionInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if input.Endpoint == nil || strings.TrimSpace(*input.Endpoint) == "" {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("Subscription endpoint is required.")
	}
	if input.Protocol == nil || strings.TrimSpace(*input.Protocol) == "" {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("Subscription protocol is required.")
	}

	subscription, err := s.notifications.Subscribe(ctx, notifications.SubscribeInput{
		AccountId: util.Username(ctx),
		Endpoint:  input.Endpoint,
		Protocol:  input.Protocol,
	})
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InternalServer(err.Error())
	}

	created, err := s.data.Create(ctx, util.Username(ctx), data.SubscriptionInputDTO{
		Endpoint:      input.Endpoint,
		Protocol:      input.Protocol,
		SubscriberArn: &subscription.SubscriberId,
	})
	return util.SerializeResponseOK(NewSubscription, created, err)
}

func (s *SubscriptionService) DeleteSubscription(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	subscriber, err := s.data.Get(ctx, util.Username(ctx), util.RequestParam(ctx, "subscriberId"))
	if err != nil {
		if exceptions.IsNotFound(err) {
			return util.SerializeResponseNoContent(nil)
		}
		return events.APIGatewayV2HTTPResponse{}, exceptions.InternalServer(err.Error())
	}

	if err := s.notifications.Unsubscribe(ctx, subscriber.SubscriberArn); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InternalServer(err.Error())
	}

	return util.SerializeResponseNoContent(s.data.Delete(ctx, util.Username(ctx), subscriber.SK))
}
