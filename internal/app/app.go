package app

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"philcali.me/movies/internal/cache"
	"philcali.me/movies/internal/config"
	"philcali.me/movies/internal/data"
	tokenData "philcali.me/movies/internal/dynamodb/apitokens"
	auditData "philcali.me/movies/internal/dynamodb/audits"
	itemData "philcali.me/movies/internal/dynamodb/items"
	listData "philcali.me/movies/internal/dynamodb/lists"
	subscriberData "philcali.me/movies/internal/dynamodb/subscriptions"
	"philcali.me/movies/internal/dynamodb/token"
	userData "philcali.me/movies/internal/dynamodb/users"
	movieEvents "philcali.me/movies/internal/events"
	"philcali.me/movies/internal/notifications"
	"philcali.me/movies/internal/omdb"
	"philcali.me/movies/internal/provider"
	"philcali.me/movies/internal/routes"
	"philcali.me/movies/internal/routes/account"
	"philcali.me/movies/internal/routes/apitokens"
	"philcali.me/movies/internal/routes/audits"
	"philcali.me/movies/internal/routes/external"
	"philcali.me/movies/internal/routes/lists"
	"philcali.me/movies/internal/routes/subscriptions"
	snsServices "philcali.me/movies/internal/sns/services"
)

// Clients bundles everything built from one configuration.
type Clients struct {
	Config        config.AppConfig
	Logger        *slog.Logger
	DynamoDB      *dynamodb.Client
	Notifications notifications.NotificationService
	Movies        provider.MovieProvider
	Lists         data.MovieListRepository
	Items         data.ListItemRepository
	Users         data.UserService
	Tokens        data.ApiTokenDataService
	Audits        data.AuditRepository
	Subscriptions data.SubscriptionDataService
}

func LoadAWSConfig(ctx context.Context, cfg config.AppConfig) (aws.Config, error) {
	var opts []func(*awsConfig.LoadOptions) error
	if cfg.Endpoint != "" {
		opts = append(opts, awsConfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: cfg.Endpoint}, nil
			})))
	}
	return awsConfig.LoadDefaultConfig(ctx, opts...)
}

func NewClients(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*Clients, error) {
	awsCfg, err := LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client := dynamodb.NewFromConfig(awsCfg)
	marshaler := token.NewGCM()

	var notifier notifications.NotificationService
	if cfg.TopicArn != "" {
		notifier = snsServices.NewNotificationService(sns.NewFromConfig(awsCfg), cfg.TopicArn)
	} else {
		logger.Warn("TOPIC_ARN is not set, notifications will only be logged")
		notifier = &notifications.LoggingService{Logger: logger}
	}

	movieCache := cache.New(ctx, cfg.Cache, logger)
	movies := provider.NewCachedProvider(omdb.NewOmdbClient(cfg.Omdb, logger), movieCache, cfg.Cache.TTL, logger)

	return &Clients{
		Config:        cfg,
		Logger:        logger,
		DynamoDB:      client,
		Notifications: notifier,
		Movies:        movies,
		Lists:         listData.NewMovieListService(cfg.TableName, client, marshaler),
		Items:         itemData.NewListItemService(cfg.TableName, client, marshaler),
		Users:         userData.NewUserService(cfg.TableName, client, marshaler),
		Tokens:        tokenData.NewApiTokenService(cfg.TableName, client, marshaler),
		Audits:        auditData.NewAuditService(cfg.TableName, client, marshaler),
		Subscriptions: subscriberData.NewSubscriptionService(cfg.TableName, client, marshaler),
	}, nil
}

func (c *Clients) Router() *routes.Router {
	return NewRouter(c, account.NewRoute(c.Users, c.Lists, c.Items))
}

// LocalRouter is used by the local server and CLI. No stream handler runs
// there, so registration creates the default list itself.
func (c *Clients) LocalRouter() *routes.Router {
	defaultList := movieEvents.NewDefaultListHandler(c.Lists, c.Logger)
	return NewRouter(c, account.NewRouteWithHook(c.Users, c.Lists, c.Items, defaultList.Create))
}

func NewRouter(c *Clients, accounts routes.Service) *routes.Router {
	return routes.NewRouterWithLogger(
		c.Logger,
		lists.NewRoute(c.Lists, c.Items, c.Movies, c.Logger),
		accounts,
		external.NewExternalService(c.Movies),
		apitokens.NewRouteWithIndex(c.Tokens, c.Config.IndexName),
		audits.NewRouteWithIndex(c.Audits, c.Config.IndexName),
		subscriptions.NewRoute(c.Subscriptions, c.Notifications),
	)
}
