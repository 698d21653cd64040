package di

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"symptomcheck/application/commands"
	"symptomcheck/application/commands/bus"
	commandhandlers "symptomcheck/application/commands/handlers"
	"symptomcheck/application/ports"
	"symptomcheck/application/queries"
	querybus "symptomcheck/application/queries/bus"
	queryhandlers "symptomcheck/application/queries/handlers"
	"symptomcheck/application/services"
	domainservices "symptomcheck/domain/services"
	"symptomcheck/infrastructure/config"
	"symptomcheck/infrastructure/messaging/eventbridge"
	"symptomcheck/infrastructure/persistence/decorators"
	"symptomcheck/infrastructure/persistence/dynamodb"
	"symptomcheck/infrastructure/persistence/memory"
	supabasestore "symptomcheck/infrastructure/persistence/supabase"
	"symptomcheck/interfaces/http/rest"
	"symptomcheck/interfaces/http/rest/handlers"
	"symptomcheck/pkg/auth"
	pkgerrors "symptomcheck/pkg/errors"
	"symptomcheck/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	serviceName        = "symptomcheck"
	verifierCacheTTL   = 30 * time.Second
	slowQueryThreshold = 500 * time.Millisecond
)

// ProvideLogLevel parses the configured level into a level that can be
// changed while the process runs
func ProvideLogLevel(cfg *config.Config) (zap.AtomicLevel, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	return zap.NewAtomicLevelAt(level), nil
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", serviceName)), nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideSupabaseClient creates a Supabase client when the project is
// configured and returns nil otherwise
func ProvideSupabaseClient(cfg *config.Config) (*supabase.Client, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseServiceRoleKey == "" {
		return nil, nil
	}
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	return client, nil
}

// ProvideRecorder picks the metrics sink: Prometheus for the long-running
// server, CloudWatch under Lambda where nothing scrapes the process
func ProvideRecorder(cfg *config.Config, client *awscloudwatch.Client, logger *zap.Logger) observability.Recorder {
	if !cfg.EnableMetrics {
		return observability.NopRecorder{}
	}
	if cfg.IsLambda {
		namespace := fmt.Sprintf("SymptomCheck/%s", cfg.Environment)
		return observability.NewCloudWatchMetrics(namespace, client, logger)
	}
	return observability.NewCollector(serviceName)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideHistoryStore builds the configured backend and wraps it with
// metrics, plus a circuit breaker for the remote backends
func ProvideHistoryStore(
	cfg *config.Config,
	dynamoClient *awsdynamodb.Client,
	supabaseClient *supabase.Client,
	recorder observability.Recorder,
	logger *zap.Logger,
) (ports.HistoryStore, error) {
	var store ports.HistoryStore

	switch cfg.HistoryBackend {
	case config.BackendMemory:
		return decorators.NewMetricsStore(memory.NewHistoryStore(logger), recorder), nil
	case config.BackendDynamoDB:
		store = dynamodb.NewHistoryStore(dynamoClient, cfg.DynamoDBTable, logger)
	case config.BackendSupabase:
		if supabaseClient == nil {
			return nil, fmt.Errorf("supabase backend selected but SUPABASE_URL is not configured")
		}
		store = supabasestore.NewHistoryStoreFromClient(supabaseClient, cfg.SupabaseTable, logger)
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.HistoryBackend)
	}

	breaker := decorators.DefaultCircuitBreakerConfig("history-" + cfg.HistoryBackend)
	return decorators.NewCircuitBreakerStore(decorators.NewMetricsStore(store, recorder), breaker, logger), nil
}

// ProvideHealthChecker exposes the store's ping for readiness checks
func ProvideHealthChecker(store ports.HistoryStore) ports.HealthChecker {
	if hc, ok := store.(ports.HealthChecker); ok {
		return hc
	}
	return nil
}

// ProvideEventBus creates the EventBridge publisher, or a no-op bus when no
// bus name is configured
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	if cfg.EventBusName == "" {
		return eventbridge.NewNoopBus(logger)
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideIdentityProvider creates the request-scoped identity provider
func ProvideIdentityProvider() ports.IdentityProvider {
	return auth.NewContextIdentity()
}

// ProvideTokenVerifier validates tokens locally or against Supabase auth
func ProvideTokenVerifier(cfg *config.Config, supabaseClient *supabase.Client) (auth.TokenVerifier, error) {
	switch cfg.AuthProvider {
	case config.AuthProviderSupabase:
		if supabaseClient == nil {
			return nil, fmt.Errorf("supabase auth selected but SUPABASE_URL is not configured")
		}
		return auth.NewCachingVerifier(auth.NewSupabaseVerifier(supabaseClient), verifierCacheTTL), nil
	case config.AuthProviderJWT:
		if cfg.IsLambda && cfg.JWTSecret == "" {
			// API Gateway validates tokens before the function runs
			return nil, nil
		}
		var audience []string
		if cfg.JWTAudience != "" {
			audience = []string{cfg.JWTAudience}
		}
		return auth.NewJWTValidator(auth.JWTConfig{
			SigningMethod: "HS256",
			SecretKey:     cfg.JWTSecret,
			Issuer:        cfg.JWTIssuer,
			Audience:      audience,
		})
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.AuthProvider)
	}
}

// ProvideRateLimiter shares counters through DynamoDB under Lambda, where
// each instance would otherwise count alone
func ProvideRateLimiter(cfg *config.Config, client *awsdynamodb.Client) auth.RateLimiter {
	if cfg.IsLambda && cfg.HistoryBackend == config.BackendDynamoDB {
		return auth.NewDistributedRateLimiter(
			client,
			cfg.DynamoDBTable,
			cfg.RateLimitPerMinute,
			time.Minute,
			"API",
		)
	}
	return auth.NewSlidingWindowLimiter(cfg.RateLimitPerMinute, time.Minute)
}

// ProvideSymptomMatcher creates the matcher with the configured link target
func ProvideSymptomMatcher(cfg *config.Config) *domainservices.SymptomMatcher {
	return domainservices.NewSymptomMatcher(domainservices.WithRemedySearchURL(cfg.RemedySearchURL))
}

// ProvideSymptomCheckService creates the analyze use case
func ProvideSymptomCheckService(
	matcher *domainservices.SymptomMatcher,
	store ports.HistoryStore,
	eventBus ports.EventBus,
	tracer *observability.Tracer,
	recorder observability.Recorder,
	logger *zap.Logger,
) *services.SymptomCheckService {
	return services.NewSymptomCheckService(matcher, store, eventBus, tracer, recorder, logger)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(store ports.HistoryStore, eventBus ports.EventBus, logger *zap.Logger) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(bus.LoggingMiddleware(logger))

	deleteHandler := commandhandlers.NewDeleteHistoryEntryHandler(store, eventBus, logger)
	if err := commandBus.Register(commands.DeleteHistoryEntryCommand{}, deleteHandler); err != nil {
		return nil, err
	}

	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(store ports.HistoryStore, logger *zap.Logger) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(querybus.LoggingMiddleware(logger, slowQueryThreshold))

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.ListHistoryQuery{}, queryhandlers.NewListHistoryHandler(store, logger)},
		{queries.DescribeConditionQuery{}, queryhandlers.NewDescribeConditionHandler()},
		{queries.ListSymptomsQuery{}, queryhandlers.NewListSymptomsHandler()},
	}
	for _, r := range registrations {
		if err := queryBus.Register(r.query, r.handler); err != nil {
			return nil, err
		}
	}

	return queryBus, nil
}

// ProvideErrorHandler creates the HTTP error handler. Failure causes are
// only shown to clients in development.
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideSymptomCheckHandler creates the symptom check HTTP handler
func ProvideSymptomCheckHandler(
	service *services.SymptomCheckService,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	identity ports.IdentityProvider,
	errHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *handlers.SymptomCheckHandler {
	return handlers.NewSymptomCheckHandler(service, commandBus, queryBus, identity, errHandler, logger)
}

// ProvideReferenceHandler creates the reference table HTTP handler
func ProvideReferenceHandler(queryBus *querybus.QueryBus, errHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *handlers.ReferenceHandler {
	return handlers.NewReferenceHandler(queryBus, errHandler, logger)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	symptoms *handlers.SymptomCheckHandler,
	reference *handlers.ReferenceHandler,
	verifier auth.TokenVerifier,
	limiter auth.RateLimiter,
	recorder observability.Recorder,
	health ports.HealthChecker,
	errHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(cfg, symptoms, reference, verifier, limiter, recorder, health, errHandler, logger)
}

// ProvideHTTPHandler builds the routed handler
func ProvideHTTPHandler(router *rest.Router) http.Handler {
	return router.Setup()
}
