//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"symptomcheck/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogLevel,
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideSupabaseClient,
	ProvideRecorder,
	ProvideTracer,
	ProvideHistoryStore,
	ProvideHealthChecker,
	ProvideEventBus,
	ProvideIdentityProvider,
	ProvideTokenVerifier,
	ProvideRateLimiter,
	ProvideSymptomMatcher,
	ProvideSymptomCheckService,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideErrorHandler,
	ProvideSymptomCheckHandler,
	ProvideReferenceHandler,
	ProvideRouter,
	ProvideHTTPHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil
}
