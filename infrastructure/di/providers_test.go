package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"symptomcheck/infrastructure/config"
	"symptomcheck/infrastructure/messaging/eventbridge"
	"symptomcheck/infrastructure/persistence/decorators"
	"symptomcheck/pkg/auth"
	"symptomcheck/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.JWTSecret = "test-secret-with-enough-length-123"
	return cfg
}

func TestInitializeContainer_MemoryBackend(t *testing.T) {
	cfg := testConfig()

	c, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	assert.IsType(t, &eventbridge.NoopBus{}, c.EventBus)
	assert.IsType(t, &auth.SlidingWindowLimiter{}, c.RateLimiter)
	assert.IsType(t, &observability.Collector{}, c.Recorder)
	assert.IsType(t, &decorators.MetricsStore{}, c.HistoryStore)

	rec := httptest.NewRecorder()
	c.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	c.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/symptoms", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProvideHistoryStore(t *testing.T) {
	dynamo := awsdynamodb.NewFromConfig(aws.Config{Region: "us-west-2"})

	t.Run("dynamodb is wrapped in a breaker", func(t *testing.T) {
		cfg := testConfig()
		cfg.HistoryBackend = config.BackendDynamoDB

		store, err := ProvideHistoryStore(cfg, dynamo, nil, observability.NopRecorder{}, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &decorators.CircuitBreakerStore{}, store)
	})

	t.Run("supabase requires a client", func(t *testing.T) {
		cfg := testConfig()
		cfg.HistoryBackend = config.BackendSupabase

		_, err := ProvideHistoryStore(cfg, dynamo, nil, observability.NopRecorder{}, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := testConfig()
		cfg.HistoryBackend = "redis"

		_, err := ProvideHistoryStore(cfg, dynamo, nil, observability.NopRecorder{}, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestProvideRecorder(t *testing.T) {
	cw := awscloudwatch.NewFromConfig(aws.Config{Region: "us-west-2"})

	cfg := testConfig()
	assert.IsType(t, &observability.Collector{}, ProvideRecorder(cfg, cw, zap.NewNop()))

	cfg.IsLambda = true
	assert.IsType(t, &observability.CloudWatchMetrics{}, ProvideRecorder(cfg, cw, zap.NewNop()))

	cfg.EnableMetrics = false
	assert.IsType(t, observability.NopRecorder{}, ProvideRecorder(cfg, cw, zap.NewNop()))
}

func TestProvideEventBus(t *testing.T) {
	client := awseventbridge.NewFromConfig(aws.Config{Region: "us-west-2"})
	cfg := testConfig()

	assert.IsType(t, &eventbridge.NoopBus{}, ProvideEventBus(client, cfg, zap.NewNop()))

	cfg.EventBusName = "symptom-bus"
	assert.IsType(t, &eventbridge.Publisher{}, ProvideEventBus(client, cfg, zap.NewNop()))
}

func TestProvideTokenVerifier(t *testing.T) {
	cfg := testConfig()
	verifier, err := ProvideTokenVerifier(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &auth.JWTValidator{}, verifier)

	cfg.AuthProvider = config.AuthProviderSupabase
	_, err = ProvideTokenVerifier(cfg, nil)
	assert.Error(t, err)
}

func TestProvideRateLimiter(t *testing.T) {
	dynamo := awsdynamodb.NewFromConfig(aws.Config{Region: "us-west-2"})
	cfg := testConfig()

	assert.IsType(t, &auth.SlidingWindowLimiter{}, ProvideRateLimiter(cfg, dynamo))

	cfg.IsLambda = true
	cfg.HistoryBackend = config.BackendDynamoDB
	assert.IsType(t, &auth.DistributedRateLimiter{}, ProvideRateLimiter(cfg, dynamo))
}

func TestContainer_CloseStopsLimiter(t *testing.T) {
	limiter := ProvideRateLimiter(testConfig(), nil)
	c := &Container{RateLimiter: limiter}

	c.Close()
	c.Close()

	allowed, err := limiter.Allow(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)

	assert.NotPanics(t, (&Container{}).Close)
}

func TestContainer_ApplyFileConfig(t *testing.T) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	c := &Container{Logger: zap.NewNop(), LogLevel: level}

	debug := "debug"
	c.ApplyFileConfig(&config.FileConfig{LogLevel: &debug})
	assert.Equal(t, zapcore.DebugLevel, level.Level())

	bogus := "loud"
	c.ApplyFileConfig(&config.FileConfig{LogLevel: &bogus})
	assert.Equal(t, zapcore.DebugLevel, level.Level())

	c.ApplyFileConfig(nil)
	assert.Equal(t, zapcore.DebugLevel, level.Level())
}

func TestContainer_ApplyFileConfig_EnvWins(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HISTORY_BACKEND", config.BackendMemory)
	t.Setenv("AUTH_PROVIDER", config.AuthProviderJWT)
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")
	t.Setenv("REMEDY_SEARCH_URL", "")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.LogLevelFromEnv)

	level, err := ProvideLogLevel(cfg)
	require.NoError(t, err)
	c := &Container{Config: cfg, Logger: zap.NewNop(), LogLevel: level}

	debug := "debug"
	c.ApplyFileConfig(&config.FileConfig{LogLevel: &debug})
	assert.Equal(t, zapcore.WarnLevel, level.Level())
}

func TestProvideLogLevel(t *testing.T) {
	cfg := testConfig()
	cfg.LogLevel = "warn"

	level, err := ProvideLogLevel(cfg)
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level.Level())

	cfg.LogLevel = "shouty"
	_, err = ProvideLogLevel(cfg)
	assert.Error(t, err)
}
