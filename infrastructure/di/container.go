package di

import (
	"net/http"

	"symptomcheck/application/commands/bus"
	"symptomcheck/application/ports"
	querybus "symptomcheck/application/queries/bus"
	"symptomcheck/application/services"
	"symptomcheck/infrastructure/config"
	"symptomcheck/pkg/auth"
	"symptomcheck/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	LogLevel     zap.AtomicLevel
	HistoryStore ports.HistoryStore
	EventBus     ports.EventBus
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	Service      *services.SymptomCheckService
	Recorder     observability.Recorder
	RateLimiter  auth.RateLimiter
	Handler      http.Handler
}

// Close stops background work owned by the container
func (c *Container) Close() {
	if stopper, ok := c.RateLimiter.(interface{ Stop() }); ok {
		stopper.Stop()
	}
}

// ApplyFileConfig applies the hot-reloadable keys of a changed config file.
// A level set through LOG_LEVEL keeps precedence over the file.
func (c *Container) ApplyFileConfig(file *config.FileConfig) {
	if file == nil || file.LogLevel == nil {
		return
	}
	if c.Config != nil && c.Config.LogLevelFromEnv {
		c.Logger.Info("Ignoring config file log level, LOG_LEVEL is set",
			zap.String("logLevel", *file.LogLevel),
		)
		return
	}
	if err := c.LogLevel.UnmarshalText([]byte(*file.LogLevel)); err != nil {
		c.Logger.Warn("Ignoring invalid log level from config file",
			zap.String("logLevel", *file.LogLevel),
			zap.Error(err),
		)
		return
	}
	c.Logger.Info("Log level changed", zap.String("logLevel", c.LogLevel.String()))
}
