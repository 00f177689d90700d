// Package container provides dependency injection using Uber FX
package container

import (
	"context"

	"github.com/nourishly/v1/internal/application/account"
	"github.com/nourishly/v1/internal/application/chat"
	"github.com/nourishly/v1/internal/application/kitchen"
	"github.com/nourishly/v1/internal/application/pantry"
	"github.com/nourishly/v1/internal/infrastructure/ai/gemini"
	"github.com/nourishly/v1/internal/infrastructure/cache"
	"github.com/nourishly/v1/internal/infrastructure/config"
	"github.com/nourishly/v1/internal/infrastructure/http/server"
	"github.com/nourishly/v1/internal/infrastructure/i18n"
	"github.com/nourishly/v1/internal/infrastructure/persistence/file"
	"github.com/nourishly/v1/internal/ports/outbound"
	"github.com/nourishly/v1/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// CacheModule provides the recipe cache. Redis is used when enabled,
// otherwise an in-memory cache keeps single-node deployments dependency
// free.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Redis.Enable {
			return cache.NewRedisCache(cfg, log)
		}
		log.Info("Using in-memory cache")
		return cache.NewMemoryCache(), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.ProfileRepository {
		return file.NewProfileRepository(cfg.Storage.ProfilePath, log)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	gemini.NewClient,
	i18n.NewLabeler,
	pantry.NewPantryService,
	kitchen.NewKitchenService,
	chat.NewChatService,
	account.NewAccountService,
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	server *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Nourishly application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Nourishly application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()

			return nil
		},
	})
}
