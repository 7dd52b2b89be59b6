// Package container wires the service together with Uber FX
package container

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	appcatalog "github.com/mealwise/core/internal/application/catalog"
	appprofile "github.com/mealwise/core/internal/application/profile"
	"github.com/mealwise/core/internal/infrastructure/catalog"
	"github.com/mealwise/core/internal/infrastructure/config"
	"github.com/mealwise/core/internal/infrastructure/http/apiserver"
	"github.com/mealwise/core/internal/infrastructure/monitoring"
	"github.com/mealwise/core/internal/infrastructure/persistence/database"
	gormrepo "github.com/mealwise/core/internal/infrastructure/persistence/gorm"
	"github.com/mealwise/core/internal/infrastructure/persistence/memory"
	redisrepo "github.com/mealwise/core/internal/infrastructure/persistence/redis"
	"github.com/mealwise/core/internal/infrastructure/security"
	"github.com/mealwise/core/internal/ports/inbound"
	"github.com/mealwise/core/internal/ports/outbound"
	"github.com/mealwise/core/pkg/healthcheck"
	"github.com/mealwise/core/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// memoryCacheSweep is how often the in-memory cache drops expired entries
const memoryCacheSweep = time.Minute

// ConfigPath is the optional configuration file handed in by the binary
type ConfigPath string

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	CatalogModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// WithConfigPath supplies the configuration file to load
func WithConfigPath(path string) fx.Option {
	return fx.Supply(ConfigPath(path))
}

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, error) {
		return config.Load(string(path))
	},
)

// LoggerModule provides logging, and routes fx's own events through it
var LoggerModule = fx.Options(
	fx.Provide(func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
			Service:     cfg.App.Name,
			Version:     cfg.App.Version,
		})
	}),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		l := &fxevent.ZapLogger{Logger: log.Named("fx")}
		l.UseLogLevel(zap.DebugLevel)
		return l
	}),
)

// MonitoringModule provides metrics and tracing. The tracing provider is
// invoked eagerly so it is installed before any span is started.
var MonitoringModule = fx.Options(
	fx.Provide(monitoring.NewMetrics, newTracingProvider),
	fx.Invoke(func(*monitoring.TracingProvider) {}),
)

func newTracingProvider(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
	tp, err := monitoring.NewTracingProvider(monitoring.TracingConfig{
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		Exporter:       cfg.Monitoring.TraceExporter,
		OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
		JaegerEndpoint: cfg.Monitoring.JaegerEndpoint,
		SamplingRate:   cfg.Monitoring.SamplingRate,
		Enabled:        cfg.Monitoring.EnableTracing,
	}, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(tp.Shutdown))
	return tp, nil
}

// DatabaseModule provides the profile store connection
var DatabaseModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		db, err := database.Open(cfg, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.StopHook(func() error {
			return database.Close(db)
		}))
		return db, nil
	},
)

// CacheModule provides the profile cache selected by cache.provider
var CacheModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, metrics *monitoring.Metrics) (outbound.CacheRepository, error) {
		var backend outbound.CacheRepository

		switch cfg.Cache.Provider {
		case "redis":
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout+time.Second)
			defer cancel()

			client, err := redisrepo.NewClient(ctx, cfg)
			if err != nil {
				return nil, fmt.Errorf("failed to connect to redis: %w", err)
			}
			lc.Append(fx.StopHook(client.Close))
			backend = redisrepo.NewCacheRepository(client, cfg.Redis.KeyPrefix, log)
			log.Info("Using Redis profile cache", zap.String("addr", cfg.RedisAddr()))
		default:
			mem := memory.NewCacheRepository(memoryCacheSweep)
			lc.Append(fx.StopHook(mem.Close))
			backend = mem
			log.Info("Using in-memory profile cache")
		}

		return monitoring.InstrumentCache(backend, metrics), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormrepo.NewProfileRepository,
)

// CatalogModule provides the recipe registry and its optional watcher
var CatalogModule = fx.Options(
	fx.Provide(
		func(cfg *config.Config, log *zap.Logger) outbound.ChunkSource {
			if cfg.Catalog.ChunkDir != "" {
				log.Info("Loading recipe catalog from directory", zap.String("dir", cfg.Catalog.ChunkDir))
				return catalog.NewDirSource(cfg.Catalog.ChunkDir, log)
			}
			return catalog.NewEmbeddedSource(log)
		},
		func(source outbound.ChunkSource, log *zap.Logger, metrics *monitoring.Metrics) (*appcatalog.Registry, error) {
			return appcatalog.NewRegistry(context.Background(), source, log, metrics)
		},
		func(r *appcatalog.Registry) inbound.CatalogService { return r },
	),
	fx.Invoke(RegisterCatalogWatcher),
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(repo outbound.ProfileRepository, cache outbound.CacheRepository, cfg *config.Config, log *zap.Logger) inbound.ProfileService {
		return appprofile.NewService(repo, cache, cfg.Cache.ProfileTTL, log)
	},
	func(cfg *config.Config, log *zap.Logger) *security.TokenVerifier {
		return security.NewTokenVerifier(cfg.Auth, log)
	},
)

// HTTPModule provides the API server and its readiness checks
var HTTPModule = fx.Provide(
	newReadiness,
	apiserver.NewServer,
)

// newReadiness registers the checks behind /ready
func newReadiness(cfg *config.Config, log *zap.Logger, db *gorm.DB, cache outbound.CacheRepository, catalog inbound.CatalogService) *healthcheck.HealthCheck {
	ready := healthcheck.New(cfg.App.Version, log)
	ready.Register("database", healthcheck.NewDatabaseChecker(db))
	if pinger, ok := cache.(interface{ Ping(context.Context) error }); ok {
		ready.Register("cache", healthcheck.NewPingChecker(pinger.Ping))
	}
	ready.Register("catalog", healthcheck.CatalogChecker(catalog))
	return ready
}

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterCatalogWatcher reloads the registry when the chunk directory
// changes. Config validation guarantees catalog.watch comes with a chunk_dir.
func RegisterCatalogWatcher(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, registry *appcatalog.Registry) error {
	if !cfg.Catalog.Watch {
		return nil
	}

	watcher, err := catalog.NewWatcher(cfg.Catalog.ChunkDir, registry, cfg.Catalog.WatchDebounce, log)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			watcher.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			return watcher.Stop()
		},
	})
	return nil
}

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	log *zap.Logger,
	catalogService inbound.CatalogService,
	server *apiserver.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Mealwise application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.Int("recipes", catalogService.Count()),
			)

			ln, err := net.Listen("tcp", server.Addr())
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", server.Addr(), err)
			}

			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped unexpectedly", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Mealwise application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}
