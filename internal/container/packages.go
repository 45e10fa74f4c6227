package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortipy/internal/analytics"
	analyticsstore "github.com/serroba/shortipy/internal/analytics/store"
	"github.com/serroba/shortipy/internal/auth"
	"github.com/serroba/shortipy/internal/handlers"
	"github.com/serroba/shortipy/internal/health"
	"github.com/serroba/shortipy/internal/messaging"
	"github.com/serroba/shortipy/internal/middleware"
	"github.com/serroba/shortipy/internal/ratelimit"
	"github.com/serroba/shortipy/internal/shortener"
	"github.com/serroba/shortipy/internal/store"
	"go.uber.org/zap"
)

const (
	// APITitle names the service in the OpenAPI document.
	APITitle = "Shortipy"
	// APIVersion is the service release.
	APIVersion = "1.0.0"

	consumerGroup = "analytics"
)

// RedisConn wraps the Redis client so the injector closes it on shutdown.
type RedisConn struct {
	*redis.Client
}

// Shutdown closes the Redis connection pool.
func (c *RedisConn) Shutdown() error {
	return c.Close()
}

// PostgresConn wraps the pgx pool so the injector closes it on shutdown.
type PostgresConn struct {
	*pgxpool.Pool
}

// Shutdown closes the PostgreSQL pool.
func (c *PostgresConn) Shutdown() error {
	c.Close()

	return nil
}

// LoggerPackage provides the zap logger selected by Options.LogFormat.
func LoggerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		switch opts.LogFormat {
		case "json":
			return zap.NewProduction()
		case "console", "":
			return zap.NewDevelopment()
		default:
			return nil, fmt.Errorf("unknown log format %q", opts.LogFormat)
		}
	})
}

// RedisPackage provides the shared Redis connection.
func RedisPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*RedisConn, error) {
		opts := do.MustInvoke[*Options](i)

		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,

			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})

		return &RedisConn{Client: client}, nil
	})
}

// KeyStorePackage provides the key store backed by Redis.
func KeyStorePackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (store.KeyStore, error) {
		conn := do.MustInvoke[*RedisConn](i)

		return store.NewRedisStore(conn.Client), nil
	})
}

// ShortenerPackage provides the URL registry.
func ShortenerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*shortener.Registry, error) {
		opts := do.MustInvoke[*Options](i)
		keys := do.MustInvoke[store.KeyStore](i)

		generator, err := shortener.NewKeyGenerator()
		if err != nil {
			return nil, err
		}

		allocator := shortener.NewAllocator(keys, generator, opts.MaxAllocAttempts)

		return shortener.NewRegistry(keys, allocator), nil
	})
}

// AuthPackage provides the password hasher, the credential store and the
// token authenticator.
func AuthPackage(i *do.Injector) {
	do.Provide(i, func(_ *do.Injector) (auth.Hasher, error) {
		return auth.NewBcryptHasher(0), nil
	})

	do.Provide(i, func(i *do.Injector) (*auth.CredentialStore, error) {
		keys := do.MustInvoke[store.KeyStore](i)
		hasher := do.MustInvoke[auth.Hasher](i)

		return auth.NewCredentialStore(keys, hasher), nil
	})

	do.Provide(i, func(i *do.Injector) (*auth.Authenticator, error) {
		opts := do.MustInvoke[*Options](i)
		credentials := do.MustInvoke[*auth.CredentialStore](i)
		hasher := do.MustInvoke[auth.Hasher](i)

		ttl, err := opts.TokenLifetime()
		if err != nil {
			return nil, err
		}

		return auth.NewAuthenticator(credentials, hasher, []byte(opts.SecretKey), ttl)
	})
}

// RateLimitPackage provides the policy limiter backed by Redis sorted sets.
func RateLimitPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*ratelimit.PolicyLimiter, error) {
		conn := do.MustInvoke[*RedisConn](i)

		return ratelimit.NewPolicyLimiter(store.NewRateLimitRedisStore(conn.Client), ratelimit.DefaultPolicy()), nil
	})
}

// PublisherGroupPackage provides the Redis Streams publisher and the typed
// analytics publish functions. With analytics disabled no publisher is opened.
func PublisherGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		conn := do.MustInvoke[*RedisConn](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: conn.Client,
		}, messaging.NewZapLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(i, func(i *do.Injector) (analytics.Publishers, error) {
		opts := do.MustInvoke[*Options](i)
		if !opts.Analytics {
			return analytics.NoopPublishers(), nil
		}

		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return analytics.NewPublishers(group.Publisher()), nil
	})
}

// HTTPPackage provides the router and the huma API with every route registered.
func HTTPPackage(i *do.Injector) {
	do.Provide(i, func(_ *do.Injector) (*chi.Mux, error) {
		router := chi.NewMux()
		router.Use(chimiddleware.RequestID, chimiddleware.Recoverer)
		router.Handle("/metrics", promhttp.Handler())

		return router, nil
	})

	do.Provide(i, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)

		api := humachi.New(router, handlers.APIConfig(APITitle, APIVersion))

		api.UseMiddleware(middleware.RequestMeta(api))

		if opts.RateLimit {
			limiter := do.MustInvoke[*ratelimit.PolicyLimiter](i)
			api.UseMiddleware(middleware.PolicyRateLimiter(api, limiter, ratelimit.NewOperationScopeResolver(), logger))
		}

		api.UseMiddleware(middleware.Version(api, logger))
		api.UseMiddleware(middleware.Authenticate(api, do.MustInvoke[*auth.Authenticator](i), logger))

		urlHandler := handlers.NewURLHandler(
			do.MustInvoke[*shortener.Registry](i),
			opts.PublicBaseURL(),
			do.MustInvoke[analytics.Publishers](i),
			logger,
		)
		authHandler := handlers.NewAuthHandler(do.MustInvoke[*auth.Authenticator](i), logger)

		health.RegisterRoutes(api, health.NewHandler(do.MustInvoke[store.KeyStore](i)))
		handlers.RegisterRoutes(api, urlHandler, authHandler)

		return api, nil
	})
}

// PostgresPackage provides the analytics database pool.
func PostgresPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*PostgresConn, error) {
		opts := do.MustInvoke[*Options](i)

		pool, err := pgxpool.New(context.Background(), opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		return &PostgresConn{Pool: pool}, nil
	})
}

// AnalyticsPackage provides the analytics store: PostgreSQL when a database
// URL is configured, otherwise a store that only logs.
func AnalyticsPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (analytics.Store, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if opts.DatabaseURL == "" {
			logger.Info("no database configured, analytics events are only logged")

			return analyticsstore.NewNoop(logger), nil
		}

		conn := do.MustInvoke[*PostgresConn](i)
		pg := analyticsstore.NewPostgres(conn.Pool)

		if err := pg.Migrate(context.Background()); err != nil {
			return nil, err
		}

		return pg, nil
	})
}

// ConsumerGroupPackage provides the analytics consumer group reading Redis Streams.
func ConsumerGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		conn := do.MustInvoke[*RedisConn](i)
		logger := do.MustInvoke[*zap.Logger](i)
		events := do.MustInvoke[analytics.Store](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        conn.Client,
			ConsumerGroup: consumerGroup,
		}, messaging.NewZapLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create subscriber: %w", err)
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(analytics.NewConsumers(subscriber, events, logger)...)

		return group, nil
	})
}
