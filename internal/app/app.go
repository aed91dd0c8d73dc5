package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/osamaqaseem39/stationary-gbs/internal/catalog"
	"github.com/osamaqaseem39/stationary-gbs/internal/config"
	"github.com/osamaqaseem39/stationary-gbs/internal/event"
	handler "github.com/osamaqaseem39/stationary-gbs/internal/handler/http"
	"github.com/osamaqaseem39/stationary-gbs/internal/session"
	"github.com/osamaqaseem39/stationary-gbs/pkg/health"
	"github.com/osamaqaseem39/stationary-gbs/pkg/httpclient"
	pkgkafka "github.com/osamaqaseem39/stationary-gbs/pkg/kafka"
	"github.com/osamaqaseem39/stationary-gbs/pkg/middleware"
	"github.com/osamaqaseem39/stationary-gbs/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Session storage: Redis when enabled, in-memory otherwise. The
	// in-memory port loses sessions on restart, which is acceptable for
	// development only.
	var (
		rdb  *redis.Client
		port session.Port
	)
	if cfg.RedisEnabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		port = session.NewRedisPort(rdb, time.Duration(cfg.SessionTTLHours)*time.Hour)
	} else {
		logger.Warn("redis disabled, using in-memory session storage")
		port = session.NewMemoryPort()
	}

	// Kafka producer for analytics events. Optional: with Kafka disabled
	// the event producer is a no-op.
	var producer *pkgkafka.Producer
	if cfg.KafkaEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Tracing.
	tracingCfg := tracing.DefaultConfig("storefront")
	tracingCfg.Enabled = cfg.TracingEnabled
	tracingCfg.OTLPEndpoint = cfg.OTLPEndpoint
	tracingCfg.SampleRate = cfg.TraceSample
	tracingCfg.Environment = cfg.Environment
	tracingShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Upstream commerce API client with retries and a circuit breaker.
	hc := httpclient.New(httpclient.Config{
		Timeout:         time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second,
		MaxRetries:      cfg.UpstreamMaxRetries,
		MaxConnsPerHost: 100,
	})
	breakerCfg := httpclient.DefaultBreakerConfig("upstream")
	breakerCfg.FailureRatio = cfg.BreakerFailureRatio
	breakerCfg.MinRequests = cfg.BreakerMinRequests
	breakerCfg.Timeout = time.Duration(cfg.BreakerTimeoutSeconds) * time.Second
	breaker := httpclient.NewBreakerClient(hc, breakerCfg, logger)

	catalogClient := catalog.NewClient(cfg.UpstreamBaseURL, breaker, logger)

	// Build the dependency graph.
	carts := session.NewCartStore(port, logger)
	customers := session.NewCustomerStore(port, catalogClient, logger)
	events := event.NewProducer(producer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	if rdb != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	if producer != nil {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
		})
	}
	healthHandler.Register("upstream", upstreamChecker(hc, cfg.UpstreamBaseURL))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment
	corsCfg.AllowedHeaders = append(corsCfg.AllowedHeaders, handler.SessionHeader)

	router := handler.NewRouter(handler.Deps{
		Catalog:    catalogClient,
		Carts:      carts,
		Customers:  customers,
		Events:     events,
		Health:     healthHandler,
		Logger:     logger,
		CORS:       corsCfg,
		PprofCIDRs: cfg.PprofCIDRs,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}

// upstreamChecker probes the upstream for reachability. Any HTTP response
// counts: the readiness question is connectivity, not upstream health.
func upstreamChecker(hc *httpclient.Client, baseURL string) health.Checker {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, baseURL, http.NoBody)
		if err != nil {
			return err
		}
		resp, err := hc.Do(ctx, req)
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		return nil
	}
}
