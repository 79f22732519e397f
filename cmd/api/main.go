package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/wolfman30/onboardai/cmd/mainconfig"
	"github.com/wolfman30/onboardai/internal/api/router"
	appconfig "github.com/wolfman30/onboardai/internal/config"
	"github.com/wolfman30/onboardai/internal/demorequest"
	"github.com/wolfman30/onboardai/internal/events"
	httpmiddleware "github.com/wolfman30/onboardai/internal/http/middleware"
	"github.com/wolfman30/onboardai/internal/notify"
	"github.com/wolfman30/onboardai/internal/observability/metrics"
	"github.com/wolfman30/onboardai/pkg/logging"
)

const eventSource = "onboardai-api"

func main() {
	if err := appconfig.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting onboardai API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)
	cfg.LogSummary(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, ready, closeStore, err := setupStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize store", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	defer closeStore()

	notifier := setupNotifier(ctx, cfg, logger)
	publisher := setupPublisher(ctx, cfg, logger)

	metricsHandler, demoMetrics := setupMetrics()

	svc := demorequest.NewService(store, logger,
		demorequest.WithNotifier(notifier),
		demorequest.WithPublisher(publisher),
	)
	handler := demorequest.NewHandler(svc, logger, demoMetrics)

	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx)

	if cfg.AdminJWTSecret == "" {
		logger.Warn("ADMIN_JWT_SECRET not set; admin listing is disabled")
	}

	r := router.New(&router.Config{
		Logger:             logger,
		DemoRequests:       handler,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSOrigins,
		RateLimiter:        limiter,
		Ready:              ready,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// setupStore selects the demo-request store from STORE_BACKEND. It returns a
// readiness probe and a close func alongside the store.
func setupStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (demorequest.Store, func(context.Context) error, func(), error) {
	switch cfg.StoreBackend {
	case appconfig.StorePostgres:
		pool := connectPostgresPool(ctx, cfg.DatabaseURL, logger)
		if pool == nil {
			return nil, nil, nil, errors.New("postgres store requires a reachable DATABASE_URL")
		}
		return demorequest.NewPostgresStore(pool), pool.Ping, pool.Close, nil
	case appconfig.StoreRedis:
		client := newRedisClient(cfg)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		logger.Info("connected to redis", "addr", cfg.RedisAddr)
		ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return demorequest.NewRedisStore(client, ""), ping, func() { _ = client.Close() }, nil
	case appconfig.StoreMemory, "":
		logger.Warn("using in-memory demo request store; records are lost on restart")
		return demorequest.NewMemoryStore(), nil, func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

func connectPostgresPool(ctx context.Context, databaseURL string, logger *logging.Logger) *pgxpool.Pool {
	if databaseURL == "" {
		return nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Error("failed to create postgres pool", "error", err)
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Error("failed to ping postgres", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("connected to postgres")
	return pool
}

func newRedisClient(cfg *appconfig.Config) *redis.Client {
	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opts)
}

func setupNotifier(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *notify.SalesNotifier {
	var sender notify.EmailSender
	switch cfg.EmailProvider {
	case "sendgrid":
		if sg := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.AppName,
		}, logger); sg != nil {
			sender = sg
		} else {
			logger.Warn("SENDGRID_API_KEY not set; falling back to stub email sender")
		}
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config for SES; falling back to stub email sender", "error", err)
			break
		}
		sender = notify.NewSESSender(mainconfig.NewSESClient(awsCfg, cfg), notify.SESConfig{
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.AppName,
		}, logger)
	}
	if sender == nil {
		sender = notify.NewStubEmailSender(logger)
	}
	var recipients []string
	if cfg.SalesNotifyEmail != "" {
		recipients = []string{cfg.SalesNotifyEmail}
	}
	return notify.NewSalesNotifier(sender, recipients, cfg.AppName, logger)
}

func setupPublisher(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *events.LeadPublisher {
	if cfg.LeadsQueueURL == "" {
		logger.Info("LEADS_QUEUE_URL not set; lead events are logged and dropped")
		return events.NewLeadPublisher(events.NewLogSender(logger), eventSource, logger)
	}
	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config for SQS; lead events are logged and dropped", "error", err)
		return events.NewLeadPublisher(events.NewLogSender(logger), eventSource, logger)
	}
	sender := events.NewSQSSender(mainconfig.NewSQSClient(awsCfg, cfg), cfg.LeadsQueueURL)
	return events.NewLeadPublisher(sender, eventSource, logger)
}

func setupMetrics() (http.Handler, *metrics.DemoRequestMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	demoMetrics := metrics.NewDemoRequestMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), demoMetrics
}
