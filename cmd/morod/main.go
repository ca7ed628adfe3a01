package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moroapp/moro/internal/application/usecase"
	"github.com/moroapp/moro/internal/domain/port"
	"github.com/moroapp/moro/internal/domain/service"
	"github.com/moroapp/moro/internal/infrastructure/cache"
	"github.com/moroapp/moro/internal/infrastructure/config"
	infraKafka "github.com/moroapp/moro/internal/infrastructure/kafka"
	"github.com/moroapp/moro/internal/infrastructure/mailer"
	infraPostgres "github.com/moroapp/moro/internal/infrastructure/postgres"
	"github.com/moroapp/moro/internal/infrastructure/provider"
	grpcPresentation "github.com/moroapp/moro/internal/presentation/grpc"
	"github.com/moroapp/moro/internal/presentation/rest"
	"github.com/moroapp/moro/pkg/auth"
	pkgkafka "github.com/moroapp/moro/pkg/kafka"
	"github.com/moroapp/moro/pkg/observability"
	pkgpostgres "github.com/moroapp/moro/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Service: cfg.ServiceName,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
	slog.SetDefault(logger)

	logger.Info("starting moro-financing",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Tracing.
	if cfg.OTLPAddr != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPAddr,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(ctx) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	// Metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(pgCfg.DSN(), "file://migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Infrastructure adapters.
	appRepo := infraPostgres.NewFinancingApplicationRepo(pool)
	accountStore := infraPostgres.NewAccountStore(pool)
	operationStore := infraPostgres.NewOperationStore(pool)
	projectStore := infraPostgres.NewProjectStore(pool)
	savingsStore := infraPostgres.NewSavingsStore(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := infraKafka.NewEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	callbackRegistry := cache.NewRedisCallbackRegistry(redisClient, cfg.Redis.CallbackTTL)

	var gateway port.PaymentGateway
	if cfg.Payment.APIKey != "" {
		gateway = provider.NewMobileMoneyClient(cfg.Payment.APIKey, cfg.Payment.SiteID, cfg.Payment.BaseURL, cfg.Payment.NotifyURL)
	} else {
		logger.Warn("payment gateway API key not set, using stub gateway")
		gateway = provider.NewMobileMoneyStub()
	}

	var mail port.Mailer
	if cfg.Mailer.APIKey != "" {
		mail = mailer.NewBrevoClient(cfg.Mailer.APIKey, cfg.Mailer.BaseURL, cfg.Mailer.SenderName, cfg.Mailer.SenderEmail)
	} else {
		logger.Warn("mailer API key not set, using log mailer")
		mail = mailer.NewLogMailer(logger)
	}

	// Domain services.
	aggregator := service.NewProfileAggregator(accountStore, operationStore, projectStore, savingsStore)
	engine := service.NewScoringEngine()

	// Use cases.
	submitUC := usecase.NewSubmitFinancingApplicationUseCase(appRepo, aggregator, engine, publisher)
	getUC := usecase.NewGetApplicationUseCase(appRepo)
	listUC := usecase.NewListApplicationsUseCase(appRepo)
	reviewUC := usecase.NewReviewApplicationUseCase(appRepo, accountStore, publisher, mail, logger)
	disburseUC := usecase.NewDisburseApplicationUseCase(appRepo, gateway, publisher)
	scoreUC := usecase.NewScoreApplicantUseCase(aggregator, engine)
	callbackUC := usecase.NewHandlePaymentCallbackUseCase(appRepo, gateway, callbackRegistry, publisher, logger)

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{
		Issuer:     cfg.JWT.Issuer,
		Expiration: cfg.JWT.Expiration,
	}
	if cfg.JWT.PublicKeyPath != "" {
		keyData, loadErr := auth.LoadKeyFromFile(cfg.JWT.PublicKeyPath)
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	} else {
		jwtCfg.Secret = cfg.JWT.Secret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	grpcHandler := grpcPresentation.NewFinancingHandler(submitUC, getUC, scoreUC, reviewUC)
	grpcServer := grpcPresentation.NewServer(grpcHandler, logger, jwtSvc)

	// HTTP server.
	mux := http.NewServeMux()
	rest.NewHealthHandler(pool, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	apiMux := http.NewServeMux()
	rest.NewFinancingHandler(submitUC, getUC, listUC, reviewUC, disburseUC, scoreUC, callbackUC, logger).RegisterRoutes(apiMux)

	authMW := rest.AuthMiddleware(jwtSvc, []string{
		"/api/v1/payments/callback",
	})
	limiter := rest.NewRateLimiter(100)
	var apiHandler http.Handler = apiMux
	apiHandler = authMW(apiHandler)
	apiHandler = rest.RateLimitMiddleware(limiter)(apiHandler)
	apiHandler = rest.LoggingMiddleware(logger)(apiHandler)
	mux.Handle("/api/", apiHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("moro-financing stopped")
}
