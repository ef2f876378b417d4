package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"assay/internal/assessment"
	"assay/internal/assessment/adapters"
	assessmenthandler "assay/internal/assessment/handler"
	assessmentmetrics "assay/internal/assessment/metrics"
	"assay/internal/assessment/ports"
	"assay/internal/audit"
	"assay/internal/holdings"
	"assay/internal/jwtauth"
	"assay/internal/platform/config"
	"assay/internal/platform/httpserver"
	"assay/internal/platform/kafka"
	"assay/internal/platform/logger"
	"assay/internal/platform/middleware"
	"assay/internal/platform/postgres"
	platformredis "assay/internal/platform/redis"
	"assay/internal/records"
	"assay/internal/reputation"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "assay: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	producer, err := kafka.NewProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("connect kafka: %w", err)
	}
	if producer != nil {
		defer producer.Close()
	}

	recordStore, err := records.NewFallbackStore(records.NewPostgres(db), log)
	if err != nil {
		return fmt.Errorf("build record store: %w", err)
	}

	holdingsReader, err := holdings.NewReader(cfg.HoldingsDataDir)
	if err != nil {
		return fmt.Errorf("open holdings dataset: %w", err)
	}

	reputationClient, err := reputation.NewClient(reputation.ClientConfig{
		SanctionsURL: cfg.SanctionsAPIURL,
		NewsURL:      cfg.NewsAPIURL,
		Timeout:      cfg.ReputationHTTPTimeout,
	})
	if err != nil {
		return fmt.Errorf("build reputation client: %w", err)
	}

	var reputationSource ports.ReputationSource = reputationClient
	if redisClient != nil {
		cached, err := reputation.NewCachedSource(reputationClient, redisClient.Client, cfg.ReputationCacheTTL, log)
		if err != nil {
			return fmt.Errorf("build reputation cache: %w", err)
		}
		reputationSource = cached
		log.InfoContext(ctx, "reputation cache enabled", "ttl", cfg.ReputationCacheTTL)
	}

	assessCfg := assessment.DefaultConfig()
	assessCfg.DefaultDeadline = cfg.DefaultDeadline
	assessCfg.SourceTimeout = cfg.SourceTimeout

	metrics := assessmentmetrics.New()

	aggregator, err := assessment.NewAggregator(
		[]assessment.SourceClient{
			adapters.NewRecordClient(recordStore, assessCfg.SourceTimeout),
			adapters.NewHoldingsClient(holdingsReader, assessCfg.SourceTimeout),
			adapters.NewReputationClient(reputationSource, assessCfg.SourceTimeout),
		},
		assessment.WithAggregatorLogger(log),
		assessment.WithAggregatorMetrics(metrics),
	)
	if err != nil {
		return fmt.Errorf("build aggregator: %w", err)
	}

	engine, err := assessment.NewEngine(assessCfg)
	if err != nil {
		return fmt.Errorf("build scoring engine: %w", err)
	}

	auditPublisher, auditWorker, err := buildAuditPipeline(producer, log)
	if err != nil {
		return fmt.Errorf("build audit pipeline: %w", err)
	}

	service, err := assessment.NewService(aggregator, engine, assessCfg,
		assessment.WithLogger(log),
		assessment.WithMetrics(metrics),
		assessment.WithAuditPublisher(auditPublisher),
	)
	if err != nil {
		return fmt.Errorf("build assessment service: %w", err)
	}

	if auditWorker != nil {
		go func() {
			if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.ErrorContext(ctx, "audit worker stopped", "error", err)
			}
		}()
	}

	tokens := jwtauth.NewService(cfg.JWTSigningKey, "assay")
	handler := assessmenthandler.New(service, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.AccessLog(log))
	handler.RegisterHealth(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens, log))
		handler.Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// buildAuditPipeline assembles the async audit path. Without a Kafka
// producer, audit events are logged and dropped.
func buildAuditPipeline(producer *kafka.Producer, log *slog.Logger) (ports.AuditPublisher, *audit.Worker, error) {
	if producer == nil {
		return audit.NoopPublisher{}, nil, nil
	}
	sink, err := audit.NewKafkaPublisher(producer)
	if err != nil {
		return nil, nil, err
	}
	async, err := audit.NewAsyncPublisher(256, log)
	if err != nil {
		return nil, nil, err
	}
	worker, err := audit.NewWorker(sink, async, log)
	if err != nil {
		return nil, nil, err
	}
	return async, worker, nil
}
