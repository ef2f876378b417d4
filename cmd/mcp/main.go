package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"assay/internal/assessment"
	"assay/internal/assessment/adapters"
	"assay/internal/assessment/ports"
	"assay/internal/holdings"
	"assay/internal/platform/config"
	"assay/internal/platform/logger"
	"assay/internal/platform/postgres"
	platformredis "assay/internal/platform/redis"
	"assay/internal/records"
	"assay/internal/reputation"
	mcptransport "assay/internal/transport/mcp"
)

// main serves the assessment tool set over stdio for MCP clients. Log output
// goes to stderr so stdout stays a clean protocol stream.
func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "assay-mcp: %v\n", err)
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
	}

	assessCfg := assessment.DefaultConfig()
	assessCfg.DefaultDeadline = cfg.DefaultDeadline
	assessCfg.SourceTimeout = cfg.SourceTimeout

	aggregator, err := assessment.NewAggregator(
		[]assessment.SourceClient{
			adapters.NewRecordClient(recordStore, assessCfg.SourceTimeout),
			adapters.NewHoldingsClient(holdingsReader, assessCfg.SourceTimeout),
			adapters.NewReputationClient(reputationSource, assessCfg.SourceTimeout),
		},
		assessment.WithAggregatorLogger(log),
	)
	if err != nil {
		return fmt.Errorf("build aggregator: %w", err)
	}

	engine, err := assessment.NewEngine(assessCfg)
	if err != nil {
		return fmt.Errorf("build scoring engine: %w", err)
	}

	service, err := assessment.NewService(aggregator, engine, assessCfg,
		assessment.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("build assessment service: %w", err)
	}

	log.InfoContext(ctx, "serving assessment tools over stdio")
	return mcptransport.Run(ctx, mcptransport.Deps{
		Service:    service,
		Records:    recordStore,
		Holdings:   holdingsReader,
		Reputation: reputationSource,
	})
}
