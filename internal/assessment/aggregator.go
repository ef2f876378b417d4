package assessment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"assay/internal/assessment/metrics"
)

// SourceClient wraps one backend behind a uniform capability: fetch data for
// a request and report liveness. Implementations classify their own failures
// into SourceResult variants and enforce a per-call timeout no greater than
// the request deadline. Must be safe for concurrent use across requests.
type SourceClient interface {
	Key() SourceKey
	Fetch(ctx context.Context, req Request) SourceResult
	Probe(ctx context.Context) error
}

// Aggregator fans a request out to the registered source clients, bounds the
// fan-out by the context deadline, and always returns one entry per requested
// key. Failure is encoded in the entries; Gather itself never fails.
type Aggregator struct {
	clients map[SourceKey]SourceClient
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

func WithAggregatorLogger(logger *slog.Logger) AggregatorOption {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

func WithAggregatorMetrics(m *metrics.Metrics) AggregatorOption {
	return func(a *Aggregator) {
		a.metrics = m
	}
}

// NewAggregator registers the source clients, rejecting duplicates.
func NewAggregator(clients []SourceClient, opts ...AggregatorOption) (*Aggregator, error) {
	registered := make(map[SourceKey]SourceClient, len(clients))
	for _, client := range clients {
		if client == nil {
			return nil, fmt.Errorf("source client is required")
		}
		if _, exists := registered[client.Key()]; exists {
			return nil, fmt.Errorf("duplicate source client for %s", client.Key())
		}
		registered[client.Key()] = client
	}

	a := &Aggregator{clients: registered}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Gather issues one fetch per requested key concurrently and joins the
// outcomes into a frozen bundle. Fetches still outstanding when the context
// deadline elapses are abandoned and recorded as transient timeouts.
func (a *Aggregator) Gather(ctx context.Context, req Request, keys []SourceKey) Bundle {
	return a.collect(ctx, keys, func(ctx context.Context, client SourceClient) SourceResult {
		return client.Fetch(ctx, req)
	})
}

// Probe checks liveness of the requested sources with the same bounding and
// classification as Gather, without fetching any data.
func (a *Aggregator) Probe(ctx context.Context, keys []SourceKey) Bundle {
	return a.collect(ctx, keys, func(ctx context.Context, client SourceClient) SourceResult {
		if err := client.Probe(ctx); err != nil {
			return Classify(err)
		}
		return Succeed(nil)
	})
}

func (a *Aggregator) collect(ctx context.Context, keys []SourceKey, call func(context.Context, SourceClient) SourceResult) Bundle {
	builder := newBundleBuilder(len(keys))
	g, ctx := errgroup.WithContext(ctx)

	// A key listed twice owns a single slot; the second mention must not
	// race the first goroutine into the builder.
	scheduled := make(map[SourceKey]bool, len(keys))

	for _, key := range keys {
		if scheduled[key] {
			continue
		}
		scheduled[key] = true

		client, ok := a.clients[key]
		if !ok {
			builder.set(key, Fatal(fmt.Sprintf("no client registered for source %s", key)))
			continue
		}

		g.Go(func() error {
			start := time.Now()
			result := a.bounded(ctx, client, call)
			builder.set(key, result)

			elapsed := time.Since(start)
			a.metrics.ObserveSourceLatency(key.String(), string(result.Status), elapsed)
			if !result.OK() && a.logger != nil {
				a.logger.DebugContext(ctx, "source call degraded",
					"source", key,
					"status", result.Status,
					"message", result.Message,
					"duration_ms", elapsed.Milliseconds(),
				)
			}
			return nil
		})
	}

	// Grouped goroutines never return errors; outcomes travel as values.
	_ = g.Wait()
	return builder.freeze()
}

// bounded runs one source call in its own goroutine so a client that ignores
// context cancellation cannot hold the fan-out past the deadline. Panics in
// clients are converted to fatal results at this boundary.
func (a *Aggregator) bounded(ctx context.Context, client SourceClient, call func(context.Context, SourceClient) SourceResult) SourceResult {
	done := make(chan SourceResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- Fatal(fmt.Sprintf("source %s panicked: %v", client.Key(), r))
			}
		}()
		done <- call(ctx, client)
	}()

	select {
	case result := <-done:
		return result
	case <-ctx.Done():
		return Transient("deadline exceeded")
	}
}
