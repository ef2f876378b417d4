// Package reputation implements the external risk source: a sanctions
// screen and a news sentiment lookup combined into one report. The two
// remote calls run concurrently; either failing fails the report, because a
// half-screened reputation is worse than an absent one.
package reputation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"assay/internal/assessment/ports"
	"assay/pkg/platform/sentinel"
	strutil "assay/pkg/platform/strings"
)

// ClientConfig configures the remote reputation client.
type ClientConfig struct {
	SanctionsURL string
	NewsURL      string
	Timeout      time.Duration
}

// Client calls the sanctions and news APIs over HTTP.
type Client struct {
	sanctionsURL string
	newsURL      string
	httpClient   *http.Client
}

// NewClient constructs the remote reputation client. The underlying HTTP
// client is shared and safe for concurrent requests.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.SanctionsURL == "" || cfg.NewsURL == "" {
		return nil, fmt.Errorf("sanctions and news URLs are required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		sanctionsURL: cfg.SanctionsURL,
		newsURL:      cfg.NewsURL,
		httpClient:   &http.Client{Timeout: timeout},
	}, nil
}

var _ ports.ReputationSource = (*Client)(nil)

type sanctionsResponse struct {
	Matches     []string `json:"matches"`
	RiskFactors []string `json:"risk_factors"`
}

type newsResponse struct {
	Sentiment string `json:"sentiment"`
}

// CheckReputation screens the display name against both APIs concurrently
// and folds the responses into a scored report.
func (c *Client) CheckReputation(ctx context.Context, displayName, entityName string) (*ports.ReputationReport, error) {
	if displayName == "" {
		return nil, fmt.Errorf("display name is required: %w", sentinel.ErrMalformed)
	}

	var sanctions sanctionsResponse
	var news newsResponse

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.get(ctx, c.sanctionsURL, url.Values{"name": {displayName}}, &sanctions)
	})
	g.Go(func() error {
		entity := entityName
		if entity == "" {
			entity = displayName
		}
		return c.get(ctx, c.newsURL, url.Values{"entity": {entity}}, &news)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The screening API repeats entries across list revisions; duplicates
	// must not compound the score penalty.
	sanctions.Matches = strutil.DedupeAndTrim(sanctions.Matches)
	sanctions.RiskFactors = strutil.DedupeAndTrim(sanctions.RiskFactors)

	return &ports.ReputationReport{
		Score:            deriveScore(sanctions, news),
		RiskFactors:      sanctions.RiskFactors,
		SanctionsMatches: sanctions.Matches,
		NewsSentiment:    news.Sentiment,
		CheckedAt:        time.Now().UTC(),
	}, nil
}

// Ping performs a lightweight probe against the sanctions endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.sanctionsURL, nil)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("probe reputation service: %w", sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("reputation service returned %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}
	return nil
}

func (c *Client) get(ctx context.Context, base string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport failures and client-side timeouts are retryable.
		return fmt.Errorf("call %s: %v: %w", base, err, sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	if err := classifyStatus(base, resp.StatusCode); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %v: %w", base, err, sentinel.ErrMalformed)
	}
	return nil
}

func classifyStatus(base string, status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return fmt.Errorf("%s has no data: %w", base, sentinel.ErrNotFound)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%s rejected credentials: %w", base, sentinel.ErrDenied)
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return fmt.Errorf("%s returned %d: %w", base, status, sentinel.ErrUnavailable)
	default:
		return fmt.Errorf("%s returned unexpected status %d: %w", base, status, sentinel.ErrMalformed)
	}
}

// deriveScore folds screen results into the 0-100 reputation sub-score.
// Sanctions matches dominate; sentiment and risk factors adjust at the
// margin.
func deriveScore(sanctions sanctionsResponse, news newsResponse) float64 {
	score := 100.0

	if len(sanctions.Matches) > 0 {
		score -= 60
	}
	score -= float64(len(sanctions.RiskFactors)) * 5
	if score < 0 {
		score = 0
	}

	switch news.Sentiment {
	case "negative":
		score -= 20
	case "mixed":
		score -= 10
	}
	if score < 0 {
		score = 0
	}
	return score
}
