package reputation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"assay/pkg/platform/sentinel"
)

// =============================================================================
// Reputation Client Test Suite
// =============================================================================
// Justification for unit tests: HTTP status classification and score
// derivation decide how a remote degradation surfaces in assessments, and
// both are cheap to pin against stub servers.

type ClientSuite struct {
	suite.Suite
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

// stubAPIs starts sanctions and news servers with scripted responses and
// returns a client pointed at them.
func (s *ClientSuite) stubAPIs(sanctions, news http.HandlerFunc) *Client {
	sanctionsSrv := httptest.NewServer(sanctions)
	s.T().Cleanup(sanctionsSrv.Close)
	newsSrv := httptest.NewServer(news)
	s.T().Cleanup(newsSrv.Close)

	client, err := NewClient(ClientConfig{
		SanctionsURL: sanctionsSrv.URL,
		NewsURL:      newsSrv.URL,
		Timeout:      2 * time.Second,
	})
	s.Require().NoError(err)
	return client
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func statusHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

func (s *ClientSuite) TestNewClient() {
	s.Run("both URLs are required", func() {
		_, err := NewClient(ClientConfig{SanctionsURL: "http://sanctions.example"})
		s.Error(err)
		_, err = NewClient(ClientConfig{NewsURL: "http://news.example"})
		s.Error(err)
	})
}

func (s *ClientSuite) TestCheckReputation() {
	ctx := context.Background()

	s.Run("clean screen scores full marks", func() {
		client := s.stubAPIs(
			jsonHandler(`{"matches":[],"risk_factors":[]}`),
			jsonHandler(`{"sentiment":"positive"}`),
		)

		report, err := client.CheckReputation(ctx, "Ada Lovelace", "")
		s.Require().NoError(err)
		s.InDelta(100, report.Score, 1e-9)
		s.Empty(report.SanctionsMatches)
		s.Equal("positive", report.NewsSentiment)
		s.False(report.CheckedAt.IsZero())
	})

	s.Run("sanctions match dominates the score", func() {
		client := s.stubAPIs(
			jsonHandler(`{"matches":["OFAC SDN"],"risk_factors":["pep"]}`),
			jsonHandler(`{"sentiment":"neutral"}`),
		)

		report, err := client.CheckReputation(ctx, "Shady Holdings", "")
		s.Require().NoError(err)
		// 100 - 60 (match) - 5 (one risk factor) = 35
		s.InDelta(35, report.Score, 1e-9)
		s.Equal([]string{"OFAC SDN"}, report.SanctionsMatches)
	})

	s.Run("repeated screen entries count once", func() {
		client := s.stubAPIs(
			jsonHandler(`{"matches":["OFAC SDN","OFAC SDN "],"risk_factors":[" pep","pep",""]}`),
			jsonHandler(`{"sentiment":"neutral"}`),
		)

		report, err := client.CheckReputation(ctx, "Shady Holdings", "")
		s.Require().NoError(err)
		// Same screen as above once duplicates collapse: 100 - 60 - 5.
		s.InDelta(35, report.Score, 1e-9)
		s.Equal([]string{"OFAC SDN"}, report.SanctionsMatches)
		s.Equal([]string{"pep"}, report.RiskFactors)
	})

	s.Run("negative sentiment lowers the score", func() {
		client := s.stubAPIs(
			jsonHandler(`{"matches":[],"risk_factors":[]}`),
			jsonHandler(`{"sentiment":"negative"}`),
		)

		report, err := client.CheckReputation(ctx, "Ada Lovelace", "")
		s.Require().NoError(err)
		s.InDelta(80, report.Score, 1e-9)
	})

	s.Run("score never goes below zero", func() {
		client := s.stubAPIs(
			jsonHandler(`{"matches":["a"],"risk_factors":["1","2","3","4","5","6","7","8","9"]}`),
			jsonHandler(`{"sentiment":"negative"}`),
		)

		report, err := client.CheckReputation(ctx, "Worst Case", "")
		s.Require().NoError(err)
		s.GreaterOrEqual(report.Score, 0.0)
	})

	s.Run("empty display name is malformed", func() {
		client := s.stubAPIs(jsonHandler(`{}`), jsonHandler(`{}`))

		_, err := client.CheckReputation(ctx, "", "")
		s.ErrorIs(err, sentinel.ErrMalformed)
	})

	s.Run("server error on either API is unavailable", func() {
		client := s.stubAPIs(
			statusHandler(http.StatusInternalServerError),
			jsonHandler(`{"sentiment":"neutral"}`),
		)

		_, err := client.CheckReputation(ctx, "Ada Lovelace", "")
		s.ErrorIs(err, sentinel.ErrUnavailable)
	})

	s.Run("rate limiting is unavailable", func() {
		client := s.stubAPIs(
			statusHandler(http.StatusTooManyRequests),
			jsonHandler(`{"sentiment":"neutral"}`),
		)

		_, err := client.CheckReputation(ctx, "Ada Lovelace", "")
		s.ErrorIs(err, sentinel.ErrUnavailable)
	})

	s.Run("missing subject is absence", func() {
		client := s.stubAPIs(
			statusHandler(http.StatusNotFound),
			jsonHandler(`{"sentiment":"neutral"}`),
		)

		_, err := client.CheckReputation(ctx, "Unknown Person", "")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejected credentials are denied", func() {
		client := s.stubAPIs(
			statusHandler(http.StatusForbidden),
			jsonHandler(`{"sentiment":"neutral"}`),
		)

		_, err := client.CheckReputation(ctx, "Ada Lovelace", "")
		s.ErrorIs(err, sentinel.ErrDenied)
	})

	s.Run("non-JSON body is malformed", func() {
		client := s.stubAPIs(
			jsonHandler(`<html>oops</html>`),
			jsonHandler(`{"sentiment":"neutral"}`),
		)

		_, err := client.CheckReputation(ctx, "Ada Lovelace", "")
		s.ErrorIs(err, sentinel.ErrMalformed)
	})

	s.Run("unreachable server is unavailable", func() {
		client, err := NewClient(ClientConfig{
			SanctionsURL: "http://127.0.0.1:1",
			NewsURL:      "http://127.0.0.1:1",
			Timeout:      500 * time.Millisecond,
		})
		s.Require().NoError(err)

		_, err = client.CheckReputation(ctx, "Ada Lovelace", "")
		s.ErrorIs(err, sentinel.ErrUnavailable)
	})

	s.Run("entity name flows to the news API", func() {
		var gotEntity string
		client := s.stubAPIs(
			jsonHandler(`{"matches":[],"risk_factors":[]}`),
			func(w http.ResponseWriter, r *http.Request) {
				gotEntity = r.URL.Query().Get("entity")
				jsonHandler(`{"sentiment":"neutral"}`)(w, r)
			},
		)

		_, err := client.CheckReputation(ctx, "Ada Lovelace", "Analytical Engines Ltd")
		s.Require().NoError(err)
		s.Equal("Analytical Engines Ltd", gotEntity)
	})
}

func (s *ClientSuite) TestPing() {
	s.Run("reachable service is healthy", func() {
		client := s.stubAPIs(statusHandler(http.StatusOK), statusHandler(http.StatusOK))
		s.NoError(client.Ping(context.Background()))
	})

	s.Run("server errors are unavailable", func() {
		client := s.stubAPIs(statusHandler(http.StatusServiceUnavailable), statusHandler(http.StatusOK))
		s.ErrorIs(client.Ping(context.Background()), sentinel.ErrUnavailable)
	})
}
