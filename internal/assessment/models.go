// Package assessment implements the aggregation core: fanning one request
// out to independently-failing data sources, folding the outcomes into an
// immutable bundle, and scoring the bundle into a composite assessment.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"assay/pkg/domain"
	"assay/pkg/platform/sentinel"
)

// SourceKey identifies one backend supplying part of an assessment.
type SourceKey string

const (
	SourceRecordStore SourceKey = "record_store"
	SourceDataset     SourceKey = "dataset"
	SourceReputation  SourceKey = "reputation"
)

func (k SourceKey) String() string {
	return string(k)
}

// SourceStatus is the outcome kind of one source fetch.
type SourceStatus string

const (
	StatusSuccess        SourceStatus = "success"
	StatusNotFound       SourceStatus = "not_found"
	StatusTransientError SourceStatus = "transient_error"
	StatusFatalError     SourceStatus = "fatal_error"
)

// SourceResult is the tagged outcome of one source fetch. Exactly one
// variant is populated: Payload only on Success, Message only on errors.
// Failures travel as values; nothing throws across the aggregation boundary.
type SourceResult struct {
	Status  SourceStatus
	Payload any
	Message string
}

// Succeed wraps a typed payload in a success result.
func Succeed(payload any) SourceResult {
	return SourceResult{Status: StatusSuccess, Payload: payload}
}

// NoData signals the backend was reachable but holds nothing for the key.
// Absence, not failure.
func NoData() SourceResult {
	return SourceResult{Status: StatusNotFound}
}

// Transient signals a retryable failure: timeout, connectivity, rate limit.
func Transient(message string) SourceResult {
	return SourceResult{Status: StatusTransientError, Message: message}
}

// Fatal signals a non-retryable failure: malformed data, denied access.
func Fatal(message string) SourceResult {
	return SourceResult{Status: StatusFatalError, Message: message}
}

// Classify converts an adapter error into a SourceResult using the sentinel
// taxonomy. Unclassified errors are fatal: an unknown failure mode must not
// look retryable.
func Classify(err error) SourceResult {
	switch {
	case err == nil:
		return Succeed(nil)
	case errors.Is(err, sentinel.ErrNotFound):
		return NoData()
	case errors.Is(err, sentinel.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return Transient(err.Error())
	default:
		return Fatal(err.Error())
	}
}

// OK reports whether the result carries a payload.
func (r SourceResult) OK() bool {
	return r.Status == StatusSuccess
}

// Request carries one in-flight assessment request. It is created at request
// entry, passed read-only to every source client, and discarded afterwards.
type Request struct {
	CustomerID    domain.CustomerID
	Period        domain.Period
	CorrelationID string
	Deadline      time.Time

	// DisplayName and EntityName feed the reputation screen when the
	// caller knows them; the reputation adapter falls back to the
	// customer ID otherwise.
	DisplayName string
	EntityName  string
}

// Bundle maps each requested source to its outcome. It is built once during
// fan-out and immutable afterwards; partiality lives in the entries, never in
// the bundle shape.
type Bundle struct {
	results map[SourceKey]SourceResult
}

// Result returns the outcome recorded for a key.
func (b Bundle) Result(key SourceKey) (SourceResult, bool) {
	r, ok := b.results[key]
	return r, ok
}

// Payload returns the success payload for a key, or nil.
func (b Bundle) Payload(key SourceKey) any {
	if r, ok := b.results[key]; ok && r.OK() {
		return r.Payload
	}
	return nil
}

// Statuses returns the per-source outcome kinds.
func (b Bundle) Statuses() map[SourceKey]SourceStatus {
	statuses := make(map[SourceKey]SourceStatus, len(b.results))
	for key, r := range b.results {
		statuses[key] = r.Status
	}
	return statuses
}

// Len returns the number of recorded sources.
func (b Bundle) Len() int {
	return len(b.results)
}

// bundleBuilder collects results during fan-out. Each fetch goroutine owns
// exactly one slot; the mutex serializes map access, and overwriting a slot
// is a programming error surfaced immediately.
type bundleBuilder struct {
	mu      sync.Mutex
	results map[SourceKey]SourceResult
}

func newBundleBuilder(size int) *bundleBuilder {
	return &bundleBuilder{results: make(map[SourceKey]SourceResult, size)}
}

func (b *bundleBuilder) set(key SourceKey, result SourceResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.results[key]; exists {
		panic(fmt.Sprintf("assessment: duplicate bundle entry for source %s", key))
	}
	b.results[key] = result
}

func (b *bundleBuilder) freeze() Bundle {
	return Bundle{results: b.results}
}

// Completeness classifies the overall outcome of an assessment.
type Completeness string

const (
	CompletenessComplete Completeness = "complete"
	CompletenessPartial  Completeness = "partial"
	CompletenessFailed   Completeness = "failed"
)

// Tier is the recommendation tier derived from the composite score.
type Tier string

const (
	TierPremium           Tier = "premium"
	TierStandard          Tier = "standard"
	TierEnhancedDiligence Tier = "enhanced_diligence"
)

// CompositeAssessment is the final shaped result of one assessment request.
// Score is non-nil iff completeness is complete or partial and every
// scoring-required source succeeded; Tier is derived solely from Score.
type CompositeAssessment struct {
	CorrelationID   string
	CustomerID      domain.CustomerID
	Period          domain.Period
	SourceStatus    map[SourceKey]SourceStatus
	Score           *float64
	Tier            Tier
	Recommendations []string
	Completeness    Completeness
	AssessedAt      time.Time
}
