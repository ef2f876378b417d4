package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Adapters and stores return these
// (optionally wrapped) so the aggregation layer can classify outcomes with
// errors.Is instead of inspecting driver-specific errors.
//
// These represent factual states about a backend call, not validation
// failures:
// - ErrNotFound: the backend was reachable but holds no data for the key
// - ErrUnavailable: retryable condition (connection refused, backend timeout,
//   rate limiting)
// - ErrMalformed: the backend returned data this service cannot interpret
// - ErrDenied: the backend rejected our credentials or the operation
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
	ErrMalformed   = errors.New("malformed data")
	ErrDenied      = errors.New("permission denied")
)
