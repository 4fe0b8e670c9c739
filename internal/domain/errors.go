package domain

import "errors"

var (
	// ErrInvalidRequest marks request validation failures: out-of-range
	// coordinates, profile values outside their domain, unknown blood types.
	// Rejected before any classifier call.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrClassifierUnavailable is the typed failure a classification port
	// returns when its backing model cannot serve the call. The orchestrator
	// degrades the affected stage instead of failing the request.
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// ErrEmptyZoneIndex indicates the resolver was constructed without any
	// zones. This is a configuration error and fatal at startup.
	ErrEmptyZoneIndex = errors.New("zone index is empty")
)
