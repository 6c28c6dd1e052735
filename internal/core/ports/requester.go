package ports

import "context"

// Requester sends one JSON request to the backend.
//
// endpoint is relative to the base URL and may carry a query string. body is
// encoded as JSON when non-nil; out receives the decoded 2xx response when
// non-nil. Failures are *domain.APIError values.
type Requester interface {
	Request(ctx context.Context, method, endpoint string, body, out any) error
	// SetAuthToken replaces the bearer token; an empty token clears it.
	SetAuthToken(token string)
	AuthToken() string
}
