package hardcover

import (
	"errors"
	"fmt"
)

var (
	// ErrNoToken indicates no API token is configured; no request was made.
	ErrNoToken = errors.New("no API token configured")

	// ErrConnectivity tags network-level failures, as opposed to HTTP-level
	// or GraphQL-level rejections.
	ErrConnectivity = errors.New("connection to hardcover failed")

	// ErrMalformedResponse indicates the response body had no recognizable
	// result container.
	ErrMalformedResponse = errors.New("malformed response from hardcover")
)

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hardcover returned HTTP %d: %s", e.Code, e.Body)
}

// QueryError is a GraphQL-level rejection: the connection and HTTP exchange
// succeeded but the service reported errors. Any partial data alongside the
// errors array is discarded, since the service's partial-success behavior is
// not consistent enough to trust.
type QueryError struct {
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("hardcover rejected the query: %s", e.Message)
}

// MutationError is a failed library mutation.
type MutationError struct {
	Message string
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("hardcover rejected the mutation: %s", e.Message)
}
