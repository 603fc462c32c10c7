package jira

import "fmt"

// APIError is a protocol-level failure: the server answered with an error
// status. Transport failures (the request never reached the server) are
// returned as the underlying error instead.
type APIError struct {
	Status int    // HTTP status code
	Body   string // response body snippet, for diagnostics
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("jira: HTTP %d", e.Status)
	}
	return fmt.Sprintf("jira: HTTP %d: %s", e.Status, e.Body)
}
