// Package faults defines the error taxonomy surfaced by the high-level
// client and the translation of raw transport failures into it. Nothing
// here retries; translation is purely diagnostic.
package faults

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gi8lino/jiralink/internal/jira"
)

// AuthError reports a rejected login (HTTP 401).
type AuthError struct {
	Err error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return "authorisation error - check user and password"
}

// Unwrap returns the underlying transport error.
func (e *AuthError) Unwrap() error { return e.Err }

// RemoteError reports any other error status from the server.
type RemoteError struct {
	Status int
	Err    error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("the REST client received an HTTP %d error - check Jira", e.Status)
}

// Unwrap returns the underlying transport error.
func (e *RemoteError) Unwrap() error { return e.Err }

// ConnectivityError reports that the configured host could not be resolved.
type ConnectivityError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("host at %s is unknown - check the Jira url", e.URL)
}

// Unwrap returns the underlying transport error.
func (e *ConnectivityError) Unwrap() error { return e.Err }

// NotFoundError reports that a named schema element or issue has no match.
// Kind is one of "project", "issue type", "field", "transition", "issue".
type NotFoundError struct {
	Kind  string
	Value string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	switch e.Kind {
	case "project":
		return fmt.Sprintf("could not find project %s", e.Value)
	case "field":
		return fmt.Sprintf("unknown field name %q (was this field added to Jira?)", e.Value)
	case "issue":
		return fmt.Sprintf("no issue matching ID %s", e.Value)
	default:
		return fmt.Sprintf("no %s matching %s", e.Kind, e.Value)
	}
}

// AmbiguousError reports a field name carried by more than one server field.
type AmbiguousError struct {
	Field string
}

// Error implements the error interface.
func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("field name %q is not unique", e.Field)
}

// TooManyResultsError reports that a search crossed the accumulation ceiling.
type TooManyResultsError struct {
	Count int
}

// Error implements the error interface.
func (e *TooManyResultsError) Error() string {
	return fmt.Sprintf("too many known issues: over %d", e.Count)
}

// Translate maps the outcome of a remote call onto the taxonomy:
//
//   - server answered 401                -> AuthError
//   - server answered any other status   -> RemoteError with the code
//   - the configured host does not exist -> ConnectivityError naming the URL
//   - anything else                      -> returned unchanged, preserving
//     the original diagnostics
func Translate(err error, configuredURL string) error {
	if err == nil {
		return nil
	}
	var apiErr *jira.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized {
			return &AuthError{Err: err}
		}
		return &RemoteError{Status: apiErr.Status, Err: err}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ConnectivityError{URL: configuredURL, Err: err}
	}
	return err
}
