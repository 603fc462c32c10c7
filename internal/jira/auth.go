package jira

import "net/http"

// AuthFunc mutates an outgoing request to add authentication.
type AuthFunc func(*http.Request)

// NewBasicAuth returns an AuthFunc that sets HTTP basic auth.
func NewBasicAuth(user, password string) AuthFunc {
	return func(r *http.Request) {
		r.SetBasicAuth(user, password)
	}
}

// NewBearerAuth returns an AuthFunc that sets a Bearer token.
func NewBearerAuth(token string) AuthFunc {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}
