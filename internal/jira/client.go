package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
)

const bodySnippetLimit = 2048

// Client handles communication with the Jira REST API.
type Client struct {
	APIURL *url.URL     // Base API URL (must include /rest/api/X)
	Client *http.Client // Underlying HTTP client
	auth   AuthFunc

	closeOnce sync.Once
}

// NewClient returns a Jira client with the given base URL and authentication function.
func NewClient(apiURL *url.URL, auth AuthFunc, skipVerify bool) *Client {
	return &Client{
		APIURL: apiURL,
		Client: newHTTPClient(skipVerify),
		auth:   auth,
	}
}

// Close releases the pooled connections held by the underlying transport.
// It is safe to call more than once; only the first call has an effect.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.Client.CloseIdleConnections()
	})
}

// ListProjects returns all projects visible to the authenticated user.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.doRequest(ctx, http.MethodGet, "project", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMeta fetches creatable-issue metadata for the given project keys.
func (c *Client) CreateMeta(ctx context.Context, projectKeys []string) (CreateMetaResult, error) {
	params := url.Values{}
	for _, key := range projectKeys {
		params.Add("projectKeys", key)
	}
	var out CreateMetaResult
	if err := c.doRequest(ctx, http.MethodGet, "issue/createmeta?"+params.Encode(), nil, &out); err != nil {
		return CreateMetaResult{}, err
	}
	return out, nil
}

// ListFields fetches the full field metadata list (built-in and custom).
func (c *Client) ListFields(ctx context.Context) ([]Field, error) {
	var out []Field
	if err := c.doRequest(ctx, http.MethodGet, "field", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateIssue submits a structured issue payload.
func (c *Client) CreateIssue(ctx context.Context, input IssueInput) error {
	return c.doRequest(ctx, http.MethodPost, "issue", input, nil)
}

// SearchJQL requests one page of a JQL search, starting at the given offset.
// Extra query parameters (e.g. "expand") may be passed via queryParams.
func (c *Client) SearchJQL(ctx context.Context, jql string, maxResults, startAt int, queryParams map[string]string) (SearchResult, error) {
	params := url.Values{}
	params.Set("jql", jql)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("startAt", strconv.Itoa(startAt))
	for k, v := range queryParams {
		if k != "" && v != "" {
			params.Set(k, v)
		}
	}

	var out SearchResult
	if err := c.doRequest(ctx, http.MethodGet, "search?"+params.Encode(), nil, &out); err != nil {
		return SearchResult{}, err
	}
	return out, nil
}

// ListTransitions fetches the transitions currently available for an issue.
func (c *Client) ListTransitions(ctx context.Context, issue Issue) ([]Transition, error) {
	var out TransitionsResult
	if err := c.doRequest(ctx, http.MethodGet, "issue/"+url.PathEscape(issue.Key)+"/transitions", nil, &out); err != nil {
		return nil, err
	}
	return out.Transitions, nil
}

// ApplyTransition applies a transition by id to an issue.
func (c *Client) ApplyTransition(ctx context.Context, issue Issue, transitionID string) error {
	input := TransitionInput{Transition: TransitionRef{ID: transitionID}}
	return c.doRequest(ctx, http.MethodPost, "issue/"+url.PathEscape(issue.Key)+"/transitions", input, nil)
}

// doRequest performs an authenticated HTTP request and decodes the JSON
// response into out (if out is non-nil). An error status from the server is
// returned as *APIError; anything that keeps the request from completing is
// returned as-is.
func (c *Client) doRequest(ctx context.Context, method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	// Parse path into relative URL with optional query
	relURL, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path: %w", err)
	}
	fullURL := c.APIURL.ResolveReference(relURL).String()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	c.auth(req) // apply authentication

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Body: string(trim(respBody, bodySnippetLimit))}
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// trim caps b at n bytes for error messages.
func trim(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
