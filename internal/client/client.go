// Package client is the high-level Jira client used by the test reporter:
// create an issue for a failure, find unresolved issues matching a
// fingerprint, and close issues by applying a workflow transition.
//
// All parameters are run through the defaults resolver, issue types and
// custom fields are resolved against the server schema, and transport
// failures are translated into the faults taxonomy. Close must run on every
// exit path or idle connections are kept open.
package client

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/gi8lino/jiralink/internal/defaults"
	"github.com/gi8lino/jiralink/internal/faults"
	"github.com/gi8lino/jiralink/internal/jira"
	"github.com/gi8lino/jiralink/internal/utils"

	"golang.org/x/sync/singleflight"
)

// Custom fields the Jira instance must define for the reporter.
const (
	// FieldRepository stores the git repo of the failure.
	FieldRepository = "CATS Repository"
	// FieldBranch stores the git branch.
	FieldBranch = "CATS Branch"
	// FieldHash stores the fingerprint used to identify issues.
	FieldHash = "CATS Hash"
	// FieldCommit stores the git commit under test.
	FieldCommit = "CATS Commit"
)

// Client wraps the transport with schema resolution, defaulting, and fault
// translation. One Client holds one transport connection; release it with
// Close when done.
type Client struct {
	api      *jira.Client
	defaults *defaults.Resolver
	logger   *slog.Logger
	url      string // configured URL, used in connectivity errors

	// Field metadata cache: populated at most once per Client lifetime.
	populate singleflight.Group
	mu       sync.RWMutex
	fields   map[string]fieldEntry
}

// New builds a Client. URL and user fall back to configured defaults; the
// password is required (anonymous access is refused).
func New(rawURL, user, password string, defs *defaults.Resolver, logger *slog.Logger) (*Client, error) {
	resolvedURL := defs.WithDefault(defaults.KeyURL, rawURL)
	if strings.TrimSpace(resolvedURL) == "" {
		return nil, fmt.Errorf("no Jira url configured")
	}
	apiURL, err := parseAPIURL(resolvedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Jira url %q: %w", resolvedURL, err)
	}

	resolvedUser := defs.WithDefault(defaults.KeyUser, user)
	resolvedPassword, err := defs.Require(defaults.KeyPassword, password)
	if err != nil {
		return nil, err
	}

	auth := jira.NewBasicAuth(resolvedUser, resolvedPassword)
	logger.Info("connecting to Jira", "url", resolvedURL, "user", resolvedUser)
	logger.Debug("jira auth",
		"header", utils.ObfuscateHeader(utils.GetAuthorizationHeader(auth)),
	)

	return &Client{
		api:      jira.NewClient(apiURL, auth, false),
		defaults: defs,
		logger:   logger,
		url:      resolvedURL,
	}, nil
}

// Close releases the transport. Idempotent.
func (c *Client) Close() {
	c.api.Close()
}

// translate maps a transport failure onto the fault taxonomy.
func (c *Client) translate(err error) error {
	return faults.Translate(err, c.url)
}

// parseAPIURL parses a server URL and ensures it points at the REST API
// root, appending rest/api/2/ when the caller gave a bare server address.
func parseAPIURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(u.Path, "/rest/api/") {
		u = u.ResolveReference(&url.URL{Path: "rest/api/2/"})
	}
	return u, nil
}
