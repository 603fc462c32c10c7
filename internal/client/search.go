package client

import (
	"context"

	"github.com/gi8lino/jiralink/internal/faults"
	"github.com/gi8lino/jiralink/internal/jira"
)

const (
	// issuesRequestSize is the page size per search request. Requesting the
	// whole ceiling in one call risks a server-side timeout; small bounded
	// pages traded for more round-trips avoid that deterministically.
	issuesRequestSize = 50

	// totalIssuesLimit is the hard cap on accumulated results. Crossing it
	// is a fault, not a truncation.
	totalIssuesLimit = 10000
)

// collectIssues pages through a JQL search sequentially, accumulating
// results in server order. A page shorter than the requested size signals
// the end; crossing the ceiling aborts with TooManyResultsError.
func (c *Client) collectIssues(ctx context.Context, jql string) ([]jira.Issue, error) {
	var issues []jira.Issue
	for {
		page, err := c.api.SearchJQL(ctx, jql, issuesRequestSize, len(issues), nil)
		if err != nil {
			return nil, c.translate(err)
		}
		issues = append(issues, page.Issues...)

		if len(page.Issues) < issuesRequestSize {
			return issues, nil
		}
		if len(issues) > totalIssuesLimit {
			return nil, &faults.TooManyResultsError{Count: len(issues)}
		}
		c.logger.Debug("accumulating search results", "count", len(issues))
	}
}
