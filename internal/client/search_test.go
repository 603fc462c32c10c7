package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/gi8lino/jiralink/internal/faults"
	"github.com/gi8lino/jiralink/internal/jira"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSearchServer serves pages sliced out of total synthetic issues,
// honoring startAt/maxResults, and counts requests.
func newSearchServer(t *testing.T, total int, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/2/search", r.URL.Path)
		requests.Add(1)

		startAt, _ := strconv.Atoi(r.URL.Query().Get("startAt"))
		maxResults, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))

		issues := make([]jira.Issue, 0, maxResults)
		for i := startAt; i < min(startAt+maxResults, total); i++ {
			issues = append(issues, jira.Issue{
				ID:  strconv.Itoa(i + 1),
				Key: fmt.Sprintf("CATS-%d", i+1),
			})
		}
		json.NewEncoder(w).Encode(jira.SearchResult{ // nolint:errcheck
			StartAt:    startAt,
			MaxResults: maxResults,
			Total:      total,
			Issues:     issues,
		})
	}))
}

func TestCollectIssues(t *testing.T) {
	t.Parallel()

	t.Run("125 issues come back in 3 pages in server order", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		srv := newSearchServer(t, 125, &requests)
		defer srv.Close()

		c := newTestClient(t, srv.URL, nil)
		issues, err := c.collectIssues(context.Background(), `project="CATS"`)

		require.NoError(t, err)
		assert.Equal(t, int32(3), requests.Load())
		require.Len(t, issues, 125)
		for i, issue := range issues {
			assert.Equal(t, strconv.Itoa(i+1), issue.ID)
		}
	})

	t.Run("an exact multiple of the page size needs one trailing empty page", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		srv := newSearchServer(t, 100, &requests)
		defer srv.Close()

		c := newTestClient(t, srv.URL, nil)
		issues, err := c.collectIssues(context.Background(), `project="CATS"`)

		require.NoError(t, err)
		assert.Equal(t, int32(3), requests.Load())
		assert.Len(t, issues, 100)
	})

	t.Run("empty result set needs exactly one request", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		srv := newSearchServer(t, 0, &requests)
		defer srv.Close()

		c := newTestClient(t, srv.URL, nil)
		issues, err := c.collectIssues(context.Background(), `project="CATS"`)

		require.NoError(t, err)
		assert.Equal(t, int32(1), requests.Load())
		assert.Empty(t, issues)
	})

	t.Run("endless full pages hit the ceiling instead of looping", func(t *testing.T) {
		t.Parallel()

		// pathological backend: every page is full, regardless of offset
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startAt, _ := strconv.Atoi(r.URL.Query().Get("startAt"))
			issues := make([]jira.Issue, issuesRequestSize)
			for i := range issues {
				issues[i] = jira.Issue{ID: strconv.Itoa(startAt + i + 1)}
			}
			json.NewEncoder(w).Encode(jira.SearchResult{Issues: issues}) // nolint:errcheck
		}))
		defer srv.Close()

		c := newTestClient(t, srv.URL, nil)
		issues, err := c.collectIssues(context.Background(), `project="CATS"`)

		var tooMany *faults.TooManyResultsError
		require.ErrorAs(t, err, &tooMany)
		assert.Greater(t, tooMany.Count, totalIssuesLimit)
		assert.Nil(t, issues) // no partial results on a ceiling breach
	})

	t.Run("a failing page aborts the search", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := newTestClient(t, srv.URL, nil)
		_, err := c.collectIssues(context.Background(), `project="CATS"`)

		var remoteErr *faults.RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, http.StatusServiceUnavailable, remoteErr.Status)
	})
}
