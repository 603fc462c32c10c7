package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gi8lino/jiralink/internal/app"
	"github.com/gi8lino/jiralink/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connectionArgs builds the flags every command needs, pointing the defaults
// file into an empty temp dir so the user's real dot-file stays out of play.
func connectionArgs(t *testing.T, baseURL string) []string {
	t.Helper()
	return []string{
		"--url=" + baseURL,
		"--user=tester",
		"--password=secret",
		"--defaults-file=" + filepath.Join(t.TempDir(), "absent.yaml"),
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("help is not an error", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		err := app.Run(context.Background(), "v1.0.0", "none", []string{"--help"}, &out)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "jiralink")
	})

	t.Run("missing command", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		err := app.Run(context.Background(), "v1.0.0", "none", connectionArgs(t, "https://jira.example.com"), &out)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing command")
	})

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()

		args := append([]string{"frobnicate"}, connectionArgs(t, "https://jira.example.com")...)
		var out strings.Builder
		err := app.Run(context.Background(), "v1.0.0", "none", args, &out)

		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown command "frobnicate"`)
	})

	t.Run("close requires an issue id", func(t *testing.T) {
		t.Parallel()

		args := append([]string{"close"}, connectionArgs(t, "https://jira.example.com")...)
		var out strings.Builder
		err := app.Run(context.Background(), "v1.0.0", "none", args, &out)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "--issue-id")
	})

	t.Run("list-projects prints key and name", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/rest/api/2/project", r.URL.Path)
			w.Write([]byte(`[{"id":"10001","key":"CATS","name":"CATS Reports"}]`)) // nolint:errcheck
		}))
		defer srv.Close()

		args := append([]string{"list-projects"}, connectionArgs(t, srv.URL)...)
		var out strings.Builder
		err := app.Run(context.Background(), "v1.0.0", "none", args, &out)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "CATS")
		assert.Contains(t, out.String(), "CATS Reports")
	})

	t.Run("create renders the description template", func(t *testing.T) {
		t.Parallel()

		var created map[string]any
		mux := http.NewServeMux()
		mux.HandleFunc("/rest/api/2/issue/createmeta", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"projects":[{"key":"CATS","issuetypes":[{"id":"3","name":"Bug"}]}]}`)) // nolint:errcheck
		})
		mux.HandleFunc("/rest/api/2/field", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
				{"id":"customfield_10100","name":"CATS Repository"},
				{"id":"customfield_10101","name":"CATS Branch"},
				{"id":"customfield_10102","name":"CATS Commit"},
				{"id":"customfield_10103","name":"CATS Hash"}
			]`)) // nolint:errcheck
		})
		mux.HandleFunc("/rest/api/2/issue", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.WriteHeader(http.StatusCreated)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		tmplPath := filepath.Join(t.TempDir(), "description.tmpl")
		testutils.MustWriteFile(t, tmplPath, "failure on {{ .Branch }}")

		args := append([]string{
			"create",
			"--project=CATS",
			"--type=Bug",
			"--summary=NPE in Foo",
			"--repository=http://x/y",
			"--branch=main",
			"--description-template=" + tmplPath,
		}, connectionArgs(t, srv.URL)...)

		var out strings.Builder
		err := app.Run(context.Background(), "v1.0.0", "none", args, &out)

		require.NoError(t, err)
		fields, ok := created["fields"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "failure on main", fields["description"])
	})
}
