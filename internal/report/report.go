// Package report carries the caller-supplied description of a test failure
// and the fingerprint used to detect duplicate issues across runs.
package report

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// RepoDetails identifies the source code location under test. Values are
// read-only once handed to the client.
type RepoDetails struct {
	URL    string
	Branch string
	Commit string
}

// UniformTestResult is a normalized test failure: a one-line summary and a
// longer description. Values are read-only once handed to the client.
type UniformTestResult struct {
	Summary     string
	Description string
}

// Hash returns the fingerprint identifying this failure within a repository
// and branch: FNV-1a 64 over the serialized identity, as a hex string. The
// commit is deliberately excluded so the same failure on later commits maps
// to the same issue.
func (r UniformTestResult) Hash(repo RepoDetails) string {
	identity := struct {
		Summary string `json:"summary"`
		URL     string `json:"url"`
		Branch  string `json:"branch"`
	}{r.Summary, repo.URL, repo.Branch}

	data, _ := json.Marshal(identity) // struct of strings cannot fail
	h := fnv.New64a()
	h.Write(data) // nolint:errcheck
	return fmt.Sprintf("%x", h.Sum64())
}

// RenderDescription executes a user-supplied description template with the
// result and repository in scope. Sprig functions are available.
func (r UniformTestResult) RenderDescription(tmplText string, repo RepoDetails) (string, error) {
	tmpl, err := template.New("description").
		Funcs(sprig.TxtFuncMap()).
		Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("parse description template: %w", err)
	}

	data := map[string]any{
		"Summary":     r.Summary,
		"Description": r.Description,
		"Repository":  repo.URL,
		"Branch":      repo.Branch,
		"Commit":      repo.Commit,
		"Hash":        r.Hash(repo),
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render description template: %w", err)
	}
	return b.String(), nil
}
