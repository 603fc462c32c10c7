// Package defaults supplies fallback values for the client's parameters.
// Values come from three layers, strongest first: the caller's argument, the
// user's dot-file (~/.jiralink.yaml, overridable per key via JIRALINK_*
// environment variables), and a small set of built-ins.
package defaults

import (
	"fmt"
	"os"
	"strings"

	"github.com/containeroo/resolver"
	"gopkg.in/yaml.v3"
)

// Key names one defaultable parameter.
type Key string

// The full set of defaultable parameters.
const (
	KeyURL         Key = "url"
	KeyUser        Key = "user"
	KeyPassword    Key = "password"
	KeyProject     Key = "project"
	KeyIssueType   Key = "issue_type"
	KeySummary     Key = "summary"
	KeyDescription Key = "description"
	KeyRepository  Key = "repository"
	KeyBranch      Key = "branch"
	KeyRole        Key = "role"
	KeyTransition  Key = "transition"
)

// envPrefix is prepended to the upper-cased key for environment overrides.
const envPrefix = "JIRALINK_"

// builtin values apply when neither the caller nor the dot-file supplies one.
var builtin = map[Key]string{
	KeyUser:        "cats",
	KeyIssueType:   "Bug",
	KeySummary:     "Automated test failure",
	KeyDescription: "Created by CATS",
	KeyRole:        "assignee",
	KeyTransition:  "Done",
}

// fileValues mirrors the dot-file schema.
type fileValues struct {
	URL         string `yaml:"url"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	Project     string `yaml:"project"`
	IssueType   string `yaml:"issue_type"`
	Summary     string `yaml:"summary"`
	Description string `yaml:"description"`
	Repository  string `yaml:"repository"`
	Branch      string `yaml:"branch"`
	Role        string `yaml:"role"`
	Transition  string `yaml:"transition"`
}

// Resolver answers default lookups. It is built once at startup and passed
// by reference into the client; it is read-only afterwards.
type Resolver struct {
	values map[Key]string
}

// New returns a Resolver over the given configured values. Intended for
// tests and programmatic use; Load is the normal constructor.
func New(values map[Key]string) *Resolver {
	m := make(map[Key]string, len(values))
	for k, v := range values {
		m[k] = v
	}
	return &Resolver{values: m}
}

// Load reads the dot-file at path (missing file is fine) and merges
// environment overrides. Every value is passed through the scheme resolver,
// so entries like "env:JIRA_TOKEN" or "file:/run/secrets/jira" work.
func Load(path string, getEnv func(string) string) (*Resolver, error) {
	var fv fileValues
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// no dot-file; env and built-ins still apply
		case err != nil:
			return nil, fmt.Errorf("read defaults file: %w", err)
		default:
			dec := yaml.NewDecoder(strings.NewReader(string(data)))
			dec.KnownFields(true)
			if err := dec.Decode(&fv); err != nil {
				return nil, fmt.Errorf("invalid defaults file %s: %w", path, err)
			}
		}
	}

	values := map[Key]string{
		KeyURL:         fv.URL,
		KeyUser:        fv.User,
		KeyPassword:    fv.Password,
		KeyProject:     fv.Project,
		KeyIssueType:   fv.IssueType,
		KeySummary:     fv.Summary,
		KeyDescription: fv.Description,
		KeyRepository:  fv.Repository,
		KeyBranch:      fv.Branch,
		KeyRole:        fv.Role,
		KeyTransition:  fv.Transition,
	}

	for key := range values {
		if env := getEnv(envPrefix + strings.ToUpper(string(key))); env != "" {
			values[key] = env
		}
		if values[key] == "" {
			continue
		}
		resolved, err := resolver.ResolveVariable(values[key])
		if err != nil {
			return nil, fmt.Errorf("resolve default %s: %w", key, err)
		}
		values[key] = resolved
	}

	return &Resolver{values: values}, nil
}

// WithDefault returns value if non-blank, then the configured default, then
// the built-in fallback. May return "" if no layer supplies a value.
func (r *Resolver) WithDefault(key Key, value string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	if v := r.values[key]; strings.TrimSpace(v) != "" {
		return v
	}
	return builtin[key]
}

// Require is WithDefault but refuses to come up empty. Used for credentials:
// anonymous access is not supported.
func (r *Resolver) Require(key Key, value string) (string, error) {
	v := r.WithDefault(key, value)
	if strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("no value for %s (anonymous access is not supported)", key)
	}
	return v, nil
}

// WithDefaultBlank returns value if non-blank, else the configured default,
// else "". Built-ins do not apply: blank means the caller wants the optional
// filter omitted.
func (r *Resolver) WithDefaultBlank(key Key, value string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return r.values[key]
}
