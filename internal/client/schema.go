package client

import (
	"context"
	"strings"

	"github.com/gi8lino/jiralink/internal/defaults"
	"github.com/gi8lino/jiralink/internal/faults"
	"github.com/gi8lino/jiralink/internal/jira"
)

// fieldEntry is one slot of the field cache: either a uniquely named field
// or a marker that the name is carried by more than one field.
type fieldEntry struct {
	field     jira.Field
	duplicate bool
}

// ListIssueTypes returns the creatable issue types for a project (defaulted
// when blank).
func (c *Client) ListIssueTypes(ctx context.Context, project string) ([]jira.IssueType, error) {
	p := c.defaults.WithDefault(defaults.KeyProject, project)
	meta, err := c.api.CreateMeta(ctx, []string{p})
	if err != nil {
		return nil, c.translate(err)
	}
	if len(meta.Projects) == 0 {
		return nil, &faults.NotFoundError{Kind: "project", Value: p}
	}
	return meta.Projects[0].IssueTypes, nil
}

// resolveIssueType matches a user-supplied type name (or the configured
// default) against the project's known types, case-insensitively. First
// match wins; duplicate type names are not detected.
func (c *Client) resolveIssueType(ctx context.Context, project, issueType string) (jira.IssueType, error) {
	types, err := c.ListIssueTypes(ctx, project)
	if err != nil {
		return jira.IssueType{}, err
	}
	return c.matchIssueType(issueType, types)
}

// matchIssueType finds the first type whose name equals the given one,
// ignoring case.
func (c *Client) matchIssueType(issueType string, types []jira.IssueType) (jira.IssueType, error) {
	name := c.defaults.WithDefault(defaults.KeyIssueType, issueType)
	for _, t := range types {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return jira.IssueType{}, &faults.NotFoundError{Kind: "issue type", Value: name}
}

// fieldByName resolves a field name against the cached field metadata,
// populating the cache on first use. An unknown name and an ambiguous name
// are distinct faults.
func (c *Client) fieldByName(ctx context.Context, name string) (jira.Field, error) {
	fields := c.cachedFields()
	if fields == nil {
		populated, err := c.populateFields(ctx)
		if err != nil {
			return jira.Field{}, err
		}
		fields = populated
	}

	entry, ok := fields[name]
	switch {
	case !ok:
		return jira.Field{}, &faults.NotFoundError{Kind: "field", Value: name}
	case entry.duplicate:
		return jira.Field{}, &faults.AmbiguousError{Field: name}
	default:
		return entry.field, nil
	}
}

// cachedFields returns the published cache, or nil before first population.
func (c *Client) cachedFields() map[string]fieldEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fields
}

// populateFields fetches the field metadata list and publishes the cache.
// Concurrent first lookups share one fetch; a failed fetch publishes
// nothing, so a later lookup retries. The map is never mutated after
// publication.
func (c *Client) populateFields(ctx context.Context) (map[string]fieldEntry, error) {
	v, err, _ := c.populate.Do("fields", func() (any, error) {
		// a caller that lost the publish race lands here after the first
		// flight finished; hand it the published map instead of refetching
		if m := c.cachedFields(); m != nil {
			return m, nil
		}
		list, err := c.api.ListFields(ctx)
		if err != nil {
			return nil, err
		}
		m := make(map[string]fieldEntry, len(list))
		for _, f := range list {
			if _, seen := m[f.Name]; seen {
				// the second occurrence destroys the entry for good
				m[f.Name] = fieldEntry{duplicate: true}
				continue
			}
			m[f.Name] = fieldEntry{field: f}
		}
		return m, nil
	})
	if err != nil {
		return nil, c.translate(err)
	}

	m := v.(map[string]fieldEntry)
	c.mu.Lock()
	if c.fields == nil {
		c.fields = m
	}
	m = c.fields
	c.mu.Unlock()
	return m, nil
}
