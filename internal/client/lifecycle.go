package client

import (
	"context"
	"strings"

	"github.com/gi8lino/jiralink/internal/defaults"
	"github.com/gi8lino/jiralink/internal/faults"
	"github.com/gi8lino/jiralink/internal/jira"
	"github.com/gi8lino/jiralink/internal/report"
)

// ListProjects returns all projects visible to the configured user.
func (c *Client) ListProjects(ctx context.Context) ([]jira.Project, error) {
	projects, err := c.api.ListProjects(ctx)
	if err != nil {
		return nil, c.translate(err)
	}
	return projects, nil
}

// CreateIssue files one issue for a test failure. Project and type are
// defaulted and resolved against the server schema; the repository, branch,
// commit, and fingerprint go into the reporter's custom fields.
func (c *Client) CreateIssue(ctx context.Context, project, issueType string, repo report.RepoDetails, result report.UniformTestResult) error {
	p := c.defaults.WithDefault(defaults.KeyProject, project)
	typ, err := c.resolveIssueType(ctx, p, issueType)
	if err != nil {
		return err
	}

	fields := map[string]any{
		"project":     map[string]any{"key": p},
		"issuetype":   map[string]any{"id": typ.ID},
		"summary":     c.defaults.WithDefault(defaults.KeySummary, result.Summary),
		"description": c.defaults.WithDefault(defaults.KeyDescription, result.Description),
	}

	repoField, err := c.fieldByName(ctx, FieldRepository)
	if err != nil {
		return err
	}
	fields[repoField.ID] = c.defaults.WithDefaultBlank(defaults.KeyRepository, repo.URL)

	branchField, err := c.fieldByName(ctx, FieldBranch)
	if err != nil {
		return err
	}
	fields[branchField.ID] = c.defaults.WithDefaultBlank(defaults.KeyBranch, repo.Branch)

	commitField, err := c.fieldByName(ctx, FieldCommit)
	if err != nil {
		return err
	}
	fields[commitField.ID] = c.defaults.WithDefaultBlank(defaults.KeyBranch, repo.Commit)

	hashField, err := c.fieldByName(ctx, FieldHash)
	if err != nil {
		return err
	}
	fields[hashField.ID] = result.Hash(repo)

	if err := c.api.CreateIssue(ctx, jira.IssueInput{Fields: fields}); err != nil {
		return c.translate(err)
	}
	c.logger.Debug("created issue", "project", p, "type", typ.Name)
	return nil
}

// ListUnresolvedIssues returns every unresolved issue of the given project
// and type owned by the session user, optionally narrowed to a repository
// and branch, in server order.
func (c *Client) ListUnresolvedIssues(ctx context.Context, project, issueType string, repo report.RepoDetails) ([]jira.Issue, error) {
	p := c.defaults.WithDefault(defaults.KeyProject, project)
	typ, err := c.resolveIssueType(ctx, p, issueType)
	if err != nil {
		return nil, err
	}

	jql := buildJQL(
		p,
		c.defaults.WithDefault(defaults.KeyRole, ""),
		typ.Name,
		c.defaults.WithDefaultBlank(defaults.KeyRepository, repo.URL),
		c.defaults.WithDefaultBlank(defaults.KeyBranch, repo.Branch),
	)
	c.logger.Debug("searching unresolved issues", "jql", jql)
	return c.collectIssues(ctx, jql)
}

// CloseIssue applies the named transition (defaulted when blank) to an
// issue, matching against the transitions currently available for it.
func (c *Client) CloseIssue(ctx context.Context, issue jira.Issue, transitionName string) error {
	transitions, err := c.api.ListTransitions(ctx, issue)
	if err != nil {
		return c.translate(err)
	}

	name := c.defaults.WithDefault(defaults.KeyTransition, transitionName)
	var match *jira.Transition
	for i := range transitions {
		if strings.EqualFold(transitions[i].Name, name) {
			match = &transitions[i]
			break
		}
	}
	if match == nil {
		return &faults.NotFoundError{Kind: "transition", Value: name}
	}

	if err := c.api.ApplyTransition(ctx, issue, match.ID); err != nil {
		return c.translate(err)
	}
	c.logger.Debug("applied transition", "issue", issue.Key, "transition", match.Name)
	return nil
}

// CloseIssueByID finds the unresolved issue with the given id and closes it
// via CloseIssue.
func (c *Client) CloseIssueByID(ctx context.Context, project, issueType string, repo report.RepoDetails, issueID, transitionName string) error {
	issues, err := c.ListUnresolvedIssues(ctx, project, issueType, repo)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		if issue.ID == issueID {
			return c.CloseIssue(ctx, issue, transitionName)
		}
	}
	return &faults.NotFoundError{Kind: "issue", Value: issueID}
}
