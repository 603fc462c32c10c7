package client

import (
	"fmt"
	"strings"
)

// buildJQL assembles the search expression for unresolved reporter issues:
// project and issue type equality, ownership by the current session user
// (the comparison field comes from the configured role), and optional
// contains-exact clauses for repository and branch.
func buildJQL(project, role, issueType, repoURL, branch string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `project="%s" and %s=currentUser() and issuetype="%s" and resolution="unresolved"`,
		project, role, issueType)

	// both optional filters are on text fields and require "contains".
	// for an exact match they also need quotes; in JQL that is "foo"~"\"bar\""
	if strings.TrimSpace(repoURL) != "" {
		fmt.Fprintf(&b, ` and "%s"~"\"%s\""`, FieldRepository, repoURL)
	}
	if strings.TrimSpace(branch) != "" {
		fmt.Fprintf(&b, ` and "%s"~"\"%s\""`, FieldBranch, branch)
	}
	return b.String()
}
