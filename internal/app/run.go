package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/gi8lino/jiralink/internal/client"
	"github.com/gi8lino/jiralink/internal/defaults"
	"github.com/gi8lino/jiralink/internal/flag"
	"github.com/gi8lino/jiralink/internal/logging"
	"github.com/gi8lino/jiralink/internal/report"

	"github.com/containeroo/tinyflags"
)

// commands lists the accepted first arguments, for the usage error.
const commands = "list-projects, list-types, create, list, close"

// Run executes one jiralink command: parse flags, load defaults, build the
// client, dispatch, and release the client on every exit path.
func Run(ctx context.Context, version, commit string, args []string, w io.Writer) error {
	// Create a new context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Split the command from the flags
	command := ""
	rest := args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, rest = args[0], args[1:]
	}

	// Parse command-line flags
	flags, err := flag.ParseArgs(version, rest, w, os.Getenv)
	if err != nil {
		if tinyflags.IsHelpRequested(err) || tinyflags.IsVersionRequested(err) {
			fmt.Fprint(w, err.Error()) // nolint:errcheck
			return nil
		}
		return fmt.Errorf("parsing error: %w", err)
	}
	if command == "" {
		return fmt.Errorf("missing command (one of: %s)", commands)
	}

	// Setup logger
	logger := logging.SetupLogger(flags.LogFormat, flags.Debug, w)

	logger.Info("Starting jiralink",
		"version", version,
		"commit", commit,
	)

	// Load defaults
	defs, err := defaults.Load(flags.DefaultsFile, os.Getenv)
	if err != nil {
		return fmt.Errorf("loading defaults error: %w", err)
	}

	// Setup client; it must be released on every exit path
	c, err := client.New(flags.URL, flags.User, flags.Password, defs, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	repo := report.RepoDetails{
		URL:    flags.Repository,
		Branch: flags.Branch,
		Commit: flags.Commit,
	}
	result := report.UniformTestResult{
		Summary:     flags.Summary,
		Description: flags.Description,
	}
	if flags.DescriptionTemplate != "" {
		tmplText, err := os.ReadFile(flags.DescriptionTemplate)
		if err != nil {
			return fmt.Errorf("reading description template: %w", err)
		}
		rendered, err := result.RenderDescription(string(tmplText), repo)
		if err != nil {
			return err
		}
		result.Description = rendered
	}

	switch command {
	case "list-projects":
		projects, err := c.ListProjects(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, p := range projects {
			fmt.Fprintf(tw, "%s\t%s\n", p.Key, p.Name) // nolint:errcheck
		}
		return tw.Flush()

	case "list-types":
		types, err := c.ListIssueTypes(ctx, flags.Project)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, t := range types {
			fmt.Fprintf(tw, "%s\t%s\n", t.ID, t.Name) // nolint:errcheck
		}
		return tw.Flush()

	case "create":
		return c.CreateIssue(ctx, flags.Project, flags.IssueType, repo, result)

	case "list":
		issues, err := c.ListUnresolvedIssues(ctx, flags.Project, flags.IssueType, repo)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, issue := range issues {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", issue.ID, issue.Key, issue.Fields.Summary) // nolint:errcheck
		}
		return tw.Flush()

	case "close":
		if strings.TrimSpace(flags.IssueID) == "" {
			return fmt.Errorf("close requires --issue-id")
		}
		return c.CloseIssueByID(ctx, flags.Project, flags.IssueType, repo, flags.IssueID, flags.Transition)

	default:
		return fmt.Errorf("unknown command %q (one of: %s)", command, commands)
	}
}
