package flag

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/containeroo/tinyflags"
	"github.com/gi8lino/jiralink/internal/logging"
)

// Config aggregates CLI flags after parsing.
type Config struct {
	URL      string // Jira server URL (blank = defaults file)
	User     string // Jira user (blank = defaults file)
	Password string // Jira password (blank = defaults file)

	DefaultsFile string // Path to the defaults dot-file

	Project   string // Project key
	IssueType string // Issue type name

	Repository string // Git repository URL
	Branch     string // Git branch
	Commit     string // Git commit under test

	Summary             string // Issue summary
	Description         string // Issue description
	DescriptionTemplate string // Path to a description template (optional)

	IssueID    string // Issue id for close
	Transition string // Transition name for close

	Debug     bool              // Enables debug logging
	LogFormat logging.LogFormat // Log output format (text or json)
}

// ParseArgs parses CLI arguments into Config, handling version/help flags.
func ParseArgs(version string, args []string, out io.Writer, getEnv func(string) string) (Config, error) {
	var cfg Config
	tf := tinyflags.NewFlagSet("jiralink", tinyflags.ContinueOnError)
	tf.Version(version)
	tf.SetGetEnvFn(getEnv)
	tf.EnvPrefix("JIRALINK")
	tf.SetOutput(out)

	// Connection
	tf.StringVar(&cfg.URL, "url", "", "Jira server URL").Value()
	tf.StringVar(&cfg.User, "user", "", "Jira user").Value()
	tf.StringVar(&cfg.Password, "password", "", "Jira password").Value()
	tf.StringVar(&cfg.DefaultsFile, "defaults-file", "~/.jiralink.yaml", "Path to the defaults dot-file").
		Finalize(expandHome).
		Placeholder("PATH").
		Value()

	// Issue selection
	tf.StringVar(&cfg.Project, "project", "", "Project key").Value()
	tf.StringVar(&cfg.IssueType, "type", "", "Issue type name").Value()

	// Repository under test
	tf.StringVar(&cfg.Repository, "repository", "", "Git repository URL").Value()
	tf.StringVar(&cfg.Branch, "branch", "", "Git branch").Value()
	tf.StringVar(&cfg.Commit, "commit", "", "Git commit under test").Value()

	// Issue content
	tf.StringVar(&cfg.Summary, "summary", "", "Issue summary").Value()
	tf.StringVar(&cfg.Description, "description", "", "Issue description").Value()
	tf.StringVar(&cfg.DescriptionTemplate, "description-template", "", "Path to a description template").
		Placeholder("PATH").
		Value()

	// Close
	tf.StringVar(&cfg.IssueID, "issue-id", "", "Issue id to close").Value()
	tf.StringVar(&cfg.Transition, "transition", "", "Transition name").Value()

	// Logging
	tf.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging").Value()
	logFormat := tf.String("log-format", "text", "Log format").Choices("text", "json").Short("l").Value()

	// Parse
	if err := tf.Parse(args); err != nil {
		return Config{}, err
	}

	// Post-parse
	cfg.LogFormat = logging.LogFormat(*logFormat)

	return cfg, nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
