package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gi8lino/jiralink/internal/app"
)

// set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx := context.Background()
	if err := app.Run(ctx, version, commit, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err) // nolint:errcheck
		os.Exit(1)
	}
}
