// Package main is the entry point for the bootstrap-tool CLI.
//
// All functionality lives in internal/cli, which defines the cobra root
// command. Build-time variables (version, commit, date) are injected via
// ldflags and default to "dev", "none", and "unknown".
package main

import (
	"github.com/shinji-kodama/bootstrap-tool/internal/cli"
)

// Set at build time via
// -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
