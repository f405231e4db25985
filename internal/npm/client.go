package npm

import (
	"context"

	"github.com/shinji-kodama/bootstrap-tool/internal/model"
	"github.com/shinji-kodama/bootstrap-tool/internal/shell"
)

// Client invokes npm and npx through a shell.Runner.
type Client struct {
	runner shell.Runner
}

// NewClient creates a Client running commands through runner.
func NewClient(runner shell.Runner) *Client {
	return &Client{runner: runner}
}

// Init runs `npm init --yes`, producing a default package.json in dir.
func (c *Client) Init(ctx context.Context, dir string) error {
	_, err := c.runner.Run(ctx, dir, shell.Options{}, "npm", "init", "--yes")
	return err
}

// Install installs all packages in a single `npm install` invocation.
// An empty list is a no-op and runs nothing.
func (c *Client) Install(ctx context.Context, dir string, packages model.PackageList) error {
	if packages.IsEmpty() {
		return nil
	}
	args := append([]string{"install"}, packages...)
	_, err := c.runner.Run(ctx, dir, shell.Options{}, "npm", args...)
	return err
}

// Npx runs a package binary with npx, e.g. Npx(ctx, dir, "mrm", "eslint").
func (c *Client) Npx(ctx context.Context, dir string, args ...string) error {
	_, err := c.runner.Run(ctx, dir, shell.Options{}, "npx", args...)
	return err
}
