// Package scaffold generates the skeleton files of a new project: the
// .gitignore and editor/formatter/linter configuration (delegated to npx
// generators) and a README rendered from the project name.
package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ReadmeFileName is the README written into the project directory.
const ReadmeFileName = "README.md"

// GitignoreFileName is the ignore file produced by the gitignore generator.
const GitignoreFileName = ".gitignore"

// readmeTemplate is filled with the project name.
const readmeTemplate = "# %s\n\n...\n"

// NpxRunner runs a package binary through npx in dir. *npm.Client
// satisfies it.
type NpxRunner interface {
	Npx(ctx context.Context, dir string, args ...string) error
}

// Generator runs the external scaffold generators.
type Generator struct {
	npx NpxRunner
}

// NewGenerator creates a Generator that invokes generators through npx.
func NewGenerator(npx NpxRunner) *Generator {
	return &Generator{npx: npx}
}

// Gitignore runs `npx gitignore <template>` in dir.
func (g *Generator) Gitignore(ctx context.Context, dir, template string) error {
	return g.npx.Npx(ctx, dir, "gitignore", template)
}

// Mrm runs `npx mrm <task>` in dir for each task, in order, stopping at
// the first failure.
func (g *Generator) Mrm(ctx context.Context, dir string, tasks []string) error {
	for _, task := range tasks {
		if err := g.npx.Npx(ctx, dir, "mrm", task); err != nil {
			return err
		}
	}
	return nil
}

// RenderReadme returns the README contents for projectName.
func RenderReadme(projectName string) string {
	return fmt.Sprintf(readmeTemplate, projectName)
}

// WriteReadme writes dir/README.md, replacing any existing file.
func WriteReadme(dir, projectName string) error {
	path := filepath.Join(dir, ReadmeFileName)
	if err := os.WriteFile(path, []byte(RenderReadme(projectName)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// UnignoredPaths returns the entries of paths (slash-separated, relative to
// dir, directories when they end in "/") that dir/.gitignore does not
// ignore. A missing .gitignore ignores nothing.
func UnignoredPaths(dir string, paths []string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, GitignoreFileName))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", GitignoreFileName, err)
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	matcher := gitignore.NewMatcher(patterns)

	var unignored []string
	for _, p := range paths {
		isDir := strings.HasSuffix(p, "/")
		parts := strings.Split(strings.Trim(p, "/"), "/")
		if !matcher.Match(parts, isDir) {
			unignored = append(unignored, p)
		}
	}
	return unignored, nil
}
