// Package gitrepo provides the git operations of the bootstrap pipeline.
//
// Mutating operations (init, add, commit) are performed by invoking the git
// CLI through a shell.Runner, so the user sees exactly the output their own
// git would print. Read-only inspection (global config values, the HEAD
// commit) goes through github.com/go-git/go-git/v5, which needs no child
// process and returns typed results.
package gitrepo
