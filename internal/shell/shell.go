// Package shell runs external programs on behalf of the bootstrap pipeline.
//
// Every invocation is synchronous: Run returns only once the child exits.
// Whether a call is echoed and streamed to the terminal is decided per call
// through Options, never through process-wide state, so two call sites can
// never disagree about the current verbosity.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Options configures a single Run call.
type Options struct {
	// Quiet suppresses the "$ command" echo and the streaming of the
	// child's output. Output is still captured into Result.
	Quiet bool
}

// Result holds the captured output of a finished command.
type Result struct {
	Stdout string
	Stderr string
}

// Runner executes a program with the given arguments in dir.
type Runner interface {
	Run(ctx context.Context, dir string, opts Options, name string, args ...string) (Result, error)
}

// CommandError reports a command that could not be started or exited
// with a non-zero status.
type CommandError struct {
	// Command is the rendered command line, e.g. `git commit -m "msg"`.
	Command string

	// ExitCode is the child's exit status, or -1 if it never ran.
	ExitCode int

	// Stderr is the trimmed standard error output of the child.
	Stderr string

	// Err is the underlying exec error.
	Err error
}

// Error satisfies the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Command)
	if e.ExitCode >= 0 {
		msg = fmt.Sprintf("%s (exit code %d)", msg, e.ExitCode)
	}
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	return msg
}

// Unwrap returns the underlying exec error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec. Non-quiet calls echo the command
// line to Stderr and tee the child's output to Stdout/Stderr.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates an ExecRunner streaming to stdout and stderr.
func NewExecRunner(stdout, stderr io.Writer) *ExecRunner {
	return &ExecRunner{Stdout: stdout, Stderr: stderr}
}

// Run executes name with args in dir. An empty dir runs in the current
// working directory. The child never reads from standard input; the
// bootstrap prompts own it.
func (r *ExecRunner) Run(ctx context.Context, dir string, opts Options, name string, args ...string) (Result, error) {
	// #nosec G204: the program list is fixed by the pipeline; only package
	// names from the prompt reach args, and they are passed without a shell.
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	if opts.Quiet {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	} else {
		_, _ = fmt.Fprintf(r.Stderr, "$ %s\n", CommandLine(name, args...))
		cmd.Stdout = io.MultiWriter(&stdout, r.Stdout)
		cmd.Stderr = io.MultiWriter(&stderr, r.Stderr)
	}

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return res, &CommandError{
			Command:  CommandLine(name, args...),
			ExitCode: exitCode,
			Stderr:   strings.TrimSpace(res.Stderr),
			Err:      err,
		}
	}
	return res, nil
}

// CommandLine renders a command for display. Arguments containing
// whitespace or quotes are double-quoted.
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
