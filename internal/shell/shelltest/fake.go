// Package shelltest provides a recording shell.Runner for tests.
package shelltest

import (
	"context"
	"errors"
	"sync"

	"github.com/shinji-kodama/bootstrap-tool/internal/shell"
)

// Call is one recorded Run invocation.
type Call struct {
	Dir   string
	Quiet bool
	Name  string
	Args  []string
}

// String renders the call as a command line.
func (c Call) String() string {
	return shell.CommandLine(c.Name, c.Args...)
}

// HandlerFunc decides the outcome of a recorded call. Returning a nil
// error with a zero Result simulates a silent success.
type HandlerFunc func(call Call) (shell.Result, error)

// FakeRunner records every call and delegates outcomes to Handler.
// A nil Handler makes every call succeed.
type FakeRunner struct {
	Handler HandlerFunc

	mu    sync.Mutex
	calls []Call
}

// Run records the call and returns the handler's outcome.
func (f *FakeRunner) Run(_ context.Context, dir string, opts shell.Options, name string, args ...string) (shell.Result, error) {
	call := Call{Dir: dir, Quiet: opts.Quiet, Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.Handler == nil {
		return shell.Result{}, nil
	}
	return f.Handler(call)
}

// Calls returns a copy of the recorded calls in invocation order.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Commands returns the recorded calls rendered as command lines.
func (f *FakeRunner) Commands() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Failure builds the error a real runner would return for call.
func Failure(call Call, stderr string) error {
	return &shell.CommandError{
		Command:  call.String(),
		ExitCode: 1,
		Stderr:   stderr,
		Err:      errors.New("exit status 1"),
	}
}
