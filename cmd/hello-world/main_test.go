package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shinji-kodama/bootstrap-tool/internal/console"
	"github.com/shinji-kodama/bootstrap-tool/internal/model"
	"github.com/shinji-kodama/bootstrap-tool/internal/shell"
	"github.com/shinji-kodama/bootstrap-tool/internal/shell/shelltest"
)

func TestRun_PrintsTrimmedListing(t *testing.T) {
	runner := &shelltest.FakeRunner{Handler: func(shelltest.Call) (shell.Result, error) {
		return shell.Result{Stdout: "\nREADME.md\npackage.json\n\n"}, nil
	}}
	var out, errOut bytes.Buffer

	code := run(context.Background(), runner, console.New(&out, &errOut))

	assert.Equal(t, model.ExitSuccess, code)
	assert.Equal(t, "README.md\npackage.json\n", out.String())
	assert.Empty(t, errOut.String())

	calls := runner.Calls()
	if assert.Len(t, calls, 1) {
		assert.Equal(t, "ls", calls[0].Name)
		assert.Empty(t, calls[0].Args)
		assert.True(t, calls[0].Quiet)
		assert.Empty(t, calls[0].Dir)
	}
}

func TestRun_Failure(t *testing.T) {
	runner := &shelltest.FakeRunner{Handler: func(c shelltest.Call) (shell.Result, error) {
		return shell.Result{}, shelltest.Failure(c, "ls: cannot open directory '.': Permission denied")
	}}
	var out, errOut bytes.Buffer

	code := run(context.Background(), runner, console.New(&out, &errOut))

	assert.Equal(t, model.ExitGeneralError, code)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error: ls failed (exit code 1)")
	assert.Contains(t, errOut.String(), "Permission denied")
}
