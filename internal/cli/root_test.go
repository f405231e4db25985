package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/bootstrap-tool/internal/console"
	"github.com/shinji-kodama/bootstrap-tool/internal/model"
)

func TestMain(m *testing.M) {
	console.DisableColor()
	os.Exit(m.Run())
}

// newTestCommand returns the root command wired to in-memory streams.
func newTestCommand(args ...string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

// writeConfig writes a config that needs no programs or git settings, so
// the pipeline reaches directory resolution on any machine.
func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bootstrap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("requiredPrograms: []\ngitSettings: []\n"), 0o644))
	return path
}

func TestNewRootCommand_Flags(t *testing.T) {
	cmd := NewRootCommand()

	tests := []struct {
		name      string
		shorthand string
	}{
		{name: "directory", shorthand: "d"},
		{name: "config"},
		{name: "registry"},
		{name: "verbose", shorthand: "v"},
		{name: "no-color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.shorthand, f.Shorthand)
		})
	}
}

func TestRootCommand_MissingDirectory(t *testing.T) {
	cmd, _, _ := newTestCommand("--config", writeConfig(t))

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, "You must specify the --directory argument", err.Error())
}

func TestRootCommand_DirectoryDoesNotExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	cmd, _, _ := newTestCommand("--config", writeConfig(t), "-d", missing)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, "Target directory '"+missing+"' does not exist", err.Error())
	assert.NoDirExists(t, missing)
}

// TestRootCommand_MissingProgramReport checks the exact line a user sees
// when a required program is not on PATH.
func TestRootCommand_MissingProgramReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bootstrap.yaml")
	cfg := "requiredPrograms: [bootstrap-tool-test-no-such-program]\ngitSettings: []\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	cmd, _, errOut := newTestCommand("--config", path, "-d", t.TempDir())

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, model.ExitGeneralError, report(errOut, err))
	assert.Equal(t, "Error: Required command not found: bootstrap-tool-test-no-such-program\n", errOut.String())
}

func TestRootCommand_RejectsPositionalArgs(t *testing.T) {
	cmd, _, _ := newTestCommand("somewhere")
	assert.Error(t, cmd.Execute())
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bootstrap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("commitMessage: \"\"\n"), 0o644))
	cmd, _, _ := newTestCommand("--config", path, "-d", t.TempDir())

	err := cmd.Execute()
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Contains(t, cliErr.Message, "invalid config file")
}

func TestRootCommand_InvalidRegistry(t *testing.T) {
	cmd, _, _ := newTestCommand("--registry", "ftp://example.com", "-d", t.TempDir())

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --registry value")
}

func TestLoadConfig_RegistryOverride(t *testing.T) {
	cfg, err := loadConfig(&rootFlags{registry: "https://registry.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://registry.example.com", cfg.Registry.URL)
	assert.Equal(t, "Add project skeleton", cfg.CommitMessage)
}

func TestReport(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode model.ExitCode
		wantOut  string
	}{
		{
			name:     "fatal CLIError",
			err:      model.NewCLIError(model.ExitGeneralError, "Required command not found: npx"),
			wantCode: model.ExitGeneralError,
			wantOut:  "Error: Required command not found: npx\n",
		},
		{
			name:     "cancelled",
			err:      model.WrapCLIError(model.ExitUserCancelled, "cancelled", errors.New("input closed")),
			wantCode: model.ExitUserCancelled,
			wantOut:  "Error: cancelled: input closed\n",
		},
		{
			name:     "plain error",
			err:      errors.New("git init failed (exit code 128): fatal"),
			wantCode: model.ExitGeneralError,
			wantOut:  "Error: git init failed (exit code 128): fatal\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.wantCode, report(&buf, tt.err))
			assert.Equal(t, tt.wantOut, buf.String())
		})
	}
}
