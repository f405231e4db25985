// Package cli implements the cobra-based command line of bootstrap-tool.
//
// bootstrap-tool has no subcommands. The root command is the whole tool:
// it parses flags, builds the logger, console and configuration, then hands
// over to internal/bootstrap, which runs the pipeline. This file also
// defines Execute, which turns the returned error into a process exit code.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/bootstrap-tool/internal/bootstrap"
	"github.com/shinji-kodama/bootstrap-tool/internal/config"
	"github.com/shinji-kodama/bootstrap-tool/internal/console"
	"github.com/shinji-kodama/bootstrap-tool/internal/ctxlog"
	"github.com/shinji-kodama/bootstrap-tool/internal/model"
	"github.com/shinji-kodama/bootstrap-tool/internal/prompt"
	"github.com/shinji-kodama/bootstrap-tool/internal/shell"
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// rootFlags holds the flag values of the root command.
// These are bound to cobra flags in NewRootCommand.
type rootFlags struct {
	directory  string // --directory: project directory to bootstrap
	configPath string // --config: optional YAML configuration file
	registry   string // --registry: registry URL used to probe packages
	verbose    bool   // --verbose: debug logging on stderr
	noColor    bool   // --no-color: plain output
}

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// The command takes no positional arguments; the target directory is
// given with --directory.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		// Use is the one-line usage pattern shown in help output.
		Use:   "bootstrap-tool --directory <path>",
		Short: "Bootstrap a Node.js project skeleton",
		Long: `bootstrap-tool turns an existing directory into a Node.js project:
it initializes a git repository and package.json, asks for the module
system and the npm packages to install, generates .gitignore and tooling
configuration, writes a README and commits the result.

Examples:
  bootstrap-tool --directory ./my-project
  bootstrap-tool -d ./my-project --registry https://registry.npmjs.org
  bootstrap-tool -d ./my-project --config bootstrap.yaml -v`,

		// Args rejects stray positional arguments such as a directory given
		// without --directory.
		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// A failed git or npm call is not a usage mistake.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// Execute prints them in red with the matching exit code.
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// RunE is used instead of Run so the pipeline error, including a
		// CLIError with its exit code, reaches Execute.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBootstrap(cmd, flags)
		},
	}

	// Flags are local to the root command; there are no subcommands to
	// inherit them.
	cmd.Flags().StringVarP(&flags.directory, "directory", "d", "", "Directory to bootstrap (must exist)")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "YAML configuration file")
	cmd.Flags().StringVar(&flags.registry, "registry", "", "npm registry URL used to check package names (default: npm view)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	return cmd
}

// runBootstrap is the RunE body of the root command.
//
// Steps:
//  1. Apply --no-color before anything is printed
//  2. Build the slog logger and attach it to the context
//  3. Load and validate the configuration
//  4. Wire the real collaborators (os/exec runner, PATH lookup, stdin
//     prompter, console) and run the pipeline
//
// All streams come from cmd, so tests can replace them with SetIn, SetOut
// and SetErr.
func runBootstrap(cmd *cobra.Command, flags *rootFlags) error {
	if flags.noColor {
		console.DisableColor()
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	// Debug records (step progress, probe failures) are only shown with
	// --verbose; warnings from the logger itself always are.
	logger := ctxlog.New(stderr, flags.verbose)
	ctx := ctxlog.WithLogger(cmd.Context(), logger)

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", "path", flags.configPath, "registry", cfg.Registry.URL)

	// GlobalSetting and Registry are left nil: the bootstrapper then reads
	// the user's global git config and picks the registry prober from cfg.
	b := bootstrap.New(bootstrap.Options{
		Directory: flags.directory,
		Config:    cfg,
	}, bootstrap.Dependencies{
		Runner:   shell.NewExecRunner(stdout, stderr),
		LookPath: exec.LookPath,
		Prompter: prompt.New(cmd.InOrStdin(), stdout),
		Console:  console.New(stdout, stderr),
	})

	_, err = b.Run(ctx)
	return err
}

// loadConfig reads --config and applies the --registry override.
// The override is validated again because it bypasses the file schema
// check done by config.Load.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	if flags.registry != "" {
		cfg.Registry.URL = flags.registry
		if err := cfg.Validate(); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError, "invalid --registry value", err)
		}
	}
	return cfg, nil
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// On success the process exits normally with code 0. On failure the error
// is printed by report and the process exits with the code it maps to.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(int(report(rootCmd.ErrOrStderr(), err)))
	}
}

// report prints err as "Error: <message>" in red on w and returns the
// exit code for it. CLIError types carry their own exit codes; other
// errors default to exit code 1.
func report(w io.Writer, err error) model.ExitCode {
	con := console.New(io.Discard, w)

	// errors.As also finds a CLIError wrapped by another error.
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Err != nil {
			con.Errorf("Error: %s: %v", cliErr.Message, cliErr.Err)
		} else {
			con.Errorf("Error: %s", cliErr.Message)
		}
		return cliErr.Code
	}

	// Generic error (git, npm, filesystem): exit with code 1.
	con.Errorf("Error: %s", err)
	return model.ExitGeneralError
}
