package bootstrap

import (
	"context"
	"errors"

	"github.com/shinji-kodama/bootstrap-tool/internal/config"
	"github.com/shinji-kodama/bootstrap-tool/internal/console"
	"github.com/shinji-kodama/bootstrap-tool/internal/ctxlog"
	"github.com/shinji-kodama/bootstrap-tool/internal/gitrepo"
	"github.com/shinji-kodama/bootstrap-tool/internal/manifest"
	"github.com/shinji-kodama/bootstrap-tool/internal/model"
	"github.com/shinji-kodama/bootstrap-tool/internal/npm"
	"github.com/shinji-kodama/bootstrap-tool/internal/preflight"
	"github.com/shinji-kodama/bootstrap-tool/internal/prompt"
	"github.com/shinji-kodama/bootstrap-tool/internal/scaffold"
	"github.com/shinji-kodama/bootstrap-tool/internal/shell"
)

// ignoredPaths must be matched by the generated .gitignore. Paths are
// slash-separated and relative to the target directory; a trailing "/"
// marks a directory.
var ignoredPaths = []string{"node_modules/"}

// Options are the per-run inputs.
type Options struct {
	// Directory is the --directory argument as given by the user.
	Directory string

	// Config is the tool configuration. Nil means config.Default().
	Config *config.Config
}

// Dependencies are the collaborators of a run. Runner, LookPath, Prompter
// and Console are required.
type Dependencies struct {
	// Runner executes git, npm and npx.
	Runner shell.Runner

	// LookPath resolves required programs, normally exec.LookPath.
	LookPath preflight.LookPathFunc

	// GlobalSetting reads a global git setting. Nil reads the user's
	// global git config through go-git.
	GlobalSetting preflight.SettingLookupFunc

	// Registry probes package names. Nil selects an HTTP probe when
	// Config.Registry.URL is set and `npm view` otherwise.
	Registry npm.Registry

	// Prompter reads answers from the user.
	Prompter Asker

	// Console receives user-facing messages.
	Console *console.Console
}

// Bootstrapper runs the bootstrap pipeline. A Bootstrapper is meant for a
// single run: its prompter consumes input as the run proceeds.
type Bootstrapper struct {
	opts Options
	deps Dependencies

	// git drives git init/add/commit and inspects the result.
	git *gitrepo.Manager

	// npm runs npm init, npm install and npx.
	npm *npm.Client

	// scaffold runs the .gitignore and mrm generators through npm.
	scaffold *scaffold.Generator
}

// New creates a Bootstrapper. It fills in the defaults documented on
// Options and Dependencies; nothing runs until Run is called.
func New(opts Options, deps Dependencies) *Bootstrapper {
	if opts.Config == nil {
		opts.Config = config.Default()
	}

	git := gitrepo.NewManager(deps.Runner)
	if deps.GlobalSetting == nil {
		deps.GlobalSetting = git.GlobalSetting
	}

	npmClient := npm.NewClient(deps.Runner)

	return &Bootstrapper{
		opts:     opts,
		deps:     deps,
		git:      git,
		npm:      npmClient,
		scaffold: scaffold.NewGenerator(npmClient),
	}
}

// Run executes the full pipeline and returns the final state. On error
// the returned state reflects the steps that completed.
func (b *Bootstrapper) Run(ctx context.Context) (*State, error) {
	st := &State{}
	err := b.Pipeline().Run(ctx, st)
	return st, err
}

// Pipeline returns the ordered steps of a run.
//
// Step names are stable and appear in debug logs as "step=<name>". The
// order below is the contract: nothing touches the target directory
// before resolve-directory, and the commit is the last mutating step.
func (b *Bootstrapper) Pipeline() *Pipeline {
	return NewPipeline(
		Step{Name: "check-required-programs", Run: b.checkRequiredPrograms},
		Step{Name: "resolve-directory", Run: b.resolveDirectory},
		Step{Name: "check-git-settings", Run: b.checkGitSettings},
		Step{Name: "git-init", Run: b.gitInit},
		Step{Name: "npm-init", Run: b.npmInit},
		Step{Name: "select-module-system", Run: b.selectModuleSystem},
		Step{Name: "write-manifest", Run: b.writeManifest},
		Step{Name: "select-packages", Run: b.selectPackages},
		Step{Name: "install-packages", Run: b.installPackages},
		Step{Name: "generate-gitignore", Run: b.generateGitignore},
		Step{Name: "generate-configs", Run: b.generateConfigs},
		Step{Name: "write-readme", Run: b.writeReadme},
		Step{Name: "commit", Run: b.commit},
		Step{Name: "report", Run: b.report},
	)
}

// checkRequiredPrograms fails on the first configured program missing
// from PATH.
func (b *Bootstrapper) checkRequiredPrograms(_ context.Context, _ *State) error {
	return preflight.CheckRequiredPrograms(b.opts.Config.RequiredPrograms, b.deps.LookPath)
}

// resolveDirectory stores the absolute target directory in st. Every later
// command runs with it as working directory.
func (b *Bootstrapper) resolveDirectory(ctx context.Context, st *State) error {
	dir, err := preflight.ResolveDirectory(b.opts.Directory)
	if err != nil {
		return err
	}
	st.Dir = dir
	ctxlog.FromContext(ctx).Debug("target directory resolved", "dir", dir)
	return nil
}

// checkGitSettings never fails; unset settings only produce warnings.
func (b *Bootstrapper) checkGitSettings(_ context.Context, _ *State) error {
	for _, name := range preflight.UnsetSettings(b.opts.Config.GitSettings, b.deps.GlobalSetting) {
		b.deps.Console.Warnf("Warning: Global git setting '%s' is not set.", name)
	}
	return nil
}

func (b *Bootstrapper) gitInit(ctx context.Context, st *State) error {
	return b.git.Init(ctx, st.Dir)
}

// npmInit creates package.json and loads it into st.Manifest.
func (b *Bootstrapper) npmInit(ctx context.Context, st *State) error {
	if err := b.npm.Init(ctx, st.Dir); err != nil {
		return err
	}

	m, err := manifest.Read(st.Dir)
	if err != nil {
		return err
	}
	st.Manifest = m
	return nil
}

// selectModuleSystem asks until a valid module system is given.
func (b *Bootstrapper) selectModuleSystem(_ context.Context, st *State) error {
	ms, err := SelectModuleSystem(b.deps.Prompter, b.deps.Console)
	if err != nil {
		return promptError(err)
	}
	st.ModuleSystem = ms
	return nil
}

// writeManifest records the module system in package.json. Existing keys
// keep their order; "module" is appended unless already present.
func (b *Bootstrapper) writeManifest(ctx context.Context, st *State) error {
	if err := st.Manifest.Set("module", st.ModuleSystem.String()); err != nil {
		return err
	}
	if err := st.Manifest.Write(); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("manifest written", "path", st.Manifest.Path(), "module", st.ModuleSystem)
	return nil
}

// selectPackages asks until every named package exists in the registry.
func (b *Bootstrapper) selectPackages(ctx context.Context, st *State) error {
	// The HTTP prober is built per run and closed when the step ends; the
	// `npm view` prober needs st.Dir so a project .npmrc applies.
	reg := b.deps.Registry
	if reg == nil {
		if url := b.opts.Config.Registry.URL; url != "" {
			httpReg := npm.NewHTTPRegistry(url)
			defer func() { _ = httpReg.Close() }()
			reg = httpReg
		} else {
			reg = npm.NewCLIRegistry(b.deps.Runner, st.Dir)
		}
	}

	packages, err := SelectPackages(ctx, b.deps.Prompter, reg, b.deps.Console)
	if err != nil {
		return promptError(err)
	}
	st.Packages = packages
	return nil
}

// installPackages runs one `npm install` for all selected packages, or
// nothing when the selection is empty.
func (b *Bootstrapper) installPackages(ctx context.Context, st *State) error {
	if st.Packages.IsEmpty() {
		ctxlog.FromContext(ctx).Debug("no packages selected, skipping install")
		return nil
	}
	return b.npm.Install(ctx, st.Dir, st.Packages)
}

// generateGitignore runs the ignore-file generator, then warns (without
// failing) when the result does not cover the dependency directory.
func (b *Bootstrapper) generateGitignore(ctx context.Context, st *State) error {
	if err := b.scaffold.Gitignore(ctx, st.Dir, b.opts.Config.GitignoreTemplate); err != nil {
		return err
	}

	unignored, err := scaffold.UnignoredPaths(st.Dir, ignoredPaths)
	if err != nil {
		ctxlog.FromContext(ctx).Debug("could not inspect .gitignore", "error", err)
		return nil
	}
	for _, p := range unignored {
		b.deps.Console.Warnf("Warning: %s does not ignore '%s'.", scaffold.GitignoreFileName, p)
	}
	return nil
}

// generateConfigs runs the configured mrm tasks in order.
func (b *Bootstrapper) generateConfigs(ctx context.Context, st *State) error {
	return b.scaffold.Mrm(ctx, st.Dir, b.opts.Config.MrmTasks)
}

// writeReadme reads package.json again: the generators may have rewritten
// it since the module system was recorded.
func (b *Bootstrapper) writeReadme(_ context.Context, st *State) error {
	m, err := manifest.Read(st.Dir)
	if err != nil {
		return err
	}
	st.Manifest = m
	st.ProjectName = m.Name()

	return scaffold.WriteReadme(st.Dir, st.ProjectName)
}

// commit stages everything and commits it. Reading the new HEAD back is
// informational only; a failure there is logged and ignored.
func (b *Bootstrapper) commit(ctx context.Context, st *State) error {
	if err := b.git.AddAll(ctx, st.Dir); err != nil {
		return err
	}
	if err := b.git.Commit(ctx, st.Dir, b.opts.Config.CommitMessage); err != nil {
		return err
	}

	logger := ctxlog.FromContext(ctx)
	head, err := b.git.HeadCommit(st.Dir)
	if err != nil {
		logger.Debug("could not inspect skeleton commit", "error", err)
		return nil
	}
	st.Head = head
	logger.Debug("skeleton committed", "commit", head.ShortHash())
	return nil
}

// report prints the completion notice in green on stdout.
func (b *Bootstrapper) report(_ context.Context, st *State) error {
	b.deps.Console.Successf("\n✔️ The project %s has been successfully bootstrapped!\n", st.ProjectName)
	b.deps.Console.Successf("Add a git remote and push your changes.")
	return nil
}

// promptError maps closed input to a cancellation exit code; other prompt
// errors are returned unchanged.
func promptError(err error) error {
	if errors.Is(err, prompt.ErrInputClosed) {
		return model.WrapCLIError(model.ExitUserCancelled, "cancelled", err)
	}
	return err
}
