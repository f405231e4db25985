package bootstrap

import (
	"context"

	"github.com/shinji-kodama/bootstrap-tool/internal/ctxlog"
	"github.com/shinji-kodama/bootstrap-tool/internal/gitrepo"
	"github.com/shinji-kodama/bootstrap-tool/internal/manifest"
	"github.com/shinji-kodama/bootstrap-tool/internal/model"
)

// State is the data a run accumulates as steps complete.
type State struct {
	// Dir is the absolute target directory, set by the directory step.
	Dir string

	// Manifest is the in-memory package.json.
	Manifest *manifest.Manifest

	// ModuleSystem is the user's module system choice.
	ModuleSystem model.ModuleSystem

	// Packages is the validated list of packages to install.
	Packages model.PackageList

	// ProjectName is the manifest name read back after scaffolding.
	ProjectName string

	// Head is the skeleton commit, when it could be inspected.
	Head gitrepo.Commit
}

// Step is one named, fallible stage of a run.
type Step struct {
	Name string
	Run  func(ctx context.Context, st *State) error
}

// Pipeline executes steps in order and stops at the first error.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a Pipeline of the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Names returns the step names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// Run executes every step against st. A step, once started, runs to
// completion; cancellation of ctx is only observed between steps.
func (p *Pipeline) Run(ctx context.Context, st *State) error {
	logger := ctxlog.FromContext(ctx)

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		logger.Debug("step started", "step", step.Name)
		if err := step.Run(ctx, st); err != nil {
			logger.Debug("step failed", "step", step.Name, "error", err)
			return err
		}
		logger.Debug("step finished", "step", step.Name)
	}
	return nil
}
