// Package config loads the optional bootstrap-tool configuration file.
//
// The file is YAML (gopkg.in/yaml.v3). Fields it omits keep their built-in
// defaults, which reproduce the stock pipeline: git/node/npx preflight, the
// user.name/user.email advisory, the "node" gitignore template, the
// editorconfig/prettier/eslint mrm tasks and the "Add project skeleton"
// commit. The merged result is validated against an embedded CUE schema
// (cuelang.org/go) before any pipeline step runs.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/bootstrap-tool/internal/model"
)

// Registry configures how package names are probed.
type Registry struct {
	// URL is the base URL of an npm-compatible registry. When empty the
	// probe shells out to `npm view`.
	URL string `yaml:"url" json:"url"`
}

// Config is the complete tool configuration.
type Config struct {
	// RequiredPrograms must all resolve on PATH before anything runs.
	RequiredPrograms []string `yaml:"requiredPrograms" json:"requiredPrograms"`

	// GitSettings are global git settings whose absence triggers a warning.
	GitSettings []string `yaml:"gitSettings" json:"gitSettings"`

	// GitignoreTemplate is passed to `npx gitignore`.
	GitignoreTemplate string `yaml:"gitignoreTemplate" json:"gitignoreTemplate"`

	// MrmTasks are run in order as `npx mrm <task>`.
	MrmTasks []string `yaml:"mrmTasks" json:"mrmTasks"`

	// CommitMessage is the message of the skeleton commit.
	CommitMessage string `yaml:"commitMessage" json:"commitMessage"`

	Registry Registry `yaml:"registry" json:"registry"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RequiredPrograms:  []string{"git", "node", "npx"},
		GitSettings:       []string{"user.name", "user.email"},
		GitignoreTemplate: "node",
		MrmTasks:          []string{"editorconfig", "prettier", "eslint"},
		CommitMessage:     "Add project skeleton",
	}
}

// Load returns the configuration read from path layered over Default.
// An empty path returns the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, fmt.Sprintf("failed to read config file %s", path), err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, model.WrapCLIError(model.ExitGeneralError, fmt.Sprintf("failed to parse config file %s", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, fmt.Sprintf("invalid config file %s", path), err)
	}
	return cfg, nil
}

// schemaSource constrains a decoded Config. Program names, templates and
// tasks are single non-blank words; git settings look like
// "section[.subsection].key".
const schemaSource = `
#Word: string & =~"^\\S+$"

#Config: {
	requiredPrograms: [...#Word]
	gitSettings: [...(string & =~"^[A-Za-z0-9-]+(\\..+)?\\.[A-Za-z0-9-]+$")]
	gitignoreTemplate: #Word
	mrmTasks: [...#Word]
	commitMessage: string & =~"\\S"
	registry: url: "" | (string & =~"^https?://")
}
`

// Validate checks the configuration against the CUE schema.
func (c *Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}

	v := ctx.Encode(c.normalized())
	if err := v.Err(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := schema.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}

// normalized returns a copy with nil lists replaced by empty ones, so an
// explicit `mrmTasks:` (null) in YAML means "no tasks" rather than a type
// error.
func (c *Config) normalized() Config {
	n := *c
	if n.RequiredPrograms == nil {
		n.RequiredPrograms = []string{}
	}
	if n.GitSettings == nil {
		n.GitSettings = []string{}
	}
	if n.MrmTasks == nil {
		n.MrmTasks = []string{}
	}
	return n
}
