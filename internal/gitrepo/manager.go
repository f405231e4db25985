package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	format "github.com/go-git/go-git/v5/plumbing/format/config"

	"github.com/shinji-kodama/bootstrap-tool/internal/shell"
)

// Commit is the subset of commit metadata the bootstrap tool reports.
type Commit struct {
	// Hash is the full hex SHA-1 of the commit.
	Hash string

	// Message is the commit message, trailing newline removed.
	Message string
}

// ShortHash returns the first seven characters of the hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) <= 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// Manager performs git operations against a working directory.
//
// Commands run with the target directory as the child's working directory,
// so the bootstrap process never changes its own cwd.
type Manager struct {
	runner shell.Runner
}

// NewManager creates a Manager that invokes git through runner.
func NewManager(runner shell.Runner) *Manager {
	return &Manager{runner: runner}
}

// Init runs `git init` in dir. It does not check whether dir is already a
// repository; git itself decides what re-initialisation means.
func (m *Manager) Init(ctx context.Context, dir string) error {
	_, err := m.runner.Run(ctx, dir, shell.Options{}, "git", "init")
	return err
}

// AddAll stages every change in the working tree with `git add .`.
func (m *Manager) AddAll(ctx context.Context, dir string) error {
	_, err := m.runner.Run(ctx, dir, shell.Options{}, "git", "add", ".")
	return err
}

// Commit records the staged changes with the given message.
func (m *Manager) Commit(ctx context.Context, dir, message string) error {
	_, err := m.runner.Run(ctx, dir, shell.Options{}, "git", "commit", "-m", message)
	return err
}

// HeadCommit opens the repository at dir with go-git and returns the
// commit HEAD points to.
func (m *Manager) HeadCommit(dir string) (Commit, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return Commit{}, fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}

	ref, err := repo.Head()
	if err != nil {
		return Commit{}, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	c, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return Commit{}, fmt.Errorf("failed to read commit %s: %w", ref.Hash(), err)
	}

	return Commit{Hash: c.Hash.String(), Message: strings.TrimRight(c.Message, "\n")}, nil
}

// GlobalSetting returns the value of a global git setting such as
// "user.name" or "url.git@github.com:.insteadOf", as
// `git config --global --get` would report it. An unset setting yields "".
//
// Every file in globalConfigPaths is read in order and a later file
// overrides an earlier one, so ~/.gitconfig wins over the XDG file.
func (m *Manager) GlobalSetting(name string) (string, error) {
	section, subsection, key, err := splitSettingName(name)
	if err != nil {
		return "", err
	}

	paths, err := globalConfigPaths()
	if err != nil {
		return "", fmt.Errorf("failed to locate global git config: %w", err)
	}

	var value string
	for _, path := range paths {
		raw, err := readConfigFile(path)
		if err != nil {
			return "", err
		}
		if raw == nil || !raw.HasSection(section) {
			continue
		}

		sec := raw.Section(section)
		if subsection == "" {
			if sec.HasOption(key) {
				value = sec.Option(key)
			}
			continue
		}
		if sec.HasSubsection(subsection) && sec.Subsection(subsection).HasOption(key) {
			value = sec.Subsection(subsection).Option(key)
		}
	}
	return value, nil
}

// globalConfigPaths lists the global config files in the order git reads
// them. GIT_CONFIG_GLOBAL replaces both defaults. Without it the XDG file
// ($XDG_CONFIG_HOME/git/config, or ~/.config/git/config) comes first and
// ~/.gitconfig second.
func globalConfigPaths() ([]string, error) {
	if path := os.Getenv("GIT_CONFIG_GLOBAL"); path != "" {
		return []string{path}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		xdg = filepath.Join(home, ".config")
	}
	return []string{
		filepath.Join(xdg, "git", "config"),
		filepath.Join(home, ".gitconfig"),
	}, nil
}

// readConfigFile decodes one git config file. A missing file yields a nil
// config and no error.
func readConfigFile(path string) (*format.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	raw := format.New()
	if err := format.NewDecoder(f).Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return raw, nil
}

// splitSettingName splits "section[.subsection].key". The subsection may
// itself contain dots, so the key is everything after the last dot.
func splitSettingName(name string) (section, subsection, key string, err error) {
	first := strings.Index(name, ".")
	last := strings.LastIndex(name, ".")
	if first <= 0 || last == len(name)-1 {
		return "", "", "", errors.New("invalid git setting name: " + name)
	}

	section = name[:first]
	key = name[last+1:]
	if first != last {
		subsection = name[first+1 : last]
	}
	return section, subsection, key, nil
}
