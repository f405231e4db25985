// Package preflight holds the checks that run before the bootstrap pipeline
// mutates anything: required programs on PATH, the target directory, and
// the advisory global git settings.
package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/bootstrap-tool/internal/model"
)

// LookPathFunc resolves a program name to an executable path.
// exec.LookPath satisfies it.
type LookPathFunc func(name string) (string, error)

// SettingLookupFunc returns the value of a named setting. An error is
// treated the same as an empty value.
type SettingLookupFunc func(name string) (string, error)

// CheckRequiredPrograms verifies that every program resolves on PATH.
//
// Checking stops at the first program that cannot be found; the remaining
// names are not looked up. The returned error is a CLIError with
// ExitGeneralError naming the missing program. The lookup error is not
// attached: the message printed to the user is exactly
// "Required command not found: <name>".
func CheckRequiredPrograms(programs []string, lookPath LookPathFunc) error {
	for _, program := range programs {
		if _, err := lookPath(program); err != nil {
			return model.NewCLIError(
				model.ExitGeneralError,
				fmt.Sprintf("Required command not found: %s", program),
			)
		}
	}
	return nil
}

// ResolveDirectory turns a caller-supplied path into an absolute path and
// checks that it exists and is a directory. Missing directories are never
// created.
func ResolveDirectory(path string) (string, error) {
	if path == "" {
		return "", model.NewCLIError(model.ExitGeneralError, "You must specify the --directory argument")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to resolve target directory", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", model.NewCLIError(
				model.ExitGeneralError,
				fmt.Sprintf("Target directory '%s' does not exist", abs),
			)
		}
		return "", model.WrapCLIError(model.ExitGeneralError, fmt.Sprintf("cannot access target directory '%s'", abs), err)
	}
	if !info.IsDir() {
		return "", model.NewCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("Target directory '%s' is not a directory", abs),
		)
	}

	return abs, nil
}

// UnsetSettings returns, in input order, the names whose value is empty
// or whose lookup failed. It never returns an error: these settings are
// advisory only.
func UnsetSettings(names []string, lookup SettingLookupFunc) []string {
	var unset []string
	for _, name := range names {
		value, err := lookup(name)
		if err != nil || value == "" {
			unset = append(unset, name)
		}
	}
	return unset
}
