package model

import (
	"fmt"
	"strings"
)

// ModuleSystem is the Node.js script-loading convention recorded in the
// "module" field of package.json.
type ModuleSystem string

const (
	// ModuleSystemModule selects ECMAScript modules.
	ModuleSystemModule ModuleSystem = "module"

	// ModuleSystemCommonJS selects CommonJS modules.
	ModuleSystemCommonJS ModuleSystem = "commonjs"
)

// ModuleSystems lists the valid selections in the order they are offered
// to the user. The order is part of the prompt text.
var ModuleSystems = []ModuleSystem{ModuleSystemModule, ModuleSystemCommonJS}

// String returns the string representation of ModuleSystem.
func (m ModuleSystem) String() string {
	return string(m)
}

// IsValid checks whether the ModuleSystem is one of the predefined values.
// Matching is exact: "Module" or " module" are not valid.
func (m ModuleSystem) IsValid() bool {
	switch m {
	case ModuleSystemModule, ModuleSystemCommonJS:
		return true
	default:
		return false
	}
}

// ParseModuleSystem converts a string to a ModuleSystem.
// Returns an error if the string does not match any valid value.
func ParseModuleSystem(s string) (ModuleSystem, error) {
	ms := ModuleSystem(s)
	if !ms.IsValid() {
		return "", fmt.Errorf("invalid module system: %q (valid: %s)", s, JoinModuleSystems(", "))
	}
	return ms, nil
}

// JoinModuleSystems joins the valid module systems with sep, e.g.
// JoinModuleSystems(" or ") == "module or commonjs".
func JoinModuleSystems(sep string) string {
	names := make([]string, len(ModuleSystems))
	for i, ms := range ModuleSystems {
		names[i] = ms.String()
	}
	return strings.Join(names, sep)
}

// PackageList is an ordered list of npm package names as entered by the user.
type PackageList []string

// ParsePackageList splits free-text input into package names. Any run of
// whitespace separates names and empty tokens are discarded, so blank input
// yields an empty (non-nil) list.
func ParsePackageList(input string) PackageList {
	fields := strings.Fields(input)
	if fields == nil {
		return PackageList{}
	}
	return PackageList(fields)
}

// IsEmpty reports whether there is nothing to install.
func (p PackageList) IsEmpty() bool {
	return len(p) == 0
}

// String returns the names joined by ", ", the format used in error output.
func (p PackageList) String() string {
	return strings.Join(p, ", ")
}

// ExitCode defines the process exit codes of the bootstrap-tool binary.
type ExitCode int

const (
	// ExitSuccess indicates the project was bootstrapped successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError covers fatal preconditions (missing program, missing
	// target directory) and any collaborator failure.
	ExitGeneralError ExitCode = 1

	// ExitUserCancelled indicates standard input was closed while the tool
	// was waiting for an answer.
	ExitUserCancelled ExitCode = 130
)

// CLIError is an error that carries an exit code.
// The CLI layer uses it to translate failures into process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
