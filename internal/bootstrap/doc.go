// Package bootstrap implements the project bootstrap orchestrator.
//
// A run is an ordered list of named steps executed strictly in sequence:
//
//  1. Check required programs (fatal on the first miss)
//  2. Resolve the target directory (fatal if missing)
//  3. Warn about unset global git settings
//  4. git init
//  5. npm init --yes and read package.json
//  6. Ask for the module system (re-asked until valid) and write it
//  7. Ask for packages (re-asked until all exist) and install them
//  8. Generate .gitignore, editor/formatter/linter configs and README
//  9. Commit the skeleton and report success
//
// The first failing step ends the run. Collaborator errors are returned
// unchanged; closed input during a prompt becomes a cancellation error.
// Nothing is rolled back: the target directory keeps whatever the
// completed steps produced.
package bootstrap
