package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/shinji-kodama/bootstrap-tool/internal/console"
	"github.com/shinji-kodama/bootstrap-tool/internal/model"
	"github.com/shinji-kodama/bootstrap-tool/internal/npm"
)

// PackagesQuestion is the dependency prompt.
const PackagesQuestion = "Which npm packages do you want to install for this project? "

// ModuleSystemQuestion returns the module system prompt.
func ModuleSystemQuestion() string {
	return fmt.Sprintf("Which Node.js module system do you want to use? (%s) ", model.JoinModuleSystems(" or "))
}

// Asker asks a question and returns the answer line.
// *prompt.Prompter satisfies it.
type Asker interface {
	Ask(question string) (string, error)
}

// SelectModuleSystem asks until the answer names a valid module system.
// Every invalid answer prints an error and asks again; there is no limit.
func SelectModuleSystem(ask Asker, con *console.Console) (model.ModuleSystem, error) {
	question := ModuleSystemQuestion()
	for {
		answer, err := ask.Ask(question)
		if err != nil {
			return "", err
		}

		ms, err := model.ParseModuleSystem(strings.TrimSpace(answer))
		if err == nil {
			return ms, nil
		}

		con.Errorf("Error: Module system must be either '%s'\n", model.JoinModuleSystems("' or '"))
	}
}

// SelectPackages asks until every named package exists in reg. When any
// name is unknown the unknown names are reported and the whole answer is
// discarded, valid names included. An empty answer is accepted at once.
func SelectPackages(ctx context.Context, ask Asker, reg npm.Registry, con *console.Console) (model.PackageList, error) {
	for {
		answer, err := ask.Ask(PackagesQuestion)
		if err != nil {
			return nil, err
		}

		packages := model.ParsePackageList(answer)
		missing := npm.Missing(ctx, reg, packages)
		if missing.IsEmpty() {
			return packages, nil
		}

		con.Errorf("Error: The following packages do not exist on npm: %s\n", missing)
	}
}
