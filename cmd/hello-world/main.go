// Command hello-world prints the listing of the current directory.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shinji-kodama/bootstrap-tool/internal/console"
	"github.com/shinji-kodama/bootstrap-tool/internal/model"
	"github.com/shinji-kodama/bootstrap-tool/internal/shell"
)

func main() {
	os.Exit(int(run(context.Background(), shell.NewExecRunner(os.Stdout, os.Stderr), console.New(os.Stdout, os.Stderr))))
}

// run lists the working directory quietly and prints the trimmed output.
func run(ctx context.Context, runner shell.Runner, con *console.Console) model.ExitCode {
	res, err := runner.Run(ctx, "", shell.Options{Quiet: true}, "ls")
	if err != nil {
		con.Errorf("Error: %s", err)
		return model.ExitGeneralError
	}

	_, _ = fmt.Fprintln(con.Out, strings.TrimSpace(res.Stdout))
	return model.ExitSuccess
}
