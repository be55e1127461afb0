// Command carbontrack records everyday activities and tracks their carbon
// footprint against monthly budgets and reduction goals.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/carbontrack/internal/cli"
	"github.com/rshade/carbontrack/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit code.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	err := root.ExecuteContext(ctx)
	if err != nil {
		var budgetErr *cli.BudgetExitError
		if errors.As(err, &budgetErr) {
			fmt.Fprintln(os.Stderr, "Budget alert:", budgetErr.Reason)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	return extractBudgetExitCode(err)
}

// extractBudgetExitCode maps an error to an exit code: 0 for nil, the
// carried code for a BudgetExitError, and 1 otherwise.
func extractBudgetExitCode(err error) int {
	if err == nil {
		return 0
	}
	var budgetErr *cli.BudgetExitError
	if errors.As(err, &budgetErr) {
		return budgetErr.ExitCode
	}
	return 1
}
