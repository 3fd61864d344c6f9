package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhewett/cftables/internal/cache"
	"github.com/mhewett/cftables/internal/checker"
	"github.com/mhewett/cftables/internal/observability"
)

var checkCommand = &cobra.Command{
	Use:   "check [flags] <input-file>...",
	Short: "Refresh the reference tables and check the given files",
	Long: `Ensures fresh local copies of the CF standard names and area types tables,
then runs the external checker once per input file against those copies.

A table that cannot be refreshed does not stop the run: checking proceeds
against whatever local copy exists, and the failure is reflected in the exit
status.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheckCmd,
}

var checkFlags = &commonFlags{}

func init() {
	checkFlags.register(checkCommand)
	checkFlags.registerVersion(checkCommand)
	rootCmd.AddCommand(checkCommand)
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := checkFlags.resolve(cmd)
	if err != nil {
		return err
	}

	tables := buildTables(cfg)

	// Step 1: Refresh the remote tables. Failures are reported but never
	// block the checks below.
	orchestrator := cache.NewOrchestrator(nil)
	outcome := orchestrator.Refresh(ctx, tables.all())

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintRefreshOutcome(outcome)
	}
	for _, res := range outcome.Results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not refresh %s (%s): %v\n",
				res.Resource.Name, res.Resource.CachePath, res.Err)
		}
	}

	// Step 2: Run the checker once per input file against the local copies,
	// stale or not.
	invoker := checker.NewInvoker(cfg.Checker,
		tables.StandardNames.CachePath,
		tables.AreaTypes.CachePath,
		cfg.Udunits,
		cfg.Version)

	printer := observability.NewPrinter(os.Stdout)
	checksFailed := 0
	for _, inputFile := range args {
		err := invoker.Run(ctx, inputFile)
		printer.PrintCheckResult(inputFile, err)
		if err != nil {
			checksFailed++
		}
	}

	// Step 3: Overall result. A refresh failure fails the run even when all
	// checks passed against stale copies.
	switch {
	case outcome.AnyFailure() && checksFailed > 0:
		return fmt.Errorf("%d check(s) failed and at least one table refresh failed: %w", checksFailed, outcome.FirstError())
	case checksFailed > 0:
		return fmt.Errorf("%d of %d check(s) failed", checksFailed, len(args))
	case outcome.AnyFailure():
		return fmt.Errorf("all checks passed, but a table refresh failed: %w", outcome.FirstError())
	}

	return nil
}
