package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhewett/cftables/internal/cache"
	"github.com/mhewett/cftables/internal/observability"
)

var refreshCommand = &cobra.Command{
	Use:   "refresh [flags]",
	Short: "Force a refresh of the cached reference tables",
	Long: `Re-fetches the remote reference tables regardless of their age, without
deleting the existing cache files. Pass --max-age to refresh only tables older
than a threshold instead.

Local (non-URL) sources are never fetched.`,
	Args: cobra.NoArgs,
	RunE: runRefreshCmd,
}

var refreshFlags = &commonFlags{}

func init() {
	refreshFlags.register(refreshCommand)
	rootCmd.AddCommand(refreshCommand)
}

func runRefreshCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := refreshFlags.resolve(cmd)
	if err != nil {
		return err
	}

	// Unless --max-age was given, force both thresholds to zero so every
	// remote table is re-fetched.
	if !cmd.Flags().Changed("max-age") {
		zero := 0.0
		cfg.StandardNamesMaxAge = &zero
		cfg.AreaTypesMaxAge = &zero
	}

	tables := buildTables(cfg)

	orchestrator := cache.NewOrchestrator(nil)
	outcome := orchestrator.Refresh(ctx, tables.all())

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintRefreshOutcome(outcome)
	} else {
		for _, res := range outcome.Results {
			fmt.Fprintf(os.Stdout, "%s: %s\n", res.Resource.Name, res.Status)
		}
	}

	if outcome.AnyFailure() {
		return fmt.Errorf("refresh failed: %w", outcome.FirstError())
	}

	return nil
}
