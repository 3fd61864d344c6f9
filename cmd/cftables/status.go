package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhewett/cftables/internal/cache"
	"github.com/mhewett/cftables/internal/observability"
)

var statusCommand = &cobra.Command{
	Use:   "status [flags]",
	Short: "Report the cache state of each reference table",
	Long:  "Shows each table's cache path, age and freshness without fetching anything.",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

var statusFlags = &commonFlags{}

func init() {
	statusFlags.register(statusCommand)
	rootCmd.AddCommand(statusCommand)
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := statusFlags.resolve(cmd)
	if err != nil {
		return err
	}

	tables := buildTables(cfg)
	printer := observability.NewPrinter(os.Stdout)

	for _, res := range tables.all() {
		age, err := cache.AgeDays(res.CachePath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		exists := err == nil

		fresh := false
		if exists {
			fresh, err = cache.IsFresh(res.CachePath, res.MaxAgeDays)
			if err != nil {
				return err
			}
		}

		printer.PrintResourceStatus(res, age, exists, fresh)
	}

	return nil
}
