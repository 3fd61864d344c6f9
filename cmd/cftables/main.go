// Package main provides the entry point for the cftables CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cftables",
	Short: "CF reference table cache and checker front end",
	Long:  "cftables keeps local copies of the CF standard names and area types tables fresh and runs the external CF compliance checker against NetCDF files using those copies.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
